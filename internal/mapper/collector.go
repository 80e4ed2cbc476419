// Package mapper projects native MTProto objects onto the Bot API object
// model and builds native request objects from Bot API parameters.
package mapper

import (
	"sort"
	"strings"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
)

// Collector indexes the users and chats delivered with one response or one
// update batch so peers resolve without another round trip.
type Collector struct {
	self  int64
	users map[int64]*tg.User
	chats map[int64]tg.ChatClass
}

// NewCollector creates an empty collector for the bot with id self.
func NewCollector(self int64) *Collector {
	return &Collector{
		self:  self,
		users: make(map[int64]*tg.User),
		chats: make(map[int64]tg.ChatClass),
	}
}

// Self returns the bot user id.
func (c *Collector) Self() int64 {
	if c == nil {
		return 0
	}

	return c.self
}

// Add indexes users and chats.
func (c *Collector) Add(users []tg.UserClass, chats []tg.ChatClass) *Collector {
	c.AddUsers(users)
	c.AddChats(chats)

	return c
}

// AddUsers indexes users, ignoring empty placeholders.
func (c *Collector) AddUsers(users []tg.UserClass) {
	for _, user := range users {
		typed, ok := user.(*tg.User)
		if !ok {
			continue
		}
		if existing, exists := c.users[typed.ID]; exists && typed.Min && !existing.Min {
			continue
		}
		c.users[typed.ID] = typed
	}
}

// AddChats indexes chats by their Bot API chat id.
func (c *Collector) AddChats(chats []tg.ChatClass) {
	for _, chat := range chats {
		peer, ok := chatPeer(chat)
		if !ok {
			continue
		}
		if channel, isChannel := chat.(*tg.Channel); isChannel && channel.Min {
			if _, exists := c.chats[peer.ChatID()]; exists {
				continue
			}
		}
		c.chats[peer.ChatID()] = chat
	}
}

// User returns an indexed user.
func (c *Collector) User(id int64) (*tg.User, bool) {
	if c == nil {
		return nil, false
	}
	user, ok := c.users[id]

	return user, ok
}

// Chat returns an indexed chat by Bot API chat id.
func (c *Collector) Chat(chatID int64) (tg.ChatClass, bool) {
	if c == nil {
		return nil, false
	}
	chat, ok := c.chats[chatID]

	return chat, ok
}

// AccessHashes returns the access hashes of every indexed peer keyed by Bot
// API chat id. Peers seen without a usable hash are omitted.
func (c *Collector) AccessHashes() map[int64]int64 {
	hashes := make(map[int64]int64, len(c.users)+len(c.chats))
	for id, user := range c.users {
		if hash, ok := user.GetAccessHash(); ok && !user.Min {
			hashes[id] = hash
		}
	}
	for chatID, chat := range c.chats {
		switch typed := chat.(type) {
		case *tg.Channel:
			if hash, ok := typed.GetAccessHash(); ok && !typed.Min {
				hashes[chatID] = hash
			}
		case *tg.ChannelForbidden:
			hashes[chatID] = typed.AccessHash
		case *tg.Chat, *tg.ChatForbidden:
			hashes[chatID] = 0
		}
	}

	return hashes
}

// Usernames returns the lower-cased public usernames of indexed peers keyed
// to their Bot API chat id.
func (c *Collector) Usernames() map[string]int64 {
	names := make(map[string]int64)
	for id, user := range c.users {
		for _, name := range userUsernames(user) {
			names[strings.ToLower(name)] = id
		}
	}
	for chatID, chat := range c.chats {
		if channel, ok := chat.(*tg.Channel); ok {
			for _, name := range channelUsernames(channel) {
				names[strings.ToLower(name)] = chatID
			}
		}
	}

	return names
}

// UserIDs returns indexed user ids in ascending order.
func (c *Collector) UserIDs() []int64 {
	ids := make([]int64, 0, len(c.users))
	for id := range c.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func chatPeer(chat tg.ChatClass) (codec.Peer, bool) {
	switch typed := chat.(type) {
	case *tg.Chat:
		return codec.Peer{Kind: codec.PeerChat, ID: typed.ID}, true
	case *tg.ChatForbidden:
		return codec.Peer{Kind: codec.PeerChat, ID: typed.ID}, true
	case *tg.Channel:
		hash, _ := typed.GetAccessHash()
		return codec.Peer{Kind: codec.PeerChannel, ID: typed.ID, AccessHash: hash}, true
	case *tg.ChannelForbidden:
		return codec.Peer{Kind: codec.PeerChannel, ID: typed.ID, AccessHash: typed.AccessHash}, true
	default:
		return codec.Peer{}, false
	}
}
