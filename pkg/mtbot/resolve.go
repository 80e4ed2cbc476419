package mtbot

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// resolvePeer converts a Bot API chat identifier into a native peer with its
// access hash.
//
// Lookup order: peer cache, persistent store, then a network lookup. Bots
// may address users and channels with a zero access hash when fetching them,
// which is what the network lookup relies on.
func (c *Client) resolvePeer(ctx context.Context, method string, chatID botapi.ChatID) (codec.Peer, error) {
	if err := chatID.Validate(); err != nil {
		return codec.Peer{}, err
	}
	if chatID.IsUsername() {
		return c.resolveUsername(ctx, method, chatID.Username)
	}

	native, err := codec.PeerFromChatID(chatID.ID)
	if err != nil {
		return codec.Peer{}, err
	}
	if cached, ok := c.peers.Lookup(chatID.ID); ok {
		c.metrics.recordPeerResolution(peerSourceCache)
		return cached, nil
	}
	if native.Kind == codec.PeerChat {
		c.peers.RememberPeer(native)
		return native, nil
	}
	if c.cfg.peerStore != nil {
		hash, found, err := c.cfg.peerStore.LoadAccessHash(ctx, chatID.ID)
		if err != nil {
			return codec.Peer{}, fmt.Errorf("load access hash %d: %w", chatID.ID, err)
		}
		if found {
			native.AccessHash = hash
			c.peers.RememberPeer(native)
			c.metrics.recordPeerResolution(peerSourceStore)
			return native, nil
		}
	}

	c.metrics.recordPeerResolution(peerSourceRPC)
	switch native.Kind {
	case codec.PeerUser:
		return c.fetchUser(ctx, method, native.ID)
	default:
		return c.fetchChannel(ctx, method, native.ID)
	}
}

func (c *Client) fetchUser(ctx context.Context, method string, userID int64) (codec.Peer, error) {
	users, err := c.api.UsersGetUsers(ctx, []tg.InputUserClass{&tg.InputUser{UserID: userID}})
	if err != nil {
		if isLookupMiss(err) {
			return codec.Peer{}, chatNotFound(method)
		}
		return codec.Peer{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	c.collect(ctx, users, nil)

	peer, ok := c.peers.Lookup(codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerUser, ID: userID}))
	if !ok {
		return codec.Peer{}, chatNotFound(method)
	}

	return peer, nil
}

func (c *Client) fetchChannel(ctx context.Context, method string, channelID int64) (codec.Peer, error) {
	result, err := c.api.ChannelsGetChannels(ctx, []tg.InputChannelClass{&tg.InputChannel{ChannelID: channelID}})
	if err != nil {
		if isLookupMiss(err) {
			return codec.Peer{}, chatNotFound(method)
		}
		return codec.Peer{}, fmt.Errorf("get channel %d: %w", channelID, err)
	}
	c.collect(ctx, nil, chatsOf(result))

	peer, ok := c.peers.Lookup(codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChannel, ID: channelID}))
	if !ok {
		return codec.Peer{}, chatNotFound(method)
	}

	return peer, nil
}

func (c *Client) resolveUsername(ctx context.Context, method string, username string) (codec.Peer, error) {
	if cached, ok := c.peers.LookupUsername(username); ok {
		c.metrics.recordPeerResolution(peerSourceCache)
		return cached, nil
	}

	c.metrics.recordPeerResolution(peerSourceUsername)
	resolved, err := c.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: normalizeUsername(username),
	})
	if err != nil {
		if isLookupMiss(err) {
			return codec.Peer{}, chatNotFound(method)
		}
		return codec.Peer{}, fmt.Errorf("resolve username %s: %w", username, err)
	}
	c.collect(ctx, resolved.Users, resolved.Chats)

	native, ok := codec.PeerFromTL(resolved.Peer)
	if !ok {
		return codec.Peer{}, chatNotFound(method)
	}
	c.peers.RememberUsername(username, native.ChatID())
	peer, ok := c.peers.Lookup(native.ChatID())
	if !ok {
		return codec.Peer{}, chatNotFound(method)
	}

	return peer, nil
}

// resolveInputPeer is resolvePeer returning the native input peer.
func (c *Client) resolveInputPeer(ctx context.Context, method string, chatID botapi.ChatID) (tg.InputPeerClass, error) {
	peer, err := c.resolvePeer(ctx, method, chatID)
	if err != nil {
		return nil, err
	}

	return peer.InputPeer(), nil
}

// resolveUser resolves a user identifier.
func (c *Client) resolveUser(ctx context.Context, method string, userID int64) (*tg.InputUser, error) {
	if !codec.IsUserID(userID) {
		return nil, userNotFound(method)
	}
	peer, err := c.resolvePeer(ctx, method, botapi.ID(userID))
	if err != nil {
		var requestErr *botapi.RequestError
		if errors.As(err, &requestErr) && requestErr.Code == 400 {
			return nil, userNotFound(method)
		}
		return nil, err
	}
	user, ok := peer.InputUser()
	if !ok {
		return nil, userNotFound(method)
	}

	return user, nil
}

// userResolver adapts resolveUser for entity encoding.
func (c *Client) userResolver(ctx context.Context, method string) func(userID int64) (tg.InputUserClass, error) {
	return func(userID int64) (tg.InputUserClass, error) {
		user, err := c.resolveUser(ctx, method, userID)
		if err != nil {
			return nil, err
		}
		return user, nil
	}
}

// resolveChannel resolves a chat that must be a supergroup or channel.
func (c *Client) resolveChannel(ctx context.Context, method string, chatID botapi.ChatID) (*tg.InputChannel, error) {
	peer, err := c.resolvePeer(ctx, method, chatID)
	if err != nil {
		return nil, err
	}
	channel, ok := peer.InputChannel()
	if !ok {
		return nil, botapi.BadRequest(method, "method is available only for supergroups and channel")
	}

	return channel, nil
}

func isLookupMiss(err error) bool {
	return tgerr.Is(err,
		"USER_ID_INVALID",
		"PEER_ID_INVALID",
		"CHANNEL_INVALID",
		"CHANNEL_PRIVATE",
		"CHAT_ID_INVALID",
		"USERNAME_INVALID",
		"USERNAME_NOT_OCCUPIED",
	)
}

func chatsOf(result tg.MessagesChatsClass) []tg.ChatClass {
	switch typed := result.(type) {
	case *tg.MessagesChats:
		return typed.Chats
	case *tg.MessagesChatsSlice:
		return typed.Chats
	default:
		return nil
	}
}
