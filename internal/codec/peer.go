// Package codec converts between MTProto identifiers and the opaque or signed
// identifiers exposed by the Bot API.
package codec

import (
	"fmt"

	"github.com/gotd/td/tg"
)

// PeerKind is the native peer namespace.
type PeerKind uint8

const (
	// PeerUser is a user or bot.
	PeerUser PeerKind = iota + 1
	// PeerChat is a basic group.
	PeerChat
	// PeerChannel is a channel or supergroup.
	PeerChannel
)

// String returns the peer kind name.
func (k PeerKind) String() string {
	switch k {
	case PeerUser:
		return "user"
	case PeerChat:
		return "chat"
	case PeerChannel:
		return "channel"
	default:
		return fmt.Sprintf("PeerKind(%d)", uint8(k))
	}
}

// channelOffset separates basic group and channel chat identifiers.
const channelOffset int64 = 1_000_000_000_000

// maxChannelPeerID is the largest native channel id with a Bot API encoding.
const maxChannelPeerID = channelOffset - 1

const (
	// MaxChannelID is the largest chat identifier that still addresses a channel.
	MaxChannelID = -channelOffset - 1
	// MinChannelID is the smallest chat identifier that addresses a channel.
	MinChannelID = -channelOffset - maxChannelPeerID
)

// Peer is a native peer reference with an optional access hash.
type Peer struct {
	Kind       PeerKind
	ID         int64
	AccessHash int64
}

// IsZero reports whether the peer is unset.
func (p Peer) IsZero() bool {
	return p.Kind == 0 || p.ID == 0
}

// ChatID returns the Bot API chat identifier of the peer.
func (p Peer) ChatID() int64 {
	return ChatIDFromPeer(p)
}

// ChatIDFromPeer encodes a native peer as a signed Bot API chat identifier.
//
// Users keep their id, basic groups are negated and channels are shifted
// below -1e12.
func ChatIDFromPeer(p Peer) int64 {
	switch p.Kind {
	case PeerUser:
		return p.ID
	case PeerChat:
		return -p.ID
	case PeerChannel:
		return -channelOffset - p.ID
	default:
		return 0
	}
}

// PeerFromChatID decodes a signed Bot API chat identifier.
//
// The returned peer carries no access hash.
func PeerFromChatID(chatID int64) (Peer, error) {
	switch {
	case IsUserID(chatID):
		return Peer{Kind: PeerUser, ID: chatID}, nil
	case IsChatID(chatID):
		return Peer{Kind: PeerChat, ID: -chatID}, nil
	case IsChannelID(chatID):
		return Peer{Kind: PeerChannel, ID: -chatID - channelOffset}, nil
	default:
		return Peer{}, fmt.Errorf("%w: %d", ErrInvalidChatID, chatID)
	}
}

// IsUserID reports whether chatID addresses a user.
func IsUserID(chatID int64) bool {
	return chatID > 0
}

// IsChatID reports whether chatID addresses a basic group.
func IsChatID(chatID int64) bool {
	return chatID < 0 && chatID > -channelOffset
}

// IsChannelID reports whether chatID addresses a channel or supergroup.
func IsChannelID(chatID int64) bool {
	return chatID <= MaxChannelID && chatID >= MinChannelID
}

// PeerFromTL converts a native peer reference.
func PeerFromTL(peer tg.PeerClass) (Peer, bool) {
	switch typed := peer.(type) {
	case *tg.PeerUser:
		return Peer{Kind: PeerUser, ID: typed.UserID}, true
	case *tg.PeerChat:
		return Peer{Kind: PeerChat, ID: typed.ChatID}, true
	case *tg.PeerChannel:
		return Peer{Kind: PeerChannel, ID: typed.ChannelID}, true
	default:
		return Peer{}, false
	}
}

// PeerFromInputPeer converts a native input peer, keeping its access hash.
func PeerFromInputPeer(peer tg.InputPeerClass) (Peer, bool) {
	switch typed := peer.(type) {
	case *tg.InputPeerUser:
		return Peer{Kind: PeerUser, ID: typed.UserID, AccessHash: typed.AccessHash}, true
	case *tg.InputPeerChat:
		return Peer{Kind: PeerChat, ID: typed.ChatID}, true
	case *tg.InputPeerChannel:
		return Peer{Kind: PeerChannel, ID: typed.ChannelID, AccessHash: typed.AccessHash}, true
	default:
		return Peer{}, false
	}
}

// TL returns the native peer reference.
func (p Peer) TL() tg.PeerClass {
	switch p.Kind {
	case PeerUser:
		return &tg.PeerUser{UserID: p.ID}
	case PeerChat:
		return &tg.PeerChat{ChatID: p.ID}
	case PeerChannel:
		return &tg.PeerChannel{ChannelID: p.ID}
	default:
		return nil
	}
}

// InputPeer returns the native input peer.
func (p Peer) InputPeer() tg.InputPeerClass {
	switch p.Kind {
	case PeerUser:
		return &tg.InputPeerUser{UserID: p.ID, AccessHash: p.AccessHash}
	case PeerChat:
		return &tg.InputPeerChat{ChatID: p.ID}
	case PeerChannel:
		return &tg.InputPeerChannel{ChannelID: p.ID, AccessHash: p.AccessHash}
	default:
		return &tg.InputPeerEmpty{}
	}
}

// InputUser returns the native input user for user peers.
func (p Peer) InputUser() (*tg.InputUser, bool) {
	if p.Kind != PeerUser {
		return nil, false
	}

	return &tg.InputUser{UserID: p.ID, AccessHash: p.AccessHash}, true
}

// InputChannel returns the native input channel for channel peers.
func (p Peer) InputChannel() (*tg.InputChannel, bool) {
	if p.Kind != PeerChannel {
		return nil, false
	}

	return &tg.InputChannel{ChannelID: p.ID, AccessHash: p.AccessHash}, true
}
