package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// sentUpdates is the content of an updates container returned by a mutating
// call.
type sentUpdates struct {
	updates []tg.UpdateClass
	users   []tg.UserClass
	chats   []tg.ChatClass
}

func unpackUpdates(updates tg.UpdatesClass) sentUpdates {
	switch typed := updates.(type) {
	case *tg.Updates:
		return sentUpdates{updates: typed.Updates, users: typed.Users, chats: typed.Chats}
	case *tg.UpdatesCombined:
		return sentUpdates{updates: typed.Updates, users: typed.Users, chats: typed.Chats}
	case *tg.UpdateShort:
		return sentUpdates{updates: []tg.UpdateClass{typed.Update}}
	default:
		return sentUpdates{}
	}
}

// sentMessages extracts the messages created by a send call, ordered like
// randomIDs. Without random ids every new message is returned in update
// order.
func (c *Client) sentMessages(
	ctx context.Context,
	method string,
	updates tg.UpdatesClass,
	randomIDs []int64,
) ([]*botapi.Message, error) {
	unpacked := unpackUpdates(updates)
	collector := c.collect(ctx, unpacked.users, unpacked.chats)

	idByRandom := make(map[int64]int, len(randomIDs))
	created := make(map[int]tg.MessageClass)
	order := make([]int, 0, len(randomIDs))
	for _, update := range unpacked.updates {
		switch typed := update.(type) {
		case *tg.UpdateMessageID:
			idByRandom[typed.RandomID] = typed.ID
		case *tg.UpdateNewMessage:
			created[typed.Message.GetID()] = typed.Message
			order = append(order, typed.Message.GetID())
		case *tg.UpdateNewChannelMessage:
			created[typed.Message.GetID()] = typed.Message
			order = append(order, typed.Message.GetID())
		case *tg.UpdateNewScheduledMessage:
			created[typed.Message.GetID()] = typed.Message
			order = append(order, typed.Message.GetID())
		}
	}

	if len(randomIDs) > 0 && len(idByRandom) > 0 {
		order = order[:0]
		for _, randomID := range randomIDs {
			if id, ok := idByRandom[randomID]; ok {
				order = append(order, id)
			}
		}
	}

	messages := make([]*botapi.Message, 0, len(order))
	for _, id := range order {
		native, ok := created[id]
		if !ok {
			continue
		}
		if projected := mapper.Message(native, collector); projected != nil {
			messages = append(messages, projected)
		}
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%s: %w", method, errNoMessage)
	}

	return messages, nil
}

func (c *Client) sentMessage(ctx context.Context, method string, updates tg.UpdatesClass, randomID int64) (*botapi.Message, error) {
	messages, err := c.sentMessages(ctx, method, updates, []int64{randomID})
	if err != nil {
		return nil, err
	}

	return messages[0], nil
}

// editedMessage extracts the message changed by an edit call.
func (c *Client) editedMessage(ctx context.Context, method string, updates tg.UpdatesClass) (*botapi.Message, error) {
	unpacked := unpackUpdates(updates)
	collector := c.collect(ctx, unpacked.users, unpacked.chats)

	for _, update := range unpacked.updates {
		var native tg.MessageClass
		switch typed := update.(type) {
		case *tg.UpdateEditMessage:
			native = typed.Message
		case *tg.UpdateEditChannelMessage:
			native = typed.Message
		case *tg.UpdateNewMessage:
			native = typed.Message
		case *tg.UpdateNewChannelMessage:
			native = typed.Message
		default:
			continue
		}
		if projected := mapper.Message(native, collector); projected != nil {
			return projected, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", method, errNoMessage)
}

// shortSentMessage rebuilds the message acknowledged by
// updateShortSentMessage, which carries only the server assigned fields.
func (c *Client) shortSentMessage(
	sent *tg.UpdateShortSentMessage,
	peer codec.Peer,
	text mapper.FormattedText,
) *botapi.Message {
	native := &tg.Message{
		Out:      true,
		ID:       sent.ID,
		PeerID:   peer.TL(),
		Date:     sent.Date,
		Message:  text.Text,
		Entities: text.Entities,
	}
	if sent.Entities != nil {
		native.Entities = sent.Entities
	}
	if sent.Media != nil {
		native.Media = sent.Media
	}
	if self := c.selfID.Load(); self != 0 {
		native.FromID = &tg.PeerUser{UserID: self}
	}

	return mapper.Message(native, c.newCollector())
}
