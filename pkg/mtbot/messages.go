package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

type messagesResult struct {
	messages []tg.MessageClass
	users    []tg.UserClass
	chats    []tg.ChatClass
}

func unpackMessages(result tg.MessagesMessagesClass) messagesResult {
	switch typed := result.(type) {
	case *tg.MessagesMessages:
		return messagesResult{messages: typed.Messages, users: typed.Users, chats: typed.Chats}
	case *tg.MessagesMessagesSlice:
		return messagesResult{messages: typed.Messages, users: typed.Users, chats: typed.Chats}
	case *tg.MessagesChannelMessages:
		return messagesResult{messages: typed.Messages, users: typed.Users, chats: typed.Chats}
	default:
		return messagesResult{}
	}
}

// fetchNativeMessages loads messages of one chat by id without projecting
// them.
func (c *Client) fetchNativeMessages(ctx context.Context, peer codec.Peer, ids []int) (messagesResult, error) {
	inputs := make([]tg.InputMessageClass, 0, len(ids))
	for _, id := range ids {
		inputs = append(inputs, &tg.InputMessageID{ID: id})
	}

	var (
		result tg.MessagesMessagesClass
		err    error
	)
	if channel, ok := peer.InputChannel(); ok {
		result, err = c.api.ChannelsGetMessages(ctx, &tg.ChannelsGetMessagesRequest{Channel: channel, ID: inputs})
	} else {
		result, err = c.api.MessagesGetMessages(ctx, inputs)
	}
	if err != nil {
		return messagesResult{}, fmt.Errorf("get messages: %w", err)
	}

	return unpackMessages(result), nil
}

// fetchMessages loads messages of one chat by id. Messages that no longer
// exist are omitted.
func (c *Client) fetchMessages(ctx context.Context, peer codec.Peer, ids []int) ([]*botapi.Message, error) {
	unpacked, err := c.fetchNativeMessages(ctx, peer, ids)
	if err != nil {
		return nil, err
	}

	collector := c.collect(ctx, unpacked.users, unpacked.chats)
	messages := make([]*botapi.Message, 0, len(unpacked.messages))
	for _, native := range unpacked.messages {
		if projected := mapper.Message(native, collector); projected != nil {
			messages = append(messages, projected)
		}
	}

	return messages, nil
}

// loadMessage loads one message of the chat with chatID.
func (c *Client) loadMessage(ctx context.Context, chatID int64, messageID int) (*botapi.Message, error) {
	peer, err := c.resolvePeer(ctx, "getMessages", botapi.ID(chatID))
	if err != nil {
		return nil, err
	}
	messages, err := c.fetchMessages(ctx, peer, []int{messageID})
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, botapi.BadRequest("getMessages", "message not found")
	}

	return messages[0], nil
}
