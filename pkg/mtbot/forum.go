package mtbot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// generalTopicID is the thread id of the General topic of every forum.
const generalTopicID = 1

// resolveForum resolves a supergroup as the input peer topic calls take.
func (c *Client) resolveForum(ctx context.Context, method string, chatID botapi.ChatID) (*tg.InputPeerChannel, error) {
	channel, err := c.resolveChannel(ctx, method, chatID)
	if err != nil {
		return nil, err
	}

	return &tg.InputPeerChannel{ChannelID: channel.ChannelID, AccessHash: channel.AccessHash}, nil
}

// GetForumTopicIconStickers lists the custom emoji usable as topic icons.
func (c *Client) GetForumTopicIconStickers(ctx context.Context) ([]botapi.Sticker, error) {
	const method = "getForumTopicIconStickers"

	var result []botapi.Sticker
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		set, err := c.api.MessagesGetStickerSet(ctx, &tg.MessagesGetStickerSetRequest{
			Stickerset: &tg.InputStickerSetEmojiDefaultTopicIcons{},
		})
		if err != nil {
			return fmt.Errorf("get sticker set: %w", err)
		}
		full, ok := set.(*tg.MessagesStickerSet)
		if !ok {
			return fmt.Errorf("get sticker set: unexpected %s", set.TypeName())
		}
		result = mapper.StickerSet(full).Stickers
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CreateForumTopic creates a topic in a forum supergroup.
func (c *Client) CreateForumTopic(ctx context.Context, params botapi.CreateForumTopicParams) (botapi.ForumTopic, error) {
	const method = "createForumTopic"
	if err := params.Validate(); err != nil {
		return botapi.ForumTopic{}, fmt.Errorf("create forum topic validate: %w", err)
	}

	var result botapi.ForumTopic
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveForum(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		randomID, err := c.randomID()
		if err != nil {
			return err
		}

		request := &tg.MessagesCreateForumTopicRequest{
			Peer:     peer,
			Title:    params.Name,
			RandomID: randomID,
		}
		if params.IconColor != 0 {
			request.SetIconColor(params.IconColor)
		}
		if params.IconCustomEmojiID != "" {
			emojiID, err := strconv.ParseInt(params.IconCustomEmojiID, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: icon_custom_emoji_id %q", botapi.ErrInvalidParams, params.IconCustomEmojiID)
			}
			request.SetIconEmojiID(emojiID)
		}

		updates, err := c.api.MessagesCreateForumTopic(ctx, request)
		if err != nil {
			return fmt.Errorf("create forum topic: %w", err)
		}
		message, err := c.sentMessage(ctx, method, updates, randomID)
		if err != nil {
			return err
		}
		result = botapi.ForumTopic{
			MessageThreadID:   message.MessageID,
			Name:              params.Name,
			IconColor:         params.IconColor,
			IconCustomEmojiID: params.IconCustomEmojiID,
		}
		if created := message.ForumTopicCreated; created != nil {
			result.Name = created.Name
			result.IconColor = created.IconColor
			result.IconCustomEmojiID = created.IconCustomEmojiID
		}
		return nil
	})
	if err != nil {
		return botapi.ForumTopic{}, err
	}

	return result, nil
}

// EditForumTopic renames a topic or changes its icon.
func (c *Client) EditForumTopic(ctx context.Context, params botapi.EditForumTopicParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("edit forum topic validate: %w", err)
	}

	return c.editTopic(ctx, "editForumTopic", params.ChatID, params.MessageThreadID,
		func(request *tg.MessagesEditForumTopicRequest) error {
			if params.Name != "" {
				request.SetTitle(params.Name)
			}
			if params.IconCustomEmojiID == nil {
				return nil
			}
			if *params.IconCustomEmojiID == "" {
				request.SetIconEmojiID(0)
				return nil
			}
			emojiID, err := strconv.ParseInt(*params.IconCustomEmojiID, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: icon_custom_emoji_id %q", botapi.ErrInvalidParams, *params.IconCustomEmojiID)
			}
			request.SetIconEmojiID(emojiID)
			return nil
		})
}

// CloseForumTopic closes an open topic.
func (c *Client) CloseForumTopic(ctx context.Context, params botapi.ForumTopicParams) error {
	return c.setTopicClosed(ctx, "closeForumTopic", params, true)
}

// ReopenForumTopic reopens a closed topic.
func (c *Client) ReopenForumTopic(ctx context.Context, params botapi.ForumTopicParams) error {
	return c.setTopicClosed(ctx, "reopenForumTopic", params, false)
}

func (c *Client) setTopicClosed(ctx context.Context, method string, params botapi.ForumTopicParams, closed bool) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%s validate: %w", method, err)
	}

	return c.editTopic(ctx, method, params.ChatID, params.MessageThreadID,
		func(request *tg.MessagesEditForumTopicRequest) error {
			request.SetClosed(closed)
			return nil
		})
}

func (c *Client) editTopic(
	ctx context.Context,
	method string,
	chatID botapi.ChatID,
	topicID int,
	apply func(request *tg.MessagesEditForumTopicRequest) error,
) error {
	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveForum(ctx, method, chatID)
		if err != nil {
			return err
		}
		request := &tg.MessagesEditForumTopicRequest{Peer: peer, TopicID: topicID}
		if err := apply(request); err != nil {
			return err
		}
		if _, err := c.api.MessagesEditForumTopic(ctx, request); err != nil {
			return fmt.Errorf("edit forum topic: %w", err)
		}
		return nil
	})
}

// DeleteForumTopic deletes a topic with all its messages.
func (c *Client) DeleteForumTopic(ctx context.Context, params botapi.ForumTopicParams) error {
	const method = "deleteForumTopic"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete forum topic validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveForum(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		for {
			affected, err := c.api.MessagesDeleteTopicHistory(ctx, &tg.MessagesDeleteTopicHistoryRequest{
				Peer:     peer,
				TopMsgID: params.MessageThreadID,
			})
			if err != nil {
				return fmt.Errorf("delete topic history: %w", err)
			}
			if affected.Offset <= 0 {
				return nil
			}
		}
	})
}

// UnpinAllForumTopicMessages clears the pinned messages of a topic.
func (c *Client) UnpinAllForumTopicMessages(ctx context.Context, params botapi.ForumTopicParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("unpin all forum topic messages validate: %w", err)
	}

	return c.unpinTopic(ctx, "unpinAllForumTopicMessages", params.ChatID, params.MessageThreadID)
}

func (c *Client) unpinTopic(ctx context.Context, method string, chatID botapi.ChatID, topicID int) error {
	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveForum(ctx, method, chatID)
		if err != nil {
			return err
		}
		request := &tg.MessagesUnpinAllMessagesRequest{Peer: peer}
		request.SetTopMsgID(topicID)

		return c.unpinAll(ctx, request)
	})
}

// EditGeneralForumTopic renames the General topic.
func (c *Client) EditGeneralForumTopic(ctx context.Context, params botapi.EditGeneralForumTopicParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("edit general forum topic validate: %w", err)
	}

	return c.editTopic(ctx, "editGeneralForumTopic", params.ChatID, generalTopicID,
		func(request *tg.MessagesEditForumTopicRequest) error {
			request.SetTitle(params.Name)
			return nil
		})
}

// CloseGeneralForumTopic closes the General topic.
func (c *Client) CloseGeneralForumTopic(ctx context.Context, params botapi.ChatParams) error {
	return c.editGeneralTopic(ctx, "closeGeneralForumTopic", params, func(request *tg.MessagesEditForumTopicRequest) {
		request.SetClosed(true)
	})
}

// ReopenGeneralForumTopic reopens the General topic.
func (c *Client) ReopenGeneralForumTopic(ctx context.Context, params botapi.ChatParams) error {
	return c.editGeneralTopic(ctx, "reopenGeneralForumTopic", params, func(request *tg.MessagesEditForumTopicRequest) {
		request.SetClosed(false)
	})
}

// HideGeneralForumTopic hides the General topic. It is closed as well.
func (c *Client) HideGeneralForumTopic(ctx context.Context, params botapi.ChatParams) error {
	return c.editGeneralTopic(ctx, "hideGeneralForumTopic", params, func(request *tg.MessagesEditForumTopicRequest) {
		request.SetHidden(true)
	})
}

// UnhideGeneralForumTopic shows the General topic again.
func (c *Client) UnhideGeneralForumTopic(ctx context.Context, params botapi.ChatParams) error {
	return c.editGeneralTopic(ctx, "unhideGeneralForumTopic", params, func(request *tg.MessagesEditForumTopicRequest) {
		request.SetHidden(false)
	})
}

func (c *Client) editGeneralTopic(
	ctx context.Context,
	method string,
	params botapi.ChatParams,
	apply func(request *tg.MessagesEditForumTopicRequest),
) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%s validate: %w", method, err)
	}

	return c.editTopic(ctx, method, params.ChatID, generalTopicID, func(request *tg.MessagesEditForumTopicRequest) error {
		apply(request)
		return nil
	})
}

// UnpinAllGeneralForumTopicMessages clears the pinned messages of the
// General topic.
func (c *Client) UnpinAllGeneralForumTopicMessages(ctx context.Context, params botapi.ChatParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("unpin all general forum topic messages validate: %w", err)
	}

	return c.unpinTopic(ctx, "unpinAllGeneralForumTopicMessages", params.ChatID, generalTopicID)
}
