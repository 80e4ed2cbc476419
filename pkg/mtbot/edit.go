package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// messageEdit is the content of one edit, shared by chat and inline
// messages.
type messageEdit struct {
	text        *mapper.FormattedText
	media       tg.InputMediaClass
	markup      tg.ReplyMarkupClass
	noWebpage   bool
	invertMedia bool
}

func (e messageEdit) chat(peer tg.InputPeerClass, id int) *tg.MessagesEditMessageRequest {
	request := &tg.MessagesEditMessageRequest{
		NoWebpage:   e.noWebpage,
		InvertMedia: e.invertMedia,
		Peer:        peer,
		ID:          id,
	}
	if e.text != nil {
		request.SetMessage(e.text.Text)
		request.SetEntities(e.text.Entities)
	}
	if e.media != nil {
		request.SetMedia(e.media)
	}
	if e.markup != nil {
		request.SetReplyMarkup(e.markup)
	}

	return request
}

func (e messageEdit) inline(id tg.InputBotInlineMessageIDClass) *tg.MessagesEditInlineBotMessageRequest {
	request := &tg.MessagesEditInlineBotMessageRequest{
		NoWebpage:   e.noWebpage,
		InvertMedia: e.invertMedia,
		ID:          id,
	}
	if e.text != nil {
		request.SetMessage(e.text.Text)
		request.SetEntities(e.text.Entities)
	}
	if e.media != nil {
		request.SetMedia(e.media)
	}
	if e.markup != nil {
		request.SetReplyMarkup(e.markup)
	}

	return request
}

type editBuilder func(ctx context.Context, method string) (messageEdit, error)

// editChatMessage applies an edit to a message addressed by chat and id.
func (c *Client) editChatMessage(
	ctx context.Context,
	method string,
	target botapi.EditTarget,
	build editBuilder,
) (*botapi.Message, error) {
	if target.IsInline() {
		return nil, fmt.Errorf("%s: %w: inline messages are edited with the inline variant", method, botapi.ErrInvalidParams)
	}

	var result *botapi.Message
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, target.ChatID)
		if err != nil {
			return err
		}
		edit, err := build(ctx, method)
		if err != nil {
			return err
		}
		updates, err := c.api.MessagesEditMessage(ctx, edit.chat(peer.InputPeer(), target.MessageID))
		if err != nil {
			return fmt.Errorf("edit message: %w", err)
		}
		result, err = c.editedMessage(ctx, method, updates)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// editInlineMessage applies an edit to an inline message on the data center
// that stores it.
func (c *Client) editInlineMessage(ctx context.Context, method string, target botapi.EditTarget, build editBuilder) error {
	id, err := inlineTarget(method, target)
	if err != nil {
		return err
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		edit, err := build(ctx, method)
		if err != nil {
			return err
		}
		api, err := c.dcAPI(ctx, codec.InlineMessageDC(id))
		if err != nil {
			return err
		}
		if _, err := api.MessagesEditInlineBotMessage(ctx, edit.inline(id)); err != nil {
			return fmt.Errorf("edit inline bot message: %w", err)
		}
		return nil
	})
}

// dcAPI returns a client bound to data center dc. Without a dialer every
// call goes through the primary connection.
func (c *Client) dcAPI(ctx context.Context, dc int) (*tg.Client, error) {
	if dc == 0 || c.cfg.dialDC == nil {
		return c.api, nil
	}
	invoker, err := c.cfg.dialDC(ctx, dc)
	if err != nil {
		return nil, fmt.Errorf("dial dc %d: %w", dc, err)
	}

	return tg.NewClient(invoker), nil
}

func (c *Client) editMarkup(markup *botapi.InlineKeyboardMarkup) (tg.ReplyMarkupClass, error) {
	if markup == nil {
		return nil, nil
	}
	native, err := mapper.InputInlineKeyboard(markup, c.bot())
	if err != nil {
		return nil, fmt.Errorf("encode reply markup: %w", err)
	}

	return native, nil
}

func (c *Client) textEdit(params botapi.EditMessageTextParams) editBuilder {
	return func(ctx context.Context, method string) (messageEdit, error) {
		text, err := c.formatText(ctx, method, params.Text, params.ParseMode, params.Entities)
		if err != nil {
			return messageEdit{}, err
		}
		markup, err := c.editMarkup(params.ReplyMarkup)
		if err != nil {
			return messageEdit{}, err
		}
		edit := messageEdit{text: &text, markup: markup}
		if preview := params.LinkPreviewOptions; preview != nil {
			edit.noWebpage = preview.IsDisabled
			edit.invertMedia = preview.ShowAboveText
			if preview.URL != "" && !preview.IsDisabled {
				edit.media = &tg.InputMediaWebPage{
					URL:             preview.URL,
					ForceLargeMedia: preview.PreferLargeMedia,
					ForceSmallMedia: preview.PreferSmallMedia,
					Optional:        true,
				}
			}
		}
		return edit, nil
	}
}

// EditMessageText replaces the text of a message.
func (c *Client) EditMessageText(ctx context.Context, params botapi.EditMessageTextParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("edit message text validate: %w", err)
	}

	return c.editChatMessage(ctx, "editMessageText", params.EditTarget, c.textEdit(params))
}

// EditInlineMessageText replaces the text of an inline message.
func (c *Client) EditInlineMessageText(ctx context.Context, params botapi.EditMessageTextParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("edit inline message text validate: %w", err)
	}

	return c.editInlineMessage(ctx, "editMessageText", params.EditTarget, c.textEdit(params))
}

func (c *Client) captionEdit(params botapi.EditMessageCaptionParams) editBuilder {
	return func(ctx context.Context, method string) (messageEdit, error) {
		caption, err := c.formatCaption(ctx, method, params.Caption)
		if err != nil {
			return messageEdit{}, err
		}
		markup, err := c.editMarkup(params.ReplyMarkup)
		if err != nil {
			return messageEdit{}, err
		}
		return messageEdit{text: &caption, markup: markup}, nil
	}
}

// EditMessageCaption replaces the caption of a media message. An empty
// caption removes it.
func (c *Client) EditMessageCaption(ctx context.Context, params botapi.EditMessageCaptionParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("edit message caption validate: %w", err)
	}

	return c.editChatMessage(ctx, "editMessageCaption", params.EditTarget, c.captionEdit(params))
}

// EditInlineMessageCaption replaces the caption of an inline media message.
func (c *Client) EditInlineMessageCaption(ctx context.Context, params botapi.EditMessageCaptionParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("edit inline message caption validate: %w", err)
	}

	return c.editInlineMessage(ctx, "editMessageCaption", params.EditTarget, c.captionEdit(params))
}

func (c *Client) mediaEdit(params botapi.EditMessageMediaParams) editBuilder {
	return func(ctx context.Context, method string) (messageEdit, error) {
		caption, err := c.formatText(ctx, method, params.Media.Caption, params.Media.ParseMode, params.Media.CaptionEntities)
		if err != nil {
			return messageEdit{}, err
		}
		media, err := c.inputMedia(ctx, params.Media.Media, params.Media.Thumbnail, inputMediaAttributes(params.Media))
		if err != nil {
			return messageEdit{}, err
		}
		markup, err := c.editMarkup(params.ReplyMarkup)
		if err != nil {
			return messageEdit{}, err
		}
		return messageEdit{text: &caption, media: media, markup: markup}, nil
	}
}

// EditMessageMedia replaces the media of a message.
func (c *Client) EditMessageMedia(ctx context.Context, params botapi.EditMessageMediaParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("edit message media validate: %w", err)
	}

	return c.editChatMessage(ctx, "editMessageMedia", params.EditTarget, c.mediaEdit(params))
}

// EditInlineMessageMedia replaces the media of an inline message. Only
// stored files and URLs are accepted.
func (c *Client) EditInlineMessageMedia(ctx context.Context, params botapi.EditMessageMediaParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("edit inline message media validate: %w", err)
	}

	return c.editInlineMessage(ctx, "editMessageMedia", params.EditTarget, c.mediaEdit(params))
}

func (c *Client) liveLocationEdit(params botapi.EditMessageLiveLocationParams) editBuilder {
	return func(context.Context, string) (messageEdit, error) {
		markup, err := c.editMarkup(params.ReplyMarkup)
		if err != nil {
			return messageEdit{}, err
		}
		media := mapper.InputLiveLocationEdit(params.Latitude, params.Longitude, params.HorizontalAccuracy,
			params.Heading, params.ProximityAlertRadius)
		return messageEdit{media: media, markup: markup}, nil
	}
}

// EditMessageLiveLocation moves a live location.
func (c *Client) EditMessageLiveLocation(
	ctx context.Context,
	params botapi.EditMessageLiveLocationParams,
) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("edit message live location validate: %w", err)
	}

	return c.editChatMessage(ctx, "editMessageLiveLocation", params.EditTarget, c.liveLocationEdit(params))
}

// EditInlineMessageLiveLocation moves an inline live location.
func (c *Client) EditInlineMessageLiveLocation(ctx context.Context, params botapi.EditMessageLiveLocationParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("edit inline message live location validate: %w", err)
	}

	return c.editInlineMessage(ctx, "editMessageLiveLocation", params.EditTarget, c.liveLocationEdit(params))
}

func (c *Client) stopLiveLocation(markup *botapi.InlineKeyboardMarkup) editBuilder {
	return func(context.Context, string) (messageEdit, error) {
		native, err := c.editMarkup(markup)
		if err != nil {
			return messageEdit{}, err
		}
		return messageEdit{media: mapper.StoppedLiveLocation(), markup: native}, nil
	}
}

// StopMessageLiveLocation stops updating a live location.
func (c *Client) StopMessageLiveLocation(
	ctx context.Context,
	params botapi.StopMessageLiveLocationParams,
) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("stop message live location validate: %w", err)
	}

	return c.editChatMessage(ctx, "stopMessageLiveLocation", params.EditTarget, c.stopLiveLocation(params.ReplyMarkup))
}

// StopInlineMessageLiveLocation stops updating an inline live location.
func (c *Client) StopInlineMessageLiveLocation(ctx context.Context, params botapi.StopMessageLiveLocationParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("stop inline message live location validate: %w", err)
	}

	return c.editInlineMessage(ctx, "stopMessageLiveLocation", params.EditTarget, c.stopLiveLocation(params.ReplyMarkup))
}

func (c *Client) markupEdit(markup *botapi.InlineKeyboardMarkup) editBuilder {
	return func(context.Context, string) (messageEdit, error) {
		native, err := c.editMarkup(markup)
		if err != nil {
			return messageEdit{}, err
		}
		return messageEdit{markup: native}, nil
	}
}

// EditMessageReplyMarkup replaces the inline keyboard of a message. A nil
// markup removes it.
func (c *Client) EditMessageReplyMarkup(
	ctx context.Context,
	params botapi.EditMessageReplyMarkupParams,
) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("edit message reply markup validate: %w", err)
	}

	return c.editChatMessage(ctx, "editMessageReplyMarkup", params.EditTarget, c.markupEdit(params.ReplyMarkup))
}

// EditInlineMessageReplyMarkup replaces the inline keyboard of an inline
// message.
func (c *Client) EditInlineMessageReplyMarkup(ctx context.Context, params botapi.EditMessageReplyMarkupParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("edit inline message reply markup validate: %w", err)
	}

	return c.editInlineMessage(ctx, "editMessageReplyMarkup", params.EditTarget, c.markupEdit(params.ReplyMarkup))
}

// StopPoll closes a poll sent by the bot and returns its final state.
func (c *Client) StopPoll(ctx context.Context, params botapi.StopPollParams) (botapi.Poll, error) {
	const method = "stopPoll"
	if err := params.Validate(); err != nil {
		return botapi.Poll{}, fmt.Errorf("stop poll validate: %w", err)
	}

	var result botapi.Poll
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		source, err := c.fetchNativeMessages(ctx, peer, []int{params.MessageID})
		if err != nil {
			return err
		}
		poll, ok := nativePoll(source.messages)
		if !ok {
			return botapi.BadRequest(method, "message with poll to stop not found")
		}
		poll.Closed = true

		markup, err := c.editMarkup(params.ReplyMarkup)
		if err != nil {
			return err
		}
		edit := messageEdit{media: &tg.InputMediaPoll{Poll: poll}, markup: markup}
		updates, err := c.api.MessagesEditMessage(ctx, edit.chat(peer.InputPeer(), params.MessageID))
		if err != nil {
			return fmt.Errorf("edit message: %w", err)
		}
		message, err := c.editedMessage(ctx, method, updates)
		if err != nil {
			return err
		}
		if message.Poll == nil {
			return fmt.Errorf("%s: %w", method, errNoMessage)
		}
		result = *message.Poll
		return nil
	})
	if err != nil {
		return botapi.Poll{}, err
	}

	return result, nil
}

func nativePoll(messages []tg.MessageClass) (tg.Poll, bool) {
	for _, native := range messages {
		message, ok := native.(*tg.Message)
		if !ok {
			continue
		}
		if media, ok := message.Media.(*tg.MessageMediaPoll); ok {
			return media.Poll, true
		}
	}

	return tg.Poll{}, false
}

// DeleteMessage deletes one message for everyone.
func (c *Client) DeleteMessage(ctx context.Context, params botapi.DeleteMessageParams) error {
	const method = "deleteMessage"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete message validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		deleted, err := c.deleteMessages(ctx, method, params.ChatID, []int{params.MessageID})
		if err != nil {
			return err
		}
		if deleted == 0 {
			return botapi.BadRequest(method, "message to delete not found")
		}
		return nil
	})
}

// DeleteMessages deletes messages for everyone. Messages that cannot be
// found are skipped.
func (c *Client) DeleteMessages(ctx context.Context, params botapi.DeleteMessagesParams) error {
	const method = "deleteMessages"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete messages validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		_, err := c.deleteMessages(ctx, method, params.ChatID, params.MessageIDs)
		return err
	})
}

// deleteMessages returns the number of deleted messages.
func (c *Client) deleteMessages(ctx context.Context, method string, chatID botapi.ChatID, ids []int) (int, error) {
	peer, err := c.resolvePeer(ctx, method, chatID)
	if err != nil {
		return 0, err
	}

	var affected *tg.MessagesAffectedMessages
	if channel, ok := peer.InputChannel(); ok {
		affected, err = c.api.ChannelsDeleteMessages(ctx, &tg.ChannelsDeleteMessagesRequest{Channel: channel, ID: ids})
	} else {
		affected, err = c.api.MessagesDeleteMessages(ctx, &tg.MessagesDeleteMessagesRequest{Revoke: true, ID: ids})
	}
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}

	return affected.PtsCount, nil
}
