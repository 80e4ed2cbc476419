package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

const defaultDiceEmoji = "🎲"

// SendMessage sends a text message.
func (c *Client) SendMessage(ctx context.Context, params botapi.SendMessageParams) (*botapi.Message, error) {
	const method = "sendMessage"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send message validate: %w", err)
	}

	var result *botapi.Message
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		out, err := c.prepare(ctx, method, params.ChatID, params.SendOptions)
		if err != nil {
			return err
		}
		text, err := c.formatText(ctx, method, params.Text, params.ParseMode, params.Entities)
		if err != nil {
			return err
		}

		preview := params.LinkPreviewOptions
		var updates tg.UpdatesClass
		if preview != nil && preview.URL != "" && !preview.IsDisabled {
			request := out.sendMedia(&tg.InputMediaWebPage{
				URL:             preview.URL,
				ForceLargeMedia: preview.PreferLargeMedia,
				ForceSmallMedia: preview.PreferSmallMedia,
				Optional:        true,
			}, text)
			request.InvertMedia = preview.ShowAboveText
			updates, err = c.api.MessagesSendMedia(ctx, request)
		} else {
			updates, err = c.api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
				NoWebpage:   preview != nil && preview.IsDisabled,
				Silent:      out.silent,
				Noforwards:  out.noforward,
				InvertMedia: preview != nil && preview.ShowAboveText,
				Peer:        out.peer.InputPeer(),
				ReplyTo:     out.replyTo,
				Message:     text.Text,
				RandomID:    out.randomID,
				ReplyMarkup: out.markup,
				Entities:    text.Entities,
			})
		}
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}

		result, err = c.delivered(ctx, method, out, text, updates)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

type forwardRequest struct {
	to         botapi.ChatID
	from       botapi.ChatID
	ids        []int
	threadID   int
	silent     bool
	protect    bool
	dropAuthor bool
	dropCaps   bool
}

// forward runs messages.forwardMessages and returns the created messages in
// the order of ids.
func (c *Client) forward(ctx context.Context, method string, request forwardRequest) ([]*botapi.Message, error) {
	to, err := c.resolvePeer(ctx, method, request.to)
	if err != nil {
		return nil, err
	}
	from, err := c.resolvePeer(ctx, method, request.from)
	if err != nil {
		return nil, err
	}
	randomIDs, err := c.randomIDs(len(request.ids))
	if err != nil {
		return nil, err
	}

	native := &tg.MessagesForwardMessagesRequest{
		Silent:            request.silent,
		DropAuthor:        request.dropAuthor,
		DropMediaCaptions: request.dropCaps,
		Noforwards:        request.protect,
		FromPeer:          from.InputPeer(),
		ID:                request.ids,
		RandomID:          randomIDs,
		ToPeer:            to.InputPeer(),
	}
	if request.threadID != 0 {
		native.SetTopMsgID(request.threadID)
	}

	updates, err := c.api.MessagesForwardMessages(ctx, native)
	if err != nil {
		return nil, fmt.Errorf("forward messages: %w", err)
	}

	return c.sentMessages(ctx, method, updates, randomIDs)
}

// ForwardMessage forwards one message.
func (c *Client) ForwardMessage(ctx context.Context, params botapi.ForwardMessageParams) (*botapi.Message, error) {
	const method = "forwardMessage"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("forward message validate: %w", err)
	}

	var result *botapi.Message
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		messages, err := c.forward(ctx, method, forwardRequest{
			to:       params.ChatID,
			from:     params.FromChatID,
			ids:      []int{params.MessageID},
			threadID: params.MessageThreadID,
			silent:   params.DisableNotification,
			protect:  params.ProtectContent,
		})
		if err != nil {
			return err
		}
		result = messages[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ForwardMessages forwards several messages keeping their order. Messages
// that cannot be found are skipped.
func (c *Client) ForwardMessages(ctx context.Context, params botapi.ForwardMessagesParams) ([]botapi.MessageID, error) {
	const method = "forwardMessages"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("forward messages validate: %w", err)
	}

	var result []botapi.MessageID
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		messages, err := c.forward(ctx, method, forwardRequest{
			to:       params.ChatID,
			from:     params.FromChatID,
			ids:      params.MessageIDs,
			threadID: params.MessageThreadID,
			silent:   params.DisableNotification,
			protect:  params.ProtectContent,
		})
		if err != nil {
			return err
		}
		result = messageIDs(messages)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CopyMessage sends a copy of a message without the forward header.
//
// Text and resendable media are sent anew so caption and markup can be
// replaced; other content falls back to an anonymous forward.
func (c *Client) CopyMessage(ctx context.Context, params botapi.CopyMessageParams) (botapi.MessageID, error) {
	const method = "copyMessage"
	if err := params.Validate(); err != nil {
		return botapi.MessageID{}, fmt.Errorf("copy message validate: %w", err)
	}

	var result botapi.MessageID
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		from, err := c.resolvePeer(ctx, method, params.FromChatID)
		if err != nil {
			return err
		}
		fetched, err := c.fetchNativeMessages(ctx, from, []int{params.MessageID})
		if err != nil {
			return err
		}
		var source *tg.Message
		for _, native := range fetched.messages {
			if typed, ok := native.(*tg.Message); ok && typed.ID == params.MessageID {
				source = typed
			}
		}
		if source == nil {
			return messageNotFound(method)
		}

		out, err := c.prepare(ctx, method, params.ChatID, params.SendOptions)
		if err != nil {
			return err
		}
		if out.markup == nil {
			out.markup = copiedMarkup(source.ReplyMarkup)
		}

		text := mapper.FormattedText{Text: source.Message, Entities: source.Entities}
		if params.Caption != nil {
			text, err = c.formatText(ctx, method, *params.Caption, params.ParseMode, params.CaptionEntities)
			if err != nil {
				return err
			}
		}

		var updates tg.UpdatesClass
		switch media := source.Media.(type) {
		case nil, *tg.MessageMediaWebPage, *tg.MessageMediaEmpty:
			if params.Caption != nil {
				text = mapper.FormattedText{Text: source.Message, Entities: source.Entities}
			}
			updates, err = c.api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
				NoWebpage:   media == nil,
				Silent:      out.silent,
				Noforwards:  out.noforward,
				Peer:        out.peer.InputPeer(),
				ReplyTo:     out.replyTo,
				Message:     text.Text,
				RandomID:    out.randomID,
				ReplyMarkup: out.markup,
				Entities:    text.Entities,
			})
		default:
			resent, ok := resendableMedia(media)
			if !ok {
				messages, err := c.forward(ctx, method, forwardRequest{
					to:         params.ChatID,
					from:       params.FromChatID,
					ids:        []int{params.MessageID},
					threadID:   params.MessageThreadID,
					silent:     params.DisableNotification,
					protect:    params.ProtectContent,
					dropAuthor: true,
				})
				if err != nil {
					return err
				}
				result = botapi.MessageID{MessageID: messages[0].MessageID}
				return nil
			}
			updates, err = c.api.MessagesSendMedia(ctx, out.sendMedia(resent, text))
		}
		if err != nil {
			return fmt.Errorf("copy message: %w", err)
		}

		message, err := c.delivered(ctx, method, out, text, updates)
		if err != nil {
			return err
		}
		result = botapi.MessageID{MessageID: message.MessageID}
		return nil
	})
	if err != nil {
		return botapi.MessageID{}, err
	}

	return result, nil
}

// copiedMarkup keeps inline keyboards of the source message. Other markup
// kinds belong to the original sender's chat.
func copiedMarkup(markup tg.ReplyMarkupClass) tg.ReplyMarkupClass {
	if inline, ok := markup.(*tg.ReplyInlineMarkup); ok {
		return inline
	}

	return nil
}

// CopyMessages copies several messages as an anonymous forward.
func (c *Client) CopyMessages(ctx context.Context, params botapi.CopyMessagesParams) ([]botapi.MessageID, error) {
	const method = "copyMessages"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("copy messages validate: %w", err)
	}

	var result []botapi.MessageID
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		messages, err := c.forward(ctx, method, forwardRequest{
			to:         params.ChatID,
			from:       params.FromChatID,
			ids:        params.MessageIDs,
			threadID:   params.MessageThreadID,
			silent:     params.DisableNotification,
			protect:    params.ProtectContent,
			dropAuthor: true,
			dropCaps:   params.RemoveCaption,
		})
		if err != nil {
			return err
		}
		result = messageIDs(messages)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func messageIDs(messages []*botapi.Message) []botapi.MessageID {
	ids := make([]botapi.MessageID, 0, len(messages))
	for _, message := range messages {
		ids = append(ids, botapi.MessageID{MessageID: message.MessageID})
	}

	return ids
}

// SendPhoto sends a photo.
func (c *Client) SendPhoto(ctx context.Context, params botapi.SendPhotoParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send photo validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendPhoto", params.ChatID, params.Caption, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.Photo, nil, mapper.MediaAttributes{
				Kind:    codec.FileKindPhoto,
				Spoiler: params.HasSpoiler,
			})
		})
}

// SendAudio sends a music file.
func (c *Client) SendAudio(ctx context.Context, params botapi.SendAudioParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send audio validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendAudio", params.ChatID, params.Caption, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.Audio, params.Thumbnail, mapper.MediaAttributes{
				Kind:      codec.FileKindAudio,
				Duration:  params.Duration,
				Performer: params.Performer,
				Title:     params.Title,
			})
		})
}

// SendDocument sends a general file.
func (c *Client) SendDocument(ctx context.Context, params botapi.SendDocumentParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send document validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendDocument", params.ChatID, params.Caption, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.Document, params.Thumbnail, mapper.MediaAttributes{
				Kind:      codec.FileKindDocument,
				ForceFile: params.DisableContentTypeDetection,
			})
		})
}

// SendVideo sends a video.
func (c *Client) SendVideo(ctx context.Context, params botapi.SendVideoParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send video validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendVideo", params.ChatID, params.Caption, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.Video, params.Thumbnail, mapper.MediaAttributes{
				Kind:              codec.FileKindVideo,
				Duration:          params.Duration,
				Width:             params.Width,
				Height:            params.Height,
				SupportsStreaming: params.SupportsStreaming,
				Spoiler:           params.HasSpoiler,
			})
		})
}

// SendAnimation sends a silent looping video.
func (c *Client) SendAnimation(ctx context.Context, params botapi.SendAnimationParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send animation validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendAnimation", params.ChatID, params.Caption, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.Animation, params.Thumbnail, mapper.MediaAttributes{
				Kind:     codec.FileKindAnimation,
				Duration: params.Duration,
				Width:    params.Width,
				Height:   params.Height,
				Spoiler:  params.HasSpoiler,
			})
		})
}

// SendVoice sends a voice note.
func (c *Client) SendVoice(ctx context.Context, params botapi.SendVoiceParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send voice validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendVoice", params.ChatID, params.Caption, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.Voice, nil, mapper.MediaAttributes{
				Kind:     codec.FileKindVoice,
				Duration: params.Duration,
			})
		})
}

// SendVideoNote sends a round video message.
func (c *Client) SendVideoNote(ctx context.Context, params botapi.SendVideoNoteParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send video note validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendVideoNote", params.ChatID, botapi.Caption{}, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.VideoNote, params.Thumbnail, mapper.MediaAttributes{
				Kind:     codec.FileKindVideoNote,
				Duration: params.Duration,
				Width:    params.Length,
				Height:   params.Length,
			})
		})
}

// SendMediaGroup sends an album. Captions are per item.
func (c *Client) SendMediaGroup(ctx context.Context, params botapi.SendMediaGroupParams) ([]*botapi.Message, error) {
	const method = "sendMediaGroup"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send media group validate: %w", err)
	}

	var result []*botapi.Message
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		out, err := c.prepare(ctx, method, params.ChatID, params.SendOptions)
		if err != nil {
			return err
		}
		randomIDs, err := c.randomIDs(len(params.Media))
		if err != nil {
			return err
		}

		items := make([]tg.InputSingleMedia, 0, len(params.Media))
		for index, item := range params.Media {
			media, err := c.inputMedia(ctx, item.Media, item.Thumbnail, inputMediaAttributes(item))
			if err != nil {
				return fmt.Errorf("media[%d]: %w", index, err)
			}
			media, err = c.albumMedia(ctx, out.peer, media)
			if err != nil {
				return fmt.Errorf("media[%d]: %w", index, err)
			}
			caption, err := c.formatText(ctx, method, item.Caption, item.ParseMode, item.CaptionEntities)
			if err != nil {
				return err
			}
			single := tg.InputSingleMedia{Media: media, RandomID: randomIDs[index], Message: caption.Text}
			if len(caption.Entities) > 0 {
				single.SetEntities(caption.Entities)
			}
			items = append(items, single)
		}

		updates, err := c.api.MessagesSendMultiMedia(ctx, &tg.MessagesSendMultiMediaRequest{
			Silent:     out.silent,
			Noforwards: out.noforward,
			Peer:       out.peer.InputPeer(),
			ReplyTo:    out.replyTo,
			MultiMedia: items,
		})
		if err != nil {
			return fmt.Errorf("send multi media: %w", err)
		}
		result, err = c.sentMessages(ctx, method, updates, randomIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SendLocation sends a static or live location.
func (c *Client) SendLocation(ctx context.Context, params botapi.SendLocationParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send location validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendLocation", params.ChatID, botapi.Caption{}, params.SendOptions,
		func(context.Context) (tg.InputMediaClass, error) {
			return mapper.InputLocation(params), nil
		})
}

// SendVenue sends a venue.
func (c *Client) SendVenue(ctx context.Context, params botapi.SendVenueParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send venue validate: %w", err)
	}

	venue := botapi.Venue{
		Location:        botapi.Location{Latitude: params.Latitude, Longitude: params.Longitude},
		Title:           params.Title,
		Address:         params.Address,
		FoursquareID:    params.FoursquareID,
		FoursquareType:  params.FoursquareType,
		GooglePlaceID:   params.GooglePlaceID,
		GooglePlaceType: params.GooglePlaceType,
	}

	return c.sendMediaMessage(ctx, "sendVenue", params.ChatID, botapi.Caption{}, params.SendOptions,
		func(context.Context) (tg.InputMediaClass, error) {
			return mapper.InputVenue(venue), nil
		})
}

// SendContact sends a phone contact.
func (c *Client) SendContact(ctx context.Context, params botapi.SendContactParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send contact validate: %w", err)
	}

	contact := botapi.Contact{
		PhoneNumber: params.PhoneNumber,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		VCard:       params.VCard,
	}

	return c.sendMediaMessage(ctx, "sendContact", params.ChatID, botapi.Caption{}, params.SendOptions,
		func(context.Context) (tg.InputMediaClass, error) {
			return mapper.InputContact(contact), nil
		})
}

// SendPoll sends a regular poll or a quiz.
func (c *Client) SendPoll(ctx context.Context, params botapi.SendPollParams) (*botapi.Message, error) {
	const method = "sendPoll"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send poll validate: %w", err)
	}

	return c.sendMediaMessage(ctx, method, params.ChatID, botapi.Caption{}, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			var (
				text mapper.PollText
				err  error
			)
			text.Question, err = c.formatText(ctx, method, params.Question, "", params.QuestionEntities)
			if err != nil {
				return nil, err
			}
			for _, option := range params.Options {
				formatted, err := c.formatText(ctx, method, option.Text, "", option.TextEntities)
				if err != nil {
					return nil, err
				}
				text.Options = append(text.Options, formatted)
			}
			if params.Explanation != "" {
				text.Explanation, err = c.formatText(ctx, method, params.Explanation,
					params.ExplanationParseMode, params.ExplanationEntities)
				if err != nil {
					return nil, err
				}
			}
			return mapper.InputPoll(params, text), nil
		})
}

// SendDice sends an animated emoji with a random value.
func (c *Client) SendDice(ctx context.Context, params botapi.SendDiceParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send dice validate: %w", err)
	}

	emoji := params.Emoji
	if emoji == "" {
		emoji = defaultDiceEmoji
	}

	return c.sendMediaMessage(ctx, "sendDice", params.ChatID, botapi.Caption{}, params.SendOptions,
		func(context.Context) (tg.InputMediaClass, error) {
			return &tg.InputMediaDice{Emoticon: emoji}, nil
		})
}

// SendSticker sends a static, animated or video sticker.
func (c *Client) SendSticker(ctx context.Context, params botapi.SendStickerParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send sticker validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendSticker", params.ChatID, botapi.Caption{}, params.SendOptions,
		func(ctx context.Context) (tg.InputMediaClass, error) {
			return c.inputMedia(ctx, params.Sticker, nil, mapper.MediaAttributes{
				Kind:  codec.FileKindSticker,
				Emoji: params.Emoji,
			})
		})
}

// SendGame sends a game registered for the bot.
func (c *Client) SendGame(ctx context.Context, params botapi.SendGameParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send game validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendGame", botapi.ID(params.ChatID), botapi.Caption{}, params.SendOptions,
		func(context.Context) (tg.InputMediaClass, error) {
			return mapper.InputGame(c.bot(), params.GameShortName), nil
		})
}

// SendInvoice sends an invoice.
func (c *Client) SendInvoice(ctx context.Context, params botapi.SendInvoiceParams) (*botapi.Message, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("send invoice validate: %w", err)
	}

	return c.sendMediaMessage(ctx, "sendInvoice", params.ChatID, botapi.Caption{}, params.SendOptions,
		func(context.Context) (tg.InputMediaClass, error) {
			return mapper.InputInvoice(params.InvoiceParams), nil
		})
}

// SendChatAction shows a status such as typing in the chat.
func (c *Client) SendChatAction(ctx context.Context, params botapi.SendChatActionParams) error {
	const method = "sendChatAction"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("send chat action validate: %w", err)
	}
	action, err := mapper.ChatAction(params.Action)
	if err != nil {
		return fmt.Errorf("send chat action: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		request := &tg.MessagesSetTypingRequest{Peer: peer, Action: action}
		if params.MessageThreadID != 0 {
			request.SetTopMsgID(params.MessageThreadID)
		}
		if _, err := c.api.MessagesSetTyping(ctx, request); err != nil {
			return fmt.Errorf("set typing: %w", err)
		}
		return nil
	})
}

// SetMessageReaction replaces the reactions of the bot on a message. An
// empty list removes them.
func (c *Client) SetMessageReaction(ctx context.Context, params botapi.SetMessageReactionParams) error {
	const method = "setMessageReaction"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set message reaction validate: %w", err)
	}
	reactions, err := mapper.InputReactions(params.Reaction)
	if err != nil {
		return fmt.Errorf("set message reaction: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		request := &tg.MessagesSendReactionRequest{
			Big:   params.IsBig,
			Peer:  peer,
			MsgID: params.MessageID,
		}
		request.SetReaction(reactions)
		if _, err := c.api.MessagesSendReaction(ctx, request); err != nil {
			return fmt.Errorf("send reaction: %w", err)
		}
		return nil
	})
}
