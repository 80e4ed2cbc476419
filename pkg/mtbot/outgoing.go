package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// outgoing is a send request with its target and delivery options resolved.
type outgoing struct {
	peer      codec.Peer
	replyTo   tg.InputReplyToClass
	markup    tg.ReplyMarkupClass
	randomID  int64
	silent    bool
	noforward bool
}

func (c *Client) prepare(
	ctx context.Context,
	method string,
	chatID botapi.ChatID,
	options botapi.SendOptions,
) (outgoing, error) {
	peer, err := c.resolvePeer(ctx, method, chatID)
	if err != nil {
		return outgoing{}, err
	}
	replyTo, err := c.replyTo(ctx, method, options)
	if err != nil {
		return outgoing{}, err
	}
	markup, err := mapper.ReplyMarkup(options.ReplyMarkup, c.bot())
	if err != nil {
		return outgoing{}, fmt.Errorf("encode reply markup: %w", err)
	}
	randomID, err := c.randomID()
	if err != nil {
		return outgoing{}, err
	}

	return outgoing{
		peer:      peer,
		replyTo:   replyTo,
		markup:    markup,
		randomID:  randomID,
		silent:    options.DisableNotification,
		noforward: options.ProtectContent,
	}, nil
}

// replyTo builds the reply header. A thread id alone addresses the topic
// root message.
func (c *Client) replyTo(ctx context.Context, method string, options botapi.SendOptions) (tg.InputReplyToClass, error) {
	reply := options.ReplyParameters
	if reply == nil {
		if options.MessageThreadID == 0 {
			return nil, nil
		}
		return &tg.InputReplyToMessage{ReplyToMsgID: options.MessageThreadID}, nil
	}

	native := &tg.InputReplyToMessage{ReplyToMsgID: reply.MessageID}
	if options.MessageThreadID != 0 {
		native.SetTopMsgID(options.MessageThreadID)
	}
	if reply.ChatID != nil && !reply.ChatID.IsZero() {
		peer, err := c.resolveInputPeer(ctx, method, *reply.ChatID)
		if err != nil {
			return nil, err
		}
		native.SetReplyToPeerID(peer)
	}
	if reply.Quote != "" {
		quote, err := c.formatText(ctx, method, reply.Quote, "", reply.QuoteEntities)
		if err != nil {
			return nil, err
		}
		native.SetQuoteText(quote.Text)
		if len(quote.Entities) > 0 {
			native.SetQuoteEntities(quote.Entities)
		}
		native.SetQuoteOffset(reply.QuotePosition)
	}

	return native, nil
}

func (o outgoing) sendMedia(media tg.InputMediaClass, caption mapper.FormattedText) *tg.MessagesSendMediaRequest {
	return &tg.MessagesSendMediaRequest{
		Silent:      o.silent,
		Noforwards:  o.noforward,
		Peer:        o.peer.InputPeer(),
		ReplyTo:     o.replyTo,
		Media:       media,
		Message:     caption.Text,
		RandomID:    o.randomID,
		ReplyMarkup: o.markup,
		Entities:    caption.Entities,
	}
}

// delivered projects the response of a single message send.
func (c *Client) delivered(
	ctx context.Context,
	method string,
	out outgoing,
	text mapper.FormattedText,
	updates tg.UpdatesClass,
) (*botapi.Message, error) {
	if short, ok := updates.(*tg.UpdateShortSentMessage); ok {
		message := c.shortSentMessage(short, out.peer, text)
		if message == nil {
			return nil, fmt.Errorf("%s: %w", method, errNoMessage)
		}
		return message, nil
	}

	return c.sentMessage(ctx, method, updates, out.randomID)
}

// sendMediaMessage runs the shared flow of every single media send.
func (c *Client) sendMediaMessage(
	ctx context.Context,
	method string,
	chatID botapi.ChatID,
	caption botapi.Caption,
	options botapi.SendOptions,
	build func(ctx context.Context) (tg.InputMediaClass, error),
) (*botapi.Message, error) {
	var result *botapi.Message
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		out, err := c.prepare(ctx, method, chatID, options)
		if err != nil {
			return err
		}
		text, err := c.formatCaption(ctx, method, caption)
		if err != nil {
			return err
		}
		media, err := build(ctx)
		if err != nil {
			return err
		}

		updates, err := c.api.MessagesSendMedia(ctx, out.sendMedia(media, text))
		if err != nil {
			return fmt.Errorf("send media: %w", err)
		}
		result, err = c.delivered(ctx, method, out, text, updates)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// albumMedia converts media that only exists locally or behind a URL into
// server side media, as albums accept nothing else.
func (c *Client) albumMedia(ctx context.Context, peer codec.Peer, media tg.InputMediaClass) (tg.InputMediaClass, error) {
	switch media.(type) {
	case *tg.InputMediaPhoto, *tg.InputMediaDocument:
		return media, nil
	}

	uploaded, err := c.api.MessagesUploadMedia(ctx, &tg.MessagesUploadMediaRequest{
		Peer:  peer.InputPeer(),
		Media: media,
	})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}
	resent, ok := resendableMedia(uploaded)
	if !ok {
		return nil, fmt.Errorf("upload media: unexpected %s", uploaded.TypeName())
	}

	return resent, nil
}

// resendableMedia returns input media referencing the content of media
// already stored by Telegram.
func resendableMedia(media tg.MessageMediaClass) (tg.InputMediaClass, bool) {
	switch typed := media.(type) {
	case *tg.MessageMediaPhoto:
		photo, ok := typed.Photo.(*tg.Photo)
		if !ok {
			return nil, false
		}
		return &tg.InputMediaPhoto{
			ID:      &tg.InputPhoto{ID: photo.ID, AccessHash: photo.AccessHash, FileReference: photo.FileReference},
			Spoiler: typed.Spoiler,
		}, true
	case *tg.MessageMediaDocument:
		document, ok := typed.Document.(*tg.Document)
		if !ok {
			return nil, false
		}
		return &tg.InputMediaDocument{
			ID:      &tg.InputDocument{ID: document.ID, AccessHash: document.AccessHash, FileReference: document.FileReference},
			Spoiler: typed.Spoiler,
		}, true
	case *tg.MessageMediaGeo:
		point, ok := typed.Geo.(*tg.GeoPoint)
		if !ok {
			return nil, false
		}
		return &tg.InputMediaGeoPoint{GeoPoint: &tg.InputGeoPoint{Lat: point.Lat, Long: point.Long}}, true
	case *tg.MessageMediaVenue:
		point, ok := typed.Geo.(*tg.GeoPoint)
		if !ok {
			return nil, false
		}
		return &tg.InputMediaVenue{
			GeoPoint:  &tg.InputGeoPoint{Lat: point.Lat, Long: point.Long},
			Title:     typed.Title,
			Address:   typed.Address,
			Provider:  typed.Provider,
			VenueID:   typed.VenueID,
			VenueType: typed.VenueType,
		}, true
	case *tg.MessageMediaContact:
		return &tg.InputMediaContact{
			PhoneNumber: typed.PhoneNumber,
			FirstName:   typed.FirstName,
			LastName:    typed.LastName,
			Vcard:       typed.Vcard,
		}, true
	case *tg.MessageMediaDice:
		return &tg.InputMediaDice{Emoticon: typed.Emoticon}, true
	default:
		return nil, false
	}
}

func inputMediaAttributes(media botapi.InputMedia) mapper.MediaAttributes {
	attrs := mapper.MediaAttributes{
		Duration:          media.Duration,
		Width:             media.Width,
		Height:            media.Height,
		Performer:         media.Performer,
		Title:             media.Title,
		SupportsStreaming: media.SupportsStreaming,
		Spoiler:           media.HasSpoiler,
	}
	switch media.Type {
	case botapi.InputMediaPhoto:
		attrs.Kind = codec.FileKindPhoto
	case botapi.InputMediaVideo:
		attrs.Kind = codec.FileKindVideo
	case botapi.InputMediaAnimation:
		attrs.Kind = codec.FileKindAnimation
	case botapi.InputMediaAudio:
		attrs.Kind = codec.FileKindAudio
	default:
		attrs.Kind = codec.FileKindDocument
		attrs.ForceFile = media.DisableContentTypeDetection
	}

	return attrs
}
