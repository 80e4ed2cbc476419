package mapper

import (
	"fmt"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// TextFormatter resolves a text with its parse mode or explicit entities.
type TextFormatter func(text string, parseMode string, entities []botapi.MessageEntity) (FormattedText, error)

// InlineBuilder converts inline query results.
type InlineBuilder struct {
	// Bot owns callback and game buttons.
	Bot tg.InputUserClass
	// Format resolves texts and captions.
	Format TextFormatter
}

// Results converts every result of an inline answer.
func (b InlineBuilder) Results(results []botapi.InlineQueryResult) ([]tg.InputBotInlineResultClass, error) {
	native := make([]tg.InputBotInlineResultClass, 0, len(results))
	for _, result := range results {
		converted, err := b.Result(result)
		if err != nil {
			return nil, fmt.Errorf("inline result %q: %w", result.ResultID(), err)
		}
		native = append(native, converted)
	}

	return native, nil
}

// Result converts one inline query result.
func (b InlineBuilder) Result(result botapi.InlineQueryResult) (tg.InputBotInlineResultClass, error) {
	switch typed := result.(type) {
	case botapi.InlineQueryResultArticle:
		return b.article(typed)
	case botapi.InlineQueryResultPhoto:
		return b.external(typed.InlineResultBase, typed.InlineCaption, "photo", typed.Title, typed.Description,
			webDocument(typed.PhotoURL, "image/jpeg", imageSize(typed.PhotoWidth, typed.PhotoHeight)), thumbnail(typed.InlineThumbnail, typed.PhotoURL))
	case botapi.InlineQueryResultGif:
		return b.external(typed.InlineResultBase, typed.InlineCaption, "gif", typed.Title, "",
			webDocument(typed.GifURL, "image/gif", videoSize(typed.GifWidth, typed.GifHeight, typed.GifDuration)), thumbnail(typed.InlineThumbnail, ""))
	case botapi.InlineQueryResultMpeg4Gif:
		return b.external(typed.InlineResultBase, typed.InlineCaption, "gif", typed.Title, "",
			webDocument(typed.Mpeg4URL, "video/mp4", videoSize(typed.Mpeg4Width, typed.Mpeg4Height, typed.Mpeg4Duration)), thumbnail(typed.InlineThumbnail, ""))
	case botapi.InlineQueryResultVideo:
		return b.external(typed.InlineResultBase, typed.InlineCaption, "video", typed.Title, typed.Description,
			webDocument(typed.VideoURL, typed.MimeType, videoSize(typed.VideoWidth, typed.VideoHeight, typed.VideoDuration)), thumbnail(typed.InlineThumbnail, ""))
	case botapi.InlineQueryResultAudio:
		audio := &tg.DocumentAttributeAudio{Duration: typed.AudioDuration, Title: typed.Title, Performer: typed.Performer}
		return b.external(typed.InlineResultBase, typed.InlineCaption, "audio", typed.Title, typed.Performer,
			webDocument(typed.AudioURL, "audio/mpeg", audio), nil)
	case botapi.InlineQueryResultVoice:
		voice := &tg.DocumentAttributeAudio{Voice: true, Duration: typed.VoiceDuration}
		return b.external(typed.InlineResultBase, typed.InlineCaption, "voice", typed.Title, "",
			webDocument(typed.VoiceURL, "audio/ogg", voice), nil)
	case botapi.InlineQueryResultDocument:
		return b.external(typed.InlineResultBase, typed.InlineCaption, "file", typed.Title, typed.Description,
			webDocument(typed.DocumentURL, typed.MimeType), thumbnail(typed.InlineThumbnail, ""))
	case botapi.InlineQueryResultLocation:
		return b.place(typed.InlineResultBase, typed.InlineThumbnail, "geo", typed.Title, "",
			botapi.InputLocationMessageContent{Location: typed.Location})
	case botapi.InlineQueryResultVenue:
		return b.place(typed.InlineResultBase, typed.InlineThumbnail, "venue", typed.Title, typed.Address,
			botapi.InputVenueMessageContent{Venue: typed.Venue})
	case botapi.InlineQueryResultContact:
		title := typed.FirstName
		if typed.LastName != "" {
			title += " " + typed.LastName
		}
		return b.place(typed.InlineResultBase, typed.InlineThumbnail, "contact", title, typed.PhoneNumber,
			botapi.InputContactMessageContent{Contact: typed.Contact})
	case botapi.InlineQueryResultGame:
		send, err := b.message(typed.InlineResultBase, botapi.InlineCaption{}, &tg.InputBotInlineMessageGame{})
		if err != nil {
			return nil, err
		}
		return &tg.InputBotInlineResultGame{ID: typed.ID, ShortName: typed.GameShortName, SendMessage: send}, nil
	case botapi.InlineQueryResultCachedPhoto:
		return b.cachedPhoto(typed)
	case botapi.InlineQueryResultCachedGif:
		return b.cached(typed.InlineResultBase, typed.InlineCaption, "gif", typed.GifFileID, typed.Title, "")
	case botapi.InlineQueryResultCachedMpeg4Gif:
		return b.cached(typed.InlineResultBase, typed.InlineCaption, "gif", typed.Mpeg4FileID, typed.Title, "")
	case botapi.InlineQueryResultCachedSticker:
		return b.cached(typed.InlineResultBase, botapi.InlineCaption{}, "sticker", typed.StickerFileID, "", "")
	case botapi.InlineQueryResultCachedDocument:
		return b.cached(typed.InlineResultBase, typed.InlineCaption, "file", typed.DocumentFileID, typed.Title, typed.Description)
	case botapi.InlineQueryResultCachedVideo:
		return b.cached(typed.InlineResultBase, typed.InlineCaption, "video", typed.VideoFileID, typed.Title, typed.Description)
	case botapi.InlineQueryResultCachedVoice:
		return b.cached(typed.InlineResultBase, typed.InlineCaption, "voice", typed.VoiceFileID, typed.Title, "")
	case botapi.InlineQueryResultCachedAudio:
		return b.cached(typed.InlineResultBase, typed.InlineCaption, "audio", typed.AudioFileID, "", "")
	default:
		return nil, botapi.BadRequest("", fmt.Sprintf("unsupported inline query result type %q", result.ResultType()))
	}
}

func (b InlineBuilder) article(article botapi.InlineQueryResultArticle) (tg.InputBotInlineResultClass, error) {
	if article.InputMessageContent == nil {
		return nil, botapi.BadRequest("", "MESSAGE_EMPTY")
	}

	send, err := b.message(article.InlineResultBase, botapi.InlineCaption{}, nil)
	if err != nil {
		return nil, err
	}
	result := &tg.InputBotInlineResult{
		ID:          article.ID,
		Type:        "article",
		SendMessage: send,
	}
	result.SetTitle(article.Title)
	if article.Description != "" {
		result.SetDescription(article.Description)
	}
	if article.URL != "" && !article.HideURL {
		result.SetURL(article.URL)
	}
	if thumb := thumbnail(article.InlineThumbnail, ""); thumb != nil {
		result.SetThumb(*thumb)
	}

	return result, nil
}

func (b InlineBuilder) external(base botapi.InlineResultBase, caption botapi.InlineCaption, kind string, title string,
	description string, content tg.InputWebDocument, thumb *tg.InputWebDocument,
) (tg.InputBotInlineResultClass, error) {
	send, err := b.message(base, caption, nil)
	if err != nil {
		return nil, err
	}

	result := &tg.InputBotInlineResult{ID: base.ID, Type: kind, SendMessage: send}
	result.SetContent(content)
	if title != "" {
		result.SetTitle(title)
	}
	if description != "" {
		result.SetDescription(description)
	}
	if thumb != nil {
		result.SetThumb(*thumb)
	}

	return result, nil
}

func (b InlineBuilder) place(base botapi.InlineResultBase, thumbnailInfo botapi.InlineThumbnail, kind string, title string,
	description string, fallback botapi.InputMessageContent,
) (tg.InputBotInlineResultClass, error) {
	if base.InputMessageContent == nil {
		base.InputMessageContent = fallback
	}
	send, err := b.message(base, botapi.InlineCaption{}, nil)
	if err != nil {
		return nil, err
	}

	result := &tg.InputBotInlineResult{ID: base.ID, Type: kind, SendMessage: send}
	result.SetTitle(title)
	if description != "" {
		result.SetDescription(description)
	}
	if thumb := thumbnail(thumbnailInfo, ""); thumb != nil {
		result.SetThumb(*thumb)
	}

	return result, nil
}

func (b InlineBuilder) cachedPhoto(photo botapi.InlineQueryResultCachedPhoto) (tg.InputBotInlineResultClass, error) {
	id, err := codec.DecodeFileID(photo.PhotoFileID)
	if err != nil {
		return nil, botapi.BadRequest("", "wrong file identifier/HTTP URL specified")
	}
	input, ok := id.InputPhoto()
	if !ok {
		return nil, botapi.BadRequest("", "wrong file identifier/HTTP URL specified")
	}
	send, err := b.message(photo.InlineResultBase, photo.InlineCaption, nil)
	if err != nil {
		return nil, err
	}

	return &tg.InputBotInlineResultPhoto{ID: photo.ID, Type: "photo", Photo: input, SendMessage: send}, nil
}

func (b InlineBuilder) cached(base botapi.InlineResultBase, caption botapi.InlineCaption, kind string, fileID string,
	title string, description string,
) (tg.InputBotInlineResultClass, error) {
	id, err := codec.DecodeFileID(fileID)
	if err != nil {
		return nil, botapi.BadRequest("", "wrong file identifier/HTTP URL specified")
	}
	document, ok := id.InputDocument()
	if !ok {
		return nil, botapi.BadRequest("", "wrong file identifier/HTTP URL specified")
	}
	send, err := b.message(base, caption, nil)
	if err != nil {
		return nil, err
	}

	result := &tg.InputBotInlineResultDocument{ID: base.ID, Type: kind, Document: document, SendMessage: send}
	if title != "" {
		result.SetTitle(title)
	}
	if description != "" {
		result.SetDescription(description)
	}

	return result, nil
}

// message resolves the message sent when a result is chosen. Without explicit
// content the result media is sent with its caption, or fallback when given.
func (b InlineBuilder) message(base botapi.InlineResultBase, caption botapi.InlineCaption,
	fallback tg.InputBotInlineMessageClass,
) (tg.InputBotInlineMessageClass, error) {
	var markup tg.ReplyMarkupClass
	if base.ReplyMarkup != nil {
		keyboard, err := InputInlineKeyboard(base.ReplyMarkup, b.Bot)
		if err != nil {
			return nil, err
		}
		markup = keyboard
	}

	if base.InputMessageContent == nil {
		if game, ok := fallback.(*tg.InputBotInlineMessageGame); ok {
			game.ReplyMarkup = markup
			return game, nil
		}
		text, err := b.format(caption.Caption, caption.ParseMode, caption.CaptionEntities)
		if err != nil {
			return nil, err
		}
		return &tg.InputBotInlineMessageMediaAuto{Message: text.Text, Entities: text.Entities, ReplyMarkup: markup}, nil
	}

	return b.Content(base.InputMessageContent, markup)
}

// Content converts explicit input message content.
func (b InlineBuilder) Content(content botapi.InputMessageContent, markup tg.ReplyMarkupClass) (tg.InputBotInlineMessageClass, error) {
	switch typed := content.(type) {
	case botapi.InputTextMessageContent:
		text, err := b.format(typed.MessageText, typed.ParseMode, typed.Entities)
		if err != nil {
			return nil, err
		}
		preview := typed.LinkPreviewOptions
		if preview != nil && preview.URL != "" && !preview.IsDisabled {
			return &tg.InputBotInlineMessageMediaWebPage{
				Message:         text.Text,
				Entities:        text.Entities,
				URL:             preview.URL,
				ForceLargeMedia: preview.PreferLargeMedia,
				ForceSmallMedia: preview.PreferSmallMedia,
				InvertMedia:     preview.ShowAboveText,
				Optional:        true,
				ReplyMarkup:     markup,
			}, nil
		}
		return &tg.InputBotInlineMessageText{
			Message:     text.Text,
			Entities:    text.Entities,
			NoWebpage:   preview != nil && preview.IsDisabled,
			InvertMedia: preview != nil && preview.ShowAboveText,
			ReplyMarkup: markup,
		}, nil
	case botapi.InputLocationMessageContent:
		geo := &tg.InputBotInlineMessageMediaGeo{
			GeoPoint:    InputGeo(typed.Latitude, typed.Longitude, typed.HorizontalAccuracy),
			ReplyMarkup: markup,
		}
		if typed.LivePeriod > 0 {
			geo.SetPeriod(typed.LivePeriod)
		}
		if typed.Heading > 0 {
			geo.SetHeading(typed.Heading)
		}
		if typed.ProximityAlertRadius > 0 {
			geo.SetProximityNotificationRadius(typed.ProximityAlertRadius)
		}
		return geo, nil
	case botapi.InputVenueMessageContent:
		venue := InputVenue(typed.Venue)
		return &tg.InputBotInlineMessageMediaVenue{
			GeoPoint:    venue.GeoPoint,
			Title:       venue.Title,
			Address:     venue.Address,
			Provider:    venue.Provider,
			VenueID:     venue.VenueID,
			VenueType:   venue.VenueType,
			ReplyMarkup: markup,
		}, nil
	case botapi.InputContactMessageContent:
		return &tg.InputBotInlineMessageMediaContact{
			PhoneNumber: typed.PhoneNumber,
			FirstName:   typed.FirstName,
			LastName:    typed.LastName,
			Vcard:       typed.VCard,
			ReplyMarkup: markup,
		}, nil
	case botapi.InputInvoiceMessageContent:
		media := InputInvoice(typed.InvoiceParams)
		return &tg.InputBotInlineMessageMediaInvoice{
			Title:        media.Title,
			Description:  media.Description,
			Invoice:      media.Invoice,
			Payload:      media.Payload,
			Provider:     media.Provider,
			ProviderData: media.ProviderData,
			Photo:        media.Photo,
			ReplyMarkup:  markup,
		}, nil
	default:
		return nil, botapi.BadRequest("", "unsupported input message content")
	}
}

func (b InlineBuilder) format(text string, parseMode string, entities []botapi.MessageEntity) (FormattedText, error) {
	if b.Format == nil {
		return FormattedText{Text: text}, nil
	}

	return b.Format(text, parseMode, entities)
}

func webDocument(url string, mimeType string, attributes ...tg.DocumentAttributeClass) tg.InputWebDocument {
	var filtered []tg.DocumentAttributeClass
	for _, attribute := range attributes {
		if attribute != nil {
			filtered = append(filtered, attribute)
		}
	}

	return tg.InputWebDocument{URL: url, MimeType: mimeType, Attributes: filtered}
}

func imageSize(width, height int) tg.DocumentAttributeClass {
	if width <= 0 || height <= 0 {
		return nil
	}

	return &tg.DocumentAttributeImageSize{W: width, H: height}
}

func videoSize(width, height, duration int) tg.DocumentAttributeClass {
	if width <= 0 && height <= 0 && duration <= 0 {
		return nil
	}

	return &tg.DocumentAttributeVideo{W: width, H: height, Duration: float64(duration)}
}

// thumbnail builds a result thumbnail, falling back to the content URL.
func thumbnail(info botapi.InlineThumbnail, fallback string) *tg.InputWebDocument {
	url := info.ThumbnailURL
	if url == "" {
		url = fallback
	}
	if url == "" {
		return nil
	}

	mimeType := info.ThumbnailMimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	document := webDocument(url, mimeType, imageSize(info.ThumbnailWidth, info.ThumbnailHeight))

	return &document
}
