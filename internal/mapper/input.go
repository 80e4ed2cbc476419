package mapper

import (
	"fmt"
	"strconv"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// FormattedText is text with entities already resolved for the wire.
type FormattedText struct {
	Text     string
	Entities []tg.MessageEntityClass
}

// TL returns the native text with entities value.
func (f FormattedText) TL() tg.TextWithEntities {
	return tg.TextWithEntities{Text: f.Text, Entities: f.Entities}
}

// MediaSource is a resolved reference to outgoing file content.
//
// Exactly one of Uploaded, FileID and URL is set.
type MediaSource struct {
	Uploaded tg.InputFileClass
	FileID   *codec.FileID
	URL      string
	Thumb    tg.InputFileClass
	MimeType string
	FileName string
}

// MediaAttributes describes outgoing media beyond its content.
type MediaAttributes struct {
	Kind              codec.FileKind
	Duration          int
	Width             int
	Height            int
	Performer         string
	Title             string
	SupportsStreaming bool
	ForceFile         bool
	Spoiler           bool
	Emoji             string
}

// InputMedia builds the media slot of a send or edit request.
func InputMedia(source MediaSource, attrs MediaAttributes) (tg.InputMediaClass, error) {
	if attrs.Kind == codec.FileKindPhoto {
		return inputPhoto(source, attrs.Spoiler)
	}

	switch {
	case source.Uploaded != nil:
		return &tg.InputMediaUploadedDocument{
			File:         source.Uploaded,
			Thumb:        source.Thumb,
			MimeType:     uploadMime(source.MimeType, attrs.Kind),
			Attributes:   documentAttributes(source.FileName, attrs),
			ForceFile:    attrs.ForceFile,
			NosoundVideo: attrs.Kind == codec.FileKindAnimation,
			Spoiler:      attrs.Spoiler,
		}, nil
	case source.FileID != nil:
		document, ok := source.FileID.InputDocument()
		if !ok {
			return nil, fmt.Errorf("%w: %s file id cannot be sent as %s", codec.ErrInvalidFileID, source.FileID.Kind, attrs.Kind)
		}
		return &tg.InputMediaDocument{ID: document, Spoiler: attrs.Spoiler}, nil
	case source.URL != "":
		return &tg.InputMediaDocumentExternal{URL: source.URL, Spoiler: attrs.Spoiler}, nil
	default:
		return nil, fmt.Errorf("%w: empty media source", codec.ErrInvalidFileID)
	}
}

func inputPhoto(source MediaSource, spoiler bool) (tg.InputMediaClass, error) {
	switch {
	case source.Uploaded != nil:
		return &tg.InputMediaUploadedPhoto{File: source.Uploaded, Spoiler: spoiler}, nil
	case source.FileID != nil:
		photo, ok := source.FileID.InputPhoto()
		if !ok {
			return nil, fmt.Errorf("%w: %s file id cannot be sent as photo", codec.ErrInvalidFileID, source.FileID.Kind)
		}
		return &tg.InputMediaPhoto{ID: photo, Spoiler: spoiler}, nil
	case source.URL != "":
		return &tg.InputMediaPhotoExternal{URL: source.URL, Spoiler: spoiler}, nil
	default:
		return nil, fmt.Errorf("%w: empty photo source", codec.ErrInvalidFileID)
	}
}

func uploadMime(mimeType string, kind codec.FileKind) string {
	if mimeType != "" {
		return mimeType
	}

	switch kind {
	case codec.FileKindVideo, codec.FileKindVideoNote, codec.FileKindAnimation:
		return "video/mp4"
	case codec.FileKindAudio:
		return "audio/mpeg"
	case codec.FileKindVoice:
		return "audio/ogg"
	case codec.FileKindSticker:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func documentAttributes(fileName string, attrs MediaAttributes) []tg.DocumentAttributeClass {
	var attributes []tg.DocumentAttributeClass
	if fileName != "" {
		attributes = append(attributes, &tg.DocumentAttributeFilename{FileName: fileName})
	}

	switch attrs.Kind {
	case codec.FileKindVideo, codec.FileKindAnimation, codec.FileKindVideoNote:
		video := &tg.DocumentAttributeVideo{
			Duration:          float64(attrs.Duration),
			W:                 attrs.Width,
			H:                 attrs.Height,
			SupportsStreaming: attrs.SupportsStreaming,
			RoundMessage:      attrs.Kind == codec.FileKindVideoNote,
		}
		if video.RoundMessage {
			video.H = video.W
		}
		attributes = append(attributes, video)
		if attrs.Kind == codec.FileKindAnimation {
			attributes = append(attributes, &tg.DocumentAttributeAnimated{})
		}
	case codec.FileKindAudio:
		attributes = append(attributes, &tg.DocumentAttributeAudio{
			Duration:  attrs.Duration,
			Title:     attrs.Title,
			Performer: attrs.Performer,
		})
	case codec.FileKindVoice:
		attributes = append(attributes, &tg.DocumentAttributeAudio{Voice: true, Duration: attrs.Duration})
	case codec.FileKindSticker:
		attributes = append(attributes, &tg.DocumentAttributeSticker{
			Alt:        attrs.Emoji,
			Stickerset: &tg.InputStickerSetEmpty{},
		})
	}

	return attributes
}

// InputGeo builds a native geo point.
func InputGeo(latitude, longitude, accuracy float64) *tg.InputGeoPoint {
	point := &tg.InputGeoPoint{Lat: latitude, Long: longitude}
	if accuracy > 0 {
		point.SetAccuracyRadius(int(accuracy))
	}

	return point
}

// InputLocation builds a static or live location media slot.
func InputLocation(params botapi.SendLocationParams) tg.InputMediaClass {
	point := InputGeo(params.Latitude, params.Longitude, params.HorizontalAccuracy)
	if params.LivePeriod == 0 {
		return &tg.InputMediaGeoPoint{GeoPoint: point}
	}

	live := &tg.InputMediaGeoLive{GeoPoint: point}
	live.SetPeriod(params.LivePeriod)
	if params.Heading > 0 {
		live.SetHeading(params.Heading)
	}
	if params.ProximityAlertRadius > 0 {
		live.SetProximityNotificationRadius(params.ProximityAlertRadius)
	}

	return live
}

// InputLiveLocationEdit builds the media slot of a live location edit.
func InputLiveLocationEdit(latitude, longitude, accuracy float64, heading, radius int) *tg.InputMediaGeoLive {
	live := &tg.InputMediaGeoLive{GeoPoint: InputGeo(latitude, longitude, accuracy)}
	if heading > 0 {
		live.SetHeading(heading)
	}
	if radius > 0 {
		live.SetProximityNotificationRadius(radius)
	}

	return live
}

// StoppedLiveLocation stops a live location.
func StoppedLiveLocation() *tg.InputMediaGeoLive {
	return &tg.InputMediaGeoLive{Stopped: true, GeoPoint: &tg.InputGeoPointEmpty{}}
}

// InputVenue builds a venue media slot. Foursquare takes precedence over
// Google Places when both are given.
func InputVenue(venue botapi.Venue) *tg.InputMediaVenue {
	media := &tg.InputMediaVenue{
		GeoPoint: InputGeo(venue.Location.Latitude, venue.Location.Longitude, venue.Location.HorizontalAccuracy),
		Title:    venue.Title,
		Address:  venue.Address,
	}
	switch {
	case venue.FoursquareID != "":
		media.Provider, media.VenueID, media.VenueType = "foursquare", venue.FoursquareID, venue.FoursquareType
	case venue.GooglePlaceID != "":
		media.Provider, media.VenueID, media.VenueType = "gplaces", venue.GooglePlaceID, venue.GooglePlaceType
	}

	return media
}

// InputContact builds a contact media slot.
func InputContact(contact botapi.Contact) *tg.InputMediaContact {
	return &tg.InputMediaContact{
		PhoneNumber: contact.PhoneNumber,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Vcard:       contact.VCard,
	}
}

// PollText carries resolved texts of a new poll.
type PollText struct {
	Question    FormattedText
	Options     []FormattedText
	Explanation FormattedText
}

// InputPoll builds a poll media slot. Option keys are the decimal option
// positions.
func InputPoll(params botapi.SendPollParams, text PollText) *tg.InputMediaPoll {
	poll := tg.Poll{
		Question:       text.Question.TL(),
		Closed:         params.IsClosed,
		PublicVoters:   params.IsAnonymous != nil && !*params.IsAnonymous,
		MultipleChoice: params.AllowsMultipleAnswers,
		Quiz:           params.Type == botapi.PollTypeQuiz,
	}
	if params.OpenPeriod > 0 {
		poll.SetClosePeriod(params.OpenPeriod)
	}
	if params.CloseDate > 0 {
		poll.SetCloseDate(int(params.CloseDate))
	}
	for index, option := range text.Options {
		poll.Answers = append(poll.Answers, tg.PollAnswer{Text: option.TL(), Option: pollOptionKey(index)})
	}

	media := &tg.InputMediaPoll{Poll: poll}
	if params.CorrectOptionID != nil {
		media.SetCorrectAnswers([][]byte{pollOptionKey(*params.CorrectOptionID)})
	}
	if text.Explanation.Text != "" {
		media.SetSolution(text.Explanation.Text)
		media.SetSolutionEntities(text.Explanation.Entities)
	}

	return media
}

func pollOptionKey(index int) []byte {
	return []byte(strconv.Itoa(index))
}

// InputGame builds a game media slot owned by bot.
func InputGame(bot tg.InputUserClass, shortName string) *tg.InputMediaGame {
	return &tg.InputMediaGame{ID: &tg.InputGameShortName{BotID: bot, ShortName: shortName}}
}

// InputInvoice builds an invoice media slot.
func InputInvoice(params botapi.InvoiceParams) *tg.InputMediaInvoice {
	media := &tg.InputMediaInvoice{
		Title:        params.Title,
		Description:  params.Description,
		Invoice:      NativeInvoice(params),
		Payload:      []byte(params.Payload),
		Provider:     params.ProviderToken,
		ProviderData: tg.DataJSON{Data: providerData(params.ProviderData)},
		StartParam:   params.StartParameter,
	}
	if params.PhotoURL != "" {
		media.Photo = invoicePhoto(params)
	}

	return media
}

// NativeInvoice builds the invoice terms.
func NativeInvoice(params botapi.InvoiceParams) tg.Invoice {
	invoice := tg.Invoice{
		NameRequested:            params.NeedName,
		PhoneRequested:           params.NeedPhoneNumber,
		EmailRequested:           params.NeedEmail,
		ShippingAddressRequested: params.NeedShippingAddress,
		Flexible:                 params.IsFlexible,
		PhoneToProvider:          params.SendPhoneNumberToProvider,
		EmailToProvider:          params.SendEmailToProvider,
		Currency:                 params.Currency,
		Prices:                   LabeledPrices(params.Prices),
	}
	if params.MaxTipAmount > 0 {
		invoice.SetMaxTipAmount(params.MaxTipAmount)
		invoice.SetSuggestedTipAmounts(params.SuggestedTipAmounts)
	}

	return invoice
}

func invoicePhoto(params botapi.InvoiceParams) tg.InputWebDocument {
	photo := tg.InputWebDocument{URL: params.PhotoURL, Size: params.PhotoSize, MimeType: "image/jpeg"}
	if params.PhotoWidth > 0 && params.PhotoHeight > 0 {
		photo.Attributes = []tg.DocumentAttributeClass{
			&tg.DocumentAttributeImageSize{W: params.PhotoWidth, H: params.PhotoHeight},
		}
	}

	return photo
}

func providerData(data string) string {
	if data == "" {
		return "{}"
	}

	return data
}

// LabeledPrices converts price components.
func LabeledPrices(prices []botapi.LabeledPrice) []tg.LabeledPrice {
	native := make([]tg.LabeledPrice, 0, len(prices))
	for _, price := range prices {
		native = append(native, tg.LabeledPrice{Label: price.Label, Amount: price.Amount})
	}

	return native
}

// ShippingOptions converts delivery options.
func ShippingOptions(options []botapi.ShippingOption) []tg.ShippingOption {
	native := make([]tg.ShippingOption, 0, len(options))
	for _, option := range options {
		native = append(native, tg.ShippingOption{
			ID:     option.ID,
			Title:  option.Title,
			Prices: LabeledPrices(option.Prices),
		})
	}

	return native
}

// ChatAction maps a chat action to its native typing status.
func ChatAction(action botapi.ChatAction) (tg.SendMessageActionClass, error) {
	switch action {
	case botapi.ChatActionTyping:
		return &tg.SendMessageTypingAction{}, nil
	case botapi.ChatActionUploadPhoto:
		return &tg.SendMessageUploadPhotoAction{}, nil
	case botapi.ChatActionRecordVideo:
		return &tg.SendMessageRecordVideoAction{}, nil
	case botapi.ChatActionUploadVideo:
		return &tg.SendMessageUploadVideoAction{}, nil
	case botapi.ChatActionRecordVoice:
		return &tg.SendMessageRecordAudioAction{}, nil
	case botapi.ChatActionUploadVoice:
		return &tg.SendMessageUploadAudioAction{}, nil
	case botapi.ChatActionUploadDocument:
		return &tg.SendMessageUploadDocumentAction{}, nil
	case botapi.ChatActionChooseSticker:
		return &tg.SendMessageChooseStickerAction{}, nil
	case botapi.ChatActionFindLocation:
		return &tg.SendMessageGeoLocationAction{}, nil
	case botapi.ChatActionRecordVideoNote:
		return &tg.SendMessageRecordRoundAction{}, nil
	case botapi.ChatActionUploadVideoNote:
		return &tg.SendMessageUploadRoundAction{}, nil
	default:
		return nil, botapi.BadRequest("", "wrong parameter action in request")
	}
}

// InputReactions converts reactions for messages.sendReaction.
func InputReactions(reactions []botapi.ReactionType) ([]tg.ReactionClass, error) {
	native := make([]tg.ReactionClass, 0, len(reactions))
	for _, reaction := range reactions {
		switch reaction.Type {
		case botapi.ReactionTypeEmoji:
			native = append(native, &tg.ReactionEmoji{Emoticon: reaction.Emoji})
		case botapi.ReactionTypeCustomEmoji:
			id, err := strconv.ParseInt(reaction.CustomEmojiID, 10, 64)
			if err != nil {
				return nil, botapi.BadRequest("", "invalid custom emoji identifier specified")
			}
			native = append(native, &tg.ReactionCustomEmoji{DocumentID: id})
		case botapi.ReactionTypePaid:
			native = append(native, &tg.ReactionPaid{})
		default:
			return nil, botapi.BadRequest("", "REACTION_INVALID")
		}
	}

	return native, nil
}

// Reaction projects a native reaction. Empty reactions report false.
func Reaction(reaction tg.ReactionClass) (botapi.ReactionType, bool) {
	switch typed := reaction.(type) {
	case *tg.ReactionEmoji:
		return botapi.ReactionType{Type: botapi.ReactionTypeEmoji, Emoji: typed.Emoticon}, true
	case *tg.ReactionCustomEmoji:
		return botapi.ReactionType{Type: botapi.ReactionTypeCustomEmoji, CustomEmojiID: formatID(typed.DocumentID)}, true
	case *tg.ReactionPaid:
		return botapi.ReactionType{Type: botapi.ReactionTypePaid}, true
	default:
		return botapi.ReactionType{}, false
	}
}
