package mapper

import (
	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// PhotoSizes projects the downloadable sizes of a photo, smallest first.
func PhotoSizes(photo *tg.Photo) []botapi.PhotoSize {
	sizes := make([]botapi.PhotoSize, 0, len(photo.Sizes))
	for _, size := range photo.Sizes {
		sizeType, width, height, bytes, ok := photoSizeInfo(size)
		if !ok {
			continue
		}
		id := codec.FileIDFromPhoto(photo, sizeType, bytes)
		sizes = append(sizes, botapi.PhotoSize{
			FileID:       id.String(),
			FileUniqueID: id.UniqueID(),
			Width:        width,
			Height:       height,
			FileSize:     bytes,
		})
	}

	return sizes
}

func photoSizeInfo(size tg.PhotoSizeClass) (sizeType string, width int, height int, bytes int64, ok bool) {
	switch typed := size.(type) {
	case *tg.PhotoSize:
		return typed.Type, typed.W, typed.H, int64(typed.Size), true
	case *tg.PhotoCachedSize:
		return typed.Type, typed.W, typed.H, int64(len(typed.Bytes)), true
	case *tg.PhotoSizeProgressive:
		if len(typed.Sizes) == 0 {
			return "", 0, 0, 0, false
		}
		return typed.Type, typed.W, typed.H, int64(typed.Sizes[len(typed.Sizes)-1]), true
	default:
		return "", 0, 0, 0, false
	}
}

func documentThumbnail(document *tg.Document) *botapi.PhotoSize {
	var best *botapi.PhotoSize
	for _, thumb := range document.Thumbs {
		sizeType, width, height, bytes, ok := photoSizeInfo(thumb)
		if !ok {
			continue
		}
		if best != nil && width*height <= best.Width*best.Height {
			continue
		}
		id := codec.FileIDFromDocumentThumb(document, sizeType, bytes)
		best = &botapi.PhotoSize{
			FileID:       id.String(),
			FileUniqueID: id.UniqueID(),
			Width:        width,
			Height:       height,
			FileSize:     bytes,
		}
	}

	return best
}

// DocumentKind classifies a document by its attributes.
func DocumentKind(document *tg.Document) codec.FileKind {
	var (
		video    *tg.DocumentAttributeVideo
		audio    *tg.DocumentAttributeAudio
		animated bool
	)
	for _, attribute := range document.Attributes {
		switch typed := attribute.(type) {
		case *tg.DocumentAttributeSticker, *tg.DocumentAttributeCustomEmoji:
			return codec.FileKindSticker
		case *tg.DocumentAttributeVideo:
			video = typed
		case *tg.DocumentAttributeAudio:
			audio = typed
		case *tg.DocumentAttributeAnimated:
			animated = true
		}
	}

	switch {
	case video != nil && video.RoundMessage:
		return codec.FileKindVideoNote
	case animated:
		return codec.FileKindAnimation
	case video != nil:
		return codec.FileKindVideo
	case audio != nil && audio.Voice:
		return codec.FileKindVoice
	case audio != nil:
		return codec.FileKindAudio
	default:
		return codec.FileKindDocument
	}
}

type documentInfo struct {
	id       codec.FileID
	fileName string
	width    int
	height   int
	duration int
	audio    *tg.DocumentAttributeAudio
	sticker  *tg.DocumentAttributeSticker
	emoji    *tg.DocumentAttributeCustomEmoji
}

func inspectDocument(document *tg.Document, kind codec.FileKind) documentInfo {
	info := documentInfo{id: codec.FileIDFromDocument(document, kind)}
	for _, attribute := range document.Attributes {
		switch typed := attribute.(type) {
		case *tg.DocumentAttributeFilename:
			info.fileName = typed.FileName
		case *tg.DocumentAttributeImageSize:
			info.width, info.height = typed.W, typed.H
		case *tg.DocumentAttributeVideo:
			info.width, info.height = typed.W, typed.H
			info.duration = int(typed.Duration)
		case *tg.DocumentAttributeAudio:
			info.audio = typed
			info.duration = typed.Duration
		case *tg.DocumentAttributeSticker:
			info.sticker = typed
		case *tg.DocumentAttributeCustomEmoji:
			info.emoji = typed
		}
	}

	return info
}

// applyDocument fills exactly one media field of message from a document.
// Animations also fill Document.
func applyDocument(message *botapi.Message, document *tg.Document) {
	kind := DocumentKind(document)
	info := inspectDocument(document, kind)
	fileID, uniqueID := info.id.String(), info.id.UniqueID()
	thumb := documentThumbnail(document)

	switch kind {
	case codec.FileKindSticker:
		sticker := Sticker(document)
		message.Sticker = &sticker
	case codec.FileKindVideoNote:
		message.VideoNote = &botapi.VideoNote{
			FileID:       fileID,
			FileUniqueID: uniqueID,
			Length:       info.width,
			Duration:     info.duration,
			Thumbnail:    thumb,
			FileSize:     document.Size,
		}
	case codec.FileKindAnimation:
		message.Animation = &botapi.Animation{
			FileID:       fileID,
			FileUniqueID: uniqueID,
			Width:        info.width,
			Height:       info.height,
			Duration:     info.duration,
			Thumbnail:    thumb,
			FileName:     info.fileName,
			MimeType:     document.MimeType,
			FileSize:     document.Size,
		}
		message.Document = &botapi.Document{
			FileID:       fileID,
			FileUniqueID: uniqueID,
			Thumbnail:    thumb,
			FileName:     info.fileName,
			MimeType:     document.MimeType,
			FileSize:     document.Size,
		}
	case codec.FileKindVideo:
		message.Video = &botapi.Video{
			FileID:       fileID,
			FileUniqueID: uniqueID,
			Width:        info.width,
			Height:       info.height,
			Duration:     info.duration,
			Thumbnail:    thumb,
			FileName:     info.fileName,
			MimeType:     document.MimeType,
			FileSize:     document.Size,
		}
	case codec.FileKindVoice:
		message.Voice = &botapi.Voice{
			FileID:       fileID,
			FileUniqueID: uniqueID,
			Duration:     info.duration,
			MimeType:     document.MimeType,
			FileSize:     document.Size,
		}
	case codec.FileKindAudio:
		message.Audio = &botapi.Audio{
			FileID:       fileID,
			FileUniqueID: uniqueID,
			Duration:     info.duration,
			Performer:    info.audio.Performer,
			Title:        info.audio.Title,
			FileName:     info.fileName,
			MimeType:     document.MimeType,
			FileSize:     document.Size,
			Thumbnail:    thumb,
		}
	default:
		message.Document = &botapi.Document{
			FileID:       fileID,
			FileUniqueID: uniqueID,
			Thumbnail:    thumb,
			FileName:     info.fileName,
			MimeType:     document.MimeType,
			FileSize:     document.Size,
		}
	}
}

// Sticker projects a sticker or custom emoji document.
func Sticker(document *tg.Document) botapi.Sticker {
	info := inspectDocument(document, codec.FileKindSticker)
	format := StickerFormatFromMime(document.MimeType)
	sticker := botapi.Sticker{
		FileID:       info.id.String(),
		FileUniqueID: info.id.UniqueID(),
		Type:         botapi.StickerTypeRegular,
		Width:        info.width,
		Height:       info.height,
		IsAnimated:   format == botapi.StickerFormatAnimated,
		IsVideo:      format == botapi.StickerFormatVideo,
		Thumbnail:    documentThumbnail(document),
		FileSize:     document.Size,
	}
	if sticker.IsAnimated && sticker.Width == 0 {
		sticker.Width, sticker.Height = 512, 512
	}

	switch {
	case info.emoji != nil:
		sticker.Type = botapi.StickerTypeCustomEmoji
		sticker.Emoji = info.emoji.Alt
		sticker.CustomEmojiID = formatID(document.ID)
		sticker.NeedsRepainting = info.emoji.TextColor
		sticker.SetName = stickerSetName(info.emoji.Stickerset)
	case info.sticker != nil:
		sticker.Emoji = info.sticker.Alt
		sticker.SetName = stickerSetName(info.sticker.Stickerset)
		if info.sticker.Mask {
			sticker.Type = botapi.StickerTypeMask
			if coords, ok := info.sticker.GetMaskCoords(); ok {
				sticker.MaskPosition = MaskPosition(coords)
			}
		}
	}

	return sticker
}

func stickerSetName(set tg.InputStickerSetClass) string {
	if named, ok := set.(*tg.InputStickerSetShortName); ok {
		return named.ShortName
	}

	return ""
}

// StickerFormatFromMime maps a sticker mime type to its format.
func StickerFormatFromMime(mimeType string) botapi.StickerFormat {
	switch mimeType {
	case "application/x-tgsticker":
		return botapi.StickerFormatAnimated
	case "video/webm":
		return botapi.StickerFormatVideo
	default:
		return botapi.StickerFormatStatic
	}
}

// StickerMime maps a sticker format to the mime type used for uploads.
func StickerMime(format botapi.StickerFormat) string {
	switch format {
	case botapi.StickerFormatAnimated:
		return "application/x-tgsticker"
	case botapi.StickerFormatVideo:
		return "video/webm"
	default:
		return "image/webp"
	}
}

var maskPoints = []string{"forehead", "eyes", "mouth", "chin"}

// MaskPosition projects native mask coordinates.
func MaskPosition(coords tg.MaskCoords) *botapi.MaskPosition {
	point := ""
	if coords.N >= 0 && coords.N < len(maskPoints) {
		point = maskPoints[coords.N]
	}

	return &botapi.MaskPosition{Point: point, XShift: coords.X, YShift: coords.Y, Scale: coords.Zoom}
}

// MaskCoords encodes a mask position.
func MaskCoords(position *botapi.MaskPosition) tg.MaskCoords {
	coords := tg.MaskCoords{X: position.XShift, Y: position.YShift, Zoom: position.Scale}
	for index, point := range maskPoints {
		if point == position.Point {
			coords.N = index
		}
	}

	return coords
}

func geoLocation(point *tg.GeoPoint) botapi.Location {
	location := botapi.Location{Latitude: point.Lat, Longitude: point.Long}
	if radius, ok := point.GetAccuracyRadius(); ok {
		location.HorizontalAccuracy = float64(radius)
	}

	return location
}

// LocationFromGeo projects a geo point; empty points yield nil.
func LocationFromGeo(geo tg.GeoPointClass) *botapi.Location {
	point, ok := geo.(*tg.GeoPoint)
	if !ok {
		return nil
	}
	location := geoLocation(point)

	return &location
}

// Poll projects a native poll with its results.
func Poll(poll tg.Poll, results tg.PollResults) botapi.Poll {
	projected := botapi.Poll{
		ID:                    formatID(poll.ID),
		Question:              poll.Question.Text,
		QuestionEntities:      Entities(poll.Question.Entities, nil),
		TotalVoterCount:       results.TotalVoters,
		IsClosed:              poll.Closed,
		IsAnonymous:           !poll.PublicVoters,
		Type:                  botapi.PollTypeRegular,
		AllowsMultipleAnswers: poll.MultipleChoice,
		OpenPeriod:            poll.ClosePeriod,
		CloseDate:             int64(poll.CloseDate),
		Explanation:           results.Solution,
		ExplanationEntities:   Entities(results.SolutionEntities, nil),
	}
	if poll.Quiz {
		projected.Type = botapi.PollTypeQuiz
	}

	voters := make(map[string]tg.PollAnswerVoters, len(results.Results))
	for _, result := range results.Results {
		voters[string(result.Option)] = result
	}
	for index, answer := range poll.Answers {
		result := voters[string(answer.Option)]
		projected.Options = append(projected.Options, botapi.PollOption{
			Text:         answer.Text.Text,
			TextEntities: Entities(answer.Text.Entities, nil),
			VoterCount:   result.Voters,
		})
		if result.Correct {
			correct := index
			projected.CorrectOptionID = &correct
		}
	}

	return projected
}

// PollOptionIndex returns the positions of chosen option keys.
func PollOptionIndex(poll tg.Poll, chosen [][]byte) []int {
	indexes := make([]int, 0, len(chosen))
	for _, option := range chosen {
		for index, answer := range poll.Answers {
			if string(answer.Option) == string(option) {
				indexes = append(indexes, index)
			}
		}
	}

	return indexes
}

// Game projects a native game.
func Game(game tg.Game) botapi.Game {
	projected := botapi.Game{Title: game.Title, Description: game.Description}
	if photo, ok := game.Photo.(*tg.Photo); ok {
		projected.Photo = PhotoSizes(photo)
	}
	if document, ok := game.GetDocument(); ok {
		if typed, isDocument := document.(*tg.Document); isDocument {
			var holder botapi.Message
			applyDocument(&holder, typed)
			projected.Animation = holder.Animation
		}
	}

	return projected
}

// applyMedia fills the media fields of message from the native media slot.
func applyMedia(message *botapi.Message, media tg.MessageMediaClass, collector *Collector) {
	switch typed := media.(type) {
	case *tg.MessageMediaPhoto:
		if photo, ok := typed.Photo.(*tg.Photo); ok {
			message.Photo = PhotoSizes(photo)
		}
		message.HasMediaSpoiler = typed.Spoiler
	case *tg.MessageMediaDocument:
		if document, ok := typed.Document.(*tg.Document); ok {
			applyDocument(message, document)
		}
		message.HasMediaSpoiler = typed.Spoiler
	case *tg.MessageMediaGeo:
		message.Location = LocationFromGeo(typed.Geo)
	case *tg.MessageMediaGeoLive:
		if location := LocationFromGeo(typed.Geo); location != nil {
			location.LivePeriod = typed.Period
			location.Heading = typed.Heading
			location.ProximityAlertRadius = typed.ProximityNotificationRadius
			message.Location = location
		}
	case *tg.MessageMediaVenue:
		location := LocationFromGeo(typed.Geo)
		if location == nil {
			location = &botapi.Location{}
		}
		venue := &botapi.Venue{
			Location: *location,
			Title:    typed.Title,
			Address:  typed.Address,
		}
		switch typed.Provider {
		case "foursquare":
			venue.FoursquareID, venue.FoursquareType = typed.VenueID, typed.VenueType
		case "gplaces":
			venue.GooglePlaceID, venue.GooglePlaceType = typed.VenueID, typed.VenueType
		}
		message.Venue = venue
		message.Location = location
	case *tg.MessageMediaContact:
		message.Contact = &botapi.Contact{
			PhoneNumber: typed.PhoneNumber,
			FirstName:   typed.FirstName,
			LastName:    typed.LastName,
			UserID:      typed.UserID,
			VCard:       typed.Vcard,
		}
	case *tg.MessageMediaDice:
		message.Dice = &botapi.Dice{Emoji: typed.Emoticon, Value: typed.Value}
	case *tg.MessageMediaGame:
		game := Game(typed.Game)
		message.Game = &game
	case *tg.MessageMediaPoll:
		poll := Poll(typed.Poll, typed.Results)
		message.Poll = &poll
	case *tg.MessageMediaInvoice:
		message.Invoice = &botapi.Invoice{
			Title:          typed.Title,
			Description:    typed.Description,
			StartParameter: typed.StartParam,
			Currency:       typed.Currency,
			TotalAmount:    typed.TotalAmount,
		}
	case *tg.MessageMediaStory:
		message.Story = &botapi.Story{Chat: ChatFromPeer(typed.Peer, collector), ID: typed.ID}
	}
}
