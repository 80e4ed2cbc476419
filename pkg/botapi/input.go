package botapi

import (
	"bytes"
	"io"
	"strings"
)

// InputFile references a file to send.
//
// Exactly one of FileID, URL and Reader is set.
type InputFile struct {
	FileID string
	URL    string
	Name   string
	Reader io.Reader
	Size   int64
}

// FileID references a file already stored on Telegram servers.
func FileID(id string) InputFile {
	return InputFile{FileID: strings.TrimSpace(id)}
}

// FileURL references a file Telegram downloads by HTTP URL.
func FileURL(url string) InputFile {
	return InputFile{URL: strings.TrimSpace(url)}
}

// FileReader uploads the content of r under name.
//
// Size is optional; when zero the content is buffered to learn it.
func FileReader(name string, r io.Reader) InputFile {
	return InputFile{Name: name, Reader: r}
}

// FileBytes uploads data under name.
func FileBytes(name string, data []byte) InputFile {
	return InputFile{Name: name, Reader: bytes.NewReader(data), Size: int64(len(data))}
}

// IsUpload reports whether the file content is sent from the caller.
func (f InputFile) IsUpload() bool {
	return f.Reader != nil
}

// IsZero reports whether the value references nothing.
func (f InputFile) IsZero() bool {
	return f.FileID == "" && f.URL == "" && f.Reader == nil
}

// Validate checks that exactly one source is set.
func (f InputFile) Validate(field string) error {
	sources := 0
	if f.FileID != "" {
		sources++
	}
	if f.URL != "" {
		sources++
	}
	if f.Reader != nil {
		sources++
	}
	if sources != 1 {
		return invalidParam("%s must reference exactly one of file_id, url or upload", field)
	}

	return nil
}

// InputMediaType discriminates InputMedia variants.
type InputMediaType string

// InputMedia variants.
const (
	InputMediaPhoto     InputMediaType = "photo"
	InputMediaVideo     InputMediaType = "video"
	InputMediaAnimation InputMediaType = "animation"
	InputMediaAudio     InputMediaType = "audio"
	InputMediaDocument  InputMediaType = "document"
)

// InputMedia is one media item of an album or an edit-media request.
type InputMedia struct {
	Type            InputMediaType
	Media           InputFile
	Thumbnail       *InputFile
	Caption         string
	ParseMode       string
	CaptionEntities []MessageEntity
	HasSpoiler      bool

	Width             int
	Height            int
	Duration          int
	SupportsStreaming bool

	Performer string
	Title     string

	DisableContentTypeDetection bool
}

// Validate checks the media type and source.
func (m InputMedia) Validate() error {
	switch m.Type {
	case InputMediaPhoto, InputMediaVideo, InputMediaAnimation, InputMediaAudio, InputMediaDocument:
	default:
		return invalidParam("unsupported input media type %q", m.Type)
	}

	return m.Media.Validate("media")
}

// InputSticker is one sticker added to a set.
type InputSticker struct {
	Sticker      InputFile
	Format       StickerFormat
	EmojiList    []string
	MaskPosition *MaskPosition
	Keywords     []string
}

// Validate checks the sticker source and emoji list.
func (s InputSticker) Validate() error {
	if err := s.Sticker.Validate("sticker"); err != nil {
		return err
	}
	if len(s.EmojiList) == 0 || len(s.EmojiList) > 20 {
		return invalidParam("emoji_list must contain 1-20 emoji")
	}

	return nil
}

// InputPollOption is one answer option of a new poll.
type InputPollOption struct {
	Text         string          `json:"text"`
	TextEntities []MessageEntity `json:"text_entities,omitempty"`
}

// ReactionType is an emoji or custom emoji reaction.
type ReactionType struct {
	Type          string `json:"type"`
	Emoji         string `json:"emoji,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// Reaction type discriminators.
const (
	ReactionTypeEmoji       = "emoji"
	ReactionTypeCustomEmoji = "custom_emoji"
	ReactionTypePaid        = "paid"
)

// ReplyParameters describes the message being replied to.
type ReplyParameters struct {
	MessageID                int             `json:"message_id"`
	ChatID                   *ChatID         `json:"chat_id,omitempty"`
	AllowSendingWithoutReply bool            `json:"allow_sending_without_reply,omitempty"`
	Quote                    string          `json:"quote,omitempty"`
	QuoteEntities            []MessageEntity `json:"quote_entities,omitempty"`
	QuotePosition            int             `json:"quote_position,omitempty"`
}
