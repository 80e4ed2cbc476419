package botapi

import "strings"

// StickerSetParams addresses one sticker set by name.
type StickerSetParams struct {
	Name string
}

// Validate checks the set name.
func (p StickerSetParams) Validate() error {
	return validateRequired("name", p.Name)
}

// GetCustomEmojiStickersParams configures getCustomEmojiStickers.
type GetCustomEmojiStickersParams struct {
	CustomEmojiIDs []string
}

// Validate checks the identifier count.
func (p GetCustomEmojiStickersParams) Validate() error {
	if len(p.CustomEmojiIDs) == 0 || len(p.CustomEmojiIDs) > 200 {
		return invalidParam("custom_emoji_ids must contain 1-200 identifiers")
	}

	return nil
}

// UploadStickerFileParams configures uploadStickerFile.
type UploadStickerFileParams struct {
	UserID        int64
	Sticker       InputFile
	StickerFormat StickerFormat
}

// Validate requires an uploaded file.
func (p UploadStickerFileParams) Validate() error {
	if err := validateUserID(p.UserID); err != nil {
		return err
	}
	if !p.Sticker.IsUpload() {
		return invalidParam("sticker must be uploaded")
	}

	return validateStickerFormat(p.StickerFormat)
}

// CreateNewStickerSetParams configures createNewStickerSet.
//
// Name must end with "_by_<bot_username>".
type CreateNewStickerSetParams struct {
	UserID          int64
	Name            string
	Title           string
	Stickers        []InputSticker
	StickerType     StickerType
	NeedsRepainting bool
}

// Validate checks set naming and sticker count.
func (p CreateNewStickerSetParams) Validate() error {
	if err := validateUserID(p.UserID); err != nil {
		return err
	}
	if err := validateStickerSetName(p.Name); err != nil {
		return err
	}
	if err := validateRequired("title", p.Title); err != nil {
		return err
	}
	if len(p.Stickers) == 0 || len(p.Stickers) > 50 {
		return invalidParam("stickers must contain 1-50 items")
	}
	for index, sticker := range p.Stickers {
		if err := sticker.Validate(); err != nil {
			return invalidParam("stickers[%d]: %v", index, err)
		}
	}

	return nil
}

// AddStickerToSetParams configures addStickerToSet.
type AddStickerToSetParams struct {
	UserID  int64
	Name    string
	Sticker InputSticker
}

// Validate checks the owner and sticker.
func (p AddStickerToSetParams) Validate() error {
	if err := validateUserID(p.UserID); err != nil {
		return err
	}
	if err := validateRequired("name", p.Name); err != nil {
		return err
	}

	return p.Sticker.Validate()
}

// SetStickerPositionInSetParams configures setStickerPositionInSet.
type SetStickerPositionInSetParams struct {
	Sticker  string
	Position int
}

// Validate checks the sticker and position.
func (p SetStickerPositionInSetParams) Validate() error {
	if err := validateRequired("sticker", p.Sticker); err != nil {
		return err
	}
	if p.Position < 0 {
		return invalidParam("position must not be negative")
	}

	return nil
}

// StickerParams addresses one sticker by file identifier.
type StickerParams struct {
	Sticker string
}

// Validate checks the sticker identifier.
func (p StickerParams) Validate() error {
	return validateRequired("sticker", p.Sticker)
}

// SetStickerEmojiListParams configures setStickerEmojiList.
type SetStickerEmojiListParams struct {
	Sticker   string
	EmojiList []string
}

// Validate checks the emoji count.
func (p SetStickerEmojiListParams) Validate() error {
	if err := validateRequired("sticker", p.Sticker); err != nil {
		return err
	}
	if len(p.EmojiList) == 0 || len(p.EmojiList) > 20 {
		return invalidParam("emoji_list must contain 1-20 emoji")
	}

	return nil
}

// SetStickerKeywordsParams configures setStickerKeywords.
type SetStickerKeywordsParams struct {
	Sticker  string
	Keywords []string
}

// Validate checks the keyword count.
func (p SetStickerKeywordsParams) Validate() error {
	if err := validateRequired("sticker", p.Sticker); err != nil {
		return err
	}
	if len(p.Keywords) > 20 {
		return invalidParam("keywords must contain at most 20 items")
	}

	return nil
}

// SetStickerMaskPositionParams configures setStickerMaskPosition.
//
// A nil MaskPosition removes the position.
type SetStickerMaskPositionParams struct {
	Sticker      string
	MaskPosition *MaskPosition
}

// Validate checks the sticker identifier.
func (p SetStickerMaskPositionParams) Validate() error {
	return validateRequired("sticker", p.Sticker)
}

// SetStickerSetTitleParams configures setStickerSetTitle.
type SetStickerSetTitleParams struct {
	Name  string
	Title string
}

// Validate checks required fields.
func (p SetStickerSetTitleParams) Validate() error {
	if err := validateRequired("name", p.Name); err != nil {
		return err
	}

	return validateRequired("title", p.Title)
}

// SetStickerSetThumbnailParams configures setStickerSetThumbnail.
//
// A nil Thumbnail removes the custom thumbnail.
type SetStickerSetThumbnailParams struct {
	Name      string
	UserID    int64
	Thumbnail *InputFile
}

// Validate checks the owner and set name.
func (p SetStickerSetThumbnailParams) Validate() error {
	if err := validateRequired("name", p.Name); err != nil {
		return err
	}
	if err := validateUserID(p.UserID); err != nil {
		return err
	}
	if p.Thumbnail != nil {
		return p.Thumbnail.Validate("thumbnail")
	}

	return nil
}

// SetCustomEmojiStickerSetThumbnailParams configures
// setCustomEmojiStickerSetThumbnail.
//
// An empty CustomEmojiID falls back to the first sticker.
type SetCustomEmojiStickerSetThumbnailParams struct {
	Name          string
	CustomEmojiID string
}

// Validate checks the set name.
func (p SetCustomEmojiStickerSetThumbnailParams) Validate() error {
	return validateRequired("name", p.Name)
}

func validateStickerFormat(format StickerFormat) error {
	switch format {
	case StickerFormatStatic, StickerFormatAnimated, StickerFormatVideo:
		return nil
	default:
		return invalidParam("unsupported sticker_format %q", format)
	}
}

func validateStickerSetName(name string) error {
	if err := validateRequired("name", name); err != nil {
		return err
	}
	if len(name) > 64 || !strings.Contains(name, "_by_") {
		return invalidParam("name must be at most 64 characters and end with _by_<bot_username>")
	}

	return nil
}
