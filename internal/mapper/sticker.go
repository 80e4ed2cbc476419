package mapper

import (
	"strings"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// StickerSet projects a native sticker set with its documents.
func StickerSet(set *tg.MessagesStickerSet) botapi.StickerSet {
	projected := botapi.StickerSet{
		Name:        set.Set.ShortName,
		Title:       set.Set.Title,
		StickerType: stickerSetType(set.Set),
	}
	for _, document := range set.Documents {
		if typed, ok := document.(*tg.Document); ok {
			projected.Stickers = append(projected.Stickers, Sticker(typed))
		}
	}
	projected.Thumbnail = stickerSetThumbnail(set.Set)

	return projected
}

func stickerSetType(set tg.StickerSet) botapi.StickerType {
	switch {
	case set.Masks:
		return botapi.StickerTypeMask
	case set.Emojis:
		return botapi.StickerTypeCustomEmoji
	default:
		return botapi.StickerTypeRegular
	}
}

func stickerSetThumbnail(set tg.StickerSet) *botapi.PhotoSize {
	thumbs, ok := set.GetThumbs()
	if !ok || len(thumbs) == 0 {
		return nil
	}
	dc, _ := set.GetThumbDCID()
	version, _ := set.GetThumbVersion()
	_, width, height, size, ok := photoSizeInfo(thumbs[len(thumbs)-1])
	if !ok {
		return nil
	}

	id := codec.FileIDFromStickerSetThumb(&tg.InputStickerSetID{ID: set.ID, AccessHash: set.AccessHash}, version, dc, size)
	return &botapi.PhotoSize{
		FileID:       id.String(),
		FileUniqueID: id.UniqueID(),
		Width:        width,
		Height:       height,
		FileSize:     size,
	}
}

// StickerSetMime reports the upload mime type of a set's stickers.
func StickerSetMime(set *tg.MessagesStickerSet) string {
	for _, document := range set.Documents {
		if typed, ok := document.(*tg.Document); ok {
			return typed.MimeType
		}
	}

	return StickerMime(botapi.StickerFormatStatic)
}

// InputStickerName references a set by short name.
func InputStickerName(name string) *tg.InputStickerSetShortName {
	return &tg.InputStickerSetShortName{ShortName: name}
}

// InputStickerItem builds one sticker of a new or extended set.
func InputStickerItem(document tg.InputDocumentClass, sticker botapi.InputSticker) tg.InputStickerSetItem {
	item := tg.InputStickerSetItem{
		Document: document,
		Emoji:    strings.Join(sticker.EmojiList, ""),
	}
	if sticker.MaskPosition != nil {
		item.SetMaskCoords(MaskCoords(sticker.MaskPosition))
	}
	if len(sticker.Keywords) > 0 {
		item.SetKeywords(strings.Join(sticker.Keywords, ","))
	}

	return item
}
