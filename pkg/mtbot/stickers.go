package mtbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// GetStickerSet returns a sticker set and records its mime type.
func (c *Client) GetStickerSet(ctx context.Context, params botapi.StickerSetParams) (botapi.StickerSet, error) {
	const method = "getStickerSet"
	if err := params.Validate(); err != nil {
		return botapi.StickerSet{}, fmt.Errorf("get sticker set validate: %w", err)
	}

	var result botapi.StickerSet
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		set, err := c.fetchStickerSet(ctx, params.Name)
		if err != nil {
			return err
		}
		result = mapper.StickerSet(set)
		return nil
	})
	if err != nil {
		return botapi.StickerSet{}, err
	}

	return result, nil
}

func (c *Client) fetchStickerSet(ctx context.Context, name string) (*tg.MessagesStickerSet, error) {
	set, err := c.api.MessagesGetStickerSet(ctx, &tg.MessagesGetStickerSetRequest{
		Stickerset: mapper.InputStickerName(name),
	})
	if err != nil {
		return nil, fmt.Errorf("get sticker set: %w", err)
	}
	full, ok := set.(*tg.MessagesStickerSet)
	if !ok {
		return nil, fmt.Errorf("get sticker set: unexpected %s", set.TypeName())
	}
	c.stickers.Put(full.Set.ShortName, mapper.StickerSetMime(full))

	return full, nil
}

// stickerSetMime returns the mime type of stickers in set name, loading the
// set on a cache miss.
func (c *Client) stickerSetMime(ctx context.Context, name string) (string, error) {
	if mimeType, ok := c.stickers.Get(name); ok {
		return mimeType, nil
	}
	set, err := c.fetchStickerSet(ctx, name)
	if err != nil {
		return "", err
	}

	return mapper.StickerSetMime(set), nil
}

// GetCustomEmojiStickers returns custom emoji stickers by id.
func (c *Client) GetCustomEmojiStickers(ctx context.Context, params botapi.GetCustomEmojiStickersParams) ([]botapi.Sticker, error) {
	const method = "getCustomEmojiStickers"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("get custom emoji stickers validate: %w", err)
	}

	ids := make([]int64, 0, len(params.CustomEmojiIDs))
	for _, raw := range params.CustomEmojiIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("get custom emoji stickers validate: %w: custom emoji id %q", botapi.ErrInvalidParams, raw)
		}
		ids = append(ids, id)
	}

	var result []botapi.Sticker
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		documents, err := c.api.MessagesGetCustomEmojiDocuments(ctx, ids)
		if err != nil {
			return fmt.Errorf("get custom emoji documents: %w", err)
		}
		result = make([]botapi.Sticker, 0, len(documents))
		for _, document := range documents {
			if typed, ok := document.(*tg.Document); ok {
				result = append(result, mapper.Sticker(typed))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UploadStickerFile uploads a sticker file for later use in sticker set
// methods.
func (c *Client) UploadStickerFile(ctx context.Context, params botapi.UploadStickerFileParams) (botapi.File, error) {
	const method = "uploadStickerFile"
	if err := params.Validate(); err != nil {
		return botapi.File{}, fmt.Errorf("upload sticker file validate: %w", err)
	}

	var result botapi.File
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		owner, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		document, err := c.uploadStickerDocument(ctx, owner, params.Sticker, mapper.StickerMime(params.StickerFormat))
		if err != nil {
			return err
		}
		id := codec.FileIDFromDocument(document, codec.FileKindSticker)
		result = botapi.File{
			FileID:       id.String(),
			FileUniqueID: id.UniqueID(),
			FileSize:     document.Size,
		}
		return nil
	})
	if err != nil {
		return botapi.File{}, err
	}

	return result, nil
}

// uploadStickerDocument stores file content as a document in the chat with
// the set owner.
func (c *Client) uploadStickerDocument(
	ctx context.Context,
	owner *tg.InputUser,
	file botapi.InputFile,
	mimeType string,
) (*tg.Document, error) {
	var media tg.InputMediaClass
	switch {
	case file.URL != "":
		media = &tg.InputMediaDocumentExternal{URL: file.URL}
	default:
		uploaded, err := c.upload(ctx, file)
		if err != nil {
			return nil, err
		}
		name := file.Name
		if name == "" {
			name = "sticker"
		}
		media = &tg.InputMediaUploadedDocument{
			File:       uploaded,
			MimeType:   mimeType,
			Attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeFilename{FileName: name}},
		}
	}

	stored, err := c.api.MessagesUploadMedia(ctx, &tg.MessagesUploadMediaRequest{
		Peer:  userPeer(owner),
		Media: media,
	})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}
	documentMedia, ok := stored.(*tg.MessageMediaDocument)
	if !ok {
		return nil, fmt.Errorf("upload media: unexpected %s", stored.TypeName())
	}
	document, ok := documentMedia.Document.(*tg.Document)
	if !ok {
		return nil, fmt.Errorf("upload media: empty document")
	}

	return document, nil
}

func (c *Client) stickerItem(
	ctx context.Context,
	owner *tg.InputUser,
	sticker botapi.InputSticker,
	mimeType string,
) (tg.InputStickerSetItem, error) {
	if sticker.Sticker.FileID != "" {
		document, err := stickerDocument(sticker.Sticker.FileID)
		if err != nil {
			return tg.InputStickerSetItem{}, err
		}
		return mapper.InputStickerItem(document, sticker), nil
	}

	document, err := c.uploadStickerDocument(ctx, owner, sticker.Sticker, mimeType)
	if err != nil {
		return tg.InputStickerSetItem{}, err
	}
	input := &tg.InputDocument{ID: document.ID, AccessHash: document.AccessHash, FileReference: document.FileReference}

	return mapper.InputStickerItem(input, sticker), nil
}

func stickerDocument(fileID string) (*tg.InputDocument, error) {
	id, err := codec.DecodeFileID(fileID)
	if err != nil {
		return nil, fmt.Errorf("decode sticker: %w", err)
	}
	document, ok := id.InputDocument()
	if !ok {
		return nil, fmt.Errorf("%w: %s file id is not a sticker", codec.ErrInvalidFileID, id.Kind)
	}

	return document, nil
}

// CreateNewStickerSet creates a sticker set owned by a user and records its
// mime type.
func (c *Client) CreateNewStickerSet(ctx context.Context, params botapi.CreateNewStickerSetParams) error {
	const method = "createNewStickerSet"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("create new sticker set validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		owner, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}

		items := make([]tg.InputStickerSetItem, 0, len(params.Stickers))
		for index, sticker := range params.Stickers {
			item, err := c.stickerItem(ctx, owner, sticker, mapper.StickerMime(sticker.Format))
			if err != nil {
				return fmt.Errorf("stickers[%d]: %w", index, err)
			}
			items = append(items, item)
		}

		created, err := c.api.StickersCreateStickerSet(ctx, &tg.StickersCreateStickerSetRequest{
			Masks:     params.StickerType == botapi.StickerTypeMask,
			Emojis:    params.StickerType == botapi.StickerTypeCustomEmoji,
			TextColor: params.NeedsRepainting,
			UserID:    owner,
			Title:     params.Title,
			ShortName: params.Name,
			Stickers:  items,
		})
		if err != nil {
			return fmt.Errorf("create sticker set: %w", err)
		}
		if full, ok := created.(*tg.MessagesStickerSet); ok {
			c.stickers.Put(params.Name, mapper.StickerSetMime(full))
		} else {
			c.stickers.Put(params.Name, mapper.StickerMime(params.Stickers[0].Format))
		}
		return nil
	})
}

// AddStickerToSet appends a sticker to a set. Uploaded files take the mime
// type of the set.
func (c *Client) AddStickerToSet(ctx context.Context, params botapi.AddStickerToSetParams) error {
	const method = "addStickerToSet"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("add sticker to set validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		owner, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		mimeType := mapper.StickerMime(params.Sticker.Format)
		if params.Sticker.Sticker.FileID == "" {
			mimeType, err = c.stickerSetMime(ctx, params.Name)
			if err != nil {
				return err
			}
		}
		item, err := c.stickerItem(ctx, owner, params.Sticker, mimeType)
		if err != nil {
			return err
		}

		if _, err := c.api.StickersAddStickerToSet(ctx, &tg.StickersAddStickerToSetRequest{
			Stickerset: mapper.InputStickerName(params.Name),
			Sticker:    item,
		}); err != nil {
			return fmt.Errorf("add sticker to set: %w", err)
		}
		return nil
	})
}

// SetStickerPositionInSet moves a sticker within its set.
func (c *Client) SetStickerPositionInSet(ctx context.Context, params botapi.SetStickerPositionInSetParams) error {
	const method = "setStickerPositionInSet"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set sticker position in set validate: %w", err)
	}
	document, err := stickerDocument(params.Sticker)
	if err != nil {
		return err
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		if _, err := c.api.StickersChangeStickerPosition(ctx, &tg.StickersChangeStickerPositionRequest{
			Sticker:  document,
			Position: params.Position,
		}); err != nil {
			return fmt.Errorf("change sticker position: %w", err)
		}
		return nil
	})
}

// DeleteStickerFromSet removes a sticker from its set.
func (c *Client) DeleteStickerFromSet(ctx context.Context, params botapi.StickerParams) error {
	const method = "deleteStickerFromSet"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete sticker from set validate: %w", err)
	}
	document, err := stickerDocument(params.Sticker)
	if err != nil {
		return err
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		if _, err := c.api.StickersRemoveStickerFromSet(ctx, document); err != nil {
			return fmt.Errorf("remove sticker from set: %w", err)
		}
		return nil
	})
}

// SetStickerEmojiList replaces the emoji of a sticker.
func (c *Client) SetStickerEmojiList(ctx context.Context, params botapi.SetStickerEmojiListParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set sticker emoji list validate: %w", err)
	}

	return c.changeSticker(ctx, "setStickerEmojiList", params.Sticker, func(request *tg.StickersChangeStickerRequest) {
		request.SetEmoji(strings.Join(params.EmojiList, ""))
	})
}

// SetStickerKeywords replaces the search keywords of a sticker.
func (c *Client) SetStickerKeywords(ctx context.Context, params botapi.SetStickerKeywordsParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set sticker keywords validate: %w", err)
	}

	return c.changeSticker(ctx, "setStickerKeywords", params.Sticker, func(request *tg.StickersChangeStickerRequest) {
		request.SetKeywords(strings.Join(params.Keywords, ","))
	})
}

// SetStickerMaskPosition moves a mask sticker. A nil position resets it.
func (c *Client) SetStickerMaskPosition(ctx context.Context, params botapi.SetStickerMaskPositionParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set sticker mask position validate: %w", err)
	}

	return c.changeSticker(ctx, "setStickerMaskPosition", params.Sticker, func(request *tg.StickersChangeStickerRequest) {
		if params.MaskPosition == nil {
			request.SetMaskCoords(tg.MaskCoords{})
			return
		}
		request.SetMaskCoords(mapper.MaskCoords(params.MaskPosition))
	})
}

func (c *Client) changeSticker(
	ctx context.Context,
	method string,
	sticker string,
	apply func(request *tg.StickersChangeStickerRequest),
) error {
	document, err := stickerDocument(sticker)
	if err != nil {
		return err
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		request := &tg.StickersChangeStickerRequest{Sticker: document}
		apply(request)
		if _, err := c.api.StickersChangeSticker(ctx, request); err != nil {
			return fmt.Errorf("change sticker: %w", err)
		}
		return nil
	})
}

// SetStickerSetTitle renames a sticker set.
func (c *Client) SetStickerSetTitle(ctx context.Context, params botapi.SetStickerSetTitleParams) error {
	const method = "setStickerSetTitle"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set sticker set title validate: %w", err)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		if _, err := c.api.StickersRenameStickerSet(ctx, &tg.StickersRenameStickerSetRequest{
			Stickerset: mapper.InputStickerName(params.Name),
			Title:      params.Title,
		}); err != nil {
			return fmt.Errorf("rename sticker set: %w", err)
		}
		return nil
	})
}

// SetStickerSetThumbnail sets or removes the thumbnail of a regular or mask
// sticker set.
func (c *Client) SetStickerSetThumbnail(ctx context.Context, params botapi.SetStickerSetThumbnailParams) error {
	const method = "setStickerSetThumbnail"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set sticker set thumbnail validate: %w", err)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		var thumb tg.InputDocumentClass = &tg.InputDocumentEmpty{}
		if params.Thumbnail != nil {
			if params.Thumbnail.FileID != "" {
				document, err := stickerDocument(params.Thumbnail.FileID)
				if err != nil {
					return err
				}
				thumb = document
			} else {
				owner, err := c.resolveUser(ctx, method, params.UserID)
				if err != nil {
					return err
				}
				mimeType, err := c.stickerSetMime(ctx, params.Name)
				if err != nil {
					return err
				}
				document, err := c.uploadStickerDocument(ctx, owner, *params.Thumbnail, mimeType)
				if err != nil {
					return err
				}
				thumb = &tg.InputDocument{ID: document.ID, AccessHash: document.AccessHash, FileReference: document.FileReference}
			}
		}

		request := &tg.StickersSetStickerSetThumbRequest{Stickerset: mapper.InputStickerName(params.Name)}
		request.SetThumb(thumb)
		if _, err := c.api.StickersSetStickerSetThumb(ctx, request); err != nil {
			return fmt.Errorf("set sticker set thumb: %w", err)
		}
		return nil
	})
}

// SetCustomEmojiStickerSetThumbnail sets the thumbnail of a custom emoji set.
func (c *Client) SetCustomEmojiStickerSetThumbnail(
	ctx context.Context,
	params botapi.SetCustomEmojiStickerSetThumbnailParams,
) error {
	const method = "setCustomEmojiStickerSetThumbnail"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set custom emoji sticker set thumbnail validate: %w", err)
	}

	request := &tg.StickersSetStickerSetThumbRequest{Stickerset: mapper.InputStickerName(params.Name)}
	if params.CustomEmojiID != "" {
		id, err := strconv.ParseInt(params.CustomEmojiID, 10, 64)
		if err != nil {
			return fmt.Errorf("set custom emoji sticker set thumbnail validate: %w: custom_emoji_id %q",
				botapi.ErrInvalidParams, params.CustomEmojiID)
		}
		request.SetThumbDocumentID(id)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		if _, err := c.api.StickersSetStickerSetThumb(ctx, request); err != nil {
			return fmt.Errorf("set sticker set thumb: %w", err)
		}
		return nil
	})
}

// DeleteStickerSet deletes a sticker set created by the bot.
func (c *Client) DeleteStickerSet(ctx context.Context, params botapi.StickerSetParams) error {
	const method = "deleteStickerSet"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete sticker set validate: %w", err)
	}

	err := c.invoke(ctx, method, func(ctx context.Context) error {
		if _, err := c.api.StickersDeleteStickerSet(ctx, mapper.InputStickerName(params.Name)); err != nil {
			return fmt.Errorf("delete sticker set: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.stickers.Forget(params.Name)

	return nil
}
