package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"
)

const (
	fileIDMagic   uint32 = 0x6d746669
	fileIDVersion        = 1

	uniqueIDVersion byte = 1
)

// FileKind is the Bot API media kind a file identifier was issued for.
type FileKind int

// File kinds. Values are part of the wire format and must not change.
const (
	FileKindUnknown FileKind = iota
	FileKindPhoto
	FileKindThumbnail
	FileKindChatPhoto
	FileKindDocument
	FileKindAnimation
	FileKindAudio
	FileKindVideo
	FileKindVideoNote
	FileKindVoice
	FileKindSticker
	FileKindStickerSetThumbnail
)

// String returns the kind name.
func (k FileKind) String() string {
	switch k {
	case FileKindPhoto:
		return "photo"
	case FileKindThumbnail:
		return "thumbnail"
	case FileKindChatPhoto:
		return "chat_photo"
	case FileKindDocument:
		return "document"
	case FileKindAnimation:
		return "animation"
	case FileKindAudio:
		return "audio"
	case FileKindVideo:
		return "video"
	case FileKindVideoNote:
		return "video_note"
	case FileKindVoice:
		return "voice"
	case FileKindSticker:
		return "sticker"
	case FileKindStickerSetThumbnail:
		return "sticker_set_thumbnail"
	default:
		return "unknown"
	}
}

// FileID is a decoded file identifier.
type FileID struct {
	Kind     FileKind
	DC       int
	Size     int64
	Location tg.InputFileLocationClass
}

// EncodeFileID packs a file identifier into an opaque URL-safe string.
func EncodeFileID(id FileID) (string, error) {
	if id.Location == nil {
		return "", fmt.Errorf("%w: missing location", ErrInvalidFileID)
	}

	var b bin.Buffer
	b.PutUint32(fileIDMagic)
	b.PutInt(fileIDVersion)
	b.PutInt(int(id.Kind))
	b.PutInt(id.DC)
	b.PutLong(id.Size)
	if err := id.Location.Encode(&b); err != nil {
		return "", fmt.Errorf("encode file location: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(rleEncode(b.Raw())), nil
}

// DecodeFileID unpacks a string produced by EncodeFileID.
func DecodeFileID(raw string) (FileID, error) {
	packed, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return FileID{}, fmt.Errorf("%w: %v", ErrInvalidFileID, err)
	}
	data, err := rleDecode(packed)
	if err != nil {
		return FileID{}, fmt.Errorf("%w: %v", ErrInvalidFileID, err)
	}

	b := bin.Buffer{Buf: data}
	magic, err := b.Uint32()
	if err != nil || magic != fileIDMagic {
		return FileID{}, fmt.Errorf("%w: bad header", ErrInvalidFileID)
	}
	version, err := b.Int()
	if err != nil || version != fileIDVersion {
		return FileID{}, fmt.Errorf("%w: unsupported version", ErrInvalidFileID)
	}

	var id FileID
	kind, err := b.Int()
	if err != nil {
		return FileID{}, fmt.Errorf("%w: %v", ErrInvalidFileID, err)
	}
	id.Kind = FileKind(kind)
	if id.DC, err = b.Int(); err != nil {
		return FileID{}, fmt.Errorf("%w: %v", ErrInvalidFileID, err)
	}
	if id.Size, err = b.Long(); err != nil {
		return FileID{}, fmt.Errorf("%w: %v", ErrInvalidFileID, err)
	}
	if id.Location, err = tg.DecodeInputFileLocation(&b); err != nil {
		return FileID{}, fmt.Errorf("%w: %v", ErrInvalidFileID, err)
	}
	if b.Len() != 0 {
		return FileID{}, fmt.Errorf("%w: trailing bytes", ErrInvalidFileID)
	}

	return id, nil
}

// String encodes the identifier. Identifiers built by the FileIDFrom
// constructors always encode; any other failure is logged and yields an
// empty string.
func (f FileID) String() string {
	encoded, err := EncodeFileID(f)
	if err != nil {
		slog.Warn("encode file id failed", "kind", f.Kind.String(), "error", err)
		return ""
	}

	return encoded
}

// InputDocument returns the document reference for resending document kinds.
func (f FileID) InputDocument() (*tg.InputDocument, bool) {
	location, ok := f.Location.(*tg.InputDocumentFileLocation)
	if !ok || location.ThumbSize != "" {
		return nil, false
	}

	return &tg.InputDocument{
		ID:            location.ID,
		AccessHash:    location.AccessHash,
		FileReference: location.FileReference,
	}, true
}

// InputPhoto returns the photo reference for resending photos.
func (f FileID) InputPhoto() (*tg.InputPhoto, bool) {
	location, ok := f.Location.(*tg.InputPhotoFileLocation)
	if !ok {
		return nil, false
	}

	return &tg.InputPhoto{
		ID:            location.ID,
		AccessHash:    location.AccessHash,
		FileReference: location.FileReference,
	}, true
}

// InputMedia returns the media reference used to resend the file.
func (f FileID) InputMedia() (tg.InputMediaClass, error) {
	if photo, ok := f.InputPhoto(); ok {
		return &tg.InputMediaPhoto{ID: photo}, nil
	}
	if document, ok := f.InputDocument(); ok {
		return &tg.InputMediaDocument{ID: document}, nil
	}

	return nil, fmt.Errorf("%w: %s cannot be resent", ErrInvalidFileID, f.Kind)
}

// UniqueID returns the stable unique identifier of the referenced resource.
func (f FileID) UniqueID() string {
	switch location := f.Location.(type) {
	case *tg.InputDocumentFileLocation:
		return UniqueFileID(UniqueDocument, location.ID, location.ThumbSize)
	case *tg.InputPhotoFileLocation:
		return UniqueFileID(UniquePhoto, location.ID, location.ThumbSize)
	case *tg.InputPeerPhotoFileLocation:
		size := "a"
		if location.Big {
			size = "c"
		}
		return UniqueFileID(UniqueChatPhoto, location.PhotoID, size)
	case *tg.InputStickerSetThumb:
		setID, name := stickerSetKey(location.Stickerset)
		return UniqueFileID(UniqueStickerSetThumb, setID, fmt.Sprintf("%s#%d", name, location.ThumbVersion))
	default:
		return ""
	}
}

// UniqueClass groups file kinds that address the same stored resource.
type UniqueClass int

// Unique classes. Values are part of the wire format and must not change.
const (
	UniqueDocument UniqueClass = iota + 1
	UniquePhoto
	UniqueChatPhoto
	UniqueStickerSetThumb
)

// UniqueFileID builds an identifier that is equal for the same stored
// resource and distinct for different ones.
func UniqueFileID(class UniqueClass, id int64, sizeType string) string {
	b := bin.Buffer{Buf: []byte{uniqueIDVersion}}
	b.PutInt(int(class))
	b.PutLong(id)
	b.PutString(sizeType)

	return base64.RawURLEncoding.EncodeToString(rleEncode(b.Raw()))
}

func stickerSetKey(set tg.InputStickerSetClass) (int64, string) {
	switch typed := set.(type) {
	case *tg.InputStickerSetID:
		return typed.ID, ""
	case *tg.InputStickerSetShortName:
		return 0, typed.ShortName
	default:
		return 0, ""
	}
}

// FileIDFromDocument builds the identifier of a whole document.
func FileIDFromDocument(document *tg.Document, kind FileKind) FileID {
	return FileID{
		Kind: kind,
		DC:   document.DCID,
		Size: document.Size,
		Location: &tg.InputDocumentFileLocation{
			ID:            document.ID,
			AccessHash:    document.AccessHash,
			FileReference: document.FileReference,
		},
	}
}

// FileIDFromDocumentThumb builds the identifier of one document thumbnail.
func FileIDFromDocumentThumb(document *tg.Document, sizeType string, size int64) FileID {
	return FileID{
		Kind: FileKindThumbnail,
		DC:   document.DCID,
		Size: size,
		Location: &tg.InputDocumentFileLocation{
			ID:            document.ID,
			AccessHash:    document.AccessHash,
			FileReference: document.FileReference,
			ThumbSize:     sizeType,
		},
	}
}

// FileIDFromPhoto builds the identifier of one photo size.
func FileIDFromPhoto(photo *tg.Photo, sizeType string, size int64) FileID {
	return FileID{
		Kind: FileKindPhoto,
		DC:   photo.DCID,
		Size: size,
		Location: &tg.InputPhotoFileLocation{
			ID:            photo.ID,
			AccessHash:    photo.AccessHash,
			FileReference: photo.FileReference,
			ThumbSize:     sizeType,
		},
	}
}

// FileIDFromChatPhoto builds the identifier of a chat or user avatar.
func FileIDFromChatPhoto(peer Peer, photoID int64, dc int, big bool) FileID {
	return FileID{
		Kind: FileKindChatPhoto,
		DC:   dc,
		Location: &tg.InputPeerPhotoFileLocation{
			Big:     big,
			Peer:    peer.InputPeer(),
			PhotoID: photoID,
		},
	}
}

// FileIDFromStickerSetThumb builds the identifier of a sticker set thumbnail.
func FileIDFromStickerSetThumb(set tg.InputStickerSetClass, version int, dc int, size int64) FileID {
	if set == nil {
		set = &tg.InputStickerSetEmpty{}
	}

	return FileID{
		Kind: FileKindStickerSetThumbnail,
		DC:   dc,
		Size: size,
		Location: &tg.InputStickerSetThumb{
			Stickerset:   set,
			ThumbVersion: version,
		},
	}
}

// IsInvalid reports whether err was caused by a malformed identifier.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidFileID) ||
		errors.Is(err, ErrInvalidInlineMessageID) ||
		errors.Is(err, ErrInvalidChatID)
}
