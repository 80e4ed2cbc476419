package codec

import (
	"encoding/base64"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *tg.Document {
	return &tg.Document{
		ID:            5_000_000_001,
		AccessHash:    -42,
		FileReference: []byte{1, 0, 0, 0, 2},
		DCID:          4,
		Size:          1 << 20,
		MimeType:      "video/mp4",
	}
}

func TestFileIDRoundTrip(t *testing.T) {
	t.Parallel()

	photo := &tg.Photo{ID: 77, AccessHash: 88, FileReference: []byte{9, 9}, DCID: 2}
	tests := []struct {
		name string
		id   FileID
	}{
		{name: "document", id: FileIDFromDocument(testDocument(), FileKindDocument)},
		{name: "animation", id: FileIDFromDocument(testDocument(), FileKindAnimation)},
		{name: "document thumb", id: FileIDFromDocumentThumb(testDocument(), "m", 3000)},
		{name: "photo", id: FileIDFromPhoto(photo, "y", 12345)},
		{
			name: "sticker set thumb",
			id:   FileIDFromStickerSetThumb(&tg.InputStickerSetID{ID: 10, AccessHash: 11}, 3, 1, 900),
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := EncodeFileID(testCase.id)
			require.NoError(t, err)
			assert.NotContains(t, encoded, "=")

			decoded, err := DecodeFileID(encoded)
			require.NoError(t, err)
			assert.Equal(t, testCase.id, decoded)
			assert.Equal(t, testCase.id.UniqueID(), decoded.UniqueID())
		})
	}
}

func TestChatPhotoFileIDRoundTrip(t *testing.T) {
	t.Parallel()

	id := FileIDFromChatPhoto(Peer{Kind: PeerUser, ID: 12, AccessHash: 34}, 56, 5, true)
	decoded, err := DecodeFileID(id.String())
	require.NoError(t, err)

	location, ok := decoded.Location.(*tg.InputPeerPhotoFileLocation)
	require.True(t, ok)
	assert.True(t, location.Big)
	assert.Equal(t, int64(56), location.PhotoID)
	assert.Equal(t, &tg.InputPeerUser{UserID: 12, AccessHash: 34}, location.Peer)
	assert.Equal(t, 5, decoded.DC)
	assert.Equal(t, FileKindChatPhoto, decoded.Kind)
}

func TestDecodeFileIDRejectsGarbage(t *testing.T) {
	t.Parallel()

	valid := FileIDFromDocument(testDocument(), FileKindVideo).String()
	for _, raw := range []string{"", "!!!", "AAAA", valid[:len(valid)-3], valid + "AA"} {
		_, err := DecodeFileID(raw)
		require.ErrorIs(t, err, ErrInvalidFileID, "raw %q", raw)
		assert.True(t, IsInvalid(err))
	}

	_, err := EncodeFileID(FileID{Kind: FileKindPhoto})
	require.ErrorIs(t, err, ErrInvalidFileID)
}

func TestFileIDResendReferences(t *testing.T) {
	t.Parallel()

	document := testDocument()
	inputDocument, ok := FileIDFromDocument(document, FileKindSticker).InputDocument()
	require.True(t, ok)
	assert.Equal(t, document.ID, inputDocument.ID)
	assert.Equal(t, document.FileReference, inputDocument.FileReference)

	_, ok = FileIDFromDocumentThumb(document, "s", 1).InputDocument()
	assert.False(t, ok, "thumbnails are not resendable documents")

	media, err := FileIDFromPhoto(&tg.Photo{ID: 1, AccessHash: 2, FileReference: []byte{3}}, "x", 1).InputMedia()
	require.NoError(t, err)
	_, ok = media.(*tg.InputMediaPhoto)
	assert.True(t, ok)

	_, err = FileIDFromChatPhoto(Peer{Kind: PeerChat, ID: 1}, 2, 1, false).InputMedia()
	require.ErrorIs(t, err, ErrInvalidFileID)
}

func TestUniqueFileID(t *testing.T) {
	t.Parallel()

	document := testDocument()
	asDocument := FileIDFromDocument(document, FileKindDocument)
	asAnimation := FileIDFromDocument(document, FileKindAnimation)
	thumb := FileIDFromDocumentThumb(document, "m", 1)

	assert.Equal(t, asDocument.UniqueID(), asAnimation.UniqueID())
	assert.NotEqual(t, asDocument.UniqueID(), thumb.UniqueID())
	assert.NotEqual(t, UniqueFileID(UniquePhoto, 1, ""), UniqueFileID(UniqueDocument, 1, ""))
	assert.NotEqual(t, UniqueFileID(UniquePhoto, 1, "x"), UniqueFileID(UniquePhoto, 2, "x"))

	refreshed := *document
	refreshed.FileReference = []byte{7, 7, 7}
	assert.Equal(t, asDocument.UniqueID(), FileIDFromDocument(&refreshed, FileKindDocument).UniqueID())
	assert.NotEqual(t, asDocument.String(), FileIDFromDocument(&refreshed, FileKindDocument).String())
}

func TestRLE(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		nil,
		{1, 2, 3},
		{0},
		{0, 0, 0, 5, 0},
		make([]byte, 600),
		append([]byte{9}, make([]byte, 255)...),
	}
	for _, input := range inputs {
		encoded := rleEncode(input)
		decoded, err := rleDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, len(input), len(decoded))
		for index := range input {
			require.Equal(t, input[index], decoded[index])
		}
	}

	_, err := rleDecode([]byte{1, 0})
	require.Error(t, err)
}

func TestUniqueFileIDCarriesVersion(t *testing.T) {
	t.Parallel()

	packed, err := base64.RawURLEncoding.DecodeString(UniqueFileID(UniqueDocument, 9, "m"))
	require.NoError(t, err)
	data, err := rleDecode(packed)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, uniqueIDVersion, data[0])
}

func TestStickerSetThumbWithoutSetEncodes(t *testing.T) {
	t.Parallel()

	id := FileIDFromStickerSetThumb(nil, 3, 2, 512)
	encoded := id.String()
	require.NotEmpty(t, encoded)

	decoded, err := DecodeFileID(encoded)
	require.NoError(t, err)
	assert.Equal(t, FileKindStickerSetThumbnail, decoded.Kind)
	assert.NotEmpty(t, decoded.UniqueID())
}
