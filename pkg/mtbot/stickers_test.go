package mtbot

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

func TestStickerSetCache(t *testing.T) {
	t.Parallel()

	cache := NewStickerSetCache(2)
	cache.Put("Cats", "image/webp")
	cache.Put("dogs", "video/webm")
	cache.Put("", "image/webp")
	cache.Put("empty", "")

	if got, ok := cache.Get("cats"); !ok || got != "image/webp" {
		t.Fatalf("Get(cats) = %q, %v", got, ok)
	}

	cache.Put("birds", "application/x-tgsticker")
	if _, ok := cache.Get("dogs"); ok {
		t.Fatal("least recently used set must be evicted")
	}
	if _, ok := cache.Get("CATS"); !ok {
		t.Fatal("recently used set must survive eviction")
	}
	if cache.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cache.Len())
	}

	cache.Forget("Birds")
	if _, ok := cache.Get("birds"); ok {
		t.Fatal("Forget() must drop the set")
	}
}

func TestAddStickerToSetLoadsSetFormatOnce(t *testing.T) {
	t.Parallel()

	stickerSet := &tg.MessagesStickerSet{
		Set:       tg.StickerSet{ID: 1, AccessHash: 2, Title: "Pack", ShortName: "Pack_by_relay_bot"},
		Documents: []tg.DocumentClass{&tg.Document{ID: 10, AccessHash: 11, MimeType: "video/webm", DCID: 2}},
	}
	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		switch input.(type) {
		case *tg.MessagesGetStickerSetRequest:
			return stickerSet, nil
		case *tg.MessagesUploadMediaRequest:
			return &tg.MessageMediaDocument{Document: &tg.Document{
				ID:            20,
				AccessHash:    21,
				FileReference: []byte{1},
				MimeType:      "video/webm",
				DCID:          2,
			}}, nil
		case *tg.StickersAddStickerToSetRequest:
			return stickerSet, nil
		default:
			return nil, errors.New("unexpected request")
		}
	})

	params := botapi.AddStickerToSetParams{
		UserID: testUserID,
		Name:   "pack_by_relay_bot",
		Sticker: botapi.InputSticker{
			Sticker:   botapi.InputFile{URL: "https://example.org/sticker.webm"},
			Format:    botapi.StickerFormatVideo,
			EmojiList: []string{"🙂", "🙃"},
			Keywords:  []string{"smile", "flip"},
		},
	}
	for range 2 {
		if err := client.AddStickerToSet(context.Background(), params); err != nil {
			t.Fatalf("AddStickerToSet() error = %v", err)
		}
	}

	if got := len(callsOf[*tg.MessagesGetStickerSetRequest](rpc)); got != 1 {
		t.Fatalf("getStickerSet calls = %d, want 1", got)
	}
	added := callsOf[*tg.StickersAddStickerToSetRequest](rpc)
	if len(added) != 2 {
		t.Fatalf("addStickerToSet calls = %d, want 2", len(added))
	}
	item := added[0].Sticker
	document, ok := item.Document.(*tg.InputDocument)
	if !ok || document.ID != 20 || document.AccessHash != 21 {
		t.Fatalf("sticker document = %#v", item.Document)
	}
	if item.Emoji != "🙂🙃" {
		t.Fatalf("emoji = %q", item.Emoji)
	}
	if keywords, ok := item.GetKeywords(); !ok || keywords != "smile,flip" {
		t.Fatalf("keywords = %q, %v", keywords, ok)
	}
	if mime, ok := client.StickerSets().Get("PACK_BY_RELAY_BOT"); !ok || mime != "video/webm" {
		t.Fatalf("cached mime = %q, %v", mime, ok)
	}
}

func TestDeleteStickerSetForgetsFormat(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		if _, ok := input.(*tg.StickersDeleteStickerSetRequest); ok {
			return boolTrue(), nil
		}
		return nil, errors.New("unexpected request")
	})
	client.StickerSets().Put("old_by_relay_bot", "image/webp")

	if err := client.DeleteStickerSet(context.Background(), botapi.StickerSetParams{Name: "old_by_relay_bot"}); err != nil {
		t.Fatalf("DeleteStickerSet() error = %v", err)
	}
	if _, ok := client.StickerSets().Get("old_by_relay_bot"); ok {
		t.Fatal("deleted set must leave the cache")
	}
}

func TestGetCustomEmojiStickersRejectsBadIDs(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, nil)
	_, err := client.GetCustomEmojiStickers(context.Background(), botapi.GetCustomEmojiStickersParams{
		CustomEmojiIDs: []string{"12", "not-a-number"},
	})
	if !errors.Is(err, botapi.ErrInvalidParams) {
		t.Fatalf("GetCustomEmojiStickers() error = %v, want ErrInvalidParams", err)
	}
	if len(rpc.recorded()) != 0 {
		t.Fatal("invalid ids must not reach the network")
	}
}
