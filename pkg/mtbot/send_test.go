package mtbot

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

func TestSendMessageShortSentMessage(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		if _, ok := input.(*tg.MessagesSendMessageRequest); ok {
			return &tg.UpdateShortSentMessage{Out: true, ID: 77, Date: 500}, nil
		}
		return nil, errors.New("unexpected request")
	})

	message, err := client.SendMessage(context.Background(), botapi.SendMessageParams{
		ChatID: botapi.ID(testUserID),
		Text:   "hi there",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if message.MessageID != 77 || message.Date != 500 || message.Text != "hi there" {
		t.Fatalf("message = %+v", message)
	}
	if message.Chat.ID != testUserID || message.Chat.Type != botapi.ChatTypePrivate {
		t.Fatalf("chat = %+v", message.Chat)
	}
	if message.From == nil || message.From.ID != 1000 {
		t.Fatalf("from = %+v, want the bot", message.From)
	}

	calls := callsOf[*tg.MessagesSendMessageRequest](rpc)
	if len(calls) != 1 {
		t.Fatalf("sendMessage calls = %d, want 1", len(calls))
	}
	peer, ok := calls[0].Peer.(*tg.InputPeerUser)
	if !ok || peer.UserID != testUserID || peer.AccessHash != testUserHash {
		t.Fatalf("peer = %#v", calls[0].Peer)
	}
}

func TestSendMessagePicksMessageByRandomID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		request, ok := input.(*tg.MessagesSendMessageRequest)
		if !ok {
			return nil, errors.New("unexpected request")
		}
		return &tg.Updates{Updates: []tg.UpdateClass{
			&tg.UpdateNewChannelMessage{Message: &tg.Message{
				ID: 5, PeerID: &tg.PeerChannel{ChannelID: testChannelID}, Message: "someone else",
			}},
			&tg.UpdateMessageID{ID: 6, RandomID: request.RandomID},
			&tg.UpdateNewChannelMessage{Message: &tg.Message{
				ID: 6, Out: true, PeerID: &tg.PeerChannel{ChannelID: testChannelID}, Message: request.Message,
			}},
		}}, nil
	})

	message, err := client.SendMessage(context.Background(), botapi.SendMessageParams{
		ChatID: botapi.ID(testChannelPeer.ChatID()),
		Text:   "mine",
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if message.MessageID != 6 || message.Text != "mine" {
		t.Fatalf("message = %+v, want id 6", message)
	}
}

func TestSendMediaGroupOrdersByRandomID(t *testing.T) {
	t.Parallel()

	photo := func(id int64) botapi.InputMedia {
		encoded := codec.FileIDFromPhoto(&tg.Photo{ID: id, AccessHash: id * 10, DCID: 2}, "x", 1024).String()
		return botapi.InputMedia{Type: botapi.InputMediaPhoto, Media: botapi.FileID(encoded), Caption: "photo"}
	}

	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		request, ok := input.(*tg.MessagesSendMultiMediaRequest)
		if !ok {
			return nil, errors.New("unexpected request")
		}
		first, second := request.MultiMedia[0].RandomID, request.MultiMedia[1].RandomID
		channel := &tg.PeerChannel{ChannelID: testChannelID}
		return &tg.Updates{Updates: []tg.UpdateClass{
			&tg.UpdateMessageID{ID: 51, RandomID: second},
			&tg.UpdateMessageID{ID: 50, RandomID: first},
			&tg.UpdateNewChannelMessage{Message: &tg.Message{ID: 51, PeerID: channel, Message: "second"}},
			&tg.UpdateNewChannelMessage{Message: &tg.Message{ID: 50, PeerID: channel, Message: "first"}},
		}}, nil
	})

	messages, err := client.SendMediaGroup(context.Background(), botapi.SendMediaGroupParams{
		ChatID: botapi.ID(testChannelPeer.ChatID()),
		Media:  []botapi.InputMedia{photo(300), photo(301)},
	})
	if err != nil {
		t.Fatalf("SendMediaGroup() error = %v", err)
	}
	if len(messages) != 2 || messages[0].MessageID != 50 || messages[1].MessageID != 51 {
		t.Fatalf("messages = %+v, want ids 50 then 51", messages)
	}

	calls := callsOf[*tg.MessagesSendMultiMediaRequest](rpc)
	if len(calls) != 1 || len(calls[0].MultiMedia) != 2 {
		t.Fatalf("sendMultiMedia calls = %+v", calls)
	}
	for index, item := range calls[0].MultiMedia {
		media, ok := item.Media.(*tg.InputMediaPhoto)
		if !ok {
			t.Fatalf("media[%d] = %T, want a stored photo", index, item.Media)
		}
		if id, _ := media.ID.(*tg.InputPhoto); id == nil || id.ID != int64(300+index) {
			t.Fatalf("media[%d] photo = %#v", index, media.ID)
		}
		if item.Message != "photo" {
			t.Fatalf("media[%d] caption = %q", index, item.Message)
		}
	}
	if got := len(callsOf[*tg.MessagesUploadMediaRequest](rpc)); got != 0 {
		t.Fatalf("uploadMedia calls = %d, want 0 for stored photos", got)
	}
}

func TestSendMessageWithoutCreatedMessage(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		if _, ok := input.(*tg.MessagesSendMessageRequest); ok {
			return emptyUpdates(), nil
		}
		return nil, errors.New("unexpected request")
	})

	_, err := client.SendMessage(context.Background(), botapi.SendMessageParams{
		ChatID: botapi.ID(testUserID),
		Text:   "lost",
	})
	requestErr, ok := botapi.AsRequestError(err)
	if !ok || requestErr.Code != 500 {
		t.Fatalf("SendMessage() error = %v, want a 500 request error", err)
	}
	if !errors.Is(err, errNoMessage) {
		t.Fatalf("SendMessage() error = %v, want errNoMessage cause", err)
	}
}
