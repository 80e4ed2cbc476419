package mtbot

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

func forumPeerOf(t *testing.T, peer tg.InputPeerClass) {
	t.Helper()

	channel, ok := peer.(*tg.InputPeerChannel)
	if !ok || channel.ChannelID != testChannelID || channel.AccessHash != testChanHash {
		t.Fatalf("peer = %#v, want channel %d", peer, testChannelID)
	}
}

func TestCreateForumTopic(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		request, ok := input.(*tg.MessagesCreateForumTopicRequest)
		if !ok {
			return nil, errors.New("unexpected request")
		}
		return &tg.Updates{
			Updates: []tg.UpdateClass{
				&tg.UpdateMessageID{ID: 31, RandomID: request.RandomID},
				&tg.UpdateNewChannelMessage{Message: &tg.MessageService{
					ID:     31,
					PeerID: &tg.PeerChannel{ChannelID: testChannelID},
					Date:   100,
					Action: &tg.MessageActionTopicCreate{Title: "Releases", IconColor: 0x6FB9F0},
				}},
			},
		}, nil
	})

	topic, err := client.CreateForumTopic(context.Background(), botapi.CreateForumTopicParams{
		ChatID:            botapi.ID(testChannelPeer.ChatID()),
		Name:              "Releases",
		IconColor:         0x6FB9F0,
		IconCustomEmojiID: "5000",
	})
	if err != nil {
		t.Fatalf("CreateForumTopic() error = %v", err)
	}
	if topic.MessageThreadID != 31 || topic.Name != "Releases" || topic.IconColor != 0x6FB9F0 {
		t.Fatalf("topic = %+v", topic)
	}

	calls := callsOf[*tg.MessagesCreateForumTopicRequest](rpc)
	if len(calls) != 1 {
		t.Fatalf("createForumTopic calls = %d, want 1", len(calls))
	}
	forumPeerOf(t, calls[0].Peer)
	if calls[0].Title != "Releases" || calls[0].IconEmojiID != 5000 || calls[0].RandomID == 0 {
		t.Fatalf("createForumTopic request = %+v", calls[0])
	}
}

func TestForumTopicEdits(t *testing.T) {
	t.Parallel()

	icon := "777"
	noIcon := ""
	chatID := botapi.ID(testChannelPeer.ChatID())
	topic := botapi.ForumTopicParams{ChatID: chatID, MessageThreadID: 12}
	chat := botapi.ChatParams{ChatID: chatID}

	tests := []struct {
		name   string
		call   func(ctx context.Context, client *Client) error
		verify func(t *testing.T, request *tg.MessagesEditForumTopicRequest)
	}{
		{
			name: "edit name and icon",
			call: func(ctx context.Context, client *Client) error {
				return client.EditForumTopic(ctx, botapi.EditForumTopicParams{
					ChatID: chatID, MessageThreadID: 12, Name: "Renamed", IconCustomEmojiID: &icon,
				})
			},
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				title, _ := request.GetTitle()
				emoji, _ := request.GetIconEmojiID()
				if request.TopicID != 12 || title != "Renamed" || emoji != 777 {
					t.Fatalf("request = %+v", request)
				}
			},
		},
		{
			name: "edit clears the icon",
			call: func(ctx context.Context, client *Client) error {
				return client.EditForumTopic(ctx, botapi.EditForumTopicParams{
					ChatID: chatID, MessageThreadID: 12, IconCustomEmojiID: &noIcon,
				})
			},
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				emoji, ok := request.GetIconEmojiID()
				if !ok || emoji != 0 {
					t.Fatalf("icon = %d, %v; want explicit zero", emoji, ok)
				}
				if _, ok := request.GetTitle(); ok {
					t.Fatalf("title set on an icon-only edit")
				}
			},
		},
		{
			name: "close",
			call: func(ctx context.Context, client *Client) error { return client.CloseForumTopic(ctx, topic) },
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				closed, ok := request.GetClosed()
				if request.TopicID != 12 || !ok || !closed {
					t.Fatalf("request = %+v", request)
				}
			},
		},
		{
			name: "reopen",
			call: func(ctx context.Context, client *Client) error { return client.ReopenForumTopic(ctx, topic) },
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				closed, ok := request.GetClosed()
				if request.TopicID != 12 || !ok || closed {
					t.Fatalf("request = %+v", request)
				}
			},
		},
		{
			name: "edit general",
			call: func(ctx context.Context, client *Client) error {
				return client.EditGeneralForumTopic(ctx, botapi.EditGeneralForumTopicParams{ChatID: chatID, Name: "Lobby"})
			},
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				if request.TopicID != generalTopicID || request.Title != "Lobby" {
					t.Fatalf("request = %+v", request)
				}
			},
		},
		{
			name: "close general",
			call: func(ctx context.Context, client *Client) error { return client.CloseGeneralForumTopic(ctx, chat) },
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				closed, ok := request.GetClosed()
				if request.TopicID != generalTopicID || !ok || !closed {
					t.Fatalf("request = %+v", request)
				}
			},
		},
		{
			name: "reopen general",
			call: func(ctx context.Context, client *Client) error { return client.ReopenGeneralForumTopic(ctx, chat) },
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				closed, ok := request.GetClosed()
				if request.TopicID != generalTopicID || !ok || closed {
					t.Fatalf("request = %+v", request)
				}
			},
		},
		{
			name: "hide general",
			call: func(ctx context.Context, client *Client) error { return client.HideGeneralForumTopic(ctx, chat) },
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				hidden, ok := request.GetHidden()
				if request.TopicID != generalTopicID || !ok || !hidden {
					t.Fatalf("request = %+v", request)
				}
			},
		},
		{
			name: "unhide general",
			call: func(ctx context.Context, client *Client) error { return client.UnhideGeneralForumTopic(ctx, chat) },
			verify: func(t *testing.T, request *tg.MessagesEditForumTopicRequest) {
				hidden, ok := request.GetHidden()
				if request.TopicID != generalTopicID || !ok || hidden {
					t.Fatalf("request = %+v", request)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
				if _, ok := input.(*tg.MessagesEditForumTopicRequest); ok {
					return emptyUpdates(), nil
				}
				return nil, errors.New("unexpected request")
			})
			if err := tt.call(context.Background(), client); err != nil {
				t.Fatalf("call error = %v", err)
			}

			calls := callsOf[*tg.MessagesEditForumTopicRequest](rpc)
			if len(calls) != 1 {
				t.Fatalf("editForumTopic calls = %d, want 1", len(calls))
			}
			forumPeerOf(t, calls[0].Peer)
			tt.verify(t, calls[0])
		})
	}
}

func TestDeleteForumTopicRepeatsUntilDone(t *testing.T) {
	t.Parallel()

	remaining := 2
	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		if _, ok := input.(*tg.MessagesDeleteTopicHistoryRequest); !ok {
			return nil, errors.New("unexpected request")
		}
		remaining--
		return &tg.MessagesAffectedHistory{Offset: remaining}, nil
	})

	err := client.DeleteForumTopic(context.Background(), botapi.ForumTopicParams{
		ChatID:          botapi.ID(testChannelPeer.ChatID()),
		MessageThreadID: 12,
	})
	if err != nil {
		t.Fatalf("DeleteForumTopic() error = %v", err)
	}

	calls := callsOf[*tg.MessagesDeleteTopicHistoryRequest](rpc)
	if len(calls) != 2 {
		t.Fatalf("deleteTopicHistory calls = %d, want 2", len(calls))
	}
	forumPeerOf(t, calls[0].Peer)
	if calls[0].TopMsgID != 12 {
		t.Fatalf("top message = %d, want 12", calls[0].TopMsgID)
	}
}

func TestUnpinAllForumTopicMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		call      func(ctx context.Context, client *Client) error
		wantTopic int
	}{
		{
			name: "topic",
			call: func(ctx context.Context, client *Client) error {
				return client.UnpinAllForumTopicMessages(ctx, botapi.ForumTopicParams{
					ChatID: botapi.ID(testChannelPeer.ChatID()), MessageThreadID: 12,
				})
			},
			wantTopic: 12,
		},
		{
			name: "general",
			call: func(ctx context.Context, client *Client) error {
				return client.UnpinAllGeneralForumTopicMessages(ctx, botapi.ChatParams{
					ChatID: botapi.ID(testChannelPeer.ChatID()),
				})
			},
			wantTopic: generalTopicID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
				if _, ok := input.(*tg.MessagesUnpinAllMessagesRequest); ok {
					return &tg.MessagesAffectedHistory{}, nil
				}
				return nil, errors.New("unexpected request")
			})
			if err := tt.call(context.Background(), client); err != nil {
				t.Fatalf("call error = %v", err)
			}

			calls := callsOf[*tg.MessagesUnpinAllMessagesRequest](rpc)
			if len(calls) != 1 {
				t.Fatalf("unpinAllMessages calls = %d, want 1", len(calls))
			}
			forumPeerOf(t, calls[0].Peer)
			if topic, ok := calls[0].GetTopMsgID(); !ok || topic != tt.wantTopic {
				t.Fatalf("top message = %d, %v; want %d", topic, ok, tt.wantTopic)
			}
		})
	}
}

func TestGetForumTopicIconStickers(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		if _, ok := input.(*tg.MessagesGetStickerSetRequest); ok {
			return &tg.MessagesStickerSet{Set: tg.StickerSet{ShortName: "topic_icons"}}, nil
		}
		return nil, errors.New("unexpected request")
	})

	if _, err := client.GetForumTopicIconStickers(context.Background()); err != nil {
		t.Fatalf("GetForumTopicIconStickers() error = %v", err)
	}

	calls := callsOf[*tg.MessagesGetStickerSetRequest](rpc)
	if len(calls) != 1 {
		t.Fatalf("getStickerSet calls = %d, want 1", len(calls))
	}
	if _, ok := calls[0].Stickerset.(*tg.InputStickerSetEmojiDefaultTopicIcons); !ok {
		t.Fatalf("sticker set = %T, want default topic icons", calls[0].Stickerset)
	}
}
