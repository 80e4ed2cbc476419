package mtbot

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"ex-mtbot/pkg/botapi"
)

func TestUnbanChatMember(t *testing.T) {
	t.Parallel()

	banned := &tg.ChannelParticipantBanned{
		Peer:         &tg.PeerUser{UserID: testUserID},
		KickedBy:     1000,
		BannedRights: tg.ChatBannedRights{ViewMessages: true},
	}
	member := &tg.ChannelParticipant{UserID: testUserID}

	tests := []struct {
		name         string
		chatID       int64
		onlyIfBanned bool
		participant  tg.ChannelParticipantClass
		lookupErr    error
		wantLookups  int
		wantEdits    []bool
	}{
		{
			name:      "basic group is a no-op",
			chatID:    testGroupPeer.ChatID(),
			wantEdits: nil,
		},
		{
			name:         "only if banned on a member",
			chatID:       testChannelPeer.ChatID(),
			onlyIfBanned: true,
			participant:  member,
			wantLookups:  1,
			wantEdits:    nil,
		},
		{
			name:         "only if banned on a non participant",
			chatID:       testChannelPeer.ChatID(),
			onlyIfBanned: true,
			lookupErr:    tgerr.New(400, "USER_NOT_PARTICIPANT"),
			wantLookups:  1,
			wantEdits:    nil,
		},
		{
			name:         "only if banned on a banned user",
			chatID:       testChannelPeer.ChatID(),
			onlyIfBanned: true,
			participant:  banned,
			wantLookups:  1,
			wantEdits:    []bool{false},
		},
		{
			name:      "default removes then unbans",
			chatID:    testChannelPeer.ChatID(),
			wantEdits: []bool{true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
				switch input.(type) {
				case *tg.ChannelsGetParticipantRequest:
					if tt.lookupErr != nil {
						return nil, tt.lookupErr
					}
					return &tg.ChannelsChannelParticipant{Participant: tt.participant}, nil
				case *tg.ChannelsEditBannedRequest:
					return emptyUpdates(), nil
				default:
					return nil, errors.New("unexpected request")
				}
			})

			err := client.UnbanChatMember(context.Background(), botapi.UnbanChatMemberParams{
				ChatID:       botapi.ID(tt.chatID),
				UserID:       testUserID,
				OnlyIfBanned: tt.onlyIfBanned,
			})
			if err != nil {
				t.Fatalf("UnbanChatMember() error = %v", err)
			}

			if got := len(callsOf[*tg.ChannelsGetParticipantRequest](rpc)); got != tt.wantLookups {
				t.Fatalf("getParticipant calls = %d, want %d", got, tt.wantLookups)
			}
			edits := callsOf[*tg.ChannelsEditBannedRequest](rpc)
			if len(edits) != len(tt.wantEdits) {
				t.Fatalf("editBanned calls = %d, want %d", len(edits), len(tt.wantEdits))
			}
			for index, edit := range edits {
				if edit.BannedRights.ViewMessages != tt.wantEdits[index] {
					t.Fatalf("editBanned[%d] view_messages = %v, want %v",
						index, edit.BannedRights.ViewMessages, tt.wantEdits[index])
				}
			}
		})
	}
}

func TestUnbanChatMemberSurfacesPartialFailure(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		edit, ok := input.(*tg.ChannelsEditBannedRequest)
		if !ok {
			return nil, errors.New("unexpected request")
		}
		if edit.BannedRights.ViewMessages {
			return emptyUpdates(), nil
		}
		return nil, tgerr.New(400, "CHAT_ADMIN_REQUIRED")
	})

	err := client.UnbanChatMember(context.Background(), botapi.UnbanChatMemberParams{
		ChatID: botapi.ID(testChannelPeer.ChatID()),
		UserID: testUserID,
	})
	requestErr, ok := botapi.AsRequestError(err)
	if !ok {
		t.Fatalf("UnbanChatMember() error = %v, want RequestError", err)
	}
	if requestErr.Description != "Bad Request: CHAT_ADMIN_REQUIRED" {
		t.Fatalf("description = %q", requestErr.Description)
	}
	if got := len(callsOf[*tg.ChannelsEditBannedRequest](rpc)); got != 2 {
		t.Fatalf("editBanned calls = %d, want 2", got)
	}
}

func TestChatJoinRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		call         func(client *Client, params botapi.ChatMemberParams) error
		wantApproved bool
	}{
		{
			name: "approve",
			call: func(client *Client, params botapi.ChatMemberParams) error {
				return client.ApproveChatJoinRequest(context.Background(), params)
			},
			wantApproved: true,
		},
		{
			name: "decline",
			call: func(client *Client, params botapi.ChatMemberParams) error {
				return client.DeclineChatJoinRequest(context.Background(), params)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
				if _, ok := input.(*tg.MessagesHideChatJoinRequestRequest); ok {
					return emptyUpdates(), nil
				}
				return nil, errors.New("unexpected request")
			})

			err := tt.call(client, botapi.ChatMemberParams{ChatID: botapi.ID(testChannelPeer.ChatID()), UserID: testUserID})
			if err != nil {
				t.Fatalf("join request error = %v", err)
			}

			calls := callsOf[*tg.MessagesHideChatJoinRequestRequest](rpc)
			if len(calls) != 1 {
				t.Fatalf("hideChatJoinRequest calls = %d, want 1", len(calls))
			}
			if calls[0].Approved != tt.wantApproved {
				t.Fatalf("approved = %v, want %v", calls[0].Approved, tt.wantApproved)
			}
			user, ok := calls[0].UserID.(*tg.InputUser)
			if !ok || user.UserID != testUserID || user.AccessHash != testUserHash {
				t.Fatalf("user = %#v", calls[0].UserID)
			}
		})
	}
}

func TestUnchangedFaults(t *testing.T) {
	t.Parallel()

	notModified := func(bin.Encoder) (bin.Encoder, error) {
		return nil, tgerr.New(400, "CHAT_NOT_MODIFIED")
	}

	t.Run("swallowed by idempotent operations", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, notModified)
		err := client.SetChatTitle(context.Background(), botapi.SetChatTitleParams{
			ChatID: botapi.ID(testChannelPeer.ChatID()),
			Title:  "same",
		})
		if err != nil {
			t.Fatalf("SetChatTitle() error = %v, want nil", err)
		}
	})

	t.Run("surfaced by other operations", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, notModified)
		err := client.PinChatMessage(context.Background(), botapi.PinChatMessageParams{
			ChatID:    botapi.ID(testChannelPeer.ChatID()),
			MessageID: 10,
		})
		requestErr, ok := botapi.AsRequestError(err)
		if !ok {
			t.Fatalf("PinChatMessage() error = %v, want RequestError", err)
		}
		if requestErr.Type != "CHAT_NOT_MODIFIED" || requestErr.Method != "pinChatMessage" {
			t.Fatalf("request error = %+v", requestErr)
		}
	})
}

func TestBanChatMemberBasicGroupKicks(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		if _, ok := input.(*tg.MessagesDeleteChatUserRequest); ok {
			return emptyUpdates(), nil
		}
		return nil, errors.New("unexpected request")
	})

	err := client.BanChatMember(context.Background(), botapi.BanChatMemberParams{
		ChatID:         botapi.ID(testGroupPeer.ChatID()),
		UserID:         testUserID,
		RevokeMessages: true,
	})
	if err != nil {
		t.Fatalf("BanChatMember() error = %v", err)
	}

	calls := callsOf[*tg.MessagesDeleteChatUserRequest](rpc)
	if len(calls) != 1 || calls[0].ChatID != testGroupID || !calls[0].RevokeHistory {
		t.Fatalf("deleteChatUser calls = %+v", calls)
	}
}

func TestChannelOnlyMethodsRejectGroups(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, nil)
	err := client.CloseForumTopic(context.Background(), botapi.ForumTopicParams{
		ChatID:          botapi.ID(testGroupPeer.ChatID()),
		MessageThreadID: 5,
	})
	requestErr, ok := botapi.AsRequestError(err)
	if !ok || requestErr.Code != 400 {
		t.Fatalf("CloseForumTopic() error = %v, want 400", err)
	}
	if calls := rpc.recorded(); len(calls) != 0 {
		t.Fatalf("native calls = %d, want 0", len(calls))
	}
}
