package mtbot

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

func TestUnsupportedMethods(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, nil)
	ctx := context.Background()

	tests := map[string]func() error{
		"setWebhook":    func() error { return client.SetWebhook(ctx, botapi.SetWebhookParams{URL: "https://example.org"}) },
		"deleteWebhook": func() error { return client.DeleteWebhook(ctx, botapi.DeleteWebhookParams{}) },
		"logOut":        func() error { return client.LogOut(ctx) },
		"close":         func() error { return client.Close(ctx) },
	}
	for name, call := range tests {
		if err := call(); !errors.Is(err, botapi.ErrNotSupported) {
			t.Fatalf("%s error = %v, want ErrNotSupported", name, err)
		}
	}
	if calls := rpc.recorded(); len(calls) != 0 {
		t.Fatalf("native calls = %d, want 0", len(calls))
	}
}

func TestGetWebhookInfoReportsPending(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, nil)
	client.Updates().Push(messageUpdate("a"))
	client.Updates().Push(messageUpdate("b"))

	info, err := client.GetWebhookInfo(context.Background())
	if err != nil {
		t.Fatalf("GetWebhookInfo() error = %v", err)
	}
	if info.URL != "" || info.PendingUpdateCount != 2 {
		t.Fatalf("GetWebhookInfo() = %+v", info)
	}
}

func TestGetUpdatesValidatesLimit(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, nil)
	_, err := client.GetUpdates(context.Background(), botapi.GetUpdatesParams{Limit: 101})
	if !errors.Is(err, botapi.ErrInvalidParams) {
		t.Fatalf("GetUpdates() error = %v, want ErrInvalidParams", err)
	}
}

func TestGetMeRecordsSelf(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		if _, ok := input.(*tg.UsersGetUsersRequest); !ok {
			return nil, errors.New("unexpected request")
		}
		return &tg.UserClassVector{Elems: []tg.UserClass{
			&tg.User{ID: 555, Bot: true, FirstName: "Relay", Username: "relay_bot", Self: true},
		}}, nil
	})

	me, err := client.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error = %v", err)
	}
	if me.ID != 555 || !me.IsBot || me.Username != "relay_bot" {
		t.Fatalf("GetMe() = %+v", me)
	}
	if client.selfID.Load() != 555 {
		t.Fatalf("self id = %d, want 555", client.selfID.Load())
	}
}
