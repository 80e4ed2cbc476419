package mtbot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gotd/td/tgerr"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

func TestMapRPCError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		err             error
		wantCode        int
		wantKind        botapi.ErrorKind
		wantType        string
		wantDescription string
		wantRetryAfter  time.Duration
	}{
		{
			name:            "flood wait",
			err:             tgerr.New(420, "FLOOD_WAIT_17"),
			wantCode:        429,
			wantKind:        botapi.ErrorKindRateLimited,
			wantType:        "FLOOD_WAIT",
			wantDescription: "Too Many Requests: retry after 17",
			wantRetryAfter:  17 * time.Second,
		},
		{
			name:            "bad request",
			err:             fmt.Errorf("send message: %w", tgerr.New(400, "PEER_ID_INVALID")),
			wantCode:        400,
			wantKind:        botapi.ErrorKindPermanent,
			wantType:        "PEER_ID_INVALID",
			wantDescription: "Bad Request: PEER_ID_INVALID",
		},
		{
			name:            "forbidden",
			err:             tgerr.New(403, "CHAT_WRITE_FORBIDDEN"),
			wantCode:        403,
			wantKind:        botapi.ErrorKindPermanent,
			wantType:        "CHAT_WRITE_FORBIDDEN",
			wantDescription: "Forbidden: CHAT_WRITE_FORBIDDEN",
		},
		{
			name:            "server failure",
			err:             tgerr.New(500, "INTERNAL"),
			wantCode:        500,
			wantKind:        botapi.ErrorKindTemporary,
			wantType:        "INTERNAL",
			wantDescription: "Internal Server Error: INTERNAL",
		},
		{
			name:            "response without a message",
			err:             fmt.Errorf("sendMessage: %w", errNoMessage),
			wantCode:        500,
			wantKind:        botapi.ErrorKindUnknown,
			wantDescription: "Internal Server Error: response carries no message",
		},
		{
			name:            "transport failure",
			err:             errors.New("connection reset"),
			wantKind:        botapi.ErrorKindUnknown,
			wantDescription: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := mapRPCError("sendMessage", tt.err)
			requestErr, ok := botapi.AsRequestError(mapped)
			if !ok {
				t.Fatalf("mapRPCError() = %T, want *botapi.RequestError", mapped)
			}
			if requestErr.Method != "sendMessage" {
				t.Fatalf("method = %q", requestErr.Method)
			}
			if requestErr.Code != tt.wantCode || requestErr.Kind != tt.wantKind {
				t.Fatalf("code/kind = %d/%s, want %d/%s", requestErr.Code, requestErr.Kind, tt.wantCode, tt.wantKind)
			}
			if requestErr.Type != tt.wantType {
				t.Fatalf("type = %q, want %q", requestErr.Type, tt.wantType)
			}
			if requestErr.Description != tt.wantDescription {
				t.Fatalf("description = %q, want %q", requestErr.Description, tt.wantDescription)
			}
			if requestErr.RetryAfter != tt.wantRetryAfter {
				t.Fatalf("retry after = %s, want %s", requestErr.RetryAfter, tt.wantRetryAfter)
			}
			if !errors.Is(mapped, tt.err) {
				t.Fatal("mapped error must wrap the native cause")
			}
		})
	}
}

func TestMapRPCErrorPassesAdapterErrors(t *testing.T) {
	t.Parallel()

	tests := []error{
		fmt.Errorf("logOut: %w", botapi.ErrNotSupported),
		fmt.Errorf("bad: %w", botapi.ErrInvalidParams),
		codec.ErrInvalidFileID,
		ErrNotStarted,
		context.DeadlineExceeded,
	}
	for _, err := range tests {
		if got := mapRPCError("getChat", err); got != err {
			t.Fatalf("mapRPCError(%v) = %v, want unchanged", err, got)
		}
	}

	adapter := botapi.BadRequest("", "chat not found")
	got, ok := botapi.AsRequestError(mapRPCError("getChat", adapter))
	if !ok || got.Method != "getChat" || got.Description != "Bad Request: chat not found" {
		t.Fatalf("mapRPCError(BadRequest) = %+v", got)
	}
	if mapRPCError("getChat", nil) != nil {
		t.Fatal("mapRPCError(nil) must be nil")
	}
}

func TestIsUnchanged(t *testing.T) {
	t.Parallel()

	if !isUnchanged(fmt.Errorf("edit: %w", tgerr.New(400, "CHAT_ABOUT_NOT_MODIFIED"))) {
		t.Fatal("CHAT_ABOUT_NOT_MODIFIED must count as unchanged")
	}
	if isUnchanged(tgerr.New(400, "MESSAGE_NOT_MODIFIED")) {
		t.Fatal("MESSAGE_NOT_MODIFIED must surface to callers")
	}
	if isUnchanged(errors.New("CHAT_NOT_MODIFIED")) {
		t.Fatal("plain errors are never unchanged faults")
	}
}

func TestCallRejectsCanceledContext(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetMe(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("GetMe() error = %v, want context.Canceled", err)
	}
	if calls := rpc.recorded(); len(calls) != 0 {
		t.Fatalf("native calls = %d, want 0", len(calls))
	}
}

func TestGatedInvoker(t *testing.T) {
	t.Parallel()

	rpc := &stubRPC{}
	gate := &gatedInvoker{next: rpc}
	client, err := New(gate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.GetMe(context.Background())
	if !errors.Is(err, ErrNotStarted) {
		t.Fatalf("GetMe() before open error = %v, want ErrNotStarted", err)
	}
	if len(rpc.recorded()) != 0 {
		t.Fatal("closed gate must not reach the network")
	}

	gate.open()
	_, err = client.GetMe(context.Background())
	if errors.Is(err, ErrNotStarted) {
		t.Fatal("open gate must forward calls")
	}
	if len(rpc.recorded()) != 1 {
		t.Fatalf("native calls = %d, want 1", len(rpc.recorded()))
	}
}
