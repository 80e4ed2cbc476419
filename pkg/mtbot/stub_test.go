package mtbot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"
	"go.uber.org/goleak"

	"ex-mtbot/internal/codec"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	testUserID    int64 = 42
	testUserHash  int64 = 4242
	testChannelID int64 = 1500
	testChanHash  int64 = 9900
	testGroupID   int64 = 77
)

var (
	testUserPeer    = codec.Peer{Kind: codec.PeerUser, ID: testUserID, AccessHash: testUserHash}
	testChannelPeer = codec.Peer{Kind: codec.PeerChannel, ID: testChannelID, AccessHash: testChanHash}
	testGroupPeer   = codec.Peer{Kind: codec.PeerChat, ID: testGroupID}
)

// stubRPC answers native requests from a handler and records every call.
type stubRPC struct {
	mu      sync.Mutex
	calls   []bin.Encoder
	respond func(input bin.Encoder) (bin.Encoder, error)
}

func (s *stubRPC) Invoke(_ context.Context, input bin.Encoder, output bin.Decoder) error {
	s.mu.Lock()
	s.calls = append(s.calls, input)
	respond := s.respond
	s.mu.Unlock()

	if respond == nil {
		return fmt.Errorf("unexpected call %T", input)
	}
	result, err := respond(input)
	if err != nil {
		return err
	}

	var buf bin.Buffer
	if err := result.Encode(&buf); err != nil {
		return fmt.Errorf("encode stub result %T: %w", result, err)
	}

	return output.Decode(&buf)
}

func (s *stubRPC) recorded() []bin.Encoder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]bin.Encoder(nil), s.calls...)
}

// callsOf returns the recorded requests of type T.
func callsOf[T bin.Encoder](s *stubRPC) []T {
	var matched []T
	for _, call := range s.recorded() {
		if typed, ok := call.(T); ok {
			matched = append(matched, typed)
		}
	}

	return matched
}

func newTestClient(t *testing.T, respond func(input bin.Encoder) (bin.Encoder, error), options ...Option) (*Client, *stubRPC) {
	t.Helper()

	rpc := &stubRPC{respond: respond}
	defaults := []Option{WithLogger(slog.New(slog.DiscardHandler)), WithReplyResolution(false)}
	client, err := New(rpc, append(defaults, options...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.SetSelfID(1000)
	client.Peers().RememberPeer(testUserPeer)
	client.Peers().RememberPeer(testChannelPeer)
	client.Peers().RememberPeer(testGroupPeer)

	return client, rpc
}

func emptyUpdates() bin.Encoder {
	return &tg.Updates{}
}

func boolTrue() bin.Encoder {
	return &tg.BoolTrue{}
}
