package mtbot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// memoryPeerStore is a PeerStore backed by a map.
type memoryPeerStore struct {
	mu     sync.Mutex
	hashes map[int64]int64
	loads  int
}

func newMemoryPeerStore(hashes map[int64]int64) *memoryPeerStore {
	if hashes == nil {
		hashes = make(map[int64]int64)
	}

	return &memoryPeerStore{hashes: hashes}
}

func (s *memoryPeerStore) LoadAccessHash(_ context.Context, chatID int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++
	hash, ok := s.hashes[chatID]
	return hash, ok, nil
}

func (s *memoryPeerStore) StoreAccessHashes(_ context.Context, hashes map[int64]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for chatID, hash := range hashes {
		s.hashes[chatID] = hash
	}
	return nil
}

func (s *memoryPeerStore) hash(chatID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, ok := s.hashes[chatID]
	return hash, ok
}

func TestResolvePeerFromCache(t *testing.T) {
	t.Parallel()

	client, rpc := newTestClient(t, nil)

	peer, err := client.resolvePeer(context.Background(), "getChat", botapi.ID(testUserID))
	if err != nil {
		t.Fatalf("resolvePeer() error = %v", err)
	}
	if peer != testUserPeer {
		t.Fatalf("peer = %+v, want %+v", peer, testUserPeer)
	}
	if calls := rpc.recorded(); len(calls) != 0 {
		t.Fatalf("native calls = %d, want 0", len(calls))
	}
}

func TestResolvePeerFromStore(t *testing.T) {
	t.Parallel()

	const userID int64 = 99
	store := newMemoryPeerStore(map[int64]int64{userID: 555})
	client, rpc := newTestClient(t, nil, WithPeerStore(store))

	for range 2 {
		peer, err := client.resolvePeer(context.Background(), "getChat", botapi.ID(userID))
		if err != nil {
			t.Fatalf("resolvePeer() error = %v", err)
		}
		if peer.Kind != codec.PeerUser || peer.ID != userID || peer.AccessHash != 555 {
			t.Fatalf("peer = %+v", peer)
		}
	}
	if store.loads != 1 {
		t.Fatalf("store loads = %d, want 1 then a cache hit", store.loads)
	}
	if calls := rpc.recorded(); len(calls) != 0 {
		t.Fatalf("native calls = %d, want 0", len(calls))
	}
}

func TestResolvePeerFromNetwork(t *testing.T) {
	t.Parallel()

	const (
		userID    int64 = 99
		channelID int64 = 2000
	)

	store := newMemoryPeerStore(nil)
	client, rpc := newTestClient(t, func(input bin.Encoder) (bin.Encoder, error) {
		switch request := input.(type) {
		case *tg.UsersGetUsersRequest:
			return &tg.UserClassVector{Elems: []tg.UserClass{
				&tg.User{ID: userID, AccessHash: 31, FirstName: "Grace"},
			}}, nil
		case *tg.ChannelsGetChannelsRequest:
			return &tg.MessagesChats{Chats: []tg.ChatClass{
				&tg.Channel{ID: channelID, AccessHash: 44, Title: "Ops", Megagroup: true, Photo: &tg.ChatPhotoEmpty{}},
			}}, nil
		case *tg.ContactsResolveUsernameRequest:
			if request.Username != "grace" {
				return nil, tgerr.New(400, "USERNAME_NOT_OCCUPIED")
			}
			return &tg.ContactsResolvedPeer{
				Peer:  &tg.PeerUser{UserID: userID},
				Users: []tg.UserClass{&tg.User{ID: userID, AccessHash: 31, Username: "grace"}},
			}, nil
		default:
			return nil, errors.New("unexpected request")
		}
	}, WithPeerStore(store))

	user, err := client.resolvePeer(context.Background(), "getChat", botapi.ID(userID))
	if err != nil {
		t.Fatalf("resolvePeer(user) error = %v", err)
	}
	if user.AccessHash != 31 {
		t.Fatalf("user = %+v, want access hash 31", user)
	}
	if hash, ok := store.hash(userID); !ok || hash != 31 {
		t.Fatalf("stored hash = %d, %v; want 31", hash, ok)
	}

	chatID := codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChannel, ID: channelID})
	channel, err := client.resolvePeer(context.Background(), "getChat", botapi.ID(chatID))
	if err != nil {
		t.Fatalf("resolvePeer(channel) error = %v", err)
	}
	if channel.Kind != codec.PeerChannel || channel.AccessHash != 44 {
		t.Fatalf("channel = %+v, want access hash 44", channel)
	}

	byName, err := client.resolvePeer(context.Background(), "getChat", botapi.Username("@grace"))
	if err != nil {
		t.Fatalf("resolvePeer(username) error = %v", err)
	}
	if byName.ID != userID {
		t.Fatalf("username peer = %+v", byName)
	}

	if got := len(callsOf[*tg.UsersGetUsersRequest](rpc)); got != 1 {
		t.Fatalf("users.getUsers calls = %d, want 1", got)
	}
	if got := len(callsOf[*tg.ChannelsGetChannelsRequest](rpc)); got != 1 {
		t.Fatalf("channels.getChannels calls = %d, want 1", got)
	}
	resolves := callsOf[*tg.ContactsResolveUsernameRequest](rpc)
	if len(resolves) != 1 || resolves[0].Username != "grace" {
		t.Fatalf("contacts.resolveUsername calls = %+v", resolves)
	}
}

func TestResolvePeerLookupMissIsChatNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		chatID botapi.ChatID
		fault  string
	}{
		{name: "user", chatID: botapi.ID(99), fault: "USER_ID_INVALID"},
		{name: "channel", chatID: botapi.ID(-1000000002000), fault: "CHANNEL_INVALID"},
		{name: "username", chatID: botapi.Username("@nobody"), fault: "USERNAME_NOT_OCCUPIED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, rpc := newTestClient(t, func(bin.Encoder) (bin.Encoder, error) {
				return nil, tgerr.New(400, tt.fault)
			})

			err := client.SendChatAction(context.Background(), botapi.SendChatActionParams{
				ChatID: tt.chatID,
				Action: botapi.ChatActionTyping,
			})
			requestErr, ok := botapi.AsRequestError(err)
			if !ok {
				t.Fatalf("SendChatAction() error = %v, want *botapi.RequestError", err)
			}
			if requestErr.Code != 400 || requestErr.Description != "Bad Request: chat not found" {
				t.Fatalf("error = %d %q, want 400 chat not found", requestErr.Code, requestErr.Description)
			}
			if got := len(callsOf[*tg.MessagesSetTypingRequest](rpc)); got != 0 {
				t.Fatalf("setTyping calls = %d, want 0", got)
			}
		})
	}
}
