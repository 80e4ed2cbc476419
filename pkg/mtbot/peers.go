package mtbot

import (
	"context"
	"strings"
	"sync"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
)

// PeerStore persists access hashes keyed by Bot API chat id.
type PeerStore interface {
	LoadAccessHash(ctx context.Context, chatID int64) (int64, bool, error)
	StoreAccessHashes(ctx context.Context, hashes map[int64]int64) error
}

// PeerCache stores native peers discovered from responses and updates.
//
// It is used to resolve Bot API chat identifiers and usernames back into
// input peers carrying their access hash.
type PeerCache struct {
	mu         sync.RWMutex
	byChatID   map[int64]codec.Peer
	byUsername map[string]int64
}

// NewPeerCache creates an empty, concurrency-safe peer cache.
func NewPeerCache() *PeerCache {
	return &PeerCache{
		byChatID:   make(map[int64]codec.Peer),
		byUsername: make(map[string]int64),
	}
}

// RememberCollector ingests every peer indexed by collector and returns the
// access hashes that were new or changed.
func (c *PeerCache) RememberCollector(collector *mapper.Collector) map[int64]int64 {
	if c == nil || collector == nil {
		return nil
	}

	hashes := collector.AccessHashes()
	usernames := collector.Usernames()

	c.mu.Lock()
	defer c.mu.Unlock()

	changed := make(map[int64]int64)
	for chatID, hash := range hashes {
		peer, err := codec.PeerFromChatID(chatID)
		if err != nil {
			continue
		}
		peer.AccessHash = hash
		if existing, ok := c.byChatID[chatID]; ok && existing == peer {
			continue
		}
		c.byChatID[chatID] = peer
		changed[chatID] = hash
	}
	for name, chatID := range usernames {
		c.byUsername[name] = chatID
	}

	return changed
}

// RememberPeer stores one explicit peer.
func (c *PeerCache) RememberPeer(peer codec.Peer) {
	if c == nil || peer.IsZero() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byChatID[peer.ChatID()] = peer
}

// RememberUsername maps a public username to a chat id.
func (c *PeerCache) RememberUsername(username string, chatID int64) {
	if c == nil || username == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUsername[normalizeUsername(username)] = chatID
}

// Lookup returns the cached peer of chatID.
func (c *PeerCache) Lookup(chatID int64) (codec.Peer, bool) {
	if c == nil {
		return codec.Peer{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	peer, ok := c.byChatID[chatID]

	return peer, ok
}

// LookupUsername returns the cached peer registered under username.
func (c *PeerCache) LookupUsername(username string) (codec.Peer, bool) {
	if c == nil {
		return codec.Peer{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	chatID, ok := c.byUsername[normalizeUsername(username)]
	if !ok {
		return codec.Peer{}, false
	}
	peer, ok := c.byChatID[chatID]

	return peer, ok
}

// Len returns the number of cached peers.
func (c *PeerCache) Len() int {
	if c == nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byChatID)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(username), "@"))
}
