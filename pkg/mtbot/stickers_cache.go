package mtbot

import (
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// StickerSetCache remembers the mime type of sticker sets by name so files
// added later are uploaded in the set's format.
//
// The cache is bounded; the least recently used set is evicted first.
type StickerSetCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewStickerSetCache creates a cache holding at most size sets.
func NewStickerSetCache(size int) *StickerSetCache {
	if size <= 0 {
		size = defaultStickerCacheSize
	}

	return &StickerSetCache{cache: lru.New(size)}
}

// Put records the mime type of set name. Empty values are ignored.
func (c *StickerSetCache) Put(name string, mimeType string) {
	if name == "" || mimeType == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(stickerSetKey(name), mimeType)
}

// Get returns the mime type recorded for set name.
func (c *StickerSetCache) Get(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.cache.Get(stickerSetKey(name))
	if !ok {
		return "", false
	}
	mimeType, ok := value.(string)

	return mimeType, ok
}

// Forget drops set name, for example after the set was deleted.
func (c *StickerSetCache) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Remove(stickerSetKey(name))
}

// Len returns the number of cached sets.
func (c *StickerSetCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Len()
}

func stickerSetKey(name string) string {
	return strings.ToLower(name)
}
