package mtbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/gotd/td/tg"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultStickerCacheSize = 256
	defaultUpdateBuffer     = 4096
)

// DCDialer opens an invoker bound to one data center. It is used for inline
// message edits that must run on the DC owning the message.
type DCDialer func(ctx context.Context, dc int) (tg.Invoker, error)

type clientConfig struct {
	logger           *slog.Logger
	rpcTimeout       time.Duration
	registerer       prometheus.Registerer
	stickerCacheSize int
	updateBuffer     int
	resolveReplies   bool
	peerStore        PeerStore
	dialDC           DCDialer
	queue            *UpdateQueue
}

func defaultClientConfig() clientConfig {
	return clientConfig{
		logger:           slog.Default(),
		stickerCacheSize: defaultStickerCacheSize,
		updateBuffer:     defaultUpdateBuffer,
		resolveReplies:   true,
	}
}

// Option mutates client configuration.
type Option func(*clientConfig)

// WithLogger sets the structured logger used for forwarded calls and updates.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRPCTimeout bounds every forwarded RPC. Zero disables the bound.
func WithRPCTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.rpcTimeout = timeout
	}
}

// WithMetrics registers request metrics on registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(cfg *clientConfig) {
		cfg.registerer = registerer
	}
}

// WithStickerCacheSize bounds the sticker set mime type cache.
func WithStickerCacheSize(size int) Option {
	return func(cfg *clientConfig) {
		if size > 0 {
			cfg.stickerCacheSize = size
		}
	}
}

// WithUpdateBuffer bounds the number of pending updates kept for GetUpdates.
func WithUpdateBuffer(size int) Option {
	return func(cfg *clientConfig) {
		if size > 0 {
			cfg.updateBuffer = size
		}
	}
}

// WithReplyResolution toggles loading the message an incoming message
// replies to.
func WithReplyResolution(enabled bool) Option {
	return func(cfg *clientConfig) {
		cfg.resolveReplies = enabled
	}
}

// WithPeerStore persists access hashes beyond the lifetime of the client.
func WithPeerStore(store PeerStore) Option {
	return func(cfg *clientConfig) {
		cfg.peerStore = store
	}
}

// WithDCDialer sets the dialer used to reach other data centers.
func WithDCDialer(dialer DCDialer) Option {
	return func(cfg *clientConfig) {
		cfg.dialDC = dialer
	}
}

// WithUpdateQueue makes the client serve GetUpdates from queue. The queue is
// typically created before the underlying client so it can be installed as
// its update handler.
func WithUpdateQueue(queue *UpdateQueue) Option {
	return func(cfg *clientConfig) {
		cfg.queue = queue
	}
}
