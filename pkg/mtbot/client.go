// Package mtbot forwards Bot API shaped calls to an MTProto client.
//
// Every exported method of Client is named after the Bot API method it
// implements, validates its parameters, resolves chat identifiers to native
// peers, performs the native RPC calls and projects the result back onto the
// types of package botapi.
package mtbot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gotd/td/crypto"
	"github.com/gotd/td/tg"

	"ex-mtbot/internal/mapper"
)

// Client is the request forwarder.
//
// A Client is safe for concurrent use. It owns the peer cache, the sticker
// set cache and the update queue; nothing is shared between clients.
type Client struct {
	api      *tg.Client
	cfg      clientConfig
	peers    *PeerCache
	stickers *StickerSetCache
	updates  *UpdateQueue
	metrics  *metrics
	rand     io.Reader
	selfID   atomic.Int64
}

// New creates a client forwarding calls through invoker.
func New(invoker tg.Invoker, options ...Option) (*Client, error) {
	if invoker == nil {
		return nil, fmt.Errorf("new mtbot client: nil invoker")
	}

	cfg := defaultClientConfig()
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}
	if cfg.rpcTimeout < 0 {
		return nil, fmt.Errorf("new mtbot client: rpc timeout must be >= 0")
	}

	client := &Client{
		api:      tg.NewClient(invoker),
		cfg:      cfg,
		peers:    NewPeerCache(),
		stickers: NewStickerSetCache(cfg.stickerCacheSize),
		metrics:  newMetrics(cfg.registerer),
		rand:     crypto.DefaultRand(),
	}

	client.updates = cfg.queue
	if client.updates == nil {
		client.updates = NewUpdateQueue(cfg.updateBuffer)
	}
	client.updates.attach(client)

	return client, nil
}

// API returns the raw native client for calls the forwarder does not cover.
func (c *Client) API() *tg.Client {
	return c.api
}

// Peers returns the peer cache.
func (c *Client) Peers() *PeerCache {
	return c.peers
}

// StickerSets returns the sticker set mime type cache.
func (c *Client) StickerSets() *StickerSetCache {
	return c.stickers
}

// Updates returns the update queue serving GetUpdates.
func (c *Client) Updates() *UpdateQueue {
	return c.updates
}

// SetSelfID records the bot user id used to recognise updates about the bot
// itself. GetMe records it as well.
func (c *Client) SetSelfID(id int64) {
	c.selfID.Store(id)
}

func (c *Client) newCollector() *mapper.Collector {
	return mapper.NewCollector(c.selfID.Load())
}

// bot is the input user of the bot account.
func (c *Client) bot() tg.InputUserClass {
	return &tg.InputUserSelf{}
}

// invoke runs fn as the implementation of method. It is the single boundary
// translating native faults into *botapi.RequestError.
func (c *Client) invoke(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	return c.call(ctx, method, false, fn)
}

// invokeIdempotent is invoke for calls whose "not modified" faults mean the
// requested state is already in place.
func (c *Client) invokeIdempotent(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	return c.call(ctx, method, true, fn)
}

func (c *Client) call(ctx context.Context, method string, idempotent bool, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	requestID := uuid.NewString()
	started := time.Now()

	rpcCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	err := fn(rpcCtx)
	elapsed := time.Since(started)

	status := statusSuccess
	switch {
	case err == nil:
	case idempotent && isUnchanged(err):
		status = statusUnchanged
		err = nil
	default:
		status = statusError
	}
	c.metrics.recordRequest(method, status, elapsed.Seconds())

	if err != nil {
		mapped := mapRPCError(method, err)
		c.logCall(ctx, slog.LevelWarn, method, requestID, elapsed, "error", mapped)
		return mapped
	}
	c.logCall(ctx, slog.LevelDebug, method, requestID, elapsed, "status", status)

	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.rpcTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.cfg.rpcTimeout)
}

func (c *Client) logCall(
	ctx context.Context,
	level slog.Level,
	method string,
	requestID string,
	elapsed time.Duration,
	attrs ...any,
) {
	if c.cfg.logger == nil {
		return
	}

	values := make([]any, 0, 6+len(attrs))
	values = append(values, "method", method, "request_id", requestID, "duration", elapsed)
	values = append(values, attrs...)
	c.cfg.logger.Log(ctx, level, "bot api call", values...)
}

func (c *Client) randomID() (int64, error) {
	id, err := crypto.RandInt64(c.rand)
	if err != nil {
		return 0, fmt.Errorf("generate random id: %w", err)
	}

	return id, nil
}

func (c *Client) randomIDs(count int) ([]int64, error) {
	ids := make([]int64, 0, count)
	for range count {
		id, err := c.randomID()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// remember feeds every peer of collector into the peer cache and the
// persistent store.
func (c *Client) remember(ctx context.Context, collector *mapper.Collector) {
	changed := c.peers.RememberCollector(collector)
	if len(changed) == 0 || c.cfg.peerStore == nil {
		return
	}
	if err := c.cfg.peerStore.StoreAccessHashes(ctx, changed); err != nil {
		c.cfg.logger.WarnContext(ctx, "store access hashes", "error", err, "count", len(changed))
	}
}

func (c *Client) collect(ctx context.Context, users []tg.UserClass, chats []tg.ChatClass) *mapper.Collector {
	collector := c.newCollector().Add(users, chats)
	c.remember(ctx, collector)

	return collector
}
