package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	gotdsession "github.com/gotd/td/session"
	"github.com/redis/go-redis/v9"
)

// Redis stores the session under one key and access hashes in one hash.
type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to a redis server and checks it answers.
func OpenRedis(ctx context.Context, addr string, password string, db int, name string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return NewRedis(client, name), nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, name string) *Redis {
	return &Redis{client: client, prefix: "mtbot:" + name}
}

func (r *Redis) sessionKey() string { return r.prefix + ":session" }
func (r *Redis) peersKey() string   { return r.prefix + ":peers" }

// LoadSession implements session.Storage.
func (r *Redis) LoadSession(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.sessionKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gotdsession.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", r.sessionKey(), err)
	}

	return data, nil
}

// StoreSession implements session.Storage.
func (r *Redis) StoreSession(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.sessionKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", r.sessionKey(), err)
	}

	return nil
}

// LoadAccessHash returns the stored access hash of a chat.
func (r *Redis) LoadAccessHash(ctx context.Context, chatID int64) (int64, bool, error) {
	hash, err := r.client.HGet(ctx, r.peersKey(), strconv.FormatInt(chatID, 10)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load access hash %d: %w", chatID, err)
	}

	return hash, true, nil
}

// StoreAccessHashes writes access hashes with one HSET.
func (r *Redis) StoreAccessHashes(ctx context.Context, hashes map[int64]int64) error {
	if len(hashes) == 0 {
		return nil
	}

	values := make(map[string]any, len(hashes))
	for chatID, hash := range hashes {
		values[strconv.FormatInt(chatID, 10)] = hash
	}
	if err := r.client.HSet(ctx, r.peersKey(), values).Err(); err != nil {
		return fmt.Errorf("store access hashes: %w", err)
	}

	return nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
