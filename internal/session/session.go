// Package session stores MTProto sessions and peer access hashes.
//
// Every backend implements the gotd session.Storage contract: LoadSession
// returns session.ErrNotFound until the first StoreSession.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gotdsession "github.com/gotd/td/session"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Storage is a session store owning external resources.
type Storage interface {
	gotdsession.Storage
	io.Closer
}

// Config selects and configures one backend.
type Config struct {
	Backend string `yaml:"backend" env:"MTBOT_SESSION_BACKEND"`
	// Path is the session file or the sqlite database path.
	Path string `yaml:"path" env:"MTBOT_SESSION_PATH"`
	// RedisAddr, RedisPassword and RedisDB address the redis server.
	RedisAddr     string `yaml:"redis_addr" env:"MTBOT_SESSION_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"MTBOT_SESSION_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"MTBOT_SESSION_REDIS_DB"`
	// Key namespaces the stored data, typically by bot name.
	Key string `yaml:"key" env:"MTBOT_SESSION_KEY"`
}

// Validate checks that the selected backend has its address.
func (c Config) Validate() error {
	switch c.backend() {
	case BackendFile, BackendSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("session path is required for %s backend", c.backend())
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("session redis_addr is required for redis backend")
		}
	default:
		return fmt.Errorf("unsupported session backend %q", c.Backend)
	}

	return nil
}

func (c Config) backend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Backend))
	if backend == "" {
		return BackendFile
	}

	return backend
}

func (c Config) key() string {
	if key := strings.TrimSpace(c.Key); key != "" {
		return key
	}

	return "default"
}

// Open builds the configured backend.
func Open(ctx context.Context, logger *slog.Logger, cfg Config) (Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		storage Storage
		err     error
	)
	switch cfg.backend() {
	case BackendSQLite:
		storage, err = OpenSQLite(ctx, logger, cfg.Path, cfg.key())
	case BackendRedis:
		storage, err = OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.key())
	default:
		storage, err = NewFile(cfg.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s session storage: %w", cfg.backend(), err)
	}

	return storage, nil
}

// PeerStore persists access hashes keyed by Bot API chat id.
type PeerStore interface {
	LoadAccessHash(ctx context.Context, chatID int64) (int64, bool, error)
	StoreAccessHashes(ctx context.Context, hashes map[int64]int64) error
}

// PeerStoreOf returns storage as a peer store when the backend persists
// access hashes.
func PeerStoreOf(storage Storage) (PeerStore, bool) {
	store, ok := storage.(PeerStore)

	return store, ok
}
