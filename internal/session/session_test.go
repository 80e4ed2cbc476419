package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	gotdsession "github.com/gotd/td/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "file default backend", cfg: Config{Path: "session.json"}},
		{name: "file without path", cfg: Config{Backend: "file"}, wantErr: true},
		{name: "sqlite", cfg: Config{Backend: "SQLite", Path: "mtbot.db"}},
		{name: "redis without addr", cfg: Config{Backend: "redis"}, wantErr: true},
		{name: "redis", cfg: Config{Backend: "redis", RedisAddr: "localhost:6379"}},
		{name: "unknown", cfg: Config{Backend: "etcd", Path: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	storage, err := Open(ctx, nil, Config{Backend: BackendFile, Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	_, err = storage.LoadSession(ctx)
	assert.True(t, errors.Is(err, gotdsession.ErrNotFound), "LoadSession() error = %v", err)

	require.NoError(t, storage.StoreSession(ctx, []byte(`{"Version":1}`)))
	data, err := storage.LoadSession(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Version":1}`, string(data))

	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, ok := PeerStoreOf(storage)
	assert.False(t, ok, "file storage must not persist peers")
}

func TestSQLiteSessionAndPeers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mtbot.db")
	storage, err := Open(ctx, slog.New(slog.DiscardHandler), Config{Backend: BackendSQLite, Path: path, Key: "alpha"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	_, err = storage.LoadSession(ctx)
	assert.ErrorIs(t, err, gotdsession.ErrNotFound)

	require.NoError(t, storage.StoreSession(ctx, []byte("first")))
	require.NoError(t, storage.StoreSession(ctx, []byte("second")))
	data, err := storage.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	peers, ok := PeerStoreOf(storage)
	require.True(t, ok)

	_, found, err := peers.LoadAccessHash(ctx, -1001234567890)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, peers.StoreAccessHashes(ctx, map[int64]int64{
		-1001234567890: 42,
		777:            -9,
	}))
	require.NoError(t, peers.StoreAccessHashes(ctx, map[int64]int64{777: 10}))

	hash, found, err := peers.LoadAccessHash(ctx, -1001234567890)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(42), hash)

	hash, found, err = peers.LoadAccessHash(ctx, 777)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(10), hash)
}

func TestSQLiteScopesRowsByKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	logger := slog.New(slog.DiscardHandler)

	alpha, err := OpenSQLite(ctx, logger, path, "alpha")
	require.NoError(t, err)
	require.NoError(t, alpha.StoreSession(ctx, []byte("alpha")))
	require.NoError(t, alpha.StoreAccessHashes(ctx, map[int64]int64{5: 1}))
	require.NoError(t, alpha.Close())

	beta, err := OpenSQLite(ctx, logger, path, "beta")
	require.NoError(t, err)
	t.Cleanup(func() { _ = beta.Close() })

	_, err = beta.LoadSession(ctx)
	assert.ErrorIs(t, err, gotdsession.ErrNotFound)
	_, found, err := beta.LoadAccessHash(ctx, 5)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("MTBOT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MTBOT_TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	storage, err := OpenRedis(ctx, addr, "", 0, "test-"+t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = storage.client.Del(ctx, storage.sessionKey(), storage.peersKey()).Err()
		_ = storage.Close()
	})

	_, err = storage.LoadSession(ctx)
	assert.ErrorIs(t, err, gotdsession.ErrNotFound)

	require.NoError(t, storage.StoreSession(ctx, []byte("payload")))
	data, err := storage.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, storage.StoreAccessHashes(ctx, map[int64]int64{-100500: 77}))
	hash, found, err := storage.LoadAccessHash(ctx, -100500)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(77), hash)
}

func TestRedisKeys(t *testing.T) {
	t.Parallel()

	storage := NewRedis(nil, "bot")
	assert.Equal(t, "mtbot:bot:session", storage.sessionKey())
	assert.Equal(t, "mtbot:bot:peers", storage.peersKey())
}
