package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	gotdsession "github.com/gotd/td/session"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	name TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS peers (
	name TEXT NOT NULL,
	chat_id INTEGER NOT NULL,
	access_hash INTEGER NOT NULL,
	PRIMARY KEY (name, chat_id)
);
`

// SQLite stores the session and peer access hashes in one database.
type SQLite struct {
	db   *sql.DB
	name string
}

// OpenSQLite opens or creates the database at path. Rows are scoped by name
// so several bots can share one file.
func OpenSQLite(ctx context.Context, logger *slog.Logger, path string, name string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// modernc.org/sqlite serialises writers poorly across connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	var journalMode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode=WAL").Scan(&journalMode); err != nil {
		logger.Warn("failed to set WAL journal mode", "error", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		logger.Warn("failed to set busy timeout", "error", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}

	return &SQLite{db: db, name: name}, nil
}

// LoadSession implements session.Storage.
func (s *SQLite) LoadSession(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM sessions WHERE name = ?", s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gotdsession.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", s.name, err)
	}

	return data, nil
}

// StoreSession implements session.Storage.
func (s *SQLite) StoreSession(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.name, data)
	if err != nil {
		return fmt.Errorf("store session %s: %w", s.name, err)
	}

	return nil
}

// LoadAccessHash returns the stored access hash of a chat.
func (s *SQLite) LoadAccessHash(ctx context.Context, chatID int64) (int64, bool, error) {
	var hash int64
	err := s.db.QueryRowContext(ctx,
		"SELECT access_hash FROM peers WHERE name = ? AND chat_id = ?", s.name, chatID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load access hash %d: %w", chatID, err)
	}

	return hash, true, nil
}

// StoreAccessHashes upserts access hashes in one transaction.
func (s *SQLite) StoreAccessHashes(ctx context.Context, hashes map[int64]int64) error {
	if len(hashes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin access hash tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO peers (name, chat_id, access_hash) VALUES (?, ?, ?)
		ON CONFLICT(name, chat_id) DO UPDATE SET access_hash = excluded.access_hash`)
	if err != nil {
		return fmt.Errorf("prepare access hash upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for chatID, hash := range hashes {
		if _, err := stmt.ExecContext(ctx, s.name, chatID, hash); err != nil {
			return fmt.Errorf("store access hash %d: %w", chatID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit access hashes: %w", err)
	}

	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
