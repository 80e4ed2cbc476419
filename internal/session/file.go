package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gotdsession "github.com/gotd/td/session"
)

// File stores the session in a JSON file.
type File struct {
	storage *gotdsession.FileStorage
}

// NewFile creates a file store, creating the parent directory when needed.
func NewFile(path string) (*File, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, fmt.Errorf("new file session storage: empty path")
	}

	absPath, err := filepath.Abs(trimmedPath)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute session file path: %w", err)
	}
	sessionDir := filepath.Dir(absPath)
	if err := os.MkdirAll(sessionDir, 0o700); err != nil {
		return nil, fmt.Errorf("create session directory %s: %w", sessionDir, err)
	}

	return &File{storage: &gotdsession.FileStorage{Path: absPath}}, nil
}

// Path returns the absolute session file path.
func (f *File) Path() string {
	return f.storage.Path
}

// LoadSession implements session.Storage.
func (f *File) LoadSession(ctx context.Context) ([]byte, error) {
	return f.storage.LoadSession(ctx)
}

// StoreSession implements session.Storage.
func (f *File) StoreSession(ctx context.Context, data []byte) error {
	return f.storage.StoreSession(ctx, data)
}

// Close is a no-op.
func (f *File) Close() error {
	return nil
}
