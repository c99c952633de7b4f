package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/stickervault/stickervault-server/internal/content"
)

// Local stores sticker bytes on the local filesystem.
// Layout: {basePath}/{first 5 hex chars of id}/{id}.png. The shard
// directory is created lazily on first write. Thread-safe.
type Local struct {
	basePath string
	mu       sync.RWMutex
}

// NewLocal creates a local backend rooted at basePath.
// The root directory is created if absent.
func NewLocal(basePath string) (*Local, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Local{basePath: basePath}, nil
}

// Store writes data under the content-derived key and returns the path
// relative to the storage root. seriesID does not participate in the
// local layout; the content address alone locates the file.
func (l *Local) Store(_ context.Context, data []byte, id, _ string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("id cannot be empty")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("data cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	dir := filepath.Join(l.basePath, content.Prefix(id))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create shard directory: %w", err)
	}

	name := id + ".png"
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filepath.Join(content.Prefix(id), name), nil
}

// Retrieve reads the bytes stored for id.
// Returns ErrNotFound when no file exists at the derived key.
func (l *Local) Retrieve(_ context.Context, _, id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	path := filepath.Join(l.basePath, content.Prefix(id), id+".png")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return data, nil
}
