// Package storage persists sticker image bytes under content-derived
// keys. Two backends exist: local filesystem and S3-compatible object
// storage. The backend is selected by configuration at startup and
// injected wherever bytes need to be stored or served.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Retrieve when no object exists at the
// key derived from the given series and sticker id.
var ErrNotFound = errors.New("stored object not found")

// Backend stores and retrieves sticker image bytes.
// Store persists data under a key derived from the content address id
// and returns the location callers should record: a relative path for
// the local backend, a URL or retrieval route for the object backend.
type Backend interface {
	Store(ctx context.Context, data []byte, id, seriesID string) (string, error)
	Retrieve(ctx context.Context, seriesID, id string) ([]byte, error)
}
