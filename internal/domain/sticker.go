package domain

import "time"

// Sticker is one image, identified by the SHA-256 hex digest of its bytes.
// The ID is content-addressed: re-uploading identical bytes yields the
// same ID. Path is wherever the storage backend put the bytes — a
// relative file path for local storage, a URL or retrieval route for
// object storage. Stickers are created once and never mutated.
type Sticker struct {
	ID        string    `json:"sticker_id"`
	Path      string    `json:"path"`
	SeriesID  string    `json:"series_id"`
	CreatedAt time.Time `json:"created_at"`
}
