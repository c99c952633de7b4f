package domain

import "time"

// Series is a sticker pack: a named collection of stickers.
// A series row is created implicitly on first sticker insert and is
// never updated or deleted by this system.
type Series struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
