package domain

import "time"

// Tag labels stickers for search and grouping. Names are globally
// unique; a tag is created on first use of a new name and reused
// thereafter.
type Tag struct {
	ID        string    `json:"tag_id"`
	Name      string    `json:"tag_name"`
	CreatedAt time.Time `json:"created_at"`
}

// StickerTag is the many-to-many association between stickers and tags.
// A row exists iff the sticker's manifest record listed the tag at
// ingestion time.
type StickerTag struct {
	StickerID string `json:"sticker_id"`
	TagID     string `json:"tag_id"`
}
