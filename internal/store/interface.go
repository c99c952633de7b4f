package store

import (
	"context"

	"github.com/stickervault/stickervault-server/internal/domain"
)

// StickerFilter narrows sticker queries. Empty fields match everything.
type StickerFilter struct {
	SeriesID  string
	StickerID string
}

// Store is the persistence contract for sticker metadata.
// Implementations surface uniqueness violations as ErrAlreadyExists and
// missing rows as ErrNotFound so callers can distinguish idempotent
// races from real failures.
type Store interface {
	// Series.
	CreateSeries(ctx context.Context, s *domain.Series) error
	GetSeries(ctx context.Context, id string) (*domain.Series, error)
	ListSeries(ctx context.Context) ([]*domain.Series, error)
	// EnsureSeries reads the series by id and inserts it if absent.
	// A duplicate insert lost to a concurrent ingestion is success.
	EnsureSeries(ctx context.Context, id string) (*domain.Series, error)

	// Stickers.
	CreateSticker(ctx context.Context, st *domain.Sticker) error
	GetSticker(ctx context.Context, id string) (*domain.Sticker, error)
	ListStickers(ctx context.Context, filter StickerFilter) ([]*domain.Sticker, error)

	// Tags.
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	// FindOrCreateTagByName finds an existing tag by name or creates
	// one with a fresh id. Returns (tag, created, error).
	FindOrCreateTagByName(ctx context.Context, name string) (*domain.Tag, bool, error)

	// Associations.
	AddStickerTag(ctx context.Context, stickerID, tagID string) error
	GetTagsForSticker(ctx context.Context, stickerID string) ([]*domain.Tag, error)

	Close() error
}
