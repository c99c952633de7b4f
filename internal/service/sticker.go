// Package service holds the business logic between the HTTP API and
// the persistence/storage layers.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/stickervault/stickervault-server/internal/content"
	"github.com/stickervault/stickervault-server/internal/domain"
	domainerrors "github.com/stickervault/stickervault-server/internal/errors"
	"github.com/stickervault/stickervault-server/internal/storage"
	"github.com/stickervault/stickervault-server/internal/store"
	"github.com/stickervault/stickervault-server/internal/upload"
)

// StickerService orchestrates sticker ingestion and lookup.
type StickerService struct {
	store   store.Store
	backend storage.Backend
	logger  *slog.Logger
}

// NewStickerService creates a new sticker service.
func NewStickerService(store store.Store, backend storage.Backend, logger *slog.Logger) *StickerService {
	return &StickerService{
		store:   store,
		backend: backend,
		logger:  logger,
	}
}

// IngestBatch persists a validated upload batch into the target series,
// processing records in manifest order. Per record: hash the file's
// bytes into a content address, store the bytes, ensure the series row,
// insert the sticker, then link each declared tag in listed order.
//
// There is no batch rollback: a failure part-way leaves prior records
// durably persisted, and the first error is returned. Re-submitting is
// safe for storage and series/tag lookups (idempotent by content hash
// and name) but surfaces an already-ingested sticker as a conflict.
func (s *StickerService) IngestBatch(ctx context.Context, seriesID string, records []upload.Record, files []upload.File) error {
	byName := make(map[string]upload.File, len(files))
	for _, f := range files {
		byName[f.Name] = f
	}

	for _, rec := range records {
		// Presence is guaranteed by upload.ValidateFiles.
		f := byName[rec.FileName]

		id := content.Address(f.Data)

		location, err := s.backend.Store(ctx, f.Data, id, seriesID)
		if err != nil {
			s.logger.Error("storage write failed", "sticker_id", id, "series_id", seriesID, "error", err)
			return domainerrors.Wrapf(err, domainerrors.CodeInternal, "store image %s", rec.FileName)
		}

		if _, err := s.store.EnsureSeries(ctx, seriesID); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "ensure series")
		}

		sticker := &domain.Sticker{
			ID:        id,
			Path:      location,
			SeriesID:  seriesID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.CreateSticker(ctx, sticker); err != nil {
			if domainerrors.Is(err, store.ErrAlreadyExists) {
				// Identical content was ingested before. Surfaced, not
				// swallowed: callers wanting true dedup must pre-check.
				return domainerrors.Conflictf("sticker %s already ingested", id)
			}
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "create sticker")
		}

		for _, name := range rec.Tags {
			tag, _, err := s.store.FindOrCreateTagByName(ctx, name)
			if err != nil {
				return domainerrors.Wrapf(err, domainerrors.CodeInternal, "resolve tag %q", name)
			}
			err = s.store.AddStickerTag(ctx, sticker.ID, tag.ID)
			if err != nil && !domainerrors.Is(err, store.ErrAlreadyExists) {
				return domainerrors.Wrapf(err, domainerrors.CodeInternal, "link tag %q", name)
			}
		}

		s.logger.Info("sticker ingested", "sticker_id", id, "series_id", seriesID, "tags", len(rec.Tags))
	}

	return nil
}

// GetStickers returns stickers matching the filter.
func (s *StickerService) GetStickers(ctx context.Context, filter store.StickerFilter) ([]*domain.Sticker, error) {
	return s.store.ListStickers(ctx, filter)
}

// GetSticker returns a sticker by its content-addressed id.
func (s *StickerService) GetSticker(ctx context.Context, id string) (*domain.Sticker, error) {
	st, err := s.store.GetSticker(ctx, id)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("sticker %s not found", id)
	}
	return st, err
}

// FetchImage returns the stored bytes for a sticker.
// Returns a not-found domain error when no object exists at the
// content-derived key.
func (s *StickerService) FetchImage(ctx context.Context, seriesID, stickerID string) ([]byte, error) {
	data, err := s.backend.Retrieve(ctx, seriesID, stickerID)
	if domainerrors.Is(err, storage.ErrNotFound) {
		return nil, domainerrors.NotFoundf("sticker %s not found in series %s", stickerID, seriesID)
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "retrieve image")
	}
	return data, nil
}

// GetTagsForSticker returns the tags linked to a sticker.
func (s *StickerService) GetTagsForSticker(ctx context.Context, stickerID string) ([]*domain.Tag, error) {
	return s.store.GetTagsForSticker(ctx, stickerID)
}
