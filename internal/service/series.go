package service

import (
	"context"
	"log/slog"

	"github.com/stickervault/stickervault-server/internal/domain"
	domainerrors "github.com/stickervault/stickervault-server/internal/errors"
	"github.com/stickervault/stickervault-server/internal/store"
)

// SeriesService handles series lookups.
type SeriesService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSeriesService creates a new series service.
func NewSeriesService(store store.Store, logger *slog.Logger) *SeriesService {
	return &SeriesService{store: store, logger: logger}
}

// ListSeries returns all series.
func (s *SeriesService) ListSeries(ctx context.Context) ([]*domain.Series, error) {
	return s.store.ListSeries(ctx)
}

// GetSeries returns a series by id.
func (s *SeriesService) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	series, err := s.store.GetSeries(ctx, id)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("series %s not found", id)
	}
	return series, err
}
