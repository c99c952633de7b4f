package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stickervault/stickervault-server/internal/domain"
	"github.com/stickervault/stickervault-server/internal/store"
)

// makeTestSticker creates a sticker in a fresh series.
func makeTestSticker(t *testing.T, s *Store, id, seriesID string) *domain.Sticker {
	t.Helper()
	ctx := context.Background()

	if _, err := s.EnsureSeries(ctx, seriesID); err != nil {
		t.Fatalf("EnsureSeries: %v", err)
	}

	st := &domain.Sticker{
		ID:        id,
		Path:      "ab/" + id + ".png",
		SeriesID:  seriesID,
		CreatedAt: time.Now(),
	}
	if err := s.CreateSticker(ctx, st); err != nil {
		t.Fatalf("CreateSticker: %v", err)
	}
	return st
}

func TestCreateAndGetSticker(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := makeTestSticker(t, s, "hash-1", "pack-1")

	got, err := s.GetSticker(ctx, "hash-1")
	if err != nil {
		t.Fatalf("GetSticker: %v", err)
	}
	if got.ID != want.ID || got.Path != want.Path || got.SeriesID != want.SeriesID {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCreateSticker_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st := makeTestSticker(t, s, "hash-dup", "pack-1")

	err := s.CreateSticker(ctx, st)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetSticker_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSticker(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListStickers_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestSticker(t, s, "h1", "pack-a")
	makeTestSticker(t, s, "h2", "pack-a")
	makeTestSticker(t, s, "h3", "pack-b")

	// No filter: everything.
	all, err := s.ListStickers(ctx, store.StickerFilter{})
	if err != nil {
		t.Fatalf("ListStickers: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all: len = %d, want 3", len(all))
	}

	// By series.
	packA, err := s.ListStickers(ctx, store.StickerFilter{SeriesID: "pack-a"})
	if err != nil {
		t.Fatalf("ListStickers pack-a: %v", err)
	}
	if len(packA) != 2 {
		t.Errorf("pack-a: len = %d, want 2", len(packA))
	}

	// By sticker id.
	one, err := s.ListStickers(ctx, store.StickerFilter{StickerID: "h3"})
	if err != nil {
		t.Fatalf("ListStickers h3: %v", err)
	}
	if len(one) != 1 || one[0].SeriesID != "pack-b" {
		t.Errorf("h3: got %+v", one)
	}

	// Both filters, no match.
	none, err := s.ListStickers(ctx, store.StickerFilter{SeriesID: "pack-a", StickerID: "h3"})
	if err != nil {
		t.Fatalf("ListStickers combined: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("combined: len = %d, want 0", len(none))
	}
}
