package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stickervault/stickervault-server/internal/domain"
	"github.com/stickervault/stickervault-server/internal/store"
)

func TestCreateAndGetSeries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	series := &domain.Series{ID: "pack-1", CreatedAt: time.Now()}
	if err := s.CreateSeries(ctx, series); err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}

	got, err := s.GetSeries(ctx, "pack-1")
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if got.ID != "pack-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "pack-1")
	}
	if got.CreatedAt.Unix() != series.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, series.CreatedAt)
	}
}

func TestCreateSeries_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	series := &domain.Series{ID: "pack-dup", CreatedAt: time.Now()}
	if err := s.CreateSeries(ctx, series); err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}

	err := s.CreateSeries(ctx, series)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetSeries_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSeries(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListSeries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Empty store returns an empty slice, not nil.
	all, err := s.ListSeries(ctx)
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Errorf("empty list: got %v", all)
	}

	for _, id := range []string{"a", "b", "c"} {
		if err := s.CreateSeries(ctx, &domain.Series{ID: id, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("CreateSeries %q: %v", id, err)
		}
	}

	all, err = s.ListSeries(ctx)
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}
}

func TestEnsureSeries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// First call inserts.
	created, err := s.EnsureSeries(ctx, "pack-e")
	if err != nil {
		t.Fatalf("EnsureSeries: %v", err)
	}
	if created.ID != "pack-e" {
		t.Errorf("ID: got %q, want %q", created.ID, "pack-e")
	}

	// Second call reads the existing row.
	again, err := s.EnsureSeries(ctx, "pack-e")
	if err != nil {
		t.Fatalf("EnsureSeries again: %v", err)
	}
	if again.CreatedAt.UnixNano() != created.CreatedAt.UnixNano() {
		t.Error("EnsureSeries should return the existing row, not insert a new one")
	}

	all, err := s.ListSeries(ctx)
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len = %d, want 1", len(all))
	}
}
