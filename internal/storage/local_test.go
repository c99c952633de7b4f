package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stickervault/stickervault-server/internal/content"
)

func TestLocal_StoreAndRetrieve(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 'x'}
	id := content.Address(data)

	loc, err := l.Store(ctx, data, id, "series-1")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	// Location is the sharded relative path.
	want := filepath.Join(id[:5], id+".png")
	if loc != want {
		t.Errorf("location = %q, want %q", loc, want)
	}

	got, err := l.Retrieve(ctx, "series-1", id)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if string(got) != string(data) {
		t.Error("retrieved bytes differ from stored bytes")
	}
}

func TestLocal_RetrieveMissing(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	_, err = l.Retrieve(context.Background(), "series-1", content.Address([]byte("never stored")))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLocal_StoreIdempotentForSameContent(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	data := []byte("same bytes")
	id := content.Address(data)

	loc1, err := l.Store(ctx, data, id, "a")
	if err != nil {
		t.Fatalf("first Store: %v", err)
	}
	loc2, err := l.Store(ctx, data, id, "b")
	if err != nil {
		t.Fatalf("second Store: %v", err)
	}
	if loc1 != loc2 {
		t.Errorf("locations differ for identical content: %q vs %q", loc1, loc2)
	}
}

func TestNewLocal_EmptyPath(t *testing.T) {
	if _, err := NewLocal(""); err == nil {
		t.Error("expected error for empty base path")
	}
}
