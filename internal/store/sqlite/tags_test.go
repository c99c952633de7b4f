package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stickervault/stickervault-server/internal/domain"
	"github.com/stickervault/stickervault-server/internal/store"
)

func TestCreateAndGetTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := &domain.Tag{ID: "tag-1", Name: "cat", CreatedAt: time.Now()}
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	got, err := s.GetTagByName(ctx, "cat")
	if err != nil {
		t.Fatalf("GetTagByName: %v", err)
	}
	if got.ID != "tag-1" || got.Name != "cat" {
		t.Errorf("got %+v", got)
	}
}

func TestCreateTag_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTag(ctx, &domain.Tag{ID: "tag-1", Name: "cat", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	// Different id, same name: the name is unique.
	err := s.CreateTag(ctx, &domain.Tag{ID: "tag-2", Name: "cat", CreatedAt: time.Now()})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestFindOrCreateTagByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag, created, err := s.FindOrCreateTagByName(ctx, "cute")
	if err != nil {
		t.Fatalf("FindOrCreateTagByName: %v", err)
	}
	if !created {
		t.Error("first call should create")
	}
	if tag.Name != "cute" || tag.ID == "" {
		t.Errorf("got %+v", tag)
	}

	again, created, err := s.FindOrCreateTagByName(ctx, "cute")
	if err != nil {
		t.Fatalf("FindOrCreateTagByName again: %v", err)
	}
	if created {
		t.Error("second call should reuse")
	}
	if again.ID != tag.ID {
		t.Errorf("ID changed: %q vs %q", again.ID, tag.ID)
	}
}

func TestAddStickerTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st := makeTestSticker(t, s, "hash-t", "pack-t")
	tag, _, err := s.FindOrCreateTagByName(ctx, "cat")
	if err != nil {
		t.Fatalf("FindOrCreateTagByName: %v", err)
	}

	if err := s.AddStickerTag(ctx, st.ID, tag.ID); err != nil {
		t.Fatalf("AddStickerTag: %v", err)
	}

	// Same pair again violates the composite primary key.
	err = s.AddStickerTag(ctx, st.ID, tag.ID)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetTagsForSticker(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st := makeTestSticker(t, s, "hash-g", "pack-g")
	for _, name := range []string{"zebra", "cat", "dog"} {
		tag, _, err := s.FindOrCreateTagByName(ctx, name)
		if err != nil {
			t.Fatalf("FindOrCreateTagByName %q: %v", name, err)
		}
		if err := s.AddStickerTag(ctx, st.ID, tag.ID); err != nil {
			t.Fatalf("AddStickerTag %q: %v", name, err)
		}
	}

	tags, err := s.GetTagsForSticker(ctx, st.ID)
	if err != nil {
		t.Fatalf("GetTagsForSticker: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("len = %d, want 3", len(tags))
	}
	// Ordered by name.
	if tags[0].Name != "cat" || tags[1].Name != "dog" || tags[2].Name != "zebra" {
		t.Errorf("order: %q %q %q", tags[0].Name, tags[1].Name, tags[2].Name)
	}

	// Unknown sticker: empty slice, not nil.
	none, err := s.GetTagsForSticker(ctx, "unknown")
	if err != nil {
		t.Fatalf("GetTagsForSticker unknown: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("unknown sticker: got %v", none)
	}
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a"} {
		if _, _, err := s.FindOrCreateTagByName(ctx, name); err != nil {
			t.Fatalf("FindOrCreateTagByName %q: %v", name, err)
		}
	}

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "a" {
		t.Errorf("got %+v", tags)
	}
}
