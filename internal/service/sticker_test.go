package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickervault/stickervault-server/internal/content"
	domainerrors "github.com/stickervault/stickervault-server/internal/errors"
	"github.com/stickervault/stickervault-server/internal/storage"
	"github.com/stickervault/stickervault-server/internal/store"
	"github.com/stickervault/stickervault-server/internal/store/sqlite"
	"github.com/stickervault/stickervault-server/internal/upload"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func pngBytes(payload string) []byte {
	return append(append([]byte{}, pngHeader...), []byte(payload)...)
}

func newTestService(t *testing.T) (*StickerService, *sqlite.Store, *storage.Local) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	backend, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	return NewStickerService(st, backend, logger), st, backend
}

func TestIngestBatch_SingleRecord(t *testing.T) {
	svc, st, backend := newTestService(t)
	ctx := context.Background()

	data := pngBytes("H")
	records := []upload.Record{{FileName: "a.png", Tags: []string{"cat"}}}
	files := []upload.File{{Name: "a.png", Size: int64(len(data)), ContentType: "image/png", Data: data}}

	require.NoError(t, svc.IngestBatch(ctx, "pack-1", records, files))

	// Exactly one series.
	series, err := st.ListSeries(ctx)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "pack-1", series[0].ID)

	// Exactly one sticker, id = SHA-256 of the bytes.
	wantID := content.Address(data)
	stickers, err := st.ListStickers(ctx, store.StickerFilter{})
	require.NoError(t, err)
	require.Len(t, stickers, 1)
	assert.Equal(t, wantID, stickers[0].ID)
	assert.Equal(t, "pack-1", stickers[0].SeriesID)
	assert.NotEmpty(t, stickers[0].Path)

	// Exactly one tag named cat, linked to the sticker.
	tags, err := st.GetTagsForSticker(ctx, wantID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "cat", tags[0].Name)

	// Bytes are retrievable through the backend.
	got, err := backend.Retrieve(ctx, "pack-1", wantID)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestIngestBatch_ManifestOrder(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	var records []upload.Record
	var files []upload.File
	for _, name := range []string{"c.png", "a.png", "b.png"} {
		data := pngBytes(name)
		records = append(records, upload.Record{FileName: name})
		files = append(files, upload.File{Name: name, Size: int64(len(data)), ContentType: "image/png", Data: data})
	}

	require.NoError(t, svc.IngestBatch(ctx, "pack-ord", records, files))

	stickers, err := st.ListStickers(ctx, store.StickerFilter{SeriesID: "pack-ord"})
	require.NoError(t, err)
	assert.Len(t, stickers, 3)
}

func TestIngestBatch_SharedTagReused(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	var records []upload.Record
	var files []upload.File
	for _, name := range []string{"a.png", "b.png"} {
		data := pngBytes(name)
		records = append(records, upload.Record{FileName: name, Tags: []string{"cat"}})
		files = append(files, upload.File{Name: name, Size: int64(len(data)), ContentType: "image/png", Data: data})
	}

	require.NoError(t, svc.IngestBatch(ctx, "pack-s", records, files))

	// One tag row, shared by both stickers.
	tags, err := st.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
}

func TestIngestBatch_DuplicateTagOnRecordIsIdempotent(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	data := pngBytes("dup-tags")
	records := []upload.Record{{FileName: "a.png", Tags: []string{"cat", "cat"}}}
	files := []upload.File{{Name: "a.png", Size: int64(len(data)), ContentType: "image/png", Data: data}}

	require.NoError(t, svc.IngestBatch(ctx, "pack-d", records, files))

	tags, err := st.GetTagsForSticker(ctx, content.Address(data))
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestIngestBatch_DuplicateSticker(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	data := pngBytes("same content")
	records := []upload.Record{{FileName: "a.png"}}
	files := []upload.File{{Name: "a.png", Size: int64(len(data)), ContentType: "image/png", Data: data}}

	require.NoError(t, svc.IngestBatch(ctx, "pack-1", records, files))

	// Same bytes under a different name: same content address, so the
	// insert collides and surfaces as a conflict.
	records2 := []upload.Record{{FileName: "other.png"}}
	files2 := []upload.File{{Name: "other.png", Size: int64(len(data)), ContentType: "image/png", Data: data}}

	err := svc.IngestBatch(ctx, "pack-1", records2, files2)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrConflict), "got %v", err)
}

func TestIngestBatch_PartialFailureKeepsPriorRecords(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	good := pngBytes("good")
	dup := pngBytes("good") // same content as good: second record collides
	records := []upload.Record{{FileName: "good.png"}, {FileName: "dup.png"}}
	files := []upload.File{
		{Name: "good.png", Size: int64(len(good)), ContentType: "image/png", Data: good},
		{Name: "dup.png", Size: int64(len(dup)), ContentType: "image/png", Data: dup},
	}

	err := svc.IngestBatch(ctx, "pack-p", records, files)
	require.Error(t, err)

	// The first record stays committed.
	stickers, lerr := st.ListStickers(ctx, store.StickerFilter{SeriesID: "pack-p"})
	require.NoError(t, lerr)
	assert.Len(t, stickers, 1)
}

func TestFetchImage_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.FetchImage(context.Background(), "pack-x", content.Address([]byte("never")))
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "got %v", err)
}

func TestGetSticker_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetSticker(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "got %v", err)
}
