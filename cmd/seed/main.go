// Package main provides a tool to seed the database with test sticker data.
//
// This generates synthetic PNG stickers and runs them through the full
// ingestion pipeline to test the read API and serving endpoints.
//
// Usage:
//
//	DB_PATH=~/StickerVault/stickervault.db go run ./cmd/seed
//	DB_PATH=~/StickerVault/stickervault.db go run ./cmd/seed --series 5
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stickervault/stickervault-server/internal/service"
	"github.com/stickervault/stickervault-server/internal/storage"
	"github.com/stickervault/stickervault-server/internal/store/sqlite"
	"github.com/stickervault/stickervault-server/internal/upload"
)

var (
	seriesCount = flag.Int("series", 3, "Number of sticker series to create")
	minStickers = flag.Int("min-stickers", 16, "Minimum stickers per series")
	maxStickers = flag.Int("max-stickers", 24, "Maximum stickers per series")
)

// tagPool are tags drawn at random for generated stickers.
var tagPool = []string{
	"happy", "sad", "angry", "love", "laugh",
	"wave", "dance", "sleep", "food", "party",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/StickerVault/stickervault.db")
	}

	storagePath := os.Getenv("STORAGE_PATH")
	if storagePath == "" {
		storagePath = filepath.Join(filepath.Dir(dbPath), "stickers")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	backend, err := storage.NewLocal(storagePath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	svc := service.NewStickerService(db, backend, logger)

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := range *seriesCount {
		seriesID := uuid.NewString()
		count := *minStickers + rng.Intn(*maxStickers-*minStickers+1)

		fmt.Printf("\nSeeding series %d/%d: %s (%d stickers)\n", i+1, *seriesCount, seriesID, count)

		records := make([]upload.Record, 0, count)
		files := make([]upload.File, 0, count)

		for n := range count {
			name := fmt.Sprintf("sticker_%03d.png", n+1)
			data := generatePNG(rng)

			// 1-2 random tags per sticker
			tags := []string{tagPool[rng.Intn(len(tagPool))]}
			if rng.Float32() > 0.5 {
				tags = append(tags, tagPool[rng.Intn(len(tagPool))])
			}

			records = append(records, upload.Record{FileName: name, Tags: tags})
			files = append(files, upload.File{
				Name:        name,
				Size:        int64(len(data)),
				ContentType: "image/png",
				Data:        data,
			})
		}

		if err := svc.IngestBatch(ctx, seriesID, records, files); err != nil {
			log.Printf("Ingestion finished with errors for %s: %v", seriesID, err)
			continue
		}

		fmt.Printf("  Ingested %d stickers\n", count)
	}

	fmt.Println("\nSeeding complete!")
}

// generatePNG encodes a small randomly colored image. Random pixel noise
// keeps the content hashes distinct across stickers.
func generatePNG(rng *rand.Rand) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))

	base := color.RGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}

	for y := range 64 {
		for x := range 64 {
			c := base
			c.R += uint8(rng.Intn(16))
			c.G += uint8(rng.Intn(16))
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}
