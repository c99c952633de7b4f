package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/stickervault/stickervault-server/internal/store"
	"github.com/stickervault/stickervault-server/internal/store/sqlite"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/StickerVault/stickervault.db")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	series, err := db.ListSeries(ctx)
	if err != nil {
		log.Fatalf("Failed to list series: %v", err)
	}

	tags, err := db.ListTags(ctx)
	if err != nil {
		log.Fatalf("Failed to list tags: %v", err)
	}

	totalStickers := 0
	shown := 0

	for _, s := range series {
		stickers, err := db.ListStickers(ctx, store.StickerFilter{SeriesID: s.ID})
		if err != nil {
			log.Printf("Error listing stickers for series %s: %v", s.ID, err)
			continue
		}
		totalStickers += len(stickers)

		// Show first few series in detail
		if shown < 3 {
			shown++
			fmt.Printf("Series: %s\n", s.ID)
			fmt.Printf("  Created: %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("  Stickers: %d\n", len(stickers))
			for i, st := range stickers {
				if i >= 5 {
					fmt.Printf("    ... and %d more stickers\n", len(stickers)-5)
					break
				}
				stTags, err := db.GetTagsForSticker(ctx, st.ID)
				if err != nil {
					log.Printf("Error reading tags for sticker %s: %v", st.ID, err)
					continue
				}
				names := make([]string, 0, len(stTags))
				for _, t := range stTags {
					names = append(names, t.Name)
				}
				fmt.Printf("    [%s] %s %v\n", st.ID[:12], st.Path, names)
			}
			fmt.Println()
		}
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total series: %d\n", len(series))
	fmt.Printf("Total stickers: %d\n", totalStickers)
	fmt.Printf("Total tags: %d\n", len(tags))
	if len(series) > 0 {
		fmt.Printf("Average stickers per series: %.1f\n", float64(totalStickers)/float64(len(series)))
	}
}
