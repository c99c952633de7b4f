package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stickervault/stickervault-server/internal/domain"
	"github.com/stickervault/stickervault-server/internal/store"
)

// stickerColumns is the ordered list of columns selected in sticker
// queries. Must match the scan order in scanSticker.
const stickerColumns = `sticker_id, path, series_id, created_at`

// scanSticker scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Sticker.
func scanSticker(scanner interface{ Scan(dest ...any) error }) (*domain.Sticker, error) {
	var st domain.Sticker
	var createdAt string

	if err := scanner.Scan(&st.ID, &st.Path, &st.SeriesID, &createdAt); err != nil {
		return nil, err
	}

	var err error
	st.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// CreateSticker inserts a new sticker row.
// Returns store.ErrAlreadyExists when a sticker with the same
// content-addressed id was already ingested.
func (s *Store) CreateSticker(ctx context.Context, st *domain.Sticker) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stickers (sticker_id, path, series_id, created_at)
		VALUES (?, ?, ?, ?)`,
		st.ID,
		st.Path,
		st.SeriesID,
		formatTime(st.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetSticker retrieves a sticker by its content-addressed id.
// Returns store.ErrNotFound if the sticker does not exist.
func (s *Store) GetSticker(ctx context.Context, id string) (*domain.Sticker, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+stickerColumns+` FROM stickers WHERE sticker_id = ?`, id)

	st, err := scanSticker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ListStickers returns stickers matching the filter, ordered by
// creation time. Empty filter fields match everything.
func (s *Store) ListStickers(ctx context.Context, filter store.StickerFilter) ([]*domain.Sticker, error) {
	query := `SELECT ` + stickerColumns + ` FROM stickers`
	var conds []string
	var args []any

	if filter.SeriesID != "" {
		conds = append(conds, "series_id = ?")
		args = append(args, filter.SeriesID)
	}
	if filter.StickerID != "" {
		conds = append(conds, "sticker_id = ?")
		args = append(args, filter.StickerID)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stickers []*domain.Sticker
	for rows.Next() {
		st, err := scanSticker(rows)
		if err != nil {
			return nil, err
		}
		stickers = append(stickers, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stickers == nil {
		stickers = []*domain.Sticker{}
	}
	return stickers, nil
}
