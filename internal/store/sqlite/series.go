package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stickervault/stickervault-server/internal/domain"
	"github.com/stickervault/stickervault-server/internal/store"
)

// seriesColumns is the ordered list of columns selected in series
// queries. Must match the scan order in scanSeries.
const seriesColumns = `id, created_at`

// scanSeries scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Series.
func scanSeries(scanner interface{ Scan(dest ...any) error }) (*domain.Series, error) {
	var s domain.Series
	var createdAt string

	if err := scanner.Scan(&s.ID, &createdAt); err != nil {
		return nil, err
	}

	var err error
	s.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSeries inserts a new series row.
// Returns store.ErrAlreadyExists on duplicate id.
func (s *Store) CreateSeries(ctx context.Context, series *domain.Series) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO series (id, created_at)
		VALUES (?, ?)`,
		series.ID,
		formatTime(series.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetSeries retrieves a series by its id.
// Returns store.ErrNotFound if the series does not exist.
func (s *Store) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE id = ?`, id)

	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return series, nil
}

// ListSeries returns all series ordered by creation time.
func (s *Store) ListSeries(ctx context.Context) ([]*domain.Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+seriesColumns+` FROM series ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []*domain.Series
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, series)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if all == nil {
		all = []*domain.Series{}
	}
	return all, nil
}

// EnsureSeries reads the series by id and inserts it if absent.
// The check-then-act race with a concurrent ingestion of the same new
// id is tolerated: a duplicate insert on a since-created row is
// re-read and returned as success.
func (s *Store) EnsureSeries(ctx context.Context, id string) (*domain.Series, error) {
	existing, err := s.GetSeries(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	series := &domain.Series{ID: id, CreatedAt: time.Now().UTC()}
	err = s.CreateSeries(ctx, series)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost the race; the row exists now.
		return s.GetSeries(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return series, nil
}
