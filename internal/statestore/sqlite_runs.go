package statestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// CreateRun records a new run for source, parsed with dialect.
func (s *SQLiteStore) CreateRun(ctx context.Context, source, dialect string) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{
		ID:        generateID(),
		Source:    source,
		Dialect:   dialect,
		CreatedAt: time.Now().UTC(),
	}
	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("source", source))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, dialect, created_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Source, run.Dialect, run.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{}
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT r.id, r.source, r.dialect, r.created_at,
		        (SELECT COUNT(*) FROM fingerprint_stats f WHERE f.run_id = r.id)
		 FROM runs r WHERE r.id = ?`,
		id,
	).Scan(&run.ID, &run.Source, &run.Dialect, &created, &run.Fingerprints)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if run.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("run %s: bad created_at %q: %w", id, created, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.source, r.dialect, r.created_at,
		        (SELECT COUNT(*) FROM fingerprint_stats f WHERE f.run_id = r.id)
		 FROM runs r ORDER BY r.created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var created string
		if err := rows.Scan(&run.ID, &run.Source, &run.Dialect, &created, &run.Fingerprints); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("run %s: bad created_at %q: %w", run.ID, created, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
