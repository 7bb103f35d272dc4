package statestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/sqlfront/pkg/stat"
)

// SaveSnapshots stores the statistics of a run. Saving a fingerprint twice
// for the same run replaces the earlier row.
func (s *SQLiteStore) SaveSnapshots(ctx context.Context, runID string, snaps []stat.Snapshot) error {
	if s.db == nil {
		return ErrNotOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return fmt.Errorf("check run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO fingerprint_stats
		(run_id, fingerprint, kind, sql_text, exec_count, error_count, total_nanos, max_nanos, histogram)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, snap := range snaps {
		histogram, err := json.Marshal(snap.Histogram)
		if err != nil {
			return fmt.Errorf("encode histogram for %s: %w", snap.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			runID, snap.ID, snap.Kind, snap.SQL,
			snap.Count, snap.Errors, snap.TotalTime.Nanoseconds(), snap.MaxTime.Nanoseconds(),
			string(histogram),
		)
		if err != nil {
			return fmt.Errorf("insert fingerprint %s: %w", snap.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.logger.Debug("saved snapshots", slog.String("run", runID), slog.Int("count", len(snaps)))
	return nil
}

// RunSnapshots returns the statistics saved for one run, most frequent first.
func (s *SQLiteStore) RunSnapshots(ctx context.Context, runID string) ([]stat.Snapshot, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint, kind, sql_text, exec_count, error_count, total_nanos, max_nanos, histogram
		FROM fingerprint_stats WHERE run_id = ?
		ORDER BY exec_count DESC, fingerprint
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []stat.Snapshot
	for rows.Next() {
		var (
			snap         stat.Snapshot
			total, peak  int64
			histogramRaw string
		)
		if err := rows.Scan(&snap.ID, &snap.Kind, &snap.SQL, &snap.Count, &snap.Errors, &total, &peak, &histogramRaw); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.TotalTime = time.Duration(total)
		snap.MaxTime = time.Duration(peak)
		if err := json.Unmarshal([]byte(histogramRaw), &snap.Histogram); err != nil {
			return nil, fmt.Errorf("decode histogram for %s: %w", snap.ID, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// TopFingerprints returns the fingerprints with the most executions summed
// over every run.
func (s *SQLiteStore) TopFingerprints(ctx context.Context, limit int) ([]FingerprintTotal, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint, kind, sql_text,
		       SUM(exec_count), SUM(error_count), SUM(total_nanos), MAX(max_nanos), COUNT(*)
		FROM fingerprint_stats
		GROUP BY fingerprint, kind, sql_text
		ORDER BY SUM(exec_count) DESC, fingerprint
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top fingerprints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []FingerprintTotal
	for rows.Next() {
		var (
			t           FingerprintTotal
			total, peak int64
		)
		if err := rows.Scan(&t.ID, &t.Kind, &t.SQL, &t.Count, &t.Errors, &total, &peak, &t.Runs); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		t.TotalTime = time.Duration(total)
		t.MaxTime = time.Duration(peak)
		out = append(out, t)
	}
	return out, rows.Err()
}
