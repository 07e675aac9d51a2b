package store

import (
	"context"
	"fmt"
	"time"

	"jobsearch-engine/internal/domain"
)

const defaultRunLimit = 50

// RecordRun appends one source call to the run log.
func (d *DB) RecordRun(ctx context.Context, run domain.SourceRun) error {
	started := run.StartedAt
	if started.IsZero() {
		started = d.now()
	}
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO source_runs(source, params, started_at, duration_ms, jobs, total_count, error)
VALUES(?,?,?,?,?,?,?);`,
		run.Source, run.Params, formatTime(started), run.DurationMS, run.Jobs, run.TotalCount, run.Error)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.Source, err)
	}
	return nil
}

// LastRuns returns the newest runs first. An empty source lists all sources.
func (d *DB) LastRuns(ctx context.Context, source string, limit int) ([]domain.SourceRun, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultRunLimit
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, source, params, started_at, duration_ms, jobs, total_count, error
FROM source_runs
WHERE ? = '' OR source = ?
ORDER BY started_at DESC, id DESC
LIMIT ?;`, source, source, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SourceRun{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CleanupOldRuns deletes runs started more than retention ago.
func (d *DB) CleanupOldRuns(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := formatTime(d.now().Add(-retention))
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM source_runs WHERE started_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (domain.SourceRun, error) {
	var r domain.SourceRun
	var started string
	if err := s.Scan(&r.ID, &r.Source, &r.Params, &started, &r.DurationMS, &r.Jobs, &r.TotalCount, &r.Error); err != nil {
		return domain.SourceRun{}, err
	}
	r.StartedAt = parseTime(started)
	return r, nil
}
