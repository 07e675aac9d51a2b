package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jobsearch-engine/internal/domain"
)

// SourceStatus is a registry row plus the most recent run, if any.
type SourceStatus struct {
	domain.SourceInfo
	LastRun *domain.SourceRun `json:"lastRun,omitempty"`
}

// SyncSources upserts the registry so it matches infos. Rows for sources no
// longer configured are kept but marked disabled.
func (d *DB) SyncSources(ctx context.Context, infos []domain.SourceInfo) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE job_sources SET enabled = 0;`); err != nil {
		return fmt.Errorf("sync sources: %w", err)
	}

	now := formatTime(d.now())
	for _, s := range infos {
		_, err := tx.ExecContext(ctx, `
INSERT INTO job_sources(name, label, api_url, description, legal_notes, paginated, enabled, updated_at)
VALUES(?,?,?,?,?,?,?,?)
ON CONFLICT(name) DO UPDATE SET
  label = excluded.label,
  api_url = excluded.api_url,
  description = excluded.description,
  legal_notes = excluded.legal_notes,
  paginated = excluded.paginated,
  enabled = excluded.enabled,
  updated_at = excluded.updated_at;`,
			s.Name, s.Label, s.APIURL, s.Description, s.LegalNotes, s.Paginated, s.Enabled, now)
		if err != nil {
			return fmt.Errorf("sync source %s: %w", s.Name, err)
		}
	}
	return tx.Commit()
}

// ListSources returns every registered source by name, each with its last run.
func (d *DB) ListSources(ctx context.Context) ([]SourceStatus, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT name, label, api_url, description, legal_notes, paginated, enabled
FROM job_sources
ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SourceStatus{}
	for rows.Next() {
		var s SourceStatus
		if err := rows.Scan(&s.Name, &s.Label, &s.APIURL, &s.Description, &s.LegalNotes, &s.Paginated, &s.Enabled); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range out {
		run, err := d.lastRun(ctx, out[i].Name)
		if err != nil {
			return nil, err
		}
		out[i].LastRun = run
	}
	return out, nil
}

func (d *DB) lastRun(ctx context.Context, source string) (*domain.SourceRun, error) {
	row := d.Pool.QueryRowContext(ctx, `
SELECT id, source, params, started_at, duration_ms, jobs, total_count, error
FROM source_runs
WHERE source = ?
ORDER BY started_at DESC, id DESC
LIMIT 1;`, source)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
