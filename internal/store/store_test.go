package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsearch-engine/internal/domain"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInDir(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, schemaVersion, v)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestSyncAndListSources(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	infos := []domain.SourceInfo{
		{Name: "remotive", Label: "Remotive", APIURL: "https://remotive.com/api/remote-jobs", LegalNotes: "link back", Enabled: true},
		{Name: "adzuna", Label: "Adzuna", APIURL: "https://api.adzuna.com", Paginated: true, Enabled: true},
	}
	require.NoError(t, db.SyncSources(ctx, infos))

	got, err := db.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "adzuna", got[0].Name)
	assert.True(t, got[0].Paginated)
	assert.Equal(t, "link back", got[1].LegalNotes)
	assert.Nil(t, got[0].LastRun)

	// adzuna dropped from config: kept, but disabled
	require.NoError(t, db.SyncSources(ctx, infos[:1]))
	got, err = db.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].Enabled)
	assert.True(t, got[1].Enabled)
}

func TestRecordRunAndLastRuns(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, db.SyncSources(ctx, []domain.SourceInfo{{Name: "jooble", Label: "Jooble", Enabled: true}}))
	require.NoError(t, db.RecordRun(ctx, domain.SourceRun{Source: "jooble", Params: "keywords=go&page=1", StartedAt: base, DurationMS: 120, Jobs: 20, TotalCount: 400}))
	require.NoError(t, db.RecordRun(ctx, domain.SourceRun{Source: "jooble", Params: "keywords=go&page=2", StartedAt: base.Add(time.Minute), Error: "jooble status 500"}))
	require.NoError(t, db.RecordRun(ctx, domain.SourceRun{Source: "muse", StartedAt: base.Add(2 * time.Minute)}))

	runs, err := db.LastRuns(ctx, "jooble", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "keywords=go&page=2", runs[0].Params)
	assert.False(t, runs[0].OK())
	assert.Equal(t, base, runs[1].StartedAt)
	assert.Equal(t, 400, runs[1].TotalCount)

	all, err := db.LastRuns(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "muse", all[0].Source)

	sources, err := db.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	require.NotNil(t, sources[0].LastRun)
	assert.Equal(t, "jooble status 500", sources[0].LastRun.Error)
}

func TestCleanupOldRuns(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now }

	require.NoError(t, db.RecordRun(ctx, domain.SourceRun{Source: "usajobs", StartedAt: now.Add(-20 * 24 * time.Hour)}))
	require.NoError(t, db.RecordRun(ctx, domain.SourceRun{Source: "usajobs", StartedAt: now.Add(-time.Hour)}))
	require.NoError(t, db.RecordRun(ctx, domain.SourceRun{Source: "usajobs"}))

	n, err := db.CleanupOldRuns(ctx, 14*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	runs, err := db.LastRuns(ctx, "usajobs", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, now, runs[0].StartedAt, "zero StartedAt is stamped with the store clock")
}
