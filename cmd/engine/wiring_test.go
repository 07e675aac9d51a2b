package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/ingest"
	"jobsearch-engine/internal/store"
)

func TestLoadConfigOverlaysEnvAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  sources: [Jooble, remotive]\n"), 0o644))

	env := map[string]string{"PORT": "5050"}
	cfg, err := loadConfig(path, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.App.Port)
	assert.Equal(t, []string{"jooble", "remotive"}, cfg.Search.Sources)

	require.NoError(t, os.WriteFile(path, []byte("retry:\n  max_attempts: 0\n"), 0o644))
	_, err = loadConfig(path, func(string) string { return "" })
	assert.ErrorContains(t, err, "retry.max_attempts")
}

func TestCombinedOrderSkipsDisabledSources(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.Jooble.Enabled = false
	svc := ingest.NewService(nil, ingest.BuildSources(cfg, ingest.Deps(cfg, nil))...)

	assert.Equal(t, []string{"adzuna", "usajobs", "remotive"}, combinedOrder(cfg, svc))
	assert.Equal(t, []string{"adzuna", "muse", "remotive", "usajobs"}, sourceNames(svc))
}

func TestMaintenanceJobs(t *testing.T) {
	cfg := config.Default()
	db, err := store.OpenInDir(t.TempDir())
	require.NoError(t, err)
	defer db.Close()
	svc := ingest.NewService(nil, ingest.BuildSources(cfg, ingest.Deps(cfg, nil))...)

	jobs := maintenanceJobs(cfg, db, svc)
	require.Len(t, jobs, 1)
	assert.Equal(t, time.Hour, jobs[0].interval)

	cfg.Sources.Remotive.Warm = true
	cfg.Sources.Remotive.CacheHours = 12
	jobs = maintenanceJobs(cfg, db, svc)
	require.Len(t, jobs, 2)
	assert.Equal(t, "remotive-warm", jobs[1].name)
	assert.Equal(t, 12*time.Hour+time.Minute, jobs[1].interval)
}
