package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: 5050
sources:
  remotive:
    enabled: false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.App.Port)
	assert.Equal(t, "./data", cfg.App.DataDir)
	assert.Equal(t, 1000, cfg.Search.MaxJobsPerSource)
	assert.False(t, cfg.Sources.Remotive.Enabled)
	assert.Equal(t, 6, cfg.Sources.Remotive.CacheHours)
	assert.Equal(t, "us", cfg.Sources.Adzuna.Country)
}

func TestBundledDefaultConfigIsValid(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yml"))
	require.NoError(t, err)

	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), vr.Errors)
	assert.Empty(t, vr.Warnings)
	assert.Equal(t, Default(), cfg)
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.Search.Sources = []string{" Adzuna ", "adzuna", "monster", "muse"}
	cfg.Sources.Muse.Enabled = false
	cfg.Sources.Adzuna.Country = "USA"
	cfg.Retry.MaxAttempts = 0
	cfg.Sources.Remotive.CacheHours = 1

	out, vr := NormalizeAndValidate(cfg)

	assert.Equal(t, []string{"adzuna", "monster", "muse"}, out.Search.Sources)
	assert.False(t, vr.OK())
	assert.Contains(t, vr.Errors, `search.sources: unknown source "monster" (known: adzuna, jooble, muse, remotive, usajobs)`)
	assert.Contains(t, vr.Errors, "retry.max_attempts must be >= 1")
	assert.Contains(t, vr.Errors, "sources.adzuna.country must be a two-letter country code")
	assert.Len(t, vr.Warnings, 2)
}

func TestEnsureUserConfigSeedsOnce(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	require.NoError(t, os.WriteFile(def, []byte("app:\n  port: 4100\n"), 0o644))

	dataDir := filepath.Join(dir, "data")
	p, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), p)

	require.NoError(t, os.WriteFile(def, []byte("app:\n  port: 4200\n"), 0o644))
	_, err = EnsureUserConfig(dataDir, def)
	require.NoError(t, err)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.App.Port)
}

func TestEnsureUserConfigFallsBackToDefaults(t *testing.T) {
	dataDir := t.TempDir()
	p, err := EnsureUserConfig(dataDir, filepath.Join(dataDir, "missing.yml"))
	require.NoError(t, err)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAtomicRejectsInvalidAndKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, SaveAtomic(path, Default()))

	bad := Default()
	bad.App.Port = 0
	assert.Error(t, SaveAtomic(path, bad))

	next := Default()
	next.App.Port = 4321
	require.NoError(t, SaveAtomic(path, next))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.App.Port)
	assert.FileExists(t, path+".bak")
}

func TestOverlayEnv(t *testing.T) {
	env := map[string]string{"PORT": "8080", "CORS_ORIGINS": "http://localhost:5173", "JOBSEARCH_DATA_DIR": "/var/lib/jobs"}
	cfg := Default()
	OverlayEnv(&cfg, func(k string) string { return env[k] })

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "/var/lib/jobs", cfg.App.DataDir)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)

	cfg = Default()
	OverlayEnv(&cfg, func(string) string { return "" })
	assert.Equal(t, Default(), cfg)
}

func TestEnsureUserConfigRejectsBrokenBundledDefault(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	require.NoError(t, os.WriteFile(def, []byte("app: [unclosed\n"), 0o644))

	_, err := EnsureUserConfig(filepath.Join(dir, "data"), def)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "data", UserConfigName))
}

func TestValidationListsAreNeverNil(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	b, err := json.Marshal(vr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":[],"warnings":[]}`, string(b))
}
