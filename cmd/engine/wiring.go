package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/ingest"
	"jobsearch-engine/internal/ingest/remotive"
	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/scheduler"
	"jobsearch-engine/internal/store"
)

// loadConfig reads the user config, applies env overrides and rejects it
// when invalid. Warnings are only logged.
func loadConfig(path string, getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	config.OverlayEnv(&cfg, getenv)

	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !vr.OK() {
		return config.Config{}, fmt.Errorf("invalid config: %s", strings.Join(vr.Errors, "; "))
	}
	return cfg, nil
}

// combinedOrder keeps the configured combined-search sources that are
// actually registered.
func combinedOrder(cfg config.Config, svc *ingest.Service) []string {
	var out []string
	for _, name := range cfg.Search.Sources {
		if _, ok := svc.Source(name); ok {
			out = append(out, name)
		} else {
			log.Printf("[engine] combined search skips %s (disabled)", name)
		}
	}
	return out
}

func sourceNames(svc *ingest.Service) []string {
	var out []string
	for _, s := range svc.Sources() {
		out = append(out, s.Name())
	}
	return out
}

type job struct {
	name     string
	interval time.Duration
	task     scheduler.Task
}

// maintenanceJobs prunes the run log and, when enabled, keeps the Remotive
// listing cache warm.
func maintenanceJobs(cfg config.Config, db *store.DB, svc *ingest.Service) []job {
	retention := time.Duration(cfg.RunLog.RetentionDays) * 24 * time.Hour
	jobs := []job{{
		name:     "run-log-cleanup",
		interval: time.Duration(cfg.RunLog.CleanupMinutes) * time.Minute,
		task: func(ctx context.Context) error {
			n, err := db.CleanupOldRuns(ctx, retention)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Printf("[scheduler:run-log-cleanup] deleted=%d", n)
			}
			return nil
		},
	}}

	rc := cfg.Sources.Remotive
	if _, ok := svc.Source(config.SourceRemotive); ok && rc.Warm {
		window := remotive.DefaultCache
		if rc.CacheHours > 0 {
			window = time.Duration(rc.CacheHours) * time.Hour
		}
		jobs = append(jobs, job{
			name: "remotive-warm",
			// just past the freshness window so each tick misses the cache
			interval: window + time.Minute,
			task: func(ctx context.Context) error {
				_, err := svc.Fetch(ctx, config.SourceRemotive, types.Params{})
				return err
			},
		})
	}
	return jobs
}
