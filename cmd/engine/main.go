package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/events"
	"jobsearch-engine/internal/httpapi"
	"jobsearch-engine/internal/ingest"
	"jobsearch-engine/internal/scheduler"
	"jobsearch-engine/internal/search"
	"jobsearch-engine/internal/secrets"
	"jobsearch-engine/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[engine] .env not loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("[engine] %v", err)
	}
}

func run(ctx context.Context) error {
	boot := config.Default()
	config.OverlayEnv(&boot, os.Getenv)
	dataDir := boot.App.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already using %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	userCfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}
	loadCfg := func() (config.Config, error) { return loadConfig(userCfgPath, os.Getenv) }
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	db, err := store.OpenInDir(dataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SyncSources(ctx, ingest.Catalog(cfg)); err != nil {
		return err
	}

	creds := secrets.Resolver{UseKeyring: true}
	svc := ingest.NewService(db, ingest.BuildSources(cfg, ingest.Deps(cfg, creds.Lookup))...)
	orch := search.NewOrchestrator(svc, combinedOrder(cfg, svc))
	log.Printf("[engine] sources=%v combined=%v", sourceNames(svc), orch.Sources())

	hub := events.NewHub()
	var status atomic.Value
	status.Store(httpapi.SearchStatus{})

	handler := httpapi.NewRouter(httpapi.Deps{
		Searcher:     orch,
		Fetcher:      svc,
		Registry:     db,
		Hub:          hub,
		CfgVal:       &cfgVal,
		Status:       &status,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		CredStatus:   creds.Status,
		SetSecret:    secrets.Set,
		DeleteSecret: secrets.Delete,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range maintenanceJobs(cfg, db, svc) {
		g.Go(func() error {
			scheduler.Every(gctx, j.interval, j.name, j.task)
			return nil
		})
	}
	g.Go(func() error {
		log.Printf("[engine] listening on %s (data=%s config=%s)", srv.Addr, dataDir, userCfgPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("[engine] shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
