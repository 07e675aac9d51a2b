package httpapi

import (
	"context"
	"sync/atomic"
	"time"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/events"
	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/search"
	"jobsearch-engine/internal/store"
)

// Searcher runs the combined multi-source search.
type Searcher interface {
	SearchNotify(ctx context.Context, q types.Query, maxJobsPerSource int, notify func(search.SourceResult)) ([]domain.Job, []search.SourceResult)
	Sources() []string
}

// Fetcher queries a single source.
type Fetcher interface {
	Search(ctx context.Context, name string, q types.Query) (types.Page, error)
}

// Registry is the persisted source registry and run log.
type Registry interface {
	ListSources(ctx context.Context) ([]store.SourceStatus, error)
	LastRuns(ctx context.Context, source string, limit int) ([]domain.SourceRun, error)
}

type Deps struct {
	Searcher Searcher
	Fetcher  Fetcher
	Registry Registry // optional

	Hub *events.Hub

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config
	Status *atomic.Value // stores httpapi.SearchStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Credentials (inject for testability)
	CredStatus   func() map[string]bool
	SetSecret    func(name, value string) error
	DeleteSecret func(name string) error

	Now func() time.Time
}

func (d Deps) cfg() config.Config {
	if d.CfgVal == nil {
		return config.Default()
	}
	if c, ok := d.CfgVal.Load().(config.Config); ok {
		return c
	}
	return config.Default()
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
