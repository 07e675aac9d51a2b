// Package ingest is the uniform entry point to every upstream job source.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/types"
)

// Recorder persists the outcome of each source call.
type Recorder interface {
	RecordRun(ctx context.Context, run domain.SourceRun) error
}

type Service struct {
	sources map[string]types.Source
	order   []string
	rec     Recorder
	now     func() time.Time
}

// NewService registers srcs in order. rec may be nil.
func NewService(rec Recorder, srcs ...types.Source) *Service {
	s := &Service{
		sources: make(map[string]types.Source, len(srcs)),
		rec:     rec,
		now:     time.Now,
	}
	for _, src := range srcs {
		if _, dup := s.sources[src.Name()]; dup {
			continue
		}
		s.sources[src.Name()] = src
		s.order = append(s.order, src.Name())
	}
	return s
}

func (s *Service) Source(name string) (types.Source, bool) {
	src, ok := s.sources[name]
	return src, ok
}

// Sources lists registered sources in registration order.
func (s *Service) Sources() []types.Source {
	out := make([]types.Source, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.sources[name])
	}
	return out
}

// Fetch calls one source with upstream params and returns its normalized
// page. Errors are returned unchanged so callers can classify them.
func (s *Service) Fetch(ctx context.Context, name string, p types.Params) (types.Page, error) {
	src, ok := s.sources[name]
	if !ok {
		return types.Page{}, fmt.Errorf("%w: %q", types.ErrUnknownSource, name)
	}

	start := s.now()
	page, err := src.Fetch(ctx, p)
	if page.Jobs == nil {
		page.Jobs = []domain.Job{}
	}

	run := domain.SourceRun{
		Source:     name,
		Params:     p.String(),
		StartedAt:  start.UTC(),
		DurationMS: s.now().Sub(start).Milliseconds(),
		Jobs:       len(page.Jobs),
		TotalCount: page.TotalCount,
	}
	if err != nil {
		run.Error = err.Error()
		log.Printf("[ingest:%s] params=%q err=%v", name, run.Params, err)
	}
	s.record(run)

	return page, err
}

// Search translates a source-independent query for one source and fetches it.
func (s *Service) Search(ctx context.Context, name string, q types.Query) (types.Page, error) {
	src, ok := s.sources[name]
	if !ok {
		return types.Page{}, fmt.Errorf("%w: %q", types.ErrUnknownSource, name)
	}
	return s.Fetch(ctx, name, src.Params(q))
}

func (s *Service) record(run domain.SourceRun) {
	if s.rec == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.rec.RecordRun(ctx, run); err != nil {
		log.Printf("[ingest:%s] record run: %v", run.Source, err)
	}
}
