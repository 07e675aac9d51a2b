// Package search fans a query out over every configured source and applies
// the request-level filter, sort and pagination on the merged list.
package search

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/types"
)

const DefaultMaxJobsPerSource = 1000

// Backend is the ingestion façade the orchestrator drives.
type Backend interface {
	Source(name string) (types.Source, bool)
	Fetch(ctx context.Context, name string, p types.Params) (types.Page, error)
}

// SourceResult summarizes one source's contribution to a combined search.
type SourceResult struct {
	Source     string `json:"source"`
	Jobs       int    `json:"jobs"`
	Pages      int    `json:"pages"`
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

type Orchestrator struct {
	backend Backend
	order   []string

	// OnSourceDone, when set, is called from the source's goroutine as soon
	// as that source finishes.
	OnSourceDone func(SourceResult)
}

// NewOrchestrator queries sources in the given order. Output is grouped in
// that order regardless of which source answers first.
func NewOrchestrator(b Backend, order []string) *Orchestrator {
	return &Orchestrator{backend: b, order: append([]string(nil), order...)}
}

func (o *Orchestrator) Sources() []string {
	return append([]string(nil), o.order...)
}

// SearchAllSources runs a keyword search on every source. It never fails: a
// source that errors contributes no jobs.
func (o *Orchestrator) SearchAllSources(ctx context.Context, query string, maxJobsPerSource int) []domain.Job {
	jobs, _ := o.Search(ctx, types.Query{Keywords: query}, maxJobsPerSource)
	return jobs
}

// Search is SearchAllSources for a full query, also returning per-source
// summaries in source order.
func (o *Orchestrator) Search(ctx context.Context, q types.Query, maxJobsPerSource int) ([]domain.Job, []SourceResult) {
	return o.SearchNotify(ctx, q, maxJobsPerSource, o.OnSourceDone)
}

// SearchNotify is Search with a per-call completion hook used instead of
// OnSourceDone.
func (o *Orchestrator) SearchNotify(ctx context.Context, q types.Query, maxJobsPerSource int, notify func(SourceResult)) ([]domain.Job, []SourceResult) {
	if maxJobsPerSource <= 0 {
		maxJobsPerSource = DefaultMaxJobsPerSource
	}

	perSource := make([][]domain.Job, len(o.order))
	summaries := make([]SourceResult, len(o.order))

	var g errgroup.Group
	for i, name := range o.order {
		g.Go(func() error {
			start := time.Now()
			jobs, pages, err := o.collect(ctx, name, q, maxJobsPerSource)

			res := SourceResult{Source: name, Pages: pages}
			if err != nil {
				log.Printf("[search] source=%s pages=%d err=%v", name, pages, err)
				jobs = nil
				res.Error = err.Error()
			}
			res.Jobs = len(jobs)
			res.DurationMS = time.Since(start).Milliseconds()

			perSource[i] = jobs
			summaries[i] = res
			if notify != nil {
				notify(res)
			}
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, js := range perSource {
		total += len(js)
	}
	out := make([]domain.Job, 0, total)
	for _, js := range perSource {
		out = append(out, js...)
	}
	return out, summaries
}

// collect walks a paginated source from page 1 until the cap is reached,
// the source reports no further pages, or a page comes back empty.
func (o *Orchestrator) collect(ctx context.Context, name string, q types.Query, limit int) ([]domain.Job, int, error) {
	src, ok := o.backend.Source(name)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", types.ErrUnknownSource, name)
	}

	if !src.Paginated() {
		page, err := o.backend.Fetch(ctx, name, src.Params(types.Query{Keywords: q.Keywords, Location: q.Location}))
		if err != nil {
			return nil, 1, err
		}
		return capJobs(page.Jobs, limit), 1, nil
	}

	var jobs []domain.Job
	pages := 0
	for n := 1; len(jobs) < limit; n++ {
		if err := ctx.Err(); err != nil {
			return nil, pages, err
		}
		pq := q
		pq.Page = n
		page, err := o.backend.Fetch(ctx, name, src.Params(pq))
		pages++
		if err != nil {
			return nil, pages, err
		}
		jobs = append(jobs, page.Jobs...)
		if len(page.Jobs) == 0 || n >= page.TotalPages {
			break
		}
	}
	return capJobs(jobs, limit), pages, nil
}

func capJobs(jobs []domain.Job, limit int) []domain.Job {
	if len(jobs) > limit {
		return jobs[:limit]
	}
	return jobs
}
