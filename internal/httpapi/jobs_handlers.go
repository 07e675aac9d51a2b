package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/events"
	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/search"
)

type JobsHandler struct {
	Deps
}

type combinedResponse struct {
	search.Result
	Sources []sourceSummary `json:"sources"`
}

type sourcePageResponse struct {
	Jobs       []domain.Job `json:"jobs"`
	TotalCount int          `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
	Page       int          `json:"page"`
	Matched    int          `json:"matched"`
}

// Combined searches every configured source, then filters, sorts by posted
// date and pages the merged list. Per-source failures never fail the request.
func (h JobsHandler) Combined(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg()
	req, err := parseJobsRequest(r.URL.Query(), cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if h.Searcher == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "search is not configured")
		return
	}

	reqID := RequestIDFrom(r.Context())
	start := h.now()
	h.Hub.Emit(reqID, events.TypeSearchStarted, events.SearchStarted{
		Keywords: req.Keywords,
		Location: req.Location,
		Sources:  h.Searcher.Sources(),
	})

	jobs, results := h.Searcher.SearchNotify(r.Context(),
		types.Query{Keywords: req.Keywords, Location: req.Location},
		cfg.Search.MaxJobsPerSource,
		func(res search.SourceResult) {
			h.Hub.Emit(reqID, events.TypeSourceDone, summarize(res))
		})

	matched := search.Filter(jobs, req.Criteria, h.now())
	page := search.Paginate(search.SortByPostedDesc(matched), req.Page, req.PageSize)

	summaries := make([]sourceSummary, 0, len(results))
	var failed []string
	for _, res := range results {
		summaries = append(summaries, summarize(res))
		if res.Error != "" {
			failed = append(failed, res.Source)
		}
	}
	dur := h.now().Sub(start).Milliseconds()

	h.Hub.Emit(reqID, events.TypeSearchDone, events.SearchDone{
		Jobs:       len(jobs),
		Matched:    len(matched),
		Failed:     len(failed),
		DurationMS: dur,
	})
	if h.Status != nil {
		h.Status.Store(SearchStatus{
			LastRunAt:     start.UTC().Format(time.RFC3339),
			LastKeywords:  req.Keywords,
			LastJobs:      len(jobs),
			LastMatched:   len(matched),
			FailedSources: failed,
			DurationMS:    dur,
		})
	}

	WriteJSON(w, http.StatusOK, combinedResponse{Result: page, Sources: summaries})
}

// BySource fetches one upstream page from a single source and filters it.
// Totals are the upstream's; Matched counts the jobs left after filtering.
func (h JobsHandler) BySource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "source")
	cfg := h.cfg()
	req, err := parseJobsRequest(r.URL.Query(), cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if h.Fetcher == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "sources are not configured")
		return
	}

	page, err := h.Fetcher.Search(r.Context(), name, types.Query{
		Keywords: req.Keywords,
		Location: req.Location,
		Page:     req.Page,
	})
	if err != nil {
		WriteSourceError(w, r, err)
		return
	}

	jobs := page.Jobs
	if req.Criteria.Active() {
		jobs = search.Filter(jobs, req.Criteria, h.now())
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	WriteJSON(w, http.StatusOK, sourcePageResponse{
		Jobs:       jobs,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Matched:    len(jobs),
	})
}

func summarize(res search.SourceResult) sourceSummary {
	return sourceSummary{
		Source:     res.Source,
		Jobs:       res.Jobs,
		Pages:      res.Pages,
		DurationMS: res.DurationMS,
		OK:         res.Error == "",
	}
}
