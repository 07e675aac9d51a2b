package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"jobsearch-engine/internal/store"
)

type SourcesHandler struct {
	Registry Registry
	Searcher Searcher
}

type sourcesResponse struct {
	Sources  []store.SourceStatus `json:"sources"`
	Combined []string             `json:"combined"`
}

// List returns the source registry with each source's last run and the
// combined-search order.
func (h SourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := sourcesResponse{Sources: []store.SourceStatus{}, Combined: []string{}}
	if h.Searcher != nil {
		resp.Combined = h.Searcher.Sources()
	}
	if h.Registry != nil {
		list, err := h.Registry.ListSources(r.Context())
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
			return
		}
		resp.Sources = list
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h SourcesHandler) Runs(w http.ResponseWriter, r *http.Request) {
	if h.Registry == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "run log is not configured")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}
	runs, err := h.Registry.LastRuns(r.Context(), chi.URLParam(r, "source"), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, runs)
}
