package httpapi

import (
	"net/http"
	"sync/atomic"
)

type StatusHandler struct {
	Status *atomic.Value // httpapi.SearchStatus
}

func (h StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	var st SearchStatus
	if h.Status != nil {
		st, _ = h.Status.Load().(SearchStatus)
	}
	if st.FailedSources == nil {
		st.FailedSources = []string{}
	}
	WriteJSON(w, http.StatusOK, st)
}
