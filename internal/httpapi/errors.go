package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobsearch-engine/internal/ingest/types"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WriteSourceError maps a single-source failure onto a status and code.
func WriteSourceError(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *types.ConfigError
	switch {
	case errors.Is(err, types.ErrUnknownSource):
		WriteError(w, r, http.StatusNotFound, "unknown_source", err.Error())
	case errors.As(err, &cfgErr):
		WriteError(w, r, http.StatusServiceUnavailable, "missing_credentials", err.Error())
	case errors.Is(err, types.ErrRetriesExhausted):
		WriteError(w, r, http.StatusTooManyRequests, "rate_limited", err.Error())
	default:
		WriteError(w, r, http.StatusBadGateway, "upstream_error", err.Error())
	}
}
