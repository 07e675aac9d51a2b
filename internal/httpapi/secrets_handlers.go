package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jobsearch-engine/internal/secrets"
)

// SecretsHandler manages upstream credentials in the OS keychain. Values are
// write-only over HTTP.
type SecretsHandler struct {
	Status func() map[string]bool
	Set    func(name, value string) error
	Remove func(name string) error
}

type setSecretReq struct {
	Value string `json:"value"`
}

func (h SecretsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := map[string]bool{}
	if h.Status != nil {
		st = h.Status()
	}
	WriteJSON(w, http.StatusOK, map[string]any{"configured": st})
}

func (h SecretsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req setSecretReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if h.Set == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "keychain is not available")
		return
	}
	if err := h.Set(chi.URLParam(r, "name"), req.Value); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Remove == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "keychain is not available")
		return
	}
	if err := h.Remove(chi.URLParam(r, "name")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, secrets.ErrUnknownCredential) {
		WriteError(w, r, http.StatusNotFound, "unknown_credential", err.Error())
		return
	}
	WriteError(w, r, http.StatusBadRequest, "keychain_error", err.Error())
}
