package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"jobsearch-engine/internal/config"
)

// ConfigHandler reads and replaces the user config. Search limits and page
// sizes apply to the next request; source client settings apply on restart.
type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

type configSaved struct {
	Config   config.Config `json:"config"`
	Warnings []string      `json:"warnings"`
}

func (h ConfigHandler) current() config.Config {
	return Deps{CfgVal: h.CfgVal}.cfg()
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.current())
}

// Put validates the body, saves it atomically and reloads it from disk so
// the stored value is what the next start will see.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var incoming config.Config
	if err := decodeStrict(r, &incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		WriteJSON(w, http.StatusBadRequest, vr)
		return
	}
	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	saved := normalized
	if h.LoadCfg != nil {
		var err error
		if saved, err = h.LoadCfg(); err != nil {
			WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
			return
		}
	}
	if h.CfgVal != nil {
		h.CfgVal.Store(saved)
	}

	WriteJSON(w, http.StatusOK, configSaved{Config: saved, Warnings: vr.Warnings})
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, err := filepath.Abs(h.UserCfgPath)
	if err != nil {
		abs = h.UserCfgPath
	}
	WriteJSON(w, http.StatusOK, map[string]string{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.current())
	WriteJSON(w, http.StatusOK, vr)
}

// decodeStrict decodes exactly one JSON value with no unknown fields.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON body")
	}
	return nil
}
