package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every API route behind the standard middleware stack.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, Recover, AccessLog, Cors(d.cfg().CORS.AllowedOrigins))

	r.Get("/api/health", HealthHandler{}.Health)

	jh := JobsHandler{Deps: d}
	r.Get("/api/jobs/combined", jh.Combined)
	r.Get("/api/jobs/{source}", jh.BySource)

	sh := SourcesHandler{Registry: d.Registry, Searcher: d.Searcher}
	r.Get("/api/sources", sh.List)
	r.Get("/api/sources/{source}/runs", sh.Runs)

	st := StatusHandler{Status: d.Status}
	r.Get("/api/search/status", st.Get)

	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	r.Get("/api/config", ch.Get)
	r.Put("/api/config", ch.Put)
	r.Get("/api/config/path", ch.Path)
	r.Get("/api/config/validate", ch.Validate)

	sec := SecretsHandler{Status: d.CredStatus, Set: d.SetSecret, Remove: d.DeleteSecret}
	r.Get("/api/secrets", sec.List)
	r.Put("/api/secrets/{name}", sec.Put)
	r.Delete("/api/secrets/{name}", sec.Delete)

	eh := EventsHandler{Hub: d.Hub}
	r.Get("/api/events", eh.ServeSSE)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" not allowed")
	})
	return r
}
