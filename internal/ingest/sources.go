package ingest

import (
	"net/http"
	"strings"
	"time"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/adzuna"
	"jobsearch-engine/internal/ingest/jooble"
	"jobsearch-engine/internal/ingest/muse"
	"jobsearch-engine/internal/ingest/remotive"
	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/ingest/usajobs"
	"jobsearch-engine/internal/ingest/util"
)

// Deps builds the shared client collaborators from config.
func Deps(cfg config.Config, creds types.CredentialFunc) util.ClientDeps {
	return util.ClientDeps{
		HTTP:    &http.Client{Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second},
		Limiter: util.NewHostLimiter(cfg.HTTP.RequestsPerSecond, cfg.HTTP.Burst),
		Retry: util.RetryPolicy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Retry.BaseDelayMS) * time.Millisecond,
		},
		Creds:     creds,
		UserAgent: cfg.HTTP.UserAgent,
	}
}

// BuildSources returns a client for every enabled source, in
// config.KnownSources order.
func BuildSources(cfg config.Config, deps util.ClientDeps) []types.Source {
	var out []types.Source

	if sc := cfg.Sources.Adzuna; sc.Enabled {
		out = append(out, adzuna.New(deps, adzuna.Options{BaseURL: sc.BaseURL, Country: sc.Country, PerPage: sc.PerPage}))
	}
	if sc := cfg.Sources.Jooble; sc.Enabled {
		out = append(out, jooble.New(deps, jooble.Options{BaseURL: sc.BaseURL, PerPage: sc.PerPage}))
	}
	if sc := cfg.Sources.Muse; sc.Enabled {
		out = append(out, muse.New(deps, muse.Options{BaseURL: sc.BaseURL, PerPage: sc.PerPage}))
	}
	if sc := cfg.Sources.Remotive; sc.Enabled {
		window := remotive.DefaultCache
		if sc.CacheHours > 0 {
			window = time.Duration(sc.CacheHours) * time.Hour
		}
		out = append(out, remotive.New(deps, remotive.Options{
			BaseURL: sc.BaseURL,
			Cache:   util.NewFreshnessCell[types.Page](window, nil),
		}))
	}
	if sc := cfg.Sources.USAJobs; sc.Enabled {
		out = append(out, usajobs.New(deps, usajobs.Options{BaseURL: sc.BaseURL, PerPage: sc.PerPage}))
	}
	return out
}

const remotiveNotice = "Fetch at most 4 times a day (listings are cached for 6 hours). " +
	"Always attribute jobs to Remotive and link to their URL. " +
	"Do not submit Remotive jobs to other job boards or use them for email collection. " +
	"See https://remotive.com/api-documentation"

// Catalog describes every known source for the registry, enabled or not.
func Catalog(cfg config.Config) []domain.SourceInfo {
	apiURL := func(name, def, path string) string {
		sc, _ := cfg.Source(name)
		base := sc.BaseURL
		if base == "" {
			base = def
		}
		return strings.TrimRight(base, "/") + path
	}
	return []domain.SourceInfo{
		{
			Name:        adzuna.Name,
			Label:       adzuna.Label,
			APIURL:      apiURL(adzuna.Name, adzuna.DefaultBaseURL, "/v1/api/jobs/"+cfg.Sources.Adzuna.Country+"/search"),
			Description: "Job search aggregator with structured salary and location data.",
			Paginated:   true,
			Enabled:     cfg.Sources.Adzuna.Enabled,
		},
		{
			Name:        jooble.Name,
			Label:       jooble.Label,
			APIURL:      apiURL(jooble.Name, jooble.DefaultBaseURL, "/api"),
			Description: "International job search engine queried by keywords and location.",
			Paginated:   true,
			Enabled:     cfg.Sources.Jooble.Enabled,
		},
		{
			Name:        muse.Name,
			Label:       muse.Label,
			APIURL:      apiURL(muse.Name, muse.DefaultBaseURL, "/api/public/jobs"),
			Description: "Company-profile job board with level and category metadata.",
			Paginated:   true,
			Enabled:     cfg.Sources.Muse.Enabled,
		},
		{
			Name:        remotive.Name,
			Label:       remotive.Label,
			APIURL:      apiURL(remotive.Name, remotive.DefaultBaseURL, "/api/remote-jobs"),
			Description: "Remote-only job board.",
			LegalNotes:  remotiveNotice,
			Enabled:     cfg.Sources.Remotive.Enabled,
		},
		{
			Name:        usajobs.Name,
			Label:       usajobs.Label,
			APIURL:      apiURL(usajobs.Name, usajobs.DefaultBaseURL, "/api/search"),
			Description: "US federal government job announcements.",
			Paginated:   true,
			Enabled:     cfg.Sources.USAJobs.Enabled,
		},
	}
}
