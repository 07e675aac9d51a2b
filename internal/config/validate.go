package config

import (
	"fmt"
	"slices"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg plus any problems.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	res := Validation{Errors: []string{}, Warnings: []string{}}

	trimList := func(xs []string, lower bool) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if lower {
				x = strings.ToLower(x)
			}
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.Sources = trimList(out.Search.Sources, true)
	out.CORS.AllowedOrigins = trimList(out.CORS.AllowedOrigins, false)
	out.Sources.Adzuna.Country = strings.ToLower(strings.TrimSpace(out.Sources.Adzuna.Country))

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if strings.TrimSpace(out.App.DataDir) == "" {
		res.addErr("app.data_dir is required")
	}

	// search
	if len(out.Search.Sources) == 0 {
		res.addWarn("search.sources is empty; combined search will always return nothing.")
	}
	for _, name := range out.Search.Sources {
		sc, ok := out.Source(name)
		if !ok {
			res.addErr("search.sources: unknown source %q (known: %s)", name, strings.Join(KnownSources, ", "))
			continue
		}
		if !sc.Enabled {
			res.addWarn("search.sources lists %q but sources.%s.enabled is false; it will be skipped.", name, name)
		}
	}
	if out.Search.MaxJobsPerSource <= 0 {
		res.addErr("search.max_jobs_per_source must be > 0")
	}
	if out.Search.DefaultPageSize <= 0 {
		res.addErr("search.default_page_size must be > 0")
	}
	if out.Search.MaxPageSize < out.Search.DefaultPageSize {
		res.addErr("search.max_page_size must be >= search.default_page_size")
	}

	// outbound http
	if out.HTTP.TimeoutSeconds <= 0 {
		res.addErr("http.timeout_seconds must be > 0")
	}
	if out.HTTP.RequestsPerSecond > 10 {
		res.addWarn("http.requests_per_second is high (%.1f) and may trip upstream rate limits.", out.HTTP.RequestsPerSecond)
	}
	if out.Retry.MaxAttempts < 1 {
		res.addErr("retry.max_attempts must be >= 1")
	}
	if out.Retry.BaseDelayMS < 0 {
		res.addErr("retry.base_delay_ms must be >= 0")
	}

	// per source
	if out.Sources.Adzuna.Enabled && len(out.Sources.Adzuna.Country) != 2 {
		res.addErr("sources.adzuna.country must be a two-letter country code")
	}
	for _, name := range []string{SourceAdzuna, SourceJooble, SourceMuse, SourceUSAJobs} {
		sc, _ := out.Source(name)
		if sc.PerPage < 0 {
			res.addErr("sources.%s.per_page must be >= 0", name)
		}
	}
	if out.Sources.Remotive.CacheHours < 6 {
		res.addWarn("sources.remotive.cache_hours is %d; Remotive asks clients to fetch at most 4 times a day.", out.Sources.Remotive.CacheHours)
	}
	if out.Sources.Remotive.Warm && !out.Sources.Remotive.Enabled {
		res.addWarn("sources.remotive.warm has no effect while the source is disabled.")
	}

	if out.RunLog.RetentionDays <= 0 {
		res.addErr("run_log.retention_days must be > 0")
	}
	if slices.Contains(out.CORS.AllowedOrigins, "*") && len(out.CORS.AllowedOrigins) > 1 {
		res.addWarn("cors.allowed_origins contains \"*\"; the other entries are redundant.")
	}

	return out, res
}
