package httpapi

// SearchStatus summarizes the most recent combined search.
type SearchStatus struct {
	LastRunAt     string   `json:"last_run_at"`
	LastKeywords  string   `json:"last_keywords"`
	LastJobs      int      `json:"last_jobs"`
	LastMatched   int      `json:"last_matched"`
	FailedSources []string `json:"failed_sources"`
	DurationMS    int64    `json:"duration_ms"`
}

// sourceSummary is a source's share of a combined search. Errors stay in
// the logs and the run log.
type sourceSummary struct {
	Source     string `json:"source"`
	Jobs       int    `json:"jobs"`
	Pages      int    `json:"pages"`
	DurationMS int64  `json:"durationMs"`
	OK         bool   `json:"ok"`
}
