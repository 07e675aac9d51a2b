package domain

import "time"

// SourceInfo describes an upstream job board as listed in the source registry.
type SourceInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	APIURL      string `json:"apiUrl"`
	Description string `json:"description"`
	LegalNotes  string `json:"legalNotes,omitempty"`
	Paginated   bool   `json:"paginated"`
	Enabled     bool   `json:"enabled"`
}

// SourceRun is one logged call to an upstream source.
type SourceRun struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"`
	Params     string    `json:"params"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMS int64     `json:"durationMs"`
	Jobs       int       `json:"jobs"`
	TotalCount int       `json:"totalCount"`
	Error      string    `json:"error,omitempty"`
}

func (r SourceRun) OK() bool { return r.Error == "" }
