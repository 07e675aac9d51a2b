package types

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"jobsearch-engine/internal/domain"
)

// Params are the upstream query parameters for a single fetch. An empty
// map means "no parameters", which some sources treat specially.
type Params map[string]string

func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Without returns a copy of p minus the given keys.
func (p Params) Without(keys ...string) Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// String renders params deterministically for logs and the run log.
func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
	}
	return b.String()
}

// Query is the source-independent search request. Each source translates it
// into its own parameter names.
type Query struct {
	Keywords string
	Location string
	Page     int // 1-based; 0 means "don't send a page"
}

// Page is the normalized pagination envelope every source returns.
type Page struct {
	Jobs       []domain.Job `json:"jobs"`
	TotalCount int          `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
	Page       int          `json:"page"`
}

// Source is one upstream job board.
type Source interface {
	Name() string
	Label() string
	// Paginated reports whether the source supports page-by-page fetches.
	Paginated() bool
	Params(q Query) Params
	Fetch(ctx context.Context, p Params) (Page, error)
}

// TotalPages computes ceil(total/perPage) with a floor of 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	n := (total + perPage - 1) / perPage
	if n < 1 {
		return 1
	}
	return n
}

// CredentialFunc resolves a named credential (env var name) to its value,
// returning "" when it is not configured.
type CredentialFunc func(name string) string

// RequireCredentials resolves every name and fails with a ConfigError that
// lists all missing ones.
func RequireCredentials(source string, lookup CredentialFunc, names ...string) ([]string, error) {
	vals := make([]string, len(names))
	var missing []string
	for i, name := range names {
		if lookup != nil {
			vals[i] = strings.TrimSpace(lookup(name))
		}
		if vals[i] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Source: source, Missing: missing}
	}
	return vals, nil
}
