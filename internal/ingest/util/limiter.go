package util

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter paces outbound calls per upstream host (api.adzuna.com,
// jooble.org, ...). All sources share one so a combined search cannot
// burst any single API.
type HostLimiter struct {
	limit rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewHostLimiter allows reqPerSec per host with the given burst. A
// non-positive rate disables pacing.
func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	limit := rate.Inf
	if reqPerSec > 0 {
		limit = rate.Limit(reqPerSec)
	}
	return &HostLimiter{
		limit: limit,
		burst: max(burst, 1),
		hosts: map[string]*rate.Limiter{},
	}
}

// WaitURL blocks until a call to rawURL's host is allowed or ctx ends.
// URLs without a host share one bucket.
func (hl *HostLimiter) WaitURL(ctx context.Context, rawURL string) error {
	if hl == nil {
		return nil
	}
	host := "_"
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = strings.ToLower(u.Host)
	}
	return hl.forHost(host).Wait(ctx)
}

func (hl *HostLimiter) forHost(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	lim, ok := hl.hosts[host]
	if !ok {
		lim = rate.NewLimiter(hl.limit, hl.burst)
		hl.hosts[host] = lim
	}
	return lim
}
