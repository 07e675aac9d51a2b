package util

import (
	"net/http"

	"jobsearch-engine/internal/ingest/types"
)

// ClientDeps are the collaborators every source client shares.
type ClientDeps struct {
	HTTP      *http.Client
	Limiter   *HostLimiter
	Retry     RetryPolicy
	Creds     types.CredentialFunc
	UserAgent string
}

func (d ClientDeps) Requester(source string) *Requester {
	return NewRequester(source, d.HTTP, d.Limiter, d.Retry)
}
