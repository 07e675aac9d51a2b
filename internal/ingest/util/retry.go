package util

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"jobsearch-engine/internal/ingest/types"
)

const maxBodyBytes = 32 << 20

// RetryPolicy controls retries on HTTP 429. Attempt n (1-based) that gets
// rate limited waits n*BaseDelay before the next one.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Requester performs upstream calls for one source: pacing, the 429 retry
// loop and status classification.
type Requester struct {
	Source  string
	HC      *http.Client
	Limiter *HostLimiter
	Retry   RetryPolicy

	// Sleep is swapped out in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewRequester(source string, hc *http.Client, limiter *HostLimiter, retry RetryPolicy) *Requester {
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	return &Requester{
		Source:  source,
		HC:      hc,
		Limiter: limiter,
		Retry:   retry,
	}
}

// Do sends the request built by newReq and returns the 2xx body. newReq is
// called once per attempt so request bodies can be replayed.
func (r *Requester) Do(ctx context.Context, newReq func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	attempts := r.Retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := newReq(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s build request: %w", r.Source, err)
		}

		if err := r.Limiter.WaitURL(ctx, req.URL.String()); err != nil {
			return nil, err
		}

		res, err := r.HC.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request: %w", r.Source, err)
		}
		body, readErr := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
		res.Body.Close()

		if res.StatusCode == http.StatusTooManyRequests {
			log.Printf("[source:%s] rate limited attempt=%d/%d", r.Source, attempt, attempts)
			if attempt == attempts {
				break
			}
			if err := r.sleep(ctx, time.Duration(attempt)*r.Retry.BaseDelay); err != nil {
				return nil, err
			}
			continue
		}
		if res.StatusCode < 200 || res.StatusCode > 299 {
			return nil, &types.StatusError{
				Source: r.Source,
				Status: res.StatusCode,
				Body:   truncate(string(body), 240),
			}
		}
		if readErr != nil {
			return nil, fmt.Errorf("%s read body: %w", r.Source, readErr)
		}
		return body, nil
	}

	return nil, &types.IngestionError{Source: r.Source, Attempts: attempts}
}

func (r *Requester) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
