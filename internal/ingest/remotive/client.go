// Package remotive queries the Remotive remote-jobs API.
//
// Remotive's terms: fetch at most four times a day, attribute every job to
// Remotive and link back to its URL. Full (no-parameter) listings are held
// in a freshness cell for that reason.
package remotive

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/ingest/util"
)

const (
	Name           = "remotive"
	Label          = "Remotive"
	DefaultBaseURL = "https://remotive.com"
	DefaultCache   = 6 * time.Hour
)

type Options struct {
	BaseURL string
	// Cache holds the last no-parameter listing. Nil gets a DefaultCache cell.
	Cache *util.FreshnessCell[types.Page]
}

type Client struct {
	baseURL   string
	userAgent string
	rq        *util.Requester
	cache     *util.FreshnessCell[types.Page]
}

func New(deps util.ClientDeps, opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: deps.UserAgent,
		rq:        deps.Requester(Name),
		cache:     opts.Cache,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.cache == nil {
		c.cache = util.NewFreshnessCell[types.Page](DefaultCache, nil)
	}
	return c
}

func (c *Client) Name() string    { return Name }
func (c *Client) Label() string   { return Label }
func (c *Client) Paginated() bool { return false }

// Params maps keywords to "search". Remotive has no location filter and no
// paging; the whole result set comes back in one response.
func (c *Client) Params(q types.Query) types.Params {
	p := types.Params{}
	if q.Keywords != "" {
		p["search"] = q.Keywords
	}
	return p
}

func (c *Client) Fetch(ctx context.Context, p types.Params) (types.Page, error) {
	cacheable := len(p) == 0
	if cacheable {
		if page, ok := c.cache.Get(); ok {
			log.Printf("[source:remotive] cache hit jobs=%d", len(page.Jobs))
			return page, nil
		}
	}

	q := url.Values{}
	for k, v := range p {
		q.Set(k, v)
	}
	u := c.baseURL + "/api/remote-jobs"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	body, err := c.rq.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		return req, nil
	})
	if err != nil {
		return types.Page{}, err
	}

	raw, err := util.Decode(body)
	if err != nil {
		return types.Page{}, fmt.Errorf("remotive decode: %w", err)
	}

	items := util.Objects(raw, "jobs")
	jobs := make([]domain.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, MapJob(it))
	}

	page := types.Page{
		Jobs:       jobs,
		TotalCount: len(jobs),
		TotalPages: 1,
		Page:       1,
	}
	if cacheable {
		c.cache.Put(page)
	}
	log.Printf("[source:remotive] params=%q jobs=%d cached=%t", p.String(), len(jobs), cacheable)
	return page, nil
}
