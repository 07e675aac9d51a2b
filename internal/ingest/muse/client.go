// Package muse queries The Muse public jobs API. The API pages from 0 and
// has no free-text search, so keywords are not forwarded.
package muse

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/ingest/util"
	"jobsearch-engine/internal/secrets"
)

const (
	Name           = "muse"
	Label          = "The Muse"
	DefaultBaseURL = "https://www.themuse.com"
	DefaultPerPage = 20
)

type Options struct {
	BaseURL string
	PerPage int
}

type Client struct {
	baseURL   string
	perPage   int
	creds     types.CredentialFunc
	userAgent string
	rq        *util.Requester
}

func New(deps util.ClientDeps, opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		perPage:   opts.PerPage,
		creds:     deps.Creds,
		userAgent: deps.UserAgent,
		rq:        deps.Requester(Name),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.perPage <= 0 {
		c.perPage = DefaultPerPage
	}
	return c
}

func (c *Client) Name() string    { return Name }
func (c *Client) Label() string   { return Label }
func (c *Client) Paginated() bool { return true }

func (c *Client) Params(q types.Query) types.Params {
	p := types.Params{}
	if q.Location != "" {
		p["location"] = q.Location
	}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	return p
}

// Fetch takes a 1-based "page" and converts it to the API's 0-based one.
func (c *Client) Fetch(ctx context.Context, p types.Params) (types.Page, error) {
	creds, err := types.RequireCredentials(Name, c.creds, secrets.MuseAPIKey)
	if err != nil {
		return types.Page{}, err
	}

	page := p.Int("page", 1)
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	for k, v := range p.Without("page") {
		q.Set(k, v)
	}
	q.Set("page", strconv.Itoa(page-1))
	q.Set("api_key", creds[0])
	u := c.baseURL + "/api/public/jobs?" + q.Encode()

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
		return types.Page{}, fmt.Errorf("muse decode: %w", err)
	}

	items := util.Objects(raw, "results")
	jobs := make([]domain.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, MapJob(it))
	}

	total := util.Count(raw, "total")
	log.Printf("[source:muse] page=%d jobs=%d total=%d", page, len(jobs), total)

	return types.Page{
		Jobs:       jobs,
		TotalCount: total,
		TotalPages: types.TotalPages(total, c.perPage),
		Page:       page,
	}, nil
}
