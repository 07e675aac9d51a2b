// Package adzuna queries the Adzuna job search API.
//
// API docs: https://developer.adzuna.com/docs/search
package adzuna

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
	Name           = "adzuna"
	Label          = "Adzuna"
	DefaultBaseURL = "https://api.adzuna.com"
	DefaultPerPage = 50
)

type Options struct {
	BaseURL string
	Country string
	PerPage int
}

type Client struct {
	baseURL   string
	country   string
	perPage   int
	creds     types.CredentialFunc
	userAgent string
	rq        *util.Requester
}

func New(deps util.ClientDeps, opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		country:   strings.ToLower(strings.TrimSpace(opts.Country)),
		perPage:   opts.PerPage,
		creds:     deps.Creds,
		userAgent: deps.UserAgent,
		rq:        deps.Requester(Name),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.country == "" {
		c.country = "us"
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
	if q.Keywords != "" {
		p["what"] = q.Keywords
	}
	if q.Location != "" {
		p["where"] = q.Location
	}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	return p
}

// Fetch requests one search page. "page" selects the path segment; every
// other param is passed through as a query string argument.
func (c *Client) Fetch(ctx context.Context, p types.Params) (types.Page, error) {
	creds, err := types.RequireCredentials(Name, c.creds, secrets.AdzunaAppID, secrets.AdzunaAPIKey)
	if err != nil {
		return types.Page{}, err
	}

	page := p.Int("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := p.Int("results_per_page", c.perPage)

	q := url.Values{}
	for k, v := range p.Without("page") {
		q.Set(k, v)
	}
	q.Set("app_id", creds[0])
	q.Set("app_key", creds[1])
	q.Set("results_per_page", strconv.Itoa(perPage))

	u := fmt.Sprintf("%s/v1/api/jobs/%s/search/%d?%s", c.baseURL, url.PathEscape(c.country), page, q.Encode())

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
		return types.Page{}, fmt.Errorf("adzuna decode: %w", err)
	}

	currency := currencyFor(c.country)
	items := util.Objects(raw, "results")
	jobs := make([]domain.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, MapJob(it, currency))
	}

	total := util.Count(raw, "count")
	log.Printf("[source:adzuna] country=%s page=%d jobs=%d total=%d", c.country, page, len(jobs), total)

	return types.Page{
		Jobs:       jobs,
		TotalCount: total,
		TotalPages: types.TotalPages(total, perPage),
		Page:       page,
	}, nil
}

var countryCurrency = map[string]string{
	"us": "USD", "gb": "GBP", "ca": "CAD", "au": "AUD", "nz": "NZD",
	"in": "INR", "sg": "SGD", "za": "ZAR", "br": "BRL", "mx": "MXN",
	"pl": "PLN", "ch": "CHF", "de": "EUR", "fr": "EUR", "nl": "EUR",
	"it": "EUR", "es": "EUR", "at": "EUR", "be": "EUR",
}

func currencyFor(country string) string {
	return countryCurrency[country]
}
