// Package usajobs queries the USAJOBS search API (data.usajobs.gov).
// Requests authenticate with an Authorization-Key header and must send the
// registered email address as User-Agent.
package usajobs

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
	Name           = "usajobs"
	Label          = "USA Jobs"
	DefaultBaseURL = "https://data.usajobs.gov"
	DefaultPerPage = 25
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
	if q.Keywords != "" {
		p["Keyword"] = q.Keywords
	}
	if q.Location != "" {
		p["LocationName"] = q.Location
	}
	if q.Page > 0 {
		p["Page"] = strconv.Itoa(q.Page)
	}
	return p
}

func (c *Client) Fetch(ctx context.Context, p types.Params) (types.Page, error) {
	creds, err := types.RequireCredentials(Name, c.creds, secrets.USAJobsAPIKey)
	if err != nil {
		return types.Page{}, err
	}
	userAgent := c.userAgent
	if c.creds != nil {
		if ua := strings.TrimSpace(c.creds(secrets.USAJobsUserAgent)); ua != "" {
			userAgent = ua
		}
	}

	page := p.Int("Page", 1)
	if page < 1 {
		page = 1
	}
	perPage := p.Int("ResultsPerPage", c.perPage)

	q := url.Values{}
	for k, v := range p {
		q.Set(k, v)
	}
	q.Set("Page", strconv.Itoa(page))
	q.Set("ResultsPerPage", strconv.Itoa(perPage))
	u := c.baseURL + "/api/search?" + q.Encode()

	body, err := c.rq.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization-Key", creds[0])
		if userAgent != "" {
			req.Header.Set("User-Agent", userAgent)
		}
		return req, nil
	})
	if err != nil {
		return types.Page{}, err
	}

	raw, err := util.Decode(body)
	if err != nil {
		return types.Page{}, fmt.Errorf("usajobs decode: %w", err)
	}

	items := util.Objects(raw, "SearchResult", "SearchResultItems")
	jobs := make([]domain.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, MapJob(it))
	}

	total := util.Count(raw, "SearchResult", "SearchResultCountAll")
	if total == 0 {
		total = util.Count(raw, "SearchResult", "SearchResultCount")
	}
	log.Printf("[source:usajobs] page=%d jobs=%d total=%d", page, len(jobs), total)

	return types.Page{
		Jobs:       jobs,
		TotalCount: total,
		TotalPages: types.TotalPages(total, perPage),
		Page:       page,
	}, nil
}
