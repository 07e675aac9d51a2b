// Package jooble queries the Jooble REST API. Searches are POSTed as JSON
// to /api/{key}.
package jooble

import (
	"bytes"
	"context"
	"encoding/json"
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
	Name           = "jooble"
	Label          = "Jooble"
	DefaultBaseURL = "https://jooble.org"
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
	if q.Keywords != "" {
		p["keywords"] = q.Keywords
	}
	if q.Location != "" {
		p["location"] = q.Location
	}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	return p
}

func (c *Client) Fetch(ctx context.Context, p types.Params) (types.Page, error) {
	creds, err := types.RequireCredentials(Name, c.creds, secrets.JoobleAPIKey)
	if err != nil {
		return types.Page{}, err
	}

	page := p.Int("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := p.Int("ResultOnPage", c.perPage)

	payload := map[string]any{}
	for k, v := range p.Without("page", "ResultOnPage") {
		payload[k] = v
	}
	payload["page"] = strconv.Itoa(page)
	payload["ResultOnPage"] = perPage

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return types.Page{}, fmt.Errorf("jooble encode: %w", err)
	}
	u := c.baseURL + "/api/" + url.PathEscape(creds[0])

	body, err := c.rq.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
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
		return types.Page{}, fmt.Errorf("jooble decode: %w", err)
	}

	items := util.Objects(raw, "jobs")
	jobs := make([]domain.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, MapJob(it))
	}

	total := util.Count(raw, "totalCount")
	log.Printf("[source:jooble] page=%d jobs=%d total=%d", page, len(jobs), total)

	return types.Page{
		Jobs:       jobs,
		TotalCount: total,
		TotalPages: types.TotalPages(total, perPage),
		Page:       page,
	}, nil
}
