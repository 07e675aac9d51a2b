package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"jobsearch-engine/internal/search"
)

// badParam is a malformed query parameter.
type badParam struct {
	name  string
	value string
}

func (e badParam) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.name, e.value)
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badParam{name, v}
	}
	return n, nil
}

func optIntParam(q url.Values, name string) (*int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil, badParam{name, v}
	}
	return &n, nil
}

func optFloatParam(q url.Values, name string) (*float64, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, badParam{name, v}
	}
	return &f, nil
}

// jobsRequest is the parsed query string shared by the jobs endpoints.
type jobsRequest struct {
	Keywords string
	Location string
	Page     int
	PageSize int
	Criteria search.Criteria
}

func parseJobsRequest(q url.Values, defPageSize, maxPageSize int) (jobsRequest, error) {
	var (
		req jobsRequest
		err error
	)
	req.Keywords = strings.TrimSpace(q.Get("keywords"))
	req.Location = strings.TrimSpace(q.Get("location"))

	if req.Page, err = intParam(q, "page", 1); err != nil {
		return req, err
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize, err = intParam(q, "pageSize", defPageSize); err != nil {
		return req, err
	}
	if req.PageSize < 1 {
		req.PageSize = defPageSize
	}
	if maxPageSize > 0 && req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	c := search.Criteria{
		Keywords:   req.Keywords,
		Experience: strings.TrimSpace(q.Get("experience")),
	}
	if c.MinSalary, err = optFloatParam(q, "minSalary"); err != nil {
		return req, err
	}
	if c.MaxSalary, err = optFloatParam(q, "maxSalary"); err != nil {
		return req, err
	}
	if c.PostedWithin, err = optIntParam(q, "postedWithin"); err != nil {
		return req, err
	}
	req.Criteria = c
	return req, nil
}
