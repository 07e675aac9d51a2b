package search

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"jobsearch-engine/internal/domain"
)

const DefaultPageSize = 20

// Experience buckets accepted by Criteria.Experience.
const (
	ExperienceNone       = "0"
	ExperienceUnderThree = "<3"
	ExperienceThreeFive  = "3-5"
	ExperienceFivePlus   = "5+"
)

// Best-effort text heuristics, not a classifier.
var experiencePatterns = map[string]*regexp.Regexp{
	ExperienceNone:       regexp.MustCompile(`\b0\s*years?\b|entry[\s-]level|no experience`),
	ExperienceUnderThree: regexp.MustCompile(`\b[0-2]\+?\s*(?:-\s*[1-3]\s*)?years?\b`),
	ExperienceThreeFive:  regexp.MustCompile(`\b[3-5]\+?\s*(?:-\s*[3-6]\s*)?years?\b`),
	ExperienceFivePlus:   regexp.MustCompile(`\b(?:[5-9]|[1-9]\d)\+?\s*(?:-\s*\d+\s*)?years?\b`),
}

// Criteria are the request-level filters. Nil pointers and empty strings
// disable the corresponding filter.
type Criteria struct {
	Keywords     string
	Experience   string
	MinSalary    *float64
	MaxSalary    *float64
	PostedWithin *int // days; 0 means the last 24 hours
}

func (c Criteria) Active() bool {
	return strings.TrimSpace(c.Keywords) != "" || c.Experience != "" ||
		c.MinSalary != nil || c.MaxSalary != nil || c.PostedWithin != nil
}

// Filter returns the jobs matching every active criterion, in input order.
func Filter(jobs []domain.Job, c Criteria, now time.Time) []domain.Job {
	tokens := strings.Fields(strings.ToLower(c.Keywords))
	expRe := experiencePatterns[c.Experience]

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if !matchKeywords(j, tokens) {
			continue
		}
		if expRe != nil && !expRe.MatchString(strings.ToLower(j.Title+" "+j.Description)) {
			continue
		}
		if !matchSalary(j, c.MinSalary, c.MaxSalary) {
			continue
		}
		if c.PostedWithin != nil && !postedWithin(j, *c.PostedWithin, now) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// Every token must appear in the title and in the description.
func matchKeywords(j domain.Job, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	title := strings.ToLower(j.Title)
	desc := strings.ToLower(j.Description)
	for _, tok := range tokens {
		if !strings.Contains(title, tok) || !strings.Contains(desc, tok) {
			return false
		}
	}
	return true
}

// A one-sided salary is treated as a single-point range.
func matchSalary(j domain.Job, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if j.SalaryMin == nil && j.SalaryMax == nil {
		return false
	}
	lo, hi := j.SalaryMin, j.SalaryMax
	if lo == nil {
		lo = hi
	}
	if hi == nil {
		hi = lo
	}
	if min != nil && *lo < *min && *hi < *min {
		return false
	}
	if max != nil && *lo > *max && *hi > *max {
		return false
	}
	return true
}

func postedWithin(j domain.Job, days int, now time.Time) bool {
	if j.PostedDate == nil {
		return false
	}
	elapsed := now.Sub(*j.PostedDate)
	if days <= 0 {
		return elapsed < 24*time.Hour
	}
	return elapsed.Hours()/24 <= float64(days)
}

// SortByPostedDesc returns a copy ordered newest first. Undated jobs sort
// last and keep their relative order.
func SortByPostedDesc(jobs []domain.Job) []domain.Job {
	out := append([]domain.Job(nil), jobs...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].PostedAt().After(out[b].PostedAt())
	})
	return out
}

// Result is one page of a filtered list.
type Result struct {
	Jobs       []domain.Job `json:"jobs"`
	TotalCount int          `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
}

// Paginate slices a 1-based page out of jobs.
func Paginate(jobs []domain.Job, page, pageSize int) Result {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(jobs)
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}

	start := total
	if page <= pages {
		start = (page - 1) * pageSize
	}
	end := start + min(pageSize, total-start)
	return Result{
		Jobs:       append([]domain.Job{}, jobs[start:end]...),
		TotalCount: total,
		TotalPages: pages,
		Page:       page,
		PageSize:   pageSize,
	}
}
