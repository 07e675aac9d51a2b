package domain

import "time"

// Location is a parsed free-text location. Fields that could not be
// determined are left empty and dropped from JSON.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

func (l Location) IsZero() bool {
	return l == Location{}
}

// Job is the canonical record every source mapper converges to.
// It is built once per upstream item and never mutated afterwards.
type Job struct {
	SourceID              string     `json:"sourceId"`
	SourceName            string     `json:"sourceName"`
	Title                 string     `json:"title"`
	CompanyName           string     `json:"companyName"`
	NormalizedCompanyName string     `json:"normalizedCompanyName"`
	Location              Location   `json:"location"`
	IsRemote              *bool      `json:"isRemote,omitempty"`
	Description           string     `json:"description"`
	URL                   string     `json:"url,omitempty"`
	PostedDate            *time.Time `json:"postedDate,omitempty"`
	ExpirationDate        *time.Time `json:"expirationDate,omitempty"`
	SalaryMin             *float64   `json:"salaryMin,omitempty"`
	SalaryMax             *float64   `json:"salaryMax,omitempty"`
	SalaryCurrency        string     `json:"salaryCurrency,omitempty"`
	JobType               string     `json:"jobType,omitempty"`
	ExperienceLevel       string     `json:"experienceLevel,omitempty"`
	Industry              string     `json:"industry,omitempty"`
	Skills                []string   `json:"skills"`
}

// PostedAt returns the posting time, or the zero time when unknown.
func (j Job) PostedAt() time.Time {
	if j.PostedDate == nil {
		return time.Time{}
	}
	return *j.PostedDate
}
