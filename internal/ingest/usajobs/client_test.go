package usajobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/ingest/util"
	"jobsearch-engine/internal/secrets"
)

const searchPayload = `{
  "LanguageCode": "EN",
  "SearchResult": {
    "SearchResultCount": 1,
    "SearchResultCountAll": 51,
    "SearchResultItems": [
      {
        "MatchedObjectId": "784512300",
        "MatchedObjectDescriptor": {
          "PositionID": "IT-24-001",
          "PositionTitle": "IT SPECIALIST (APPSW)",
          "PositionURI": "https://www.usajobs.gov/job/784512300",
          "PositionLocationDisplay": "Washington, DC",
          "OrganizationName": "Office of the Chief Information Officer",
          "DepartmentName": "Department of Commerce",
          "JobCategory": [{"Name": "Information Technology Management", "Code": "2210"}],
          "JobGrade": [{"Code": "GS"}],
          "PositionSchedule": [{"Name": "Full-time", "Code": "1"}],
          "QualificationSummary": "Qualifications text",
          "PositionRemuneration": [{"MinimumRange": "117962.0", "MaximumRange": "153354.0", "RateIntervalCode": "PA"}],
          "PublicationStartDate": "2024-05-01T00:00:00.0000",
          "ApplicationCloseDate": "2024-05-15T23:59:59.9970",
          "UserArea": {"Details": {"JobSummary": "Maintain <b>Java</b> and SQL systems.", "LowGrade": "12", "HighGrade": "13", "RemoteIndicator": true}}
        }
      }
    ]
  }
}`

func creds(name string) string {
	switch name {
	case secrets.USAJobsAPIKey:
		return "usa-key"
	case secrets.USAJobsUserAgent:
		return "me@example.com"
	}
	return ""
}

func TestFetchSendsHeadersAndParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "usa-key", r.Header.Get("Authorization-Key"))
		assert.Equal(t, "me@example.com", r.Header.Get("User-Agent"))
		q := r.URL.Query()
		assert.Equal(t, "developer", q.Get("Keyword"))
		assert.Equal(t, "Denver", q.Get("LocationName"))
		assert.Equal(t, "2", q.Get("Page"))
		assert.Equal(t, "25", q.Get("ResultsPerPage"))
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	c := New(util.ClientDeps{Retry: util.DefaultRetryPolicy(), Creds: creds, UserAgent: "fallback"}, Options{BaseURL: srv.URL})
	page, err := c.Fetch(context.Background(), c.Params(types.Query{Keywords: "developer", Location: "Denver", Page: 2}))
	require.NoError(t, err)

	assert.Equal(t, 51, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Jobs, 1)
}

func TestFetchFallsBackToConfiguredUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fallback", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"SearchResult": {"SearchResultCount": 0, "SearchResultItems": []}}`))
	}))
	defer srv.Close()

	onlyKey := func(name string) string {
		if name == secrets.USAJobsAPIKey {
			return "usa-key"
		}
		return ""
	}
	c := New(util.ClientDeps{Creds: onlyKey, UserAgent: "fallback"}, Options{BaseURL: srv.URL})
	page, err := c.Fetch(context.Background(), types.Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Jobs)
}

func TestFetchPropagatesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(util.ClientDeps{Creds: creds}, Options{BaseURL: srv.URL})
	_, err := c.Fetch(context.Background(), types.Params{})
	var se *types.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.False(t, errors.Is(err, types.ErrMissingCredentials))
}

func TestMapJob(t *testing.T) {
	raw, err := util.Decode([]byte(searchPayload))
	require.NoError(t, err)
	items := util.Objects(raw, "SearchResult", "SearchResultItems")
	require.Len(t, items, 1)

	j := MapJob(items[0])
	assert.Equal(t, "784512300", j.SourceID)
	assert.Equal(t, "USA Jobs", j.SourceName)
	assert.Equal(t, "It Specialist (Appsw)", j.Title)
	assert.Equal(t, "Office Of The Chief Information Officer", j.CompanyName)
	assert.Equal(t, domain.Location{City: "Washington", State: "District of Columbia"}, j.Location)
	assert.True(t, *j.IsRemote)
	assert.Equal(t, "Maintain Java and SQL systems.", j.Description)
	assert.Equal(t, 117962.0, *j.SalaryMin)
	assert.Equal(t, 153354.0, *j.SalaryMax)
	assert.Equal(t, "USD", j.SalaryCurrency)
	assert.Equal(t, "Full-time", j.JobType)
	assert.Equal(t, "GS 12-13", j.ExperienceLevel)
	assert.Equal(t, "Information Technology Management", j.Industry)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *j.PostedDate)
	require.NotNil(t, j.ExpirationDate)
	assert.Equal(t, 2024, j.ExpirationDate.Year())
	assert.Equal(t, []string{"Java", "SQL"}, j.Skills)
}

func TestMapJobMissingDescriptor(t *testing.T) {
	j := MapJob(util.Raw{"MatchedObjectId": "1"})
	assert.Equal(t, "1", j.SourceID)
	assert.False(t, *j.IsRemote)
	assert.Nil(t, j.SalaryMin)
	assert.Equal(t, "", j.SalaryCurrency)
	assert.NotNil(t, j.Skills)
}
