package muse

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
  "page": 1,
  "page_count": 99,
  "items_per_page": 20,
  "total": 45,
  "results": [
    {
      "id": 11482001,
      "name": "Data Engineer",
      "contents": "<p>Own our <b>Spark</b> and Kafka pipelines.</p><ul><li>Python</li><li>SQL</li></ul>",
      "type": "external",
      "publication_date": "2024-05-01T12:00:00Z",
      "locations": [{"name": "New York, NY"}, {"name": "Flexible / Remote"}],
      "levels": [{"name": "Mid Level", "short_name": "mid"}],
      "categories": [{"name": "Data and Analytics"}],
      "refs": {"landing_page": "https://www.themuse.com/jobs/acme/data-engineer"},
      "company": {"id": 1, "name": "Acme"}
    },
    {"id": 2, "name": "Barista", "locations": "not-a-list", "company": {"name": "Cafe"}}
  ]
}`

func TestFetchConvertsPageToZeroBased(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/jobs", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "muse-key", q.Get("api_key"))
		assert.Equal(t, "New York, NY", q.Get("location"))
		assert.Empty(t, q.Get("keywords"))
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	deps := util.ClientDeps{
		Retry: util.DefaultRetryPolicy(),
		Creds: func(name string) string {
			if name == secrets.MuseAPIKey {
				return "muse-key"
			}
			return ""
		},
	}
	c := New(deps, Options{BaseURL: srv.URL})
	page, err := c.Fetch(context.Background(), c.Params(types.Query{Keywords: "ignored", Location: "New York, NY", Page: 2}))
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 45, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Jobs, 2)
}

func TestFetchMissingKey(t *testing.T) {
	c := New(util.ClientDeps{}, Options{})
	_, err := c.Fetch(context.Background(), types.Params{})
	var ce *types.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Name, ce.Source)
}

func TestMapJob(t *testing.T) {
	raw, err := util.Decode([]byte(searchPayload))
	require.NoError(t, err)
	items := util.Objects(raw, "results")

	j := MapJob(items[0])
	assert.Equal(t, "11482001", j.SourceID)
	assert.Equal(t, "The Muse", j.SourceName)
	assert.Equal(t, "Own our Spark and Kafka pipelines. Python SQL", j.Description)
	assert.Equal(t, domain.Location{City: "New York", State: "New York"}, j.Location)
	require.NotNil(t, j.IsRemote)
	assert.True(t, *j.IsRemote)
	assert.Equal(t, "Mid Level", j.ExperienceLevel)
	assert.Equal(t, "Data and Analytics", j.Industry)
	assert.Equal(t, "https://www.themuse.com/jobs/acme/data-engineer", j.URL)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), *j.PostedDate)
	assert.Equal(t, []string{"Kafka", "Python", "SQL", "Spark"}, j.Skills)
	assert.Nil(t, j.SalaryMin)

	sparse := MapJob(items[1])
	assert.Equal(t, "Barista", sparse.Title)
	assert.True(t, sparse.Location.IsZero())
	assert.False(t, *sparse.IsRemote)
	assert.Equal(t, "", sparse.Description)
}
