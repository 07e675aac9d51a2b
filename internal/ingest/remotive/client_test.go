package remotive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsearch-engine/internal/ingest/types"
	"jobsearch-engine/internal/ingest/util"
)

const listPayload = `{
  "0-legal-notice": "Remotive API Legal Notice",
  "job-count": 2,
  "jobs": [
    {
      "id": 1912345,
      "url": "https://remotive.com/remote-jobs/software-dev/senior-go-engineer-1912345",
      "title": "Senior Go Engineer",
      "company_name": "Hooli",
      "category": "Software Development",
      "tags": ["golang", "kubernetes", "gRPC"],
      "job_type": "full_time",
      "publication_date": "2024-05-01T09:30:00",
      "candidate_required_location": "USA",
      "salary": "$140k - $170k",
      "description": "<p>Join the <strong>platform</strong> team.</p>"
    },
    {"id": 7, "title": "Copywriter", "company_name": "Pied Piper", "tags": [], "description": "Write about Python and React"}
  ]
}`

type fakeAPI struct {
	srv    *httptest.Server
	hits   atomic.Int32
	limits int32
}

func newFakeAPI(t *testing.T, rateLimited int32) *fakeAPI {
	f := &fakeAPI{limits: rateLimited}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := f.hits.Add(1)
		assert.Equal(t, "/api/remote-jobs", r.URL.Path)
		if n <= f.limits {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(listPayload))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func deps() util.ClientDeps {
	return util.ClientDeps{Retry: util.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}}
}

func TestFetchCachesNoParamListing(t *testing.T) {
	api := newFakeAPI(t, 0)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cell := util.NewFreshnessCell[types.Page](6*time.Hour, func() time.Time { return now })
	c := New(deps(), Options{BaseURL: api.srv.URL, Cache: cell})

	first, err := c.Fetch(context.Background(), types.Params{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalCount)
	assert.Equal(t, 1, first.TotalPages)
	assert.Equal(t, 1, first.Page)

	now = now.Add(5 * time.Hour)
	second, err := c.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), api.hits.Load())

	now = now.Add(time.Hour)
	_, err = c.Fetch(context.Background(), types.Params{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.hits.Load())
}

func TestFetchWithParamsBypassesCache(t *testing.T) {
	api := newFakeAPI(t, 0)
	c := New(deps(), Options{BaseURL: api.srv.URL})

	for i := 0; i < 2; i++ {
		_, err := c.Fetch(context.Background(), c.Params(types.Query{Keywords: "go", Page: 4}))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), api.hits.Load())
	assert.Equal(t, types.Params{"search": "go"}, c.Params(types.Query{Keywords: "go", Location: "Berlin", Page: 4}))
}

func TestFetchGivesUpAfterRetryBudget(t *testing.T) {
	api := newFakeAPI(t, 5)
	c := New(deps(), Options{BaseURL: api.srv.URL})

	_, err := c.Fetch(context.Background(), types.Params{})
	assert.True(t, errors.Is(err, types.ErrRetriesExhausted))
	assert.Equal(t, int32(3), api.hits.Load())

	_, ok := c.cache.Get()
	assert.False(t, ok, "failures are not cached")
}

func TestMapJob(t *testing.T) {
	raw, err := util.Decode([]byte(listPayload))
	require.NoError(t, err)
	items := util.Objects(raw, "jobs")

	j := MapJob(items[0])
	assert.Equal(t, "1912345", j.SourceID)
	assert.Equal(t, "Remotive", j.SourceName)
	assert.True(t, *j.IsRemote)
	assert.Equal(t, "Join the platform team.", j.Description)
	assert.Equal(t, "USA", j.Location.City)
	assert.Equal(t, 140000.0, *j.SalaryMin)
	assert.Equal(t, 170000.0, *j.SalaryMax)
	assert.Equal(t, "", j.SalaryCurrency)
	assert.Equal(t, []string{"Go", "Kubernetes", "gRPC"}, j.Skills)
	assert.Equal(t, "full_time", j.JobType)
	assert.Equal(t, "Software Development", j.Industry)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), *j.PostedDate)

	untagged := MapJob(items[1])
	assert.True(t, *untagged.IsRemote)
	assert.Equal(t, []string{"Python", "React"}, untagged.Skills)
}
