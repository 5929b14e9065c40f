package remotive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard-engine/internal/scrape/util"
)

const feed = `{
  "job-count": 2,
  "jobs": [
    {
      "id": 111,
      "url": "https://remotive.com/remote-jobs/software-dev/111",
      "title": "Backend Engineer",
      "company_name": "Globex",
      "category": "Software Development",
      "job_type": "full_time",
      "publication_date": "2026-04-25T08:30:00",
      "candidate_required_location": "USA Only",
      "salary": "$110,000 - $140,000",
      "description": "<p>Python and Go services.</p>",
      "tags": ["python", "go", "aws"]
    },
    {
      "id": 0,
      "title": "Broken Row",
      "company_name": "Nope"
    }
  ]
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	s := New(srv.URL, util.NewHostLimiter(100, 1))
	res, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "remotive", res.Source)
	require.Len(t, res.Leads, 1)

	lead := res.Leads[0]
	assert.Equal(t, "Backend Engineer", lead.Title)
	assert.Equal(t, "Globex", lead.Company)
	assert.Equal(t, "remotive:111", lead.SourceID)
	assert.Equal(t, "Python and Go services.", lead.Description)
	assert.Equal(t, float64(110000), lead.SalaryMin)
	assert.Equal(t, float64(140000), lead.SalaryMax)
	assert.Equal(t, "remote", lead.RemoteType)
	require.NotNil(t, lead.PostedAt)
	assert.Equal(t, 25, lead.PostedAt.Day())
}
