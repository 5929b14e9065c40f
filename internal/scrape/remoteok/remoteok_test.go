package remoteok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard-engine/internal/scrape/util"
)

const feed = `[
  {"legal": "API terms of service apply."},
  {
    "id": 12345,
    "slug": "senior-go-engineer",
    "position": "Senior Go Engineer",
    "company": "Acme",
    "location": "Worldwide",
    "tags": ["go", "postgresql"],
    "description": "<p>Build services in <b>Go</b>.</p>",
    "date": "2026-04-20T10:00:00+00:00",
    "salary_min": 100000,
    "salary_max": 140000,
    "url": "https://remoteok.com/remote-jobs/12345",
    "apply_url": "https://acme.example/apply"
  },
  {
    "id": "67890",
    "position": "React Developer",
    "company": "Initech",
    "location": "Anywhere",
    "date": "not-a-date",
    "url": "https://remoteok.com/remote-jobs/67890"
  },
  {"id": "junk", "position": "", "company": ""}
]`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "RemoteBoard")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	s := New(srv.URL, util.NewHostLimiter(100, 1))
	res, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "remoteok", res.Source)
	require.Len(t, res.Leads, 2)

	first := res.Leads[0]
	assert.Equal(t, "Senior Go Engineer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "remoteok:12345", first.SourceID)
	assert.Equal(t, "Build services in Go.", first.Description)
	assert.Equal(t, []string{"go", "postgresql"}, first.Skills)
	assert.Equal(t, float64(100000), first.SalaryMin)
	assert.Equal(t, "https://acme.example/apply", first.URL)
	require.NotNil(t, first.PostedAt)

	second := res.Leads[1]
	assert.Equal(t, "remoteok:67890", second.SourceID)
	assert.Equal(t, "fully_remote", second.RemoteType)
	assert.Nil(t, second.PostedAt)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := New(srv.URL, util.NewHostLimiter(100, 1))
	_, err := s.Fetch(context.Background())
	assert.Error(t, err)
}
