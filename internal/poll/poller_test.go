package poll

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/enrich"
	"remoteboard-engine/internal/events"
	"remoteboard-engine/internal/httpapi"
	"remoteboard-engine/internal/store"
)

func newTestPoller(t *testing.T, cfg config.Config) (*Poller, *store.DB) {
	t.Helper()

	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	cfgVal := &atomic.Value{}
	cfgVal.Store(cfg)
	statusVal := &atomic.Value{}
	statusVal.Store(httpapi.ScrapeStatus{})

	return &Poller{
		DB:           db.Pool,
		CfgVal:       cfgVal,
		ScrapeStatus: statusVal,
		Hub:          events.NewHub(),
		NewEnrichClient: func(context.Context, config.Config) (enrich.Client, error) {
			return &enrich.MockClient{}, nil
		},
	}, db
}

func TestScrapeOnceNoSources(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.RemoteOK.Enabled = false
	cfg.Sources.Remotive.Enabled = false
	cfg.Sources.WeWorkRemotely.Enabled = false

	p, _ := newTestPoller(t, cfg)
	require.NoError(t, p.scrapeOnce(context.Background()))

	st := p.ScrapeStatus.Load().(httpapi.ScrapeStatus)
	assert.False(t, st.Running)
	assert.Empty(t, st.LastError)
	assert.Equal(t, 0, st.LastAdded)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestEnrichOnceProcessesBacklog(t *testing.T) {
	cfg := config.Default()
	cfg.Enrich.Enabled = true

	p, db := newTestPoller(t, cfg)

	j, err := store.CreateJob(context.Background(), db.Pool, domain.JobPosting{
		Title: "Go Engineer", Company: "Acme",
	})
	require.NoError(t, err)

	require.NoError(t, p.enrichOnce(context.Background()))

	got, err := store.GetJob(context.Background(), db.Pool, j.ID)
	require.NoError(t, err)
	assert.True(t, got.AIProcessed)
}

func TestEnrichOnceDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Enrich.Enabled = false

	p, _ := newTestPoller(t, cfg)
	assert.NoError(t, p.enrichOnce(context.Background()))
}
