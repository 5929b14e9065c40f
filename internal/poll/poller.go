// Package poll runs the engine's background loops: periodic scraping,
// AI enrichment of the backlog, and cleanup of stale rows.
package poll

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/enrich"
	"remoteboard-engine/internal/events"
	"remoteboard-engine/internal/httpapi"
	"remoteboard-engine/internal/scheduler"
	"remoteboard-engine/internal/scrape"
	"remoteboard-engine/internal/store"
)

type Poller struct {
	DB           *sql.DB
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // httpapi.ScrapeStatus
	Hub          *events.Hub

	// NewEnrichClient builds the LLM client per run so a key set at
	// runtime takes effect without a restart. Nil disables enrichment.
	NewEnrichClient func(ctx context.Context, cfg config.Config) (enrich.Client, error)
}

// Start launches the background loops. Intervals come from the config
// snapshot at startup; a restart picks up new ones.
func (p *Poller) Start(ctx context.Context) {
	cfg := p.cfg()

	go scheduler.Every(ctx, time.Duration(cfg.Polling.ScrapeMinutes)*time.Minute, "scrape", p.scrapeOnce)
	if cfg.Enrich.Enabled && p.NewEnrichClient != nil {
		go scheduler.Every(ctx, time.Duration(cfg.Polling.EnrichMinutes)*time.Minute, "enrich", p.enrichOnce)
	}
	go scheduler.Every(ctx, time.Duration(cfg.Polling.CleanupHours)*time.Hour, "cleanup", p.cleanupOnce)
}

func (p *Poller) cfg() config.Config {
	return p.CfgVal.Load().(config.Config)
}

func (p *Poller) scrapeOnce(ctx context.Context) error {
	cfg := p.cfg()

	st := p.ScrapeStatus.Load().(httpapi.ScrapeStatus)
	if st.Running {
		return nil
	}
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	p.ScrapeStatus.Store(st)

	added, err := scrape.RunOnce(ctx, p.DB, cfg, func(j domain.JobPosting) {
		p.Hub.Publish(events.MakeEvent("", events.TypeJobCreated, 1, map[string]any{"title": j.Title, "source": j.SourcePlatform}))
	})

	now := time.Now().Format(time.RFC3339)
	next := p.ScrapeStatus.Load().(httpapi.ScrapeStatus)
	next.Running = false
	next.LastRunAt = now
	next.LastAdded = added
	if err != nil {
		next.LastError = err.Error()
	} else {
		next.LastError = ""
		next.LastOkAt = now
	}
	p.ScrapeStatus.Store(next)

	p.Hub.Publish(events.MakeEvent("", events.TypeScrapeDone, 1, map[string]any{"added": added}))
	log.Printf("level=info msg=\"scrape cycle done\" added=%d", added)
	return err
}

func (p *Poller) enrichOnce(ctx context.Context) error {
	cfg := p.cfg()
	if !cfg.Enrich.Enabled {
		return nil
	}

	client, err := p.NewEnrichClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("enrich client: %w", err)
	}
	defer client.Close()

	pipe, err := enrich.NewPipeline(p.DB, client, 0, cfg.Enrich.MaxPerRun)
	if err != nil {
		return err
	}
	defer pipe.Close()

	processed, err := pipe.Run(ctx)
	if err != nil {
		return err
	}
	if processed > 0 {
		p.Hub.Publish(events.MakeEvent("", events.TypeEnrichDone, 1, map[string]any{"processed": processed}))
		log.Printf("level=info msg=\"enrich cycle done\" processed=%d", processed)
	}
	return nil
}

func (p *Poller) cleanupOnce(ctx context.Context) error {
	deleted, err := store.CleanupOldJobs(p.DB)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("level=info msg=\"cleanup done\" deleted=%d", deleted)
	}
	return nil
}
