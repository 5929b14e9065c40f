package scrape

import (
	"context"
	"database/sql"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/scrape/remoteok"
	"remoteboard-engine/internal/scrape/remotive"
	"remoteboard-engine/internal/scrape/types"
	"remoteboard-engine/internal/scrape/util"
	"remoteboard-engine/internal/scrape/weworkremotely"
)

const fetchTimeout = 2 * time.Minute

// RunOnce fetches every enabled source concurrently, filters and persists
// the leads, and returns how many new rows landed. A failing source logs
// and is skipped; it never cancels its siblings.
func RunOnce(ctx context.Context, db *sql.DB, cfg config.Config, onNewJob func(domain.JobPosting)) (added int, err error) {
	rps := float64(cfg.Polling.RequestsPerSec)
	if rps <= 0 {
		rps = 1
	}
	limiter := util.NewHostLimiter(rps, 1)

	var fetchers []types.Fetcher
	if cfg.Sources.RemoteOK.Enabled {
		fetchers = append(fetchers, remoteok.New(cfg.Sources.RemoteOK.URL, limiter))
	}
	if cfg.Sources.Remotive.Enabled {
		fetchers = append(fetchers, remotive.New(cfg.Sources.Remotive.URL, limiter))
	}
	if cfg.Sources.WeWorkRemotely.Enabled {
		fetchers = append(fetchers, weworkremotely.New(cfg.Sources.WeWorkRemotely.URL, limiter))
	}

	var g errgroup.Group
	results := make(chan types.ScrapeResult, len(fetchers))

	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			log.Printf("level=info msg=\"scrape start\" source=%s", f.Name())
			res, ferr := f.Fetch(fctx)
			if ferr != nil {
				log.Printf("level=warn msg=\"scrape failed\" source=%s err=%q", f.Name(), ferr)
				return nil // best-effort, siblings keep running
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	insertCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	for res := range results {
		log.Printf("level=info msg=\"scrape done\" source=%s leads=%d", res.Source, len(res.Leads))
		if len(res.Leads) == 0 {
			continue
		}
		added += ProcessLeads(insertCtx, db, cfg, res.Leads, onNewJob)
	}

	return added, nil
}
