package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/events"
	"remoteboard-engine/internal/search"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Engine *search.Engine

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores httpapi.ScrapeStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scrape entrypoint (inject for testability)
	RunScrape func(ctx context.Context, db *sql.DB, cfg config.Config, onNewJob func(domain.JobPosting)) (added int, err error)
}
