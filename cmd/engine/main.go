package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/enrich"
	"remoteboard-engine/internal/events"
	"remoteboard-engine/internal/httpapi"
	"remoteboard-engine/internal/poll"
	"remoteboard-engine/internal/scrape"
	"remoteboard-engine/internal/search"
	"remoteboard-engine/internal/secrets"
	"remoteboard-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("REMOTEBOARD_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "remoteboard.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	var scrapeStatus atomic.Value
	scrapeStatus.Store(httpapi.ScrapeStatus{})

	engine := search.NewEngine(search.WithWeights(cfg.Ranking.Weights))

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		Engine:       engine,
		CfgVal:       &cfgVal,
		ScrapeStatus: &scrapeStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunScrape:    scrape.RunOnce,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := &poll.Poller{
		DB:           db.Pool,
		CfgVal:       &cfgVal,
		ScrapeStatus: &scrapeStatus,
		Hub:          hub,
		NewEnrichClient: func(ctx context.Context, cfg config.Config) (enrich.Client, error) {
			key, err := secrets.GetGeminiAPIKey()
			if err != nil {
				return nil, err
			}
			return enrich.NewGeminiClient(ctx, key, cfg.Enrich.Model)
		},
	}
	poller.Start(ctx)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// /shutdown needs the server handle, so it attaches after NewMux.
	token, err := writeShutdownToken(dataDir)
	if err != nil {
		log.Fatalf("shutdown token: %v", err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s config=%s", addr, dbPath, userCfgPath)
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
