package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/events"
)

type ScrapeHandler struct {
	DB           *sql.DB
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // httpapi.ScrapeStatus
	Hub          *events.Hub
	RunScrape    func(ctx context.Context, db *sql.DB, cfg config.Config, onNewJob func(domain.JobPosting)) (added int, err error)
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(ScrapeStatus)
	writeJSON(w, st)
}

func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(ScrapeStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScrapeStatus.Store(ScrapeStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastError: "",
		LastAdded: 0,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		cfg := h.CfgVal.Load().(config.Config)
		added, err := h.RunScrape(context.Background(), h.DB, cfg, func(j domain.JobPosting) {
			h.Hub.Publish(events.MakeEvent("", events.TypeJobCreated, 1, map[string]any{"title": j.Title, "source": j.SourcePlatform}))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.ScrapeStatus.Load().(ScrapeStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = added
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScrapeStatus.Store(next)
		h.Hub.Publish(events.MakeEvent("", events.TypeScrapeDone, 1, map[string]any{"added": added}))
	}()

	writeJSON(w, map[string]any{"ok": true})
}
