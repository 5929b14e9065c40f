package httpapi

import (
	"database/sql"
	"net/http"

	"remoteboard-engine/internal/store"
)

type StatsHandler struct {
	DB *sql.DB
}

func (h StatsHandler) SalaryRanges(w http.ResponseWriter, r *http.Request) {
	buckets, avg, total, err := store.SalaryRangeStats(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "stats_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"ranges":         buckets,
		"average_salary": avg,
		"total_jobs":     total,
	})
}

func (h StatsHandler) Sources(w http.ResponseWriter, r *http.Request) {
	counts, err := store.SourceStats(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "stats_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"sources": counts})
}
