package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/events"
	"remoteboard-engine/internal/search"
	"remoteboard-engine/internal/store"
)

const maxPageSize = 100

type JobsHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	Engine *search.Engine
	CfgVal *atomic.Value // config.Config
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip := queryInt(q, "skip", 0)
	limit := clampLimit(queryInt(q, "limit", 20))

	jobs, total, err := store.ListJobs(r.Context(), h.DB, store.ListJobsOpts{
		Title:           q.Get("title"),
		Company:         q.Get("company"),
		SourcePlatform:  q.Get("source"),
		MinSalary:       queryFloat(q, "min_salary"),
		ExperienceLevel: q.Get("experience_level"),
		JobType:         q.Get("job_type"),
		DaysOld:         queryInt(q, "days_old", 0),
		Skip:            skip,
		Limit:           limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	writeJSON(w, envelope(jobs, total, skip, limit))
}

// Search serves /jobs/search. The SQL LIKE search is the fast path; the
// in-memory relevance engine takes over when the caller asks for it with
// rank=true, or when the SQL path fails. semantic=true additionally
// narrows the candidate set by related tech terms before ranking.
func (h JobsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	skip := queryInt(q, "skip", 0)
	limit := clampLimit(queryInt(q, "limit", 20))
	useRank := queryBool(q, "rank")
	useSemantic := queryBool(q, "semantic")

	if query == "" {
		h.List(w, r)
		return
	}

	if !useRank && !useSemantic {
		jobs, total, err := store.SearchJobs(r.Context(), h.DB, query, skip, limit)
		if err == nil {
			writeJSON(w, envelope(jobs, total, skip, limit))
			return
		}
		// fall through to the in-memory engine
	}

	candidates, _, err := store.ListJobs(r.Context(), h.DB, store.ListJobsOpts{Limit: 1000})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "search_failed", err.Error())
		return
	}
	if useSemantic {
		candidates = search.FilterBySemanticMeaning(candidates, query)
	}

	// ranking.result_limit caps how deep the ranked list goes
	want := skip + limit
	if max := h.cfg().Ranking.ResultLimit; max > 0 && want > max {
		want = max
	}
	ranked := h.Engine.Search(candidates, query, want)
	total := len(ranked)
	if skip >= len(ranked) {
		ranked = nil
	} else {
		ranked = ranked[skip:]
	}
	writeJSON(w, envelope(ranked, total, skip, limit))
}

func (h JobsHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := clampLimit(queryInt(r.URL.Query(), "limit", 6))
	jobs, err := store.FeaturedJobs(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "featured_failed", err.Error())
		return
	}
	writeJSON(w, envelope(jobs, len(jobs), 0, limit))
}

func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Company) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_fields", "title and company are required")
		return
	}

	job, err := store.CreateJob(r.Context(), h.DB, in)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "create_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobCreated, 1, map[string]any{"id": job.ID}))
	WriteJSON(w, http.StatusCreated, job)
}

// ByPath dispatches /jobs/{id} for GET and DELETE.
func (h JobsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		job, err := store.GetJob(r.Context(), h.DB, id)
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, r, http.StatusNotFound, "not_found", "job not found")
			return
		}
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "get_failed", err.Error())
			return
		}
		writeJSON(w, job)

	case http.MethodDelete:
		if err := store.DeleteJob(r.Context(), h.DB, id); err != nil {
			WriteError(w, r, http.StatusInternalServerError, "delete_failed", err.Error())
			return
		}
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobDeleted, 1, map[string]any{"id": id}))
		writeJSON(w, map[string]any{"ok": true, "id": id})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h JobsHandler) cfg() config.Config {
	return h.CfgVal.Load().(config.Config)
}

func clampLimit(n int) int {
	if n <= 0 {
		return 20
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
