package httpapi

import "remoteboard-engine/internal/domain"

type ScrapeStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

// jobsEnvelope is the list/search response shape the frontend pages over.
type jobsEnvelope struct {
	Jobs  []domain.JobPosting `json:"jobs"`
	Total int                 `json:"total"`
	Skip  int                 `json:"skip"`
	Limit int                 `json:"limit"`
}

func envelope(jobs []domain.JobPosting, total, skip, limit int) jobsEnvelope {
	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	return jobsEnvelope{Jobs: jobs, Total: total, Skip: skip, Limit: limit}
}
