package types

import (
	"context"

	"remoteboard-engine/internal/domain"
)

type ScrapeResult struct {
	Source string
	Leads  []domain.JobLead
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}
