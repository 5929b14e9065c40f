package enrich

import (
	"context"

	"remoteboard-engine/internal/domain"
)

// MockClient returns canned results, for tests and for running the engine
// without an API key.
type MockClient struct {
	AnalyzeFunc func(ctx context.Context, job domain.JobPosting) (Result, error)
}

func (m *MockClient) AnalyzeJob(ctx context.Context, job domain.JobPosting) (Result, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, job)
	}
	return Result{Valid: true, Summary: job.Title + " at " + job.Company}, nil
}

func (m *MockClient) Close() error { return nil }
