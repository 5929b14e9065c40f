package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func seedJob(t *testing.T, db *store.DB, title string) domain.JobPosting {
	t.Helper()
	j, err := store.CreateJob(context.Background(), db.Pool, domain.JobPosting{
		Title:    title,
		Company:  "Acme",
		IsActive: true,
	})
	require.NoError(t, err)
	return j
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	good := seedJob(t, db, "Senior Go Engineer")
	bad := seedJob(t, db, "Crypto Spam")

	client := &MockClient{AnalyzeFunc: func(_ context.Context, job domain.JobPosting) (Result, error) {
		if job.ID == bad.ID {
			return Result{Valid: false}, nil
		}
		return Result{
			Valid:           true,
			Summary:         "Builds Go services.",
			Skills:          []string{"go", "sqlite"},
			RemoteType:      "fully_remote",
			ExperienceLevel: "senior",
		}, nil
	}}

	p, err := NewPipeline(db.Pool, client, 2, 50)
	require.NoError(t, err)
	defer p.Close()

	processed, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	got, err := store.GetJob(ctx, db.Pool, good.ID)
	require.NoError(t, err)
	assert.True(t, got.AIProcessed)
	assert.Equal(t, "Builds Go services.", got.AISummary)
	assert.Equal(t, []string{"go", "sqlite"}, got.Skills)
	assert.Equal(t, "senior", got.ExperienceLevel)

	gotBad, err := store.GetJob(ctx, db.Pool, bad.ID)
	require.NoError(t, err)
	assert.True(t, gotBad.AIProcessed)
	assert.False(t, gotBad.IsActive)

	t.Run("second run finds nothing", func(t *testing.T) {
		processed, err := p.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, processed)
	})
}

func TestPipelineRunAnalysisErrorLeavesJobUnprocessed(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	j := seedJob(t, db, "Backend Engineer")

	client := &MockClient{AnalyzeFunc: func(context.Context, domain.JobPosting) (Result, error) {
		return Result{}, errors.New("quota exceeded")
	}}

	p, err := NewPipeline(db.Pool, client, 1, 50)
	require.NoError(t, err)
	defer p.Close()

	processed, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)

	got, err := store.GetJob(ctx, db.Pool, j.ID)
	require.NoError(t, err)
	assert.False(t, got.AIProcessed)
}

func TestNormalizeEnums(t *testing.T) {
	assert.Equal(t, "fully_remote", normalizeRemoteType(" Fully_Remote "))
	assert.Equal(t, "", normalizeRemoteType("onsite"))
	assert.Equal(t, "senior", normalizeExperience("Senior"))
	assert.Equal(t, "", normalizeExperience("principal wizard"))
}

func TestCleanJSONBlock(t *testing.T) {
	in := "```json\n{\"valid\": true}\n```"
	assert.Equal(t, `{"valid": true}`, cleanJSONBlock(in))
}
