package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard-engine/internal/domain"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return testNow }))
}

func daysAgo(d int) time.Time {
	return testNow.Add(-time.Duration(d) * 24 * time.Hour)
}

func TestSearchEmptyQueryReturnsInputUnchanged(t *testing.T) {
	e := testEngine()
	jobs := []domain.JobPosting{
		{ID: 1, Title: "Zebra"},
		{ID: 2, Title: "Aardvark"},
	}

	for _, q := range []string{"", "   ", "\t\n"} {
		got := e.Search(jobs, q, 10)
		require.Len(t, got, 2, "query %q", q)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	}
}

func TestSearchBoundedOutput(t *testing.T) {
	e := testEngine()
	var jobs []domain.JobPosting
	for i := 0; i < 10; i++ {
		jobs = append(jobs, domain.JobPosting{
			ID:        int64(i),
			Title:     fmt.Sprintf("Go Developer %d", i),
			CreatedAt: daysAgo(1),
		})
	}

	got := e.Search(jobs, "Go Developer", 3)
	assert.LessOrEqual(t, len(got), 3)

	got = e.Search(jobs, "Go Developer", 0)
	assert.LessOrEqual(t, len(got), DefaultLimit)
	assert.LessOrEqual(t, len(got), len(jobs))
}

func TestSearchTitleMatchDoesNotLowerRank(t *testing.T) {
	e := testEngine()
	jobs := []domain.JobPosting{
		{ID: 1, Title: "Software Person", Description: "builds rust services", CreatedAt: daysAgo(5)},
		{ID: 2, Title: "Rust Services Engineer", Description: "builds rust services", CreatedAt: daysAgo(5)},
	}

	got := e.Search(jobs, "rust services", 10)
	require.NotEmpty(t, got)
	assert.Equal(t, int64(2), got[0].ID, "exact title match must rank first")
}

func TestSearchDegenerateInputs(t *testing.T) {
	e := testEngine()
	bare := []domain.JobPosting{
		{ID: 1},
		{ID: 2, Title: "Engineer"},
	}

	for _, q := range []string{"", "   ", "!!!", "@#$%^&*", "the and for"} {
		assert.NotPanics(t, func() {
			_ = e.Search(bare, q, 10)
		}, "query %q", q)
	}

	// Empty corpus.
	assert.Empty(t, e.Search(nil, "golang", 10))
}

func TestSearchDropsZeroScores(t *testing.T) {
	e := testEngine()
	jobs := []domain.JobPosting{
		{ID: 1, Title: "Accountant", Company: "LedgerCo", CreatedAt: daysAgo(400)},
	}
	got := e.Search(jobs, "golang kubernetes", 10)
	assert.Empty(t, got, "no lexical, skill, recency, or remote signal")
}

func TestRemoteBoostCap(t *testing.T) {
	e := testEngine()
	job := domain.JobPosting{
		Title:       "Remote Engineer",
		Description: "remote distributed work from home wfh telecommute virtual online location-agnostic anywhere global international worldwide timezone async",
		RemoteType:  "fully_remote",
	}
	boost := e.remoteBoost(&job, docText(&job))
	assert.InDelta(t, e.weights.RemoteCap, boost, 1e-12)
	assert.LessOrEqual(t, boost, 0.3)
}

func TestRemoteBoostCountsKeywordsOnce(t *testing.T) {
	e := testEngine()
	job := domain.JobPosting{Description: "remote remote remote remote remote remote remote"}
	boost := e.remoteBoost(&job, docText(&job))
	assert.InDelta(t, e.weights.RemoteKeyword, boost, 1e-12)
}

func TestRecencyBoostTiers(t *testing.T) {
	e := testEngine()
	cases := []struct {
		days int
		want float64
	}{
		{2, 0.1},
		{7, 0.1},
		{20, 0.05},
		{60, 0.02},
		{200, 0},
	}
	for _, c := range cases {
		j := domain.JobPosting{CreatedAt: daysAgo(c.days)}
		assert.InDelta(t, c.want, e.recencyBoost(&j, testNow), 1e-12, "%d days", c.days)
	}
}

func TestExactMatchBoostsStack(t *testing.T) {
	e := testEngine()
	job := domain.JobPosting{
		Title:       "Looking for go experts",
		Company:     "The Go Company",
		Description: "We write go all day.",
	}
	boost := e.exactMatchBoost(&job, "Go")
	assert.InDelta(t, 0.3+0.2+0.1, boost, 1e-12)
}

func TestSkillMatchBoost(t *testing.T) {
	e := testEngine()
	job := domain.JobPosting{Skills: []string{"React", "TypeScript"}}

	t.Run("partial overlap", func(t *testing.T) {
		// "react" matches the React skill, "kubernetes" matches nothing.
		boost := e.skillMatchBoost(&job, []string{"react", "kubernetes"})
		assert.InDelta(t, 0.5*0.2, boost, 1e-12)
	})

	t.Run("no skills", func(t *testing.T) {
		bare := domain.JobPosting{}
		assert.Equal(t, 0.0, e.skillMatchBoost(&bare, []string{"react"}))
	})

	t.Run("no query tokens", func(t *testing.T) {
		assert.Equal(t, 0.0, e.skillMatchBoost(&job, nil))
	})
}

func TestSearchScenarioRelevantRemoteJob(t *testing.T) {
	e := testEngine()
	jobs := []domain.JobPosting{
		{
			ID:          1,
			Title:       "Senior React Developer",
			Company:     "TechCorp",
			Description: "Build UIs with a modern stack.",
			Skills:      []string{"React", "TypeScript"},
			RemoteType:  "fully_remote",
			CreatedAt:   daysAgo(3),
		},
	}

	got := e.Search(jobs, "React developer", 10)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestSearchScenarioNoSignal(t *testing.T) {
	e := testEngine()
	jobs := []domain.JobPosting{
		{
			ID:        1,
			Title:     "Python Data Scientist",
			Skills:    []string{"Python", "Pandas"},
			CreatedAt: daysAgo(120),
		},
	}

	got := e.Search(jobs, "Java enterprise", 10)
	assert.Empty(t, got)
}

func TestSearchScenarioRecencyBreaksTie(t *testing.T) {
	e := testEngine()
	jobs := []domain.JobPosting{
		{ID: 1, Title: "Platform Engineer", Description: "terraform and kubernetes", CreatedAt: daysAgo(200)},
		{ID: 2, Title: "Platform Engineer", Description: "terraform and kubernetes", CreatedAt: daysAgo(2)},
	}

	got := e.Search(jobs, "platform engineer", 10)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID, "2-day-old posting ranks above the 200-day-old one")
	assert.Equal(t, int64(1), got[1].ID)
}

func TestSearchStableTieBreak(t *testing.T) {
	e := testEngine()
	jobs := []domain.JobPosting{
		{ID: 1, Title: "Go Developer", CreatedAt: daysAgo(1)},
		{ID: 2, Title: "Go Developer", CreatedAt: daysAgo(1)},
		{ID: 3, Title: "Go Developer", CreatedAt: daysAgo(1)},
	}

	got := e.Search(jobs, "go developer", 10)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)
}

func TestSearchCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.TitleMatch = 5.0
	e := NewEngine(WithWeights(w), WithClock(func() time.Time { return testNow }))

	jobs := []domain.JobPosting{
		{ID: 1, Title: "other role", Description: "golang golang golang", CreatedAt: daysAgo(1)},
		{ID: 2, Title: "golang", CreatedAt: daysAgo(1)},
	}
	got := e.Search(jobs, "golang", 10)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}
