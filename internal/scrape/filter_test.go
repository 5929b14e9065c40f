package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
)

func TestShouldKeepJob(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	lead := func(title string, postedDaysAgo int) domain.JobLead {
		at := now.AddDate(0, 0, -postedDaysAgo)
		return domain.JobLead{Title: title, Company: "Acme", PostedAt: &at}
	}

	t.Run("empty allowlist keeps everything", func(t *testing.T) {
		cfg := config.Default()
		keep, _ := ShouldKeepJob(cfg, lead("Underwater Basket Weaver", 1), now)
		assert.True(t, keep)
	})

	t.Run("allowlist requires a hit", func(t *testing.T) {
		cfg := config.Default()
		cfg.Filters.KeywordsAllow = []string{"golang", "backend"}

		keep, _ := ShouldKeepJob(cfg, lead("Senior Backend Engineer", 1), now)
		assert.True(t, keep)

		keep, reason := ShouldKeepJob(cfg, lead("Sales Representative", 1), now)
		assert.False(t, keep)
		assert.Equal(t, "no_keyword_match", reason)
	})

	t.Run("blocklist wins over allowlist", func(t *testing.T) {
		cfg := config.Default()
		cfg.Filters.KeywordsAllow = []string{"engineer"}
		cfg.Filters.KeywordsBlock = []string{"unpaid"}

		keep, reason := ShouldKeepJob(cfg, lead("Unpaid Intern Engineer", 1), now)
		assert.False(t, keep)
		assert.Equal(t, "blocked_keyword", reason)
	})

	t.Run("stale leads dropped", func(t *testing.T) {
		cfg := config.Default()
		cfg.Filters.MaxAgeDays = 30

		keep, _ := ShouldKeepJob(cfg, lead("Go Engineer", 10), now)
		assert.True(t, keep)

		keep, reason := ShouldKeepJob(cfg, lead("Go Engineer", 45), now)
		assert.False(t, keep)
		assert.Equal(t, "too_old", reason)
	})

	t.Run("missing posted_at passes age filter", func(t *testing.T) {
		cfg := config.Default()
		cfg.Filters.MaxAgeDays = 7

		keep, _ := ShouldKeepJob(cfg, domain.JobLead{Title: "Go Engineer", Company: "Acme"}, now)
		assert.True(t, keep)
	})

	t.Run("skills text is searched", func(t *testing.T) {
		cfg := config.Default()
		cfg.Filters.KeywordsAllow = []string{"kubernetes"}

		l := lead("Platform Engineer", 1)
		l.Skills = []string{"Kubernetes", "Terraform"}
		keep, _ := ShouldKeepJob(cfg, l, now)
		assert.True(t, keep)
	})
}
