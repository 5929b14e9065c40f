package scrape

import (
	"strings"
	"time"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
)

func ShouldKeepJob(cfg config.Config, lead domain.JobLead, now time.Time) (keep bool, reason string) {
	// 1) Age filter (cheapest check)
	if !passesAge(cfg, lead, now) {
		return false, "too_old"
	}

	// 2) Blocklist wins over everything
	if hitsBlocklist(cfg, lead) {
		return false, "blocked_keyword"
	}

	// 3) Allowlist: if empty, allow everything
	if !matchesAllowlist(cfg, lead) {
		return false, "no_keyword_match"
	}

	return true, ""
}

func passesAge(cfg config.Config, lead domain.JobLead, now time.Time) bool {
	if cfg.Filters.MaxAgeDays <= 0 || lead.PostedAt == nil {
		return true
	}
	cutoff := now.AddDate(0, 0, -cfg.Filters.MaxAgeDays)
	return !lead.PostedAt.Before(cutoff)
}

func hitsBlocklist(cfg config.Config, lead domain.JobLead) bool {
	text := leadText(lead)
	for _, b := range cfg.Filters.KeywordsBlock {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		if strings.Contains(text, b) {
			return true
		}
	}
	return false
}

func matchesAllowlist(cfg config.Config, lead domain.JobLead) bool {
	allow := cfg.Filters.KeywordsAllow
	if len(allow) == 0 {
		return true
	}
	text := leadText(lead)
	for _, a := range allow {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if strings.Contains(text, a) {
			return true
		}
	}
	return false
}

func leadText(lead domain.JobLead) string {
	parts := []string{lead.Title, lead.Description, strings.Join(lead.Skills, " ")}
	return strings.ToLower(strings.Join(parts, " "))
}
