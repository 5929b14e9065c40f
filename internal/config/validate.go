package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg along with any
// validation errors and warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.KeywordsAllow = trimList(out.Filters.KeywordsAllow)
	out.Filters.KeywordsBlock = trimList(out.Filters.KeywordsBlock)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Polling.ScrapeMinutes <= 0 {
		res.addErr("polling.scrape_minutes must be > 0")
	} else if out.Polling.ScrapeMinutes < 5 {
		res.addWarn("polling.scrape_minutes is very low (%d) and may cause rate limits.", out.Polling.ScrapeMinutes)
	}
	if out.Polling.EnrichMinutes <= 0 {
		res.addErr("polling.enrich_minutes must be > 0")
	}
	if out.Polling.CleanupHours <= 0 {
		res.addErr("polling.cleanup_hours must be > 0")
	}
	if out.Polling.RequestsPerSec <= 0 {
		res.addErr("polling.requests_per_sec must be > 0")
	}

	if !out.Sources.RemoteOK.Enabled && !out.Sources.Remotive.Enabled && !out.Sources.WeWorkRemotely.Enabled {
		res.addWarn("no sources enabled; the engine will only serve existing rows.")
	}

	if out.Filters.MaxAgeDays <= 0 {
		res.addErr("filters.max_age_days must be > 0")
	}

	if out.Enrich.Enabled {
		if strings.TrimSpace(out.Enrich.Model) == "" {
			res.addErr("enrich.model is required when enrich.enabled=true")
		}
		if out.Enrich.MaxPerRun <= 0 {
			res.addErr("enrich.max_per_run must be > 0 when enrich.enabled=true")
		}
	}

	if out.Ranking.ResultLimit <= 0 {
		res.addErr("ranking.result_limit must be > 0")
	}
	w := out.Ranking.Weights
	for name, v := range map[string]float64{
		"title_match":       w.TitleMatch,
		"company_match":     w.CompanyMatch,
		"description_match": w.DescriptionMatch,
		"skill_match":       w.SkillMatch,
		"recency_week":      w.RecencyWeek,
		"recency_month":     w.RecencyMonth,
		"recency_quarter":   w.RecencyQuarter,
		"remote_keyword":    w.RemoteKeyword,
		"remote_flag":       w.RemoteFlag,
		"remote_cap":        w.RemoteCap,
	} {
		if v < 0 {
			res.addErr("ranking.weights.%s must be >= 0", name)
		}
	}

	blockSet := map[string]bool{}
	for _, b := range out.Filters.KeywordsBlock {
		blockSet[strings.ToLower(b)] = true
	}
	for _, a := range out.Filters.KeywordsAllow {
		if blockSet[strings.ToLower(a)] {
			res.addWarn("keyword appears in both allow and block: %q", a)
		}
	}

	return out, res
}
