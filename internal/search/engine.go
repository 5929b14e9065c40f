package search

import (
	"sort"
	"strings"
	"time"

	"remoteboard-engine/internal/domain"
)

// DefaultLimit caps results when the caller passes limit <= 0.
const DefaultLimit = 50

// Weights are the hand-tuned boost constants. They are configuration, not
// algorithmic invariants; ranking order is stable under monotonic changes.
type Weights struct {
	TitleMatch       float64 `yaml:"title_match" json:"titleMatch"`
	CompanyMatch     float64 `yaml:"company_match" json:"companyMatch"`
	DescriptionMatch float64 `yaml:"description_match" json:"descriptionMatch"`
	SkillMatch       float64 `yaml:"skill_match" json:"skillMatch"`
	RecencyWeek      float64 `yaml:"recency_week" json:"recencyWeek"`
	RecencyMonth     float64 `yaml:"recency_month" json:"recencyMonth"`
	RecencyQuarter   float64 `yaml:"recency_quarter" json:"recencyQuarter"`
	RemoteKeyword    float64 `yaml:"remote_keyword" json:"remoteKeyword"`
	RemoteFlag       float64 `yaml:"remote_flag" json:"remoteFlag"`
	RemoteCap        float64 `yaml:"remote_cap" json:"remoteCap"`
}

// DefaultWeights returns the canonical boost constants.
func DefaultWeights() Weights {
	return Weights{
		TitleMatch:       0.3,
		CompanyMatch:     0.2,
		DescriptionMatch: 0.1,
		SkillMatch:       0.2,
		RecencyWeek:      0.1,
		RecencyMonth:     0.05,
		RecencyQuarter:   0.02,
		RemoteKeyword:    0.05,
		RemoteFlag:       0.1,
		RemoteCap:        0.3,
	}
}

var remoteKeywords = []string{
	"remote", "distributed", "work from home", "wfh", "telecommute",
	"virtual", "online", "location-agnostic", "anywhere", "global",
	"international", "worldwide", "timezone", "async",
}

// Engine ranks job postings against a free-text query. It holds no state
// across calls; every Search builds its own corpus statistics, so calls
// are independent and safe to run concurrently.
type Engine struct {
	weights Weights
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the default boost constants.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithClock overrides the recency-boost clock. Tests pin this.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type scoredJob struct {
	job   domain.JobPosting
	score float64
}

// Search ranks jobs by TF-IDF cosine similarity to query plus heuristic
// boosts, drops jobs whose final score is <= 0, and returns at most limit
// results (DefaultLimit when limit <= 0). An empty or whitespace query
// returns the input unchanged: that is the browse-all path, not a
// zero-result case. Ties preserve input order. The per-call statistics
// rebuild is intended for candidate sets up to the low thousands; beyond
// that this is no substitute for a real index.
func (e *Engine) Search(jobs []domain.JobPosting, query string, limit int) []domain.JobPosting {
	if strings.TrimSpace(query) == "" {
		return jobs
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	stats := BuildStats(jobs)
	queryTokens := Normalize(query)
	queryVec := Vectorize(queryTokens, stats)
	now := e.now()

	scored := make([]scoredJob, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		blob := docText(job)
		jobVec := Vectorize(Normalize(blob), stats)

		score := Cosine(queryVec, jobVec)
		score += e.exactMatchBoost(job, query)
		score += e.skillMatchBoost(job, queryTokens)
		score += e.recencyBoost(job, now)
		score += e.remoteBoost(job, blob)

		if score > 0 {
			scored = append(scored, scoredJob{job: jobs[i], score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]domain.JobPosting, len(scored))
	for i, s := range scored {
		out[i] = s.job
	}
	return out
}

// exactMatchBoost rewards the raw query appearing verbatim (case-folded)
// in the title, company, or description. The three boosts stack.
func (e *Engine) exactMatchBoost(job *domain.JobPosting, query string) float64 {
	q := strings.ToLower(query)
	var boost float64
	if strings.Contains(strings.ToLower(job.Title), q) {
		boost += e.weights.TitleMatch
	}
	if strings.Contains(strings.ToLower(job.Company), q) {
		boost += e.weights.CompanyMatch
	}
	if strings.Contains(strings.ToLower(job.Description), q) {
		boost += e.weights.DescriptionMatch
	}
	return boost
}

// skillMatchBoost scores the fraction of query tokens that overlap a skill
// entry, where overlap means either string contains the other after
// normalization.
func (e *Engine) skillMatchBoost(job *domain.JobPosting, queryTokens []string) float64 {
	if len(job.Skills) == 0 || len(queryTokens) == 0 {
		return 0
	}
	normSkills := make([]string, 0, len(job.Skills))
	for _, s := range job.Skills {
		normSkills = append(normSkills, strings.Join(Normalize(s), " "))
	}
	matched := 0
	for _, qt := range queryTokens {
		for _, ns := range normSkills {
			if ns == "" {
				continue
			}
			if strings.Contains(ns, qt) || strings.Contains(qt, ns) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(queryTokens)) * e.weights.SkillMatch
}

// recencyBoost awards a single tier based on posting age; the first
// matching threshold wins.
func (e *Engine) recencyBoost(job *domain.JobPosting, now time.Time) float64 {
	days := now.Sub(job.CreatedAt).Hours() / 24
	switch {
	case days <= 7:
		return e.weights.RecencyWeek
	case days <= 30:
		return e.weights.RecencyMonth
	case days <= 90:
		return e.weights.RecencyQuarter
	}
	return 0
}

// remoteBoost scans the full text blob for remote-work keywords (each
// distinct keyword counts once) plus a flat bonus for an explicit remote
// type, clamped to RemoteCap.
func (e *Engine) remoteBoost(job *domain.JobPosting, blob string) float64 {
	text := strings.ToLower(blob)
	var boost float64
	for _, kw := range remoteKeywords {
		if strings.Contains(text, kw) {
			boost += e.weights.RemoteKeyword
		}
	}
	if job.RemoteType == "remote" || job.RemoteType == "fully_remote" {
		boost += e.weights.RemoteFlag
	}
	if boost > e.weights.RemoteCap {
		boost = e.weights.RemoteCap
	}
	return boost
}
