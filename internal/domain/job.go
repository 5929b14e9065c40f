package domain

import "time"

// JobPosting is one remote-job listing as stored and served by the engine.
// Scrapers produce these, the enricher fills in the AI fields, and the
// search engine ranks them. Optional text fields are empty strings.
type JobPosting struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	SalaryMin       float64   `json:"salaryMin,omitempty"`
	SalaryMax       float64   `json:"salaryMax,omitempty"`
	SalaryCurrency  string    `json:"salaryCurrency,omitempty"`
	SalaryPeriod    string    `json:"salaryPeriod,omitempty"` // yearly/monthly/hourly
	Description     string    `json:"description,omitempty"`
	Requirements    string    `json:"requirements,omitempty"`
	JobType         string    `json:"jobType,omitempty"`         // full-time/contract/...
	ExperienceLevel string    `json:"experienceLevel,omitempty"` // entry/mid/senior/lead
	RemoteType      string    `json:"remoteType,omitempty"`      // remote/fully_remote/hybrid
	URL             string    `json:"url,omitempty"`
	SourceURL       string    `json:"sourceUrl,omitempty"`
	SourcePlatform  string    `json:"sourcePlatform"` // remoteok/remotive/weworkremotely
	SourceID        string    `json:"-"`
	Skills          []string  `json:"skills,omitempty"`
	AISummary       string    `json:"aiSummary,omitempty"`
	AIProcessed     bool      `json:"aiProcessed"`
	IsActive        bool      `json:"isActive"`
	PostedAt        time.Time `json:"postedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// JobLead is a posting as it comes off a scraper, before filtering and
// persistence.
type JobLead struct {
	Company     string
	Title       string
	URL         string
	Location    string
	RemoteType  string
	Description string
	Skills      []string
	SalaryMin   float64
	SalaryMax   float64
	PostedAt    *time.Time
	Source      string // remoteok/remotive/weworkremotely
	SourceID    string // source-scoped dedup key
}
