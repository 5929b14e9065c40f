// Package remotive fetches listings from the Remotive public API.
package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/scrape/types"
	"remoteboard-engine/internal/scrape/util"
)

const defaultURL = "https://remotive.com/api/remote-jobs"

type Scraper struct {
	url     string
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(url string, limiter *util.HostLimiter) *Scraper {
	if url == "" {
		url = defaultURL
	}
	return &Scraper{
		url:     url,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "remotive" }

type apiResponse struct {
	Jobs []apiJob `json:"jobs"`
}

type apiJob struct {
	ID              int64    `json:"id"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	Category        string   `json:"category"`
	JobType         string   `json:"job_type"`
	PublicationDate string   `json:"publication_date"` // 2006-01-02T15:04:05, no zone
	Location        string   `json:"candidate_required_location"`
	Salary          string   `json:"salary"`
	Description     string   `json:"description"` // html
	Tags            []string `json:"tags"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: s.Name()}

	if err := s.limiter.WaitURL(ctx, s.url); err != nil {
		return res, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return res, err
	}
	req.Header.Set("User-Agent", "RemoteBoard/1.0 (+local)")

	resp, err := s.hc.Do(req)
	if err != nil {
		return res, fmt.Errorf("remotive get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return res, fmt.Errorf("remotive status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return res, fmt.Errorf("remotive parse: %w", err)
	}

	for _, j := range payload.Jobs {
		if j.Title == "" || j.CompanyName == "" || j.ID == 0 {
			continue
		}

		salMin, salMax := util.ParseSalaryRange(j.Salary)
		lead := domain.JobLead{
			Title:       util.CleanText(j.Title),
			Company:     util.CleanText(j.CompanyName),
			Location:    util.CleanText(j.Location),
			Description: util.StripHTML(j.Description),
			Skills:      j.Tags,
			SalaryMin:   salMin,
			SalaryMax:   salMax,
			URL:         j.URL,
			Source:      s.Name(),
			SourceID:    fmt.Sprintf("remotive:%d", j.ID),
			RemoteType:  util.InferRemoteType(j.Location, j.Title, ""),
		}
		if t, err := time.Parse("2006-01-02T15:04:05", j.PublicationDate); err == nil {
			lead.PostedAt = &t
		}
		res.Leads = append(res.Leads, lead)
	}

	return res, nil
}
