// Package remoteok fetches listings from the RemoteOK JSON API. The feed
// is a flat array whose first element is a legal notice, not a job.
package remoteok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/scrape/types"
	"remoteboard-engine/internal/scrape/util"
)

const defaultURL = "https://remoteok.com/api"

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

func (s *Scraper) Name() string { return "remoteok" }

// flexID tolerates the API emitting ids as either strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	*f = flexID(strings.Trim(string(b), `"`))
	return nil
}

type apiJob struct {
	ID          flexID   `json:"id"`
	Slug        string   `json:"slug"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	SalaryMin   float64  `json:"salary_min"`
	SalaryMax   float64  `json:"salary_max"`
	URL         string   `json:"url"`
	ApplyURL    string   `json:"apply_url"`
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
		return res, fmt.Errorf("remoteok get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return res, fmt.Errorf("remoteok status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return res, fmt.Errorf("remoteok read: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &raw); err != nil {
		return res, fmt.Errorf("remoteok parse: %w", err)
	}

	for i, msg := range raw {
		var j apiJob
		if err := json.Unmarshal(msg, &j); err != nil {
			continue
		}
		// First element is the legal blurb; any entry without the
		// required fields is junk either way.
		if i == 0 && j.Position == "" {
			continue
		}
		if j.Position == "" || j.Company == "" || string(j.ID) == "" {
			continue
		}

		lead := domain.JobLead{
			Title:       util.CleanText(j.Position),
			Company:     util.CleanText(j.Company),
			Location:    util.CleanText(j.Location),
			Description: util.StripHTML(j.Description),
			Skills:      j.Tags,
			SalaryMin:   j.SalaryMin,
			SalaryMax:   j.SalaryMax,
			URL:         j.URL,
			Source:      s.Name(),
			SourceID:    fmt.Sprintf("remoteok:%s", j.ID),
			RemoteType:  util.InferRemoteType(j.Location, j.Position, ""),
		}
		if j.ApplyURL != "" {
			lead.URL = j.ApplyURL
		}
		if t, err := time.Parse(time.RFC3339, j.Date); err == nil {
			lead.PostedAt = &t
		}
		res.Leads = append(res.Leads, lead)
	}

	return res, nil
}
