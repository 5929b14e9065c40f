// Package weworkremotely scrapes the WeWorkRemotely listing page. The
// site has no public JSON API, so this parses the HTML job sections the
// same way the board renders them.
package weworkremotely

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/scrape/types"
	"remoteboard-engine/internal/scrape/util"
)

const defaultURL = "https://weworkremotely.com/remote-jobs"

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

func (s *Scraper) Name() string { return "weworkremotely" }

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
		return res, fmt.Errorf("weworkremotely get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return res, fmt.Errorf("weworkremotely status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return res, fmt.Errorf("weworkremotely parse html: %w", err)
	}

	res.Leads = parseListing(doc, s.Name())
	return res, nil
}

// parseListing extracts leads from the job sections. Each listing is an
// <li> holding an anchor to /remote-jobs/<slug> with title/company/region
// spans.
func parseListing(doc *goquery.Document, source string) []domain.JobLead {
	seen := map[string]bool{}
	var leads []domain.JobLead

	doc.Find("section.jobs li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href*='/remote-jobs/']").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)

		slug := strings.TrimPrefix(href, "/remote-jobs/")
		if slug == "" || strings.Contains(slug, "/") {
			return
		}

		sourceID := "weworkremotely:" + slug
		if seen[sourceID] {
			return
		}

		title := util.CleanText(li.Find("span.title").First().Text())
		company := util.CleanText(li.Find("span.company").First().Text())
		region := util.CleanText(li.Find("span.region").First().Text())
		if title == "" || company == "" {
			return
		}
		seen[sourceID] = true

		leads = append(leads, domain.JobLead{
			Title:      title,
			Company:    company,
			Location:   region,
			URL:        "https://weworkremotely.com" + href,
			Source:     source,
			SourceID:   sourceID,
			RemoteType: util.InferRemoteType(region, title, ""),
		})
	})

	return leads
}
