package scrape

import (
	"context"
	"database/sql"
	"log"
	"time"

	"remoteboard-engine/internal/config"
	"remoteboard-engine/internal/domain"
	"remoteboard-engine/internal/store"
)

// ProcessLeads filters scraped leads and inserts the survivors. Duplicate
// source IDs are ignored by the store, so re-running a scrape is safe.
// onNewJob fires once per inserted row.
func ProcessLeads(ctx context.Context, db *sql.DB, cfg config.Config, leads []domain.JobLead, onNewJob func(domain.JobPosting)) (added int) {
	now := time.Now().UTC()

	for _, lead := range leads {
		keep, why := ShouldKeepJob(cfg, lead, now)
		if !keep {
			log.Printf("level=debug msg=\"lead skipped\" source=%s reason=%s title=%q", lead.Source, why, lead.Title)
			continue
		}

		j := postingFromLead(lead)

		ok, err := store.InsertJobIgnore(ctx, db, j)
		if err != nil {
			log.Printf("level=warn msg=\"lead insert failed\" source=%s title=%q source_id=%q err=%q",
				lead.Source, lead.Title, lead.SourceID, err)
			continue
		}
		if !ok {
			continue
		}

		added++
		if onNewJob != nil {
			onNewJob(j)
		}
	}

	return added
}

func postingFromLead(lead domain.JobLead) domain.JobPosting {
	j := domain.JobPosting{
		Title:          lead.Title,
		Company:        lead.Company,
		Location:       lead.Location,
		SalaryMin:      lead.SalaryMin,
		SalaryMax:      lead.SalaryMax,
		Description:    lead.Description,
		RemoteType:     lead.RemoteType,
		URL:            lead.URL,
		SourceURL:      lead.URL,
		SourcePlatform: lead.Source,
		SourceID:       lead.SourceID,
		Skills:         lead.Skills,
		IsActive:       true,
	}
	if lead.PostedAt != nil {
		j.PostedAt = lead.PostedAt.UTC()
	}
	return j
}
