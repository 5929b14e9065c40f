package enrich

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"remoteboard-engine/internal/store"
)

const defaultPoolSize = 4

// Pipeline pulls unprocessed postings from the store and enriches them
// concurrently through a worker pool.
type Pipeline struct {
	db        *sql.DB
	client    Client
	pool      *ants.Pool
	maxPerRun int
}

func NewPipeline(db *sql.DB, client Client, poolSize, maxPerRun int) (*Pipeline, error) {
	if poolSize < 1 {
		poolSize = defaultPoolSize
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Pipeline{db: db, client: client, pool: pool, maxPerRun: maxPerRun}, nil
}

func (p *Pipeline) Close() {
	p.pool.Release()
}

// Run enriches one batch. A failed analysis leaves the posting
// unprocessed so the next run retries it.
func (p *Pipeline) Run(ctx context.Context) (processed int, err error) {
	jobs, err := store.ListUnprocessed(ctx, p.db, p.maxPerRun)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	var wg sync.WaitGroup
	var done atomic.Int64

	for _, job := range jobs {
		job := job
		wg.Add(1)
		serr := p.pool.Submit(func() {
			defer wg.Done()

			res, aerr := p.client.AnalyzeJob(ctx, job)
			if aerr != nil {
				log.Printf("level=warn msg=\"enrich failed\" job_id=%d err=%q", job.ID, aerr)
				return
			}
			if merr := store.MarkEnriched(ctx, p.db, job.ID, res.Valid, res.Summary, res.Skills, res.RemoteType, res.ExperienceLevel); merr != nil {
				log.Printf("level=warn msg=\"enrich persist failed\" job_id=%d err=%q", job.ID, merr)
				return
			}
			if !res.Valid {
				log.Printf("level=info msg=\"listing deactivated\" job_id=%d title=%q", job.ID, job.Title)
			}
			done.Add(1)
		})
		if serr != nil {
			wg.Done()
			log.Printf("level=warn msg=\"enrich submit failed\" job_id=%d err=%q", job.ID, serr)
		}
	}

	wg.Wait()
	return int(done.Load()), nil
}
