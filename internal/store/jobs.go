package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"remoteboard-engine/internal/domain"
)

const jobColumns = `id, title, company, location, salary_min, salary_max,
salary_currency, salary_period, description, requirements, job_type,
experience_level, remote_type, url, source_url, source_platform, source_id,
skills, ai_summary, ai_processed, is_active, posted_at, created_at`

// ListJobsOpts mirrors the public listing filters. Zero values mean "no
// filter"; DaysOld <= 0 disables the recency window.
type ListJobsOpts struct {
	Title           string
	Company         string
	SourcePlatform  string
	MinSalary       float64
	ExperienceLevel string
	JobType         string
	DaysOld         int
	Skip            int
	Limit           int
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (domain.JobPosting, error) {
	var j domain.JobPosting
	var skillsJSON, postedStr, createdStr string
	var aiProcessed, isActive int
	err := r.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency, &j.SalaryPeriod,
		&j.Description, &j.Requirements, &j.JobType, &j.ExperienceLevel,
		&j.RemoteType, &j.URL, &j.SourceURL, &j.SourcePlatform, &j.SourceID,
		&skillsJSON, &j.AISummary, &aiProcessed, &isActive,
		&postedStr, &createdStr,
	)
	if err != nil {
		return j, err
	}
	_ = json.Unmarshal([]byte(skillsJSON), &j.Skills)
	j.AIProcessed = aiProcessed != 0
	j.IsActive = isActive != 0
	j.PostedAt, _ = time.Parse(time.RFC3339, postedStr)
	j.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	return j, nil
}

func collectJobs(rows *sql.Rows) ([]domain.JobPosting, error) {
	defer rows.Close()
	var out []domain.JobPosting
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (o ListJobsOpts) whereClause() (string, []any) {
	// Active remote listings only; everything else is opt-in.
	conds := []string{"is_active = 1", "remote_type IN ('remote', 'fully_remote')"}
	var args []any

	if o.Title != "" {
		conds = append(conds, "title LIKE ?")
		args = append(args, "%"+o.Title+"%")
	}
	if o.Company != "" {
		conds = append(conds, "company LIKE ?")
		args = append(args, "%"+o.Company+"%")
	}
	if o.SourcePlatform != "" {
		conds = append(conds, "source_platform = ?")
		args = append(args, o.SourcePlatform)
	}
	if o.MinSalary > 0 {
		conds = append(conds, "salary_max >= ?")
		args = append(args, o.MinSalary)
	}
	if o.ExperienceLevel != "" {
		conds = append(conds, "experience_level = ?")
		args = append(args, o.ExperienceLevel)
	}
	if o.JobType != "" {
		conds = append(conds, "job_type = ?")
		args = append(args, o.JobType)
	}
	if o.DaysOld > 0 {
		conds = append(conds, "created_at >= ?")
		args = append(args, time.Now().UTC().AddDate(0, 0, -o.DaysOld).Format(time.RFC3339))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// ListJobs returns a filtered page of active remote jobs, newest first,
// plus the total count before pagination.
func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) ([]domain.JobPosting, int, error) {
	if opts.Limit <= 0 || opts.Limit > 1000 {
		opts.Limit = 100
	}

	where, args := opts.whereClause()

	var total int
	countQ := "SELECT COUNT(*) FROM jobs " + where
	if err := db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	q := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY created_at DESC LIMIT ? OFFSET ?;`, jobColumns, where)
	rows, err := db.QueryContext(ctx, q, append(args, opts.Limit, opts.Skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// SearchJobs runs a LIKE match of q over title, company, description, and
// requirements, newest first. The in-memory ranking engine is the fallback
// when this path is unavailable.
func SearchJobs(ctx context.Context, db *sql.DB, q string, skip, limit int) ([]domain.JobPosting, int, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	like := "%" + q + "%"
	where := `WHERE is_active = 1
AND (title LIKE ? OR company LIKE ? OR description LIKE ? OR requirements LIKE ?)`
	args := []any{like, like, like, like}

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY created_at DESC LIMIT ? OFFSET ?;`, jobColumns, where)
	rows, err := db.QueryContext(ctx, query, append(args, limit, skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search jobs: %w", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FeaturedJobs returns recent, AI-verified, high-salary listings.
func FeaturedJobs(ctx context.Context, db *sql.DB, limit int) ([]domain.JobPosting, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -7).Format(time.RFC3339)
	q := fmt.Sprintf(`
SELECT %s FROM jobs
WHERE is_active = 1 AND ai_processed = 1 AND salary_min >= 100000 AND created_at >= ?
ORDER BY salary_max DESC, created_at DESC
LIMIT ?;`, jobColumns)
	rows, err := db.QueryContext(ctx, q, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("featured jobs: %w", err)
	}
	return collectJobs(rows)
}

func GetJob(ctx context.Context, db *sql.DB, id int64) (domain.JobPosting, error) {
	q := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = ?;`, jobColumns)
	return scanJob(db.QueryRowContext(ctx, q, id))
}

// CreateJob inserts a caller-supplied posting and returns it with its new
// id and timestamps filled in.
func CreateJob(ctx context.Context, db *sql.DB, j domain.JobPosting) (domain.JobPosting, error) {
	now := time.Now().UTC()
	if j.PostedAt.IsZero() {
		j.PostedAt = now
	}
	j.CreatedAt = now
	j.IsActive = true
	if j.RemoteType == "" {
		j.RemoteType = "remote"
	}
	if j.SalaryCurrency == "" {
		j.SalaryCurrency = "USD"
	}
	if j.SalaryPeriod == "" {
		j.SalaryPeriod = "yearly"
	}

	skillsB, _ := json.Marshal(j.Skills)
	if j.Skills == nil {
		skillsB = []byte("[]")
	}

	res, err := db.ExecContext(ctx, `
INSERT INTO jobs (title, company, location, salary_min, salary_max,
  salary_currency, salary_period, description, requirements, job_type,
  experience_level, remote_type, url, source_url, source_platform, source_id,
  skills, ai_summary, ai_processed, is_active, posted_at, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		j.Title, j.Company, j.Location, j.SalaryMin, j.SalaryMax,
		j.SalaryCurrency, j.SalaryPeriod, j.Description, j.Requirements, j.JobType,
		j.ExperienceLevel, j.RemoteType, j.URL, j.SourceURL, j.SourcePlatform, j.SourceID,
		string(skillsB), j.AISummary, boolToInt(j.AIProcessed), 1,
		j.PostedAt.Format(time.RFC3339), j.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("create job: %w", err)
	}
	j.ID, _ = res.LastInsertId()
	return j, nil
}

// InsertJobIgnore inserts a scraped posting, deduplicating on source_id
// via the partial unique index. Reports whether a row was actually added.
func InsertJobIgnore(ctx context.Context, db *sql.DB, j domain.JobPosting) (added bool, err error) {
	now := time.Now().UTC()
	if j.PostedAt.IsZero() {
		j.PostedAt = now
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.RemoteType == "" {
		j.RemoteType = "remote"
	}
	if j.SalaryCurrency == "" {
		j.SalaryCurrency = "USD"
	}
	if j.SalaryPeriod == "" {
		j.SalaryPeriod = "yearly"
	}
	skillsB, _ := json.Marshal(j.Skills)
	if j.Skills == nil {
		skillsB = []byte("[]")
	}

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (title, company, location, salary_min, salary_max,
  salary_currency, salary_period, description, requirements, job_type,
  experience_level, remote_type, url, source_url, source_platform, source_id,
  skills, ai_summary, ai_processed, is_active, posted_at, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		j.Title, j.Company, j.Location, j.SalaryMin, j.SalaryMax,
		j.SalaryCurrency, j.SalaryPeriod, j.Description, j.Requirements, j.JobType,
		j.ExperienceLevel, j.RemoteType, j.URL, j.SourceURL, j.SourcePlatform, j.SourceID,
		string(skillsB), j.AISummary, boolToInt(j.AIProcessed), 1,
		j.PostedAt.Format(time.RFC3339), j.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

func DeleteJob(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	return err
}

// ListUnprocessed returns active jobs the enricher has not touched yet,
// oldest first so the backlog drains in order.
func ListUnprocessed(ctx context.Context, db *sql.DB, limit int) ([]domain.JobPosting, error) {
	if limit <= 0 {
		limit = 25
	}
	q := fmt.Sprintf(`
SELECT %s FROM jobs
WHERE is_active = 1 AND ai_processed = 0
ORDER BY created_at ASC
LIMIT ?;`, jobColumns)
	rows, err := db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list unprocessed: %w", err)
	}
	return collectJobs(rows)
}

// MarkEnriched stores the enrichment result for one job. An invalid
// verdict deactivates the listing instead of updating it.
func MarkEnriched(ctx context.Context, db *sql.DB, id int64, valid bool, summary string, skills []string, remoteType, experienceLevel string) error {
	if !valid {
		_, err := db.ExecContext(ctx,
			`UPDATE jobs SET ai_processed = 1, is_active = 0 WHERE id = ?;`, id)
		return err
	}
	skillsB, _ := json.Marshal(skills)
	if skills == nil {
		skillsB = []byte("[]")
	}
	_, err := db.ExecContext(ctx, `
UPDATE jobs
SET ai_processed = 1,
    ai_summary = ?,
    skills = CASE WHEN ? != '[]' THEN ? ELSE skills END,
    remote_type = CASE WHEN ? != '' THEN ? ELSE remote_type END,
    experience_level = CASE WHEN ? != '' THEN ? ELSE experience_level END
WHERE id = ?;`,
		summary,
		string(skillsB), string(skillsB),
		remoteType, remoteType,
		experienceLevel, experienceLevel,
		id)
	return err
}

// CleanupOldJobs removes listings older than three months.
func CleanupOldJobs(db *sql.DB) (deleted int64, err error) {
	cutoff := time.Now().UTC().AddDate(0, -3, 0).Format(time.RFC3339)
	res, err := db.Exec(`DELETE FROM jobs WHERE created_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
