package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SalaryBucket is one row of the salary distribution.
type SalaryBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// SalaryRangeStats buckets active jobs by salary_max and reports the
// overall average of listings that carry a salary at all.
func SalaryRangeStats(ctx context.Context, db *sql.DB) (buckets []SalaryBucket, avg float64, total int, err error) {
	type bound struct {
		label    string
		lo, hi   float64
		openEnds bool
	}
	bounds := []bound{
		{label: "50k-75k", lo: 50000, hi: 75000},
		{label: "75k-100k", lo: 75000, hi: 100000},
		{label: "100k-150k", lo: 100000, hi: 150000},
		{label: "150k-200k", lo: 150000, hi: 200000},
		{label: "200k+", lo: 200000, openEnds: true},
	}

	for _, b := range bounds {
		var n int
		if b.openEnds {
			err = db.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM jobs WHERE is_active = 1 AND salary_max >= ?;`, b.lo).Scan(&n)
		} else {
			err = db.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM jobs WHERE is_active = 1 AND salary_max >= ? AND salary_max < ?;`, b.lo, b.hi).Scan(&n)
		}
		if err != nil {
			return nil, 0, 0, fmt.Errorf("salary bucket %s: %w", b.label, err)
		}
		buckets = append(buckets, SalaryBucket{Range: b.label, Count: n})
	}

	err = db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(AVG((salary_min + salary_max) / 2), 0)
FROM jobs
WHERE is_active = 1 AND salary_max > 0;`).Scan(&total, &avg)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("salary average: %w", err)
	}
	return buckets, avg, total, nil
}

// SourceCount is the number of active listings per scrape source.
type SourceCount struct {
	Platform string `json:"platform"`
	Count    int    `json:"count"`
}

func SourceStats(ctx context.Context, db *sql.DB) ([]SourceCount, error) {
	rows, err := db.QueryContext(ctx, `
SELECT source_platform, COUNT(*)
FROM jobs
WHERE is_active = 1
GROUP BY source_platform
ORDER BY COUNT(*) DESC;`)
	if err != nil {
		return nil, fmt.Errorf("source stats: %w", err)
	}
	defer rows.Close()

	var out []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Platform, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
