package search

import (
	"math"
	"strings"

	"remoteboard-engine/internal/domain"
)

// Stats holds per-call corpus statistics: how many of the candidate
// documents contain each token. Built fresh for every search invocation.
type Stats struct {
	docFreq   map[string]int
	totalDocs int
}

// BuildStats computes document frequencies across the candidate set. A
// token counts once per document no matter how often it occurs in it.
func BuildStats(jobs []domain.JobPosting) *Stats {
	s := &Stats{
		docFreq:   make(map[string]int),
		totalDocs: len(jobs),
	}
	for i := range jobs {
		seen := make(map[string]struct{})
		for _, tok := range Normalize(docText(&jobs[i])) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			s.docFreq[tok]++
		}
	}
	return s
}

// IDF returns ln(totalDocs/docFreq) for tokens present in the corpus and 0
// otherwise. The ratio is always >= 1, so IDF is never negative; a token
// present in every document scores 0.
func (s *Stats) IDF(token string) float64 {
	df := s.docFreq[token]
	if df == 0 {
		return 0
	}
	return math.Log(float64(s.totalDocs) / float64(df))
}

// docText concatenates every text field the engine scores over. Missing
// optional fields contribute empty strings.
func docText(j *domain.JobPosting) string {
	parts := []string{
		j.Title,
		j.Company,
		j.Description,
		j.AISummary,
		strings.Join(j.Skills, " "),
		j.Location,
	}
	return strings.Join(parts, " ")
}
