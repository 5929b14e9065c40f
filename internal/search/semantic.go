package search

import (
	"strings"
	"unicode"

	"remoteboard-engine/internal/domain"
)

// synonymGroups are coarse topic buckets: two terms in the same bucket are
// considered semantically related even with no lexical overlap.
var synonymGroups = [][]string{
	{"javascript", "js", "node", "nodejs", "react", "vue", "angular", "frontend", "web", "typescript"},
	{"python", "data", "ml", "ai", "machine", "learning", "pandas", "numpy", "scientist", "analytics"},
	{"backend", "api", "server", "go", "golang", "java", "rust", "microservices", "grpc"},
	{"devops", "kubernetes", "docker", "terraform", "aws", "cloud", "infrastructure", "sre", "platform"},
	{"mobile", "ios", "android", "swift", "kotlin", "flutter"},
	{"database", "sql", "postgres", "postgresql", "mysql", "mongodb", "redis", "sqlite"},
	{"remote", "distributed", "wfh", "telecommute", "anywhere", "async"},
	{"senior", "lead", "principal", "staff", "architect"},
	{"junior", "entry", "intern", "graduate", "associate"},
}

// FilterBySemanticMeaning keeps jobs where at least one query term relates
// to at least one term of the job's text, either through a shared synonym
// group or a mutual substring. It is a recall-boosting filter with no
// scoring; the ranked Search path does not use it. Terms are split more
// loosely than Normalize so short names like "ml" or "ai" survive.
func FilterBySemanticMeaning(jobs []domain.JobPosting, query string) []domain.JobPosting {
	queryTerms := splitTerms(query)
	if len(queryTerms) == 0 {
		return nil
	}
	var out []domain.JobPosting
	for i := range jobs {
		if anySemanticMatch(queryTerms, splitTerms(docText(&jobs[i]))) {
			out = append(out, jobs[i])
		}
	}
	return out
}

// splitTerms lowercases and splits on non-alphanumeric boundaries with no
// stop-word, length, or suffix filtering.
func splitTerms(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func anySemanticMatch(queryTerms, jobTerms []string) bool {
	for _, qt := range queryTerms {
		for _, jt := range jobTerms {
			if termsRelated(qt, jt) {
				return true
			}
		}
	}
	return false
}

func termsRelated(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	for _, group := range synonymGroups {
		inA, inB := false, false
		for _, term := range group {
			if term == a {
				inA = true
			}
			if term == b {
				inB = true
			}
		}
		if inA && inB {
			return true
		}
	}
	return false
}
