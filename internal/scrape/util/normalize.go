package util

import (
	"regexp"
	"strconv"
	"strings"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// StripHTML flattens markup from scraped descriptions into plain text.
func StripHTML(s string) string {
	return CleanText(tagRe.ReplaceAllString(s, " "))
}

// InferRemoteType classifies a posting from its location/title/description
// text. Sources here are remote-only boards, so "remote" is the default.
func InferRemoteType(location, title, desc string) string {
	blob := strings.ToLower(strings.Join([]string{location, title, desc}, " "))

	switch {
	case strings.Contains(blob, "fully remote") || strings.Contains(blob, "anywhere"):
		return "fully_remote"
	case strings.Contains(blob, "hybrid"):
		return "hybrid"
	default:
		return "remote"
	}
}

var salaryNumRe = regexp.MustCompile(`\$?\s*(\d{2,3})[,.]?(\d{3})?\s*[kK]?`)

// ParseSalaryRange pulls a min/max USD pair out of free text like
// "$100,000 - $130,000" or "$90k-120k". Returns zeros when nothing
// parseable is present.
func ParseSalaryRange(text string) (min, max float64) {
	matches := salaryNumRe.FindAllStringSubmatch(text, 2)
	vals := make([]float64, 0, 2)
	for _, m := range matches {
		raw := m[1] + m[2]
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		// "90k" style or bare "90" in a salary context means thousands.
		if n < 1000 {
			n *= 1000
		}
		vals = append(vals, n)
	}
	switch len(vals) {
	case 0:
		return 0, 0
	case 1:
		return vals[0], vals[0]
	default:
		if vals[0] > vals[1] {
			vals[0], vals[1] = vals[1], vals[0]
		}
		return vals[0], vals[1]
	}
}
