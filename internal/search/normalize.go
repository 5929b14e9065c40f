// Package search implements the in-memory relevance ranking engine used
// when SQL search is unavailable: TF-IDF term weighting with cosine
// similarity, plus heuristic boosts for exact matches, skill overlap,
// recency, and remote-work signals. It operates over a bounded,
// already-fetched candidate set and rebuilds its term statistics on every
// call; nothing is indexed or cached across calls.
package search

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "his": {}, "has": {}, "had": {}, "how": {},
	"their": {}, "they": {}, "them": {}, "then": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "with": {}, "will": {}, "would": {},
	"have": {}, "been": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"your": {}, "from": {}, "into": {}, "onto": {}, "upon": {},
	"about": {}, "above": {}, "after": {}, "before": {}, "between": {},
	"both": {}, "does": {}, "doing": {}, "during": {}, "each": {},
	"more": {}, "most": {}, "other": {}, "over": {}, "same": {},
	"should": {}, "some": {}, "such": {}, "than": {}, "there": {},
	"through": {}, "under": {}, "until": {}, "very": {},
}

// suffixes checked in order; only the first match is stripped, and only
// when the word is longer than the suffix by more than 2 characters.
var suffixes = []string{"ing", "ed", "er", "est", "ly", "tion", "sion", "ness", "ment"}

// Normalize turns raw text into a canonical token sequence: lowercase,
// punctuation replaced by spaces, words of length <= 2 and stop-words
// dropped, and a single suffix stripped per word. Order and duplicates are
// preserved so that token counts still carry term frequency.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, stem(w))
	}
	return tokens
}

func stem(word string) string {
	for _, suf := range suffixes {
		if strings.HasSuffix(word, suf) && len(word) > len(suf)+2 {
			return word[:len(word)-len(suf)]
		}
	}
	return word
}
