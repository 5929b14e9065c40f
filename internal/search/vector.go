package search

import "math"

// Vector is a sparse term-weight vector (TF x IDF). Zero-weight terms are
// omitted.
type Vector map[string]float64

// Vectorize converts a token sequence into a TF-IDF vector relative to the
// given corpus statistics. An empty token sequence yields an empty vector.
func Vectorize(tokens []string, stats *Stats) Vector {
	if len(tokens) == 0 {
		return Vector{}
	}
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	v := make(Vector, len(counts))
	total := float64(len(tokens))
	for tok, n := range counts {
		if w := (float64(n) / total) * stats.IDF(tok); w > 0 {
			v[tok] = w
		}
	}
	return v
}

// Cosine returns the cosine similarity between two sparse vectors, in
// [0,1] since all weights are non-negative. Either vector having zero norm
// yields 0, never NaN.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64
	for tok, wa := range a {
		normA += wa * wa
		if wb, ok := b[tok]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
