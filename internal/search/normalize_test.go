package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("lowercases and strips punctuation", func(t *testing.T) {
		assert.Equal(t, []string{"golang", "backend"}, Normalize("GoLang, Backend!"))
	})

	t.Run("drops short words and stop words", func(t *testing.T) {
		got := Normalize("the api is at v2 and it works")
		assert.Equal(t, []string{"api", "works"}, got)
	})

	t.Run("preserves order and duplicates", func(t *testing.T) {
		got := Normalize("python rust python")
		assert.Equal(t, []string{"python", "rust", "python"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Normalize(""))
	})

	t.Run("only stop words and punctuation", func(t *testing.T) {
		assert.Empty(t, Normalize("the and for... !!!"))
	})

	t.Run("numbers survive", func(t *testing.T) {
		assert.Equal(t, []string{"kubernetes", "123"}, Normalize("Kubernetes 123"))
	})
}

func TestStem(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"engineering", "engineer"}, // ing stripped
		{"developed", "develop"},  // ed stripped
		{"developer", "develop"},  // er stripped
		{"quickly", "quick"},      // ly stripped
		{"automation", "automa"},  // tion stripped
		{"happiness", "happi"},    // ness stripped
		{"management", "manage"},  // ment stripped
		{"sing", "sing"},          // too short to strip ing
		{"red", "red"},            // too short to strip ed
		{"rust", "rust"},          // no suffix
		{"tested", "test"},        // first matching suffix only, no chaining
	}
	for _, c := range cases {
		assert.Equal(t, c.want, stem(c.in), "stem(%q)", c.in)
	}
}

func TestStemSingleSuffixOnly(t *testing.T) {
	// "ed" matches before "er" would ever be considered; no second pass.
	got := stem("rendered")
	assert.Equal(t, "render", got)
	assert.Equal(t, "render", stem(got+"ed"))
}
