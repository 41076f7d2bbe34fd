package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{
			name:     "identical strings",
			a:        "john smith",
			b:        "john smith",
			expected: 100,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 100,
		},
		{
			name:     "one empty",
			a:        "",
			b:        "x",
			expected: 0,
		},
		{
			name:     "token order is irrelevant",
			a:        "John Smith",
			b:        "Smith John",
			expected: 100,
		},
		{
			name:     "case and surrounding space are irrelevant",
			a:        "  JOHN SMITH ",
			b:        "john smith",
			expected: 100,
		},
		{
			name:     "single substitution",
			a:        "jon smith",
			b:        "john smith",
			expected: 90, // distance 1 over length 10
		},
		{
			name:     "unrelated names score low",
			a:        "quentin tarantino",
			b:        "bo li",
			expected: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SimilarityRatio(tt.a, tt.b))
		})
	}
}

func TestSimilarityRatioIsSymmetric(t *testing.T) {
	assert.Equal(t, SimilarityRatio("robert downey", "bob downey"), SimilarityRatio("bob downey", "robert downey"))
}

func TestSimilarityRatioHandlesReorderedMiddleNames(t *testing.T) {
	// Raw edit distance would penalize this heavily; token sort must not.
	assert.Equal(t, 100, SimilarityRatio("mary louise parker", "parker mary louise"))
}
