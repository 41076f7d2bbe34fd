package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchStages(t *testing.T) {
	tests := []struct {
		name          string
		contact       string
		observed      string
		expectedMatch bool
		expectedType  string
		expectedScore int
	}{
		{
			name:          "exact match",
			contact:       "Jane Doe",
			observed:      "Jane Doe",
			expectedMatch: true,
			expectedType:  MatchTypeExact,
			expectedScore: 100,
		},
		{
			name:          "exact match ignores case and whitespace",
			contact:       "Jane Doe",
			observed:      "  jane doe ",
			expectedMatch: true,
			expectedType:  MatchTypeExact,
			expectedScore: 100,
		},
		{
			name:          "fuzzy match on a typo",
			contact:       "John Smith",
			observed:      "Jon Smith",
			expectedMatch: true,
			expectedType:  MatchTypeFuzzy,
			expectedScore: 90,
		},
		{
			name:          "nickname match",
			contact:       "Daniel Craig",
			observed:      "Dan Craig",
			expectedMatch: true,
			expectedType:  MatchTypeNickname,
			expectedScore: 95,
		},
		{
			name:          "nickname match in the other direction",
			contact:       "Dan Craig",
			observed:      "Daniel Craig",
			expectedMatch: true,
			expectedType:  MatchTypeNickname,
			expectedScore: 95,
		},
		{
			name:          "surname mismatch blocks the nickname stage",
			contact:       "Daniel Craig",
			observed:      "Dan Smith",
			expectedMatch: false,
			expectedType:  MatchTypeNone,
		},
		{
			name:          "partial first-name prefix",
			contact:       "Alexander Payne",
			observed:      "Alex Payne",
			expectedMatch: true,
			// "alex" is in the alias table for alexander, so the nickname
			// stage claims it before the partial stage is reached.
			expectedType:  MatchTypeNickname,
			expectedScore: 95,
		},
		{
			name:          "partial prefix outside the alias table",
			contact:       "Christabella Reyes",
			observed:      "Chris Reyes",
			expectedMatch: true,
			expectedType:  MatchTypePartial,
			expectedScore: 93,
		},
		{
			name:          "two-char prefix is too short for partial",
			contact:       "Zo Hargitay",
			observed:      "Zoltan Hargitay",
			expectedMatch: false,
			expectedType:  MatchTypeNone,
		},
		{
			name:          "unrelated names",
			contact:       "Greta Gerwig",
			observed:      "Denis Villeneuve",
			expectedMatch: false,
			expectedType:  MatchTypeNone,
		},
		{
			name:          "empty observed name",
			contact:       "Jane Doe",
			observed:      "",
			expectedMatch: false,
			expectedType:  MatchTypeNone,
		},
		{
			name:          "empty contact name",
			contact:       "",
			observed:      "Jane Doe",
			expectedMatch: false,
			expectedType:  MatchTypeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Match(tt.contact, tt.observed, DefaultThreshold)
			assert.Equal(t, tt.expectedMatch, result.IsMatch)
			assert.Equal(t, tt.expectedType, result.MatchType)
			if tt.expectedMatch {
				assert.Equal(t, tt.expectedScore, result.Score)
			}
		})
	}
}

func TestMatchExactIgnoresThreshold(t *testing.T) {
	// Exact equality must win before the threshold is ever consulted.
	for _, threshold := range []int{0, 50, 90, 100, 101} {
		result := Match("Jane Doe", "Jane Doe", threshold)
		assert.True(t, result.IsMatch)
		assert.Equal(t, MatchTypeExact, result.MatchType)
		assert.Equal(t, 100, result.Score)
	}
}

func TestMatchThresholdGatesFuzzyStage(t *testing.T) {
	// "Jon Smith" vs "John Smith" scores exactly 90.
	in := Match("John Smith", "Jon Smith", 90)
	assert.True(t, in.IsMatch)
	assert.Equal(t, MatchTypeFuzzy, in.MatchType)

	// Different surname keeps the late stages out of play, so raising the
	// threshold above the fuzzy score flips the verdict to none.
	out := Match("John Smithe", "Jon Smith", 91)
	assert.False(t, out.IsMatch)
	assert.Equal(t, MatchTypeNone, out.MatchType)
}

func TestMatchNoneCarriesBestFuzzyScore(t *testing.T) {
	result := Match("John Smith", "Jon Smyth", DefaultThreshold)
	assert.False(t, result.IsMatch)
	assert.Equal(t, MatchTypeNone, result.MatchType)
	assert.Equal(t, SimilarityRatio("john smith", "jon smyth"), result.Score)
	assert.Greater(t, result.Score, 0)
}

func TestMatchSingleTokenNamesSkipLateStages(t *testing.T) {
	// Mononyms never reach the nickname or partial stages.
	result := Match("Cher", "Dan", DefaultThreshold)
	assert.False(t, result.IsMatch)
	assert.Equal(t, MatchTypeNone, result.MatchType)
}

func TestIsPartialNameMatch(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected bool
	}{
		{"ale", "alexander", true},
		{"alexander", "ale", true},
		{"al", "albert", false}, // below the 3-char floor
		{"albert", "al", false},
		{"ben", "benjamin", true},
		{"ben", "bertrand", false},
		{"sam", "sam", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isPartialNameMatch(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
