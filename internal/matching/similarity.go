package matching

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SimilarityRatio computes a token-sort similarity between two strings as
// an integer 0..100. Both strings are normalized, split on whitespace,
// token-sorted, and rejoined before the edit distance is taken, so
// "John Smith" and "Smith, John" (once punctuation is stripped upstream)
// or reordered middle names compare as equal. The ratio is
// 100 * (maxLen - distance) / maxLen over the sorted-rejoined strings.
func SimilarityRatio(a, b string) int {
	as := tokenSort(a)
	bs := tokenSort(b)

	if as == bs {
		return 100
	}
	if as == "" || bs == "" {
		return 0
	}

	maxLen := len(as)
	if len(bs) > maxLen {
		maxLen = len(bs)
	}

	distance := levenshtein.ComputeDistance(as, bs)
	if distance >= maxLen {
		return 0
	}
	return 100 * (maxLen - distance) / maxLen
}

func tokenSort(s string) string {
	tokens := strings.Fields(Normalize(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
