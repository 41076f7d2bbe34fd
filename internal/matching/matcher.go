package matching

import "strings"

// Match types, in stage order.
const (
	MatchTypeExact    = "exact"
	MatchTypeFuzzy    = "fuzzy"
	MatchTypeNickname = "nickname"
	MatchTypePartial  = "partial"
	MatchTypeNone     = "none"
)

// DefaultThreshold is the minimum fuzzy similarity accepted by the fuzzy
// stage. 90 favors precision over recall: same-surname strangers should not
// match. Tunable via configuration, not a hard constant.
const DefaultThreshold = 90

// Fixed confidence scores for the late stages. Once the surname-equality
// precondition plus the variant/prefix condition hold, the match is treated
// as near-certain; the score communicates a confidence tier rather than a
// continuously varying similarity.
const (
	nicknameScore = 95
	partialScore  = 93
)

// MatchResult is the outcome of one staged comparison. Produced fresh per
// comparison, never mutated.
type MatchResult struct {
	IsMatch   bool   `json:"is_match"`
	Score     int    `json:"score"` // 0..100
	MatchType string `json:"match_type"`
}

// Match runs the staged comparison between a contact's full name and an
// observed name: exact, then fuzzy similarity against the threshold, then
// nickname equivalence, then partial first-name prefix. The first stage to
// confirm wins. Never returns an error; empty inputs yield a "none" result.
func Match(contactFullName, observedName string, threshold int) MatchResult {
	contact := Normalize(contactFullName)
	observed := Normalize(observedName)

	if contact == "" || observed == "" {
		return MatchResult{MatchType: MatchTypeNone}
	}

	// Stage 1: exact.
	if contact == observed {
		return MatchResult{IsMatch: true, Score: 100, MatchType: MatchTypeExact}
	}

	// Stage 2: fuzzy token-sort similarity.
	ratio := SimilarityRatio(contact, observed)
	if ratio >= threshold {
		return MatchResult{IsMatch: true, Score: ratio, MatchType: MatchTypeFuzzy}
	}

	// Stages 3 and 4 require both names to carry a first and last part and
	// the surnames to be identical.
	contactParts := strings.Fields(contact)
	observedParts := strings.Fields(observed)
	if len(contactParts) >= 2 && len(observedParts) >= 2 &&
		contactParts[len(contactParts)-1] == observedParts[len(observedParts)-1] {

		contactFirst := contactParts[0]
		observedFirst := observedParts[0]

		// Stage 3: nickname equivalence.
		if variantsIntersect(contactFirst, observedFirst) {
			return MatchResult{IsMatch: true, Score: nicknameScore, MatchType: MatchTypeNickname}
		}

		// Stage 4: first-name prefix, both sides at least 3 chars.
		if isPartialNameMatch(contactFirst, observedFirst) {
			return MatchResult{IsMatch: true, Score: partialScore, MatchType: MatchTypePartial}
		}
	}

	return MatchResult{Score: ratio, MatchType: MatchTypeNone}
}

// isPartialNameMatch reports whether one normalized first name is a prefix
// of the other. Both must be at least 3 characters: "Al" is too ambiguous
// to claim Albert.
func isPartialNameMatch(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
