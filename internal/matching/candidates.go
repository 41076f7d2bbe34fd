package matching

import (
	"strings"

	"github.com/callsheet/mentions-bot/internal/models"
)

// Tokens shorter than this are never used for index lookups; one-letter
// fragments collide with too many accidental words.
const minTokenLength = 2

// CandidatesInText tokenizes a block of free text and returns, for each
// surname present in the index, the contacts sharing it. Zero hits is a
// normal, frequent outcome.
func (idx LastNameIndex) CandidatesInText(text string) map[string][]models.Contact {
	candidates := make(map[string][]models.Contact)
	seen := make(map[string]struct{})

	for _, raw := range strings.Fields(text) {
		token := stripToken(Normalize(raw))
		if len(token) < minTokenLength {
			continue
		}
		if _, done := seen[token]; done {
			continue
		}
		seen[token] = struct{}{}

		if contacts, ok := idx[token]; ok {
			candidates[token] = contacts
		}
	}
	return candidates
}

// CandidatesForName returns the contacts whose first name shares a variant
// with the first token of an observed name, e.g. a cast/crew credit. Only
// these contacts are worth the staged comparison; everyone else is pruned.
func (idx FirstNameVariantIndex) CandidatesForName(observedName string) []models.Contact {
	fields := strings.Fields(observedName)
	if len(fields) == 0 {
		return nil
	}
	first := stripToken(Normalize(fields[0]))
	if len(first) < minTokenLength {
		return nil
	}

	var candidates []models.Contact
	for _, variant := range NameVariants(first) {
		for _, contact := range idx[variant] {
			if !containsContact(candidates, contact.ID) {
				candidates = append(candidates, contact)
			}
		}
	}
	return candidates
}

// TextFinding pairs a contact with the verdict for one block of text.
type TextFinding struct {
	Contact models.Contact
	Result  MatchResult
}

// FindInText scans one block of free text against the surname index and
// returns every contact found in it, at most once each. A surname hit is
// first checked with the cheap full-name substring test; when the full name
// is not spelled out, the word directly before the surname occurrence is
// taken as the observed first name and run through the staged matcher, so
// nickname and partial variants ("Bob Downey" for Robert Downey) are still
// caught without scoring every contact against every document.
func FindInText(text string, idx LastNameIndex, threshold int) []TextFinding {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lowerText := Normalize(text)
	var findings []TextFinding
	reported := make(map[string]struct{})

	for surname, contacts := range idx.CandidatesInText(text) {
		for _, contact := range contacts {
			if _, done := reported[contact.ID]; done {
				continue
			}

			fullName := Normalize(contact.FullName())
			if strings.Contains(lowerText, fullName) {
				findings = append(findings, TextFinding{
					Contact: contact,
					Result:  MatchResult{IsMatch: true, Score: 100, MatchType: MatchTypeExact},
				})
				reported[contact.ID] = struct{}{}
				continue
			}

			observed := observedNameBefore(text, surname)
			if observed == "" {
				continue
			}
			result := Match(contact.FullName(), observed, threshold)
			if result.IsMatch {
				findings = append(findings, TextFinding{Contact: contact, Result: result})
				reported[contact.ID] = struct{}{}
			}
		}
	}
	return findings
}

// observedNameBefore reconstructs "<preceding word> <surname>" for the
// first occurrence of surname in the text, or "" when the surname opens the
// text or the preceding token is too short to be a name.
func observedNameBefore(text, surname string) string {
	fields := strings.Fields(text)
	for i, raw := range fields {
		if stripToken(Normalize(raw)) != surname {
			continue
		}
		if i == 0 {
			return ""
		}
		prev := stripToken(Normalize(fields[i-1]))
		if len(prev) < minTokenLength {
			return ""
		}
		return prev + " " + surname
	}
	return ""
}
