package matching

import (
	"github.com/callsheet/mentions-bot/internal/models"
)

// LastNameIndex maps a normalized surname to the contacts sharing it. Used
// for free-text scanning, where any word could be a surname.
type LastNameIndex map[string][]models.Contact

// FirstNameVariantIndex maps every normalized first-name variant (the name
// itself plus its nickname/canonical equivalents) to the contacts reachable
// under that variant. Used for structured credit names.
type FirstNameVariantIndex map[string][]models.Contact

// BuildLastNameIndex builds the surname index for one scan session.
// Contacts missing a first or last name are excluded; they cannot be
// matched reliably and are expected data-quality noise, not errors.
func BuildLastNameIndex(contacts []models.Contact) LastNameIndex {
	index := make(LastNameIndex, len(contacts))
	for _, contact := range contacts {
		first := Normalize(contact.FirstName)
		last := Normalize(contact.LastName)
		if first == "" || last == "" {
			continue
		}
		index[last] = append(index[last], contact)
	}
	return index
}

// BuildFirstNameVariantIndex builds the first-name-variant index for one
// scan session. A contact appears under each of its variants exactly once.
func BuildFirstNameVariantIndex(contacts []models.Contact) FirstNameVariantIndex {
	index := make(FirstNameVariantIndex, len(contacts))
	for _, contact := range contacts {
		first := Normalize(contact.FirstName)
		last := Normalize(contact.LastName)
		if first == "" || last == "" {
			continue
		}
		for _, variant := range NameVariants(first) {
			if !containsContact(index[variant], contact.ID) {
				index[variant] = append(index[variant], contact)
			}
		}
	}
	return index
}

func containsContact(contacts []models.Contact, id string) bool {
	for _, c := range contacts {
		if c.ID == id {
			return true
		}
	}
	return false
}
