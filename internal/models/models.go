package models

import (
	"fmt"
	"time"
)

// Category classifies a contact's role in the industry.
type Category string

const (
	CategoryActor     Category = "ACTOR"
	CategoryDirector  Category = "DIRECTOR"
	CategoryProducer  Category = "PRODUCER"
	CategoryAgent     Category = "AGENT"
	CategoryExecutive Category = "EXECUTIVE"
	CategoryWriter    Category = "WRITER"
	CategoryOther     Category = "OTHER"
)

// ParseCategory maps a raw string to a known Category, defaulting to OTHER.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryActor, CategoryDirector, CategoryProducer, CategoryAgent, CategoryExecutive, CategoryWriter:
		return Category(s)
	default:
		return CategoryOther
	}
}

// Contact represents a tracked person. First and last name are both
// required for matching; contacts missing either are skipped at indexing.
type Contact struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Category  Category  `json:"category"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "First Last" as used for matching.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Article is a trade-press document fetched from a news source.
type Article struct {
	Source      string    `json:"source"` // "newsapi", etc.
	Outlet      string    `json:"outlet"` // "variety.com", "deadline.com", ...
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	URL         string    `json:"url"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

// Key returns the stable document key used for dedup and persistence.
func (a Article) Key() string {
	return a.URL
}

// Credit is a single cast or crew entry on an upcoming release.
type Credit struct {
	Source      string    `json:"source"` // "tmdb"
	Type        string    `json:"type"`   // "movie" or "tv"
	ID          int64     `json:"id"`     // source-side production id
	Title       string    `json:"title"`
	PersonName  string    `json:"person_name"`
	Role        string    `json:"role"`       // character or job title
	Department  string    `json:"department"` // "cast", "directing", "writing", ...
	ReleaseDate time.Time `json:"release_date"`
	URL         string    `json:"url"`
}

// Key returns the stable document key for this production.
func (c Credit) Key() string {
	return fmt.Sprintf("%s:%d", c.Type, c.ID)
}

// Match locations within an article, highest priority first. Credits use
// their own location since they carry no prose.
const (
	LocationTitle   = "title"
	LocationExcerpt = "excerpt"
	LocationBody    = "body"
	LocationFull    = "full"
	LocationCredit  = "credit"
)

// Match is the persisted record of a confirmed contact-in-document finding.
// At most one exists per (DocumentKey, ContactID); re-discovery updates the
// existing row rather than inserting a second one.
type Match struct {
	ID            string    `json:"id"`
	DocumentKey   string    `json:"document_key"`
	ContactID     string    `json:"contact_id"`
	ContactName   string    `json:"contact_name"`
	Category      Category  `json:"category"`
	Owner         string    `json:"owner"`
	DocumentTitle string    `json:"document_title"`
	Source        string    `json:"source"`
	URL           string    `json:"url"`
	Location      string    `json:"location"` // title, excerpt, body, full
	Excerpt       string    `json:"excerpt"`
	MatchType     string    `json:"match_type"` // exact, fuzzy, nickname, partial
	Score         int       `json:"score"`
	FoundAt       time.Time `json:"found_at"`
	Read          bool      `json:"read"`
}

// Report represents one scan run's findings, sent to notification channels
// and archived as JSON.
type Report struct {
	GeneratedAt  time.Time              `json:"generated_at"`
	Period       string                 `json:"period"` // "daily", "weekly", "credits"
	TotalMatches int                    `json:"total_matches"`
	Matches      []Match                `json:"matches"`
	Summary      map[string]interface{} `json:"summary"`
}

// Alert represents an immediate notification, e.g. a contact attached to a
// premiere inside the alert window.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "premiere", "info"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Match     *Match    `json:"match,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
