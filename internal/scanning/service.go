// Package scanning orchestrates scan runs: load contacts, build the name
// indexes, fetch documents and credits from the sources, run the matching
// core, and persist each finding exactly once per (document, contact) pair.
package scanning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/callsheet/mentions-bot/internal/archive"
	"github.com/callsheet/mentions-bot/internal/config"
	"github.com/callsheet/mentions-bot/internal/matching"
	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/callsheet/mentions-bot/internal/notifications"
	"github.com/callsheet/mentions-bot/internal/sources"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// contactPageSize is the page size used when loading a user's contacts.
const contactPageSize = 500

// Store is the persistence surface the scanner needs: user-scoped contact
// pages and upsert-by-(documentKey, contactID) for match records.
type Store interface {
	ListContacts(owner string, limit, offset int) ([]models.Contact, error)
	GetMatch(documentKey, contactID string) (models.Match, error)
	UpsertMatch(m models.Match) (models.Match, error)
}

// Service runs article and credit scans.
type Service struct {
	config         *config.Config
	store          Store
	archive        archive.Archive
	notifier       notifications.NotificationInterface
	articleSources []sources.ArticleSource
	creditSources  []sources.CreditSource
	metrics        *Metrics
	mu             sync.RWMutex
}

// Metrics holds scan run metrics
type Metrics struct {
	TotalMatches       int            `json:"total_matches"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
	SourceMetrics      map[string]int `json:"source_metrics"`
	MatchTypeBreakdown map[string]int `json:"match_type_breakdown"`
	ErrorCount         int            `json:"error_count"`
}

// NewService creates a scanning service wired to the configured sources.
func NewService(cfg *config.Config, store Store, arch archive.Archive, notifier notifications.NotificationInterface) *Service {
	return &Service{
		config:   cfg,
		store:    store,
		archive:  arch,
		notifier: notifier,
		articleSources: []sources.ArticleSource{
			sources.NewNewsAPISource(cfg.NewsAPIKey),
		},
		creditSources: []sources.CreditSource{
			sources.NewTMDBSource(cfg.TMDBAPIKey),
		},
		metrics: &Metrics{
			SourceMetrics:      make(map[string]int),
			MatchTypeBreakdown: make(map[string]int),
		},
	}
}

// RunArticleScan fetches the window's trade-press articles and scans them
// against the user's contacts.
func (s *Service) RunArticleScan() error {
	start := time.Now()
	logrus.Info("Starting article scan")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	contacts, err := s.loadContacts()
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	if len(contacts) == 0 {
		logrus.Info("No contacts to scan for, skipping article scan")
		return nil
	}

	index := matching.BuildLastNameIndex(contacts)
	logrus.Infof("Built last-name index for %d contacts (%d surnames)", len(contacts), len(index))

	window := s.searchWindow()
	articles, errorCount := s.fetchArticles(ctx, window)
	logrus.Infof("Fetched %d articles in the last %v", len(articles), window)

	// Matching runs after all fetches complete; the session still guards
	// the check-seen/insert/emit sequence should that ever change.
	session := matching.NewSession()
	var newMatches []models.Match

	for _, article := range articles {
		for _, match := range s.scanArticle(article, index, session) {
			stored, isNew, err := s.persistMatch(match)
			if err != nil {
				logrus.Errorf("Failed to persist match for %s in %s: %v", match.ContactName, match.DocumentKey, err)
				errorCount++
				continue
			}
			if isNew {
				newMatches = append(newMatches, stored)
			}
		}
	}

	logrus.Infof("Article scan found %d new matches", len(newMatches))

	report := s.buildReport(s.config.ReportSchedule, newMatches)
	s.updateMetrics(newMatches, time.Since(start), errorCount)

	if err := s.archive.StoreReport(report); err != nil {
		logrus.Errorf("Failed to archive report: %v", err)
	}

	if len(newMatches) > 0 {
		if err := s.notifier.SendReport(report); err != nil {
			logrus.Errorf("Failed to send report: %v", err)
			return err
		}
	}

	logrus.Infof("Article scan completed in %v", time.Since(start))
	return nil
}

// RunCreditScan fetches cast/crew credits for releases premiering within
// the configured window and alerts on contacts found in them.
func (s *Service) RunCreditScan() error {
	start := time.Now()
	logrus.Info("Starting credit scan")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	contacts, err := s.loadContacts()
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	if len(contacts) == 0 {
		logrus.Info("No contacts to scan for, skipping credit scan")
		return nil
	}

	index := matching.BuildFirstNameVariantIndex(contacts)
	logrus.Infof("Built first-name-variant index for %d contacts (%d variants)", len(contacts), len(index))

	window := time.Duration(s.config.PremiereWindowDays) * 24 * time.Hour
	credits, errorCount := s.fetchCredits(ctx, window)
	logrus.Infof("Fetched %d credits premiering within %d days", len(credits), s.config.PremiereWindowDays)

	session := matching.NewSession()
	var newMatches []models.Match

	for _, credit := range credits {
		for _, match := range s.scanCredit(credit, index, session) {
			stored, isNew, err := s.persistMatch(match)
			if err != nil {
				logrus.Errorf("Failed to persist match for %s in %s: %v", match.ContactName, match.DocumentKey, err)
				errorCount++
				continue
			}
			if isNew {
				newMatches = append(newMatches, stored)
			}
		}
	}

	logrus.Infof("Credit scan found %d new matches", len(newMatches))

	report := s.buildReport("credits", newMatches)
	s.updateMetrics(newMatches, time.Since(start), errorCount)

	if err := s.archive.StoreReport(report); err != nil {
		logrus.Errorf("Failed to archive report: %v", err)
	}

	for i := range newMatches {
		alert := premiereAlert(&newMatches[i])
		if err := s.notifier.SendAlert(alert); err != nil {
			logrus.Errorf("Failed to send premiere alert for %s: %v", newMatches[i].ContactName, err)
		}
	}

	logrus.Infof("Credit scan completed in %v", time.Since(start))
	return nil
}

// scanArticle checks each location of one article in priority order
// (title, excerpt, body, then the full text) and returns at most one match
// per contact: the session discards findings for pairs already recorded at
// a higher-priority location.
func (s *Service) scanArticle(article models.Article, index matching.LastNameIndex, session *matching.Session) []models.Match {
	locations := []struct {
		name string
		text string
	}{
		{models.LocationTitle, article.Title},
		{models.LocationExcerpt, article.Excerpt},
		{models.LocationBody, article.Content},
		{models.LocationFull, strings.TrimSpace(article.Title + " " + article.Excerpt + " " + article.Content)},
	}

	var matches []models.Match
	for _, location := range locations {
		if location.text == "" {
			continue
		}
		for _, finding := range matching.FindInText(location.text, index, s.config.MatchThreshold) {
			if !session.Record(article.Key(), finding.Contact.ID) {
				continue
			}
			matches = append(matches, models.Match{
				DocumentKey:   article.Key(),
				ContactID:     finding.Contact.ID,
				ContactName:   finding.Contact.FullName(),
				Category:      finding.Contact.Category,
				Owner:         finding.Contact.Owner,
				DocumentTitle: article.Title,
				Source:        article.Source,
				URL:           article.URL,
				Location:      location.name,
				Excerpt:       snippet(location.text, finding.Contact.LastName),
				MatchType:     finding.Result.MatchType,
				Score:         finding.Result.Score,
			})
		}
	}
	return matches
}

// scanCredit compares one cast/crew name against the candidate contacts
// sharing a first-name variant. Contacts outside the candidate set are
// never compared.
func (s *Service) scanCredit(credit models.Credit, index matching.FirstNameVariantIndex, session *matching.Session) []models.Match {
	var matches []models.Match
	for _, contact := range index.CandidatesForName(credit.PersonName) {
		result := matching.Match(contact.FullName(), credit.PersonName, s.config.MatchThreshold)
		if !result.IsMatch {
			continue
		}
		if !session.Record(credit.Key(), contact.ID) {
			continue
		}
		matches = append(matches, models.Match{
			DocumentKey:   credit.Key(),
			ContactID:     contact.ID,
			ContactName:   contact.FullName(),
			Category:      contact.Category,
			Owner:         contact.Owner,
			DocumentTitle: credit.Title,
			Source:        credit.Source,
			URL:           credit.URL,
			Location:      models.LocationCredit,
			Excerpt:       fmt.Sprintf("%s as %s (%s)", credit.PersonName, credit.Role, credit.Department),
			MatchType:     result.MatchType,
			Score:         result.Score,
		})
	}
	return matches
}

// persistMatch upserts a match record, reporting whether the pair was new.
// A pair already on record means a re-scan: the upsert refreshes the row
// and the finding is not re-announced.
func (s *Service) persistMatch(match models.Match) (models.Match, bool, error) {
	_, err := s.store.GetMatch(match.DocumentKey, match.ContactID)
	isNew := err != nil

	stored, err := s.store.UpsertMatch(match)
	if err != nil {
		return models.Match{}, false, err
	}
	return stored, isNew, nil
}

// fetchArticles pulls articles from every article source inside a bounded
// worker pool, respecting third-party rate limits.
func (s *Service) fetchArticles(ctx context.Context, window time.Duration) ([]models.Article, int) {
	var (
		mu         sync.Mutex
		articles   []models.Article
		errorCount int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.FetchConcurrency)

	for _, source := range s.articleSources {
		source := source
		g.Go(func() error {
			logrus.Infof("Fetching articles from %s (window: %v)", source.GetName(), window)
			fetched, err := source.FetchArticles(gCtx, window)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logrus.Errorf("Error fetching from %s: %v", source.GetName(), err)
				errorCount++
				return nil
			}
			logrus.Infof("Fetched %d articles from %s", len(fetched), source.GetName())
			articles = append(articles, fetched...)
			return nil
		})
	}

	_ = g.Wait()
	return articles, errorCount
}

// fetchCredits pulls credits from every credit source inside the same
// bounded pool.
func (s *Service) fetchCredits(ctx context.Context, window time.Duration) ([]models.Credit, int) {
	var (
		mu         sync.Mutex
		credits    []models.Credit
		errorCount int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.FetchConcurrency)

	for _, source := range s.creditSources {
		source := source
		g.Go(func() error {
			logrus.Infof("Fetching credits from %s (window: %v)", source.GetName(), window)
			fetched, err := source.FetchCredits(gCtx, window)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logrus.Errorf("Error fetching credits from %s: %v", source.GetName(), err)
				errorCount++
				return nil
			}
			logrus.Infof("Fetched %d credits from %s", len(fetched), source.GetName())
			credits = append(credits, fetched...)
			return nil
		})
	}

	_ = g.Wait()
	return credits, errorCount
}

func (s *Service) loadContacts() ([]models.Contact, error) {
	var all []models.Contact
	for offset := 0; ; offset += contactPageSize {
		page, err := s.store.ListContacts(s.config.ContactOwner, contactPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < contactPageSize {
			return all, nil
		}
	}
}

func (s *Service) searchWindow() time.Duration {
	switch s.config.ReportSchedule {
	case "weekly":
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func (s *Service) buildReport(period string, matches []models.Match) *models.Report {
	report := &models.Report{
		GeneratedAt:  time.Now(),
		Period:       period,
		TotalMatches: len(matches),
		Matches:      matches,
		Summary:      make(map[string]interface{}),
	}

	typeCount := make(map[string]int)
	categoryCount := make(map[string]int)
	for _, match := range matches {
		typeCount[match.MatchType]++
		categoryCount[string(match.Category)]++
	}
	report.Summary["match_types"] = typeCount
	report.Summary["categories"] = categoryCount

	return report
}

func premiereAlert(match *models.Match) *models.Alert {
	return &models.Alert{
		ID:        match.ID,
		Type:      "premiere",
		Title:     fmt.Sprintf("Premiere alert: %s in %s", match.ContactName, match.DocumentTitle),
		Message:   fmt.Sprintf("%s (%s) is credited on %s. %s", match.ContactName, match.Category, match.DocumentTitle, match.Excerpt),
		Match:     match,
		CreatedAt: time.Now(),
	}
}

func (s *Service) updateMetrics(matches []models.Match, duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalMatches = len(matches)
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.ErrorCount = errorCount

	s.metrics.SourceMetrics = make(map[string]int)
	s.metrics.MatchTypeBreakdown = make(map[string]int)

	for _, match := range matches {
		s.metrics.SourceMetrics[match.Source]++
		s.metrics.MatchTypeBreakdown[match.MatchType]++
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}

// snippet returns a short window of text around the first occurrence of
// name, for the match record's excerpt.
func snippet(text, name string) string {
	const radius = 80

	idx := strings.Index(strings.ToLower(text), strings.ToLower(name))
	if idx < 0 {
		if len(text) > 2*radius {
			return text[:2*radius] + "..."
		}
		return text
	}

	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + len(name) + radius
	if end > len(text) {
		end = len(text)
	}

	out := text[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out = out + "..."
	}
	return out
}
