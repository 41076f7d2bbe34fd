package scanning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/callsheet/mentions-bot/internal/archive"
	"github.com/callsheet/mentions-bot/internal/config"
	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/callsheet/mentions-bot/internal/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store with the same upsert-by-pair contract as
// the SQLite store.
type memStore struct {
	contacts []models.Contact
	matches  map[string]models.Match
	upserts  int
}

func newMemStore(contacts ...models.Contact) *memStore {
	return &memStore{contacts: contacts, matches: make(map[string]models.Match)}
}

func (m *memStore) ListContacts(owner string, limit, offset int) ([]models.Contact, error) {
	var page []models.Contact
	for i := offset; i < len(m.contacts) && len(page) < limit; i++ {
		if m.contacts[i].Owner == owner {
			page = append(page, m.contacts[i])
		}
	}
	return page, nil
}

func (m *memStore) GetMatch(documentKey, contactID string) (models.Match, error) {
	match, ok := m.matches[documentKey+"|"+contactID]
	if !ok {
		return models.Match{}, errors.New("not found")
	}
	return match, nil
}

func (m *memStore) UpsertMatch(match models.Match) (models.Match, error) {
	m.upserts++
	key := match.DocumentKey + "|" + match.ContactID
	if existing, ok := m.matches[key]; ok {
		match.ID = existing.ID
	} else if match.ID == "" {
		match.ID = key
	}
	m.matches[key] = match
	return match, nil
}

// MockNotifier is a mock implementation of the notification interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockNotifier) SendAlert(alert *models.Alert) error {
	args := m.Called(alert)
	return args.Error(0)
}

// fakeArticleSource serves a fixed article list.
type fakeArticleSource struct {
	articles []models.Article
}

func (f *fakeArticleSource) GetName() string    { return "fake-news" }
func (f *fakeArticleSource) IsEnabled() bool    { return true }
func (f *fakeArticleSource) FetchArticles(ctx context.Context, window time.Duration) ([]models.Article, error) {
	return f.articles, nil
}

// fakeCreditSource serves a fixed credit list.
type fakeCreditSource struct {
	credits []models.Credit
}

func (f *fakeCreditSource) GetName() string { return "fake-credits" }
func (f *fakeCreditSource) IsEnabled() bool { return true }
func (f *fakeCreditSource) FetchCredits(ctx context.Context, window time.Duration) ([]models.Credit, error) {
	return f.credits, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ReportSchedule:     "daily",
		ContactOwner:       "user-1",
		MatchThreshold:     90,
		FetchConcurrency:   3,
		PremiereWindowDays: 30,
	}
}

func testService(store Store, notifier *MockNotifier, articles []models.Article, credits []models.Credit) *Service {
	service := NewService(testConfig(), store, archive.NewNoopArchive(), notifier)
	service.articleSources = []sources.ArticleSource{&fakeArticleSource{articles: articles}}
	service.creditSources = []sources.CreditSource{&fakeCreditSource{credits: credits}}
	return service
}

func contactRobertDowney() models.Contact {
	return models.Contact{
		ID:        "c1",
		FirstName: "Robert",
		LastName:  "Downey",
		Category:  models.CategoryActor,
		Owner:     "user-1",
	}
}

func TestRunArticleScanNicknameInTitle(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}
	notifier.On("SendReport", mock.Anything).Return(nil)

	article := models.Article{
		Source:  "newsapi",
		Title:   "Bob Downey Jr. signs new deal",
		URL:     "https://variety.com/article-1",
		Content: "The actor closed the deal on Friday.",
	}
	service := testService(store, notifier, []models.Article{article}, nil)

	require.NoError(t, service.RunArticleScan())

	require.Len(t, store.matches, 1)
	match, err := store.GetMatch("https://variety.com/article-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "nickname", match.MatchType)
	assert.Equal(t, 95, match.Score)
	assert.Equal(t, models.LocationTitle, match.Location)
	assert.Equal(t, "Robert Downey", match.ContactName)

	notifier.AssertNumberOfCalls(t, "SendReport", 1)
	report := notifier.Calls[0].Arguments.Get(0).(*models.Report)
	assert.Equal(t, 1, report.TotalMatches)
}

func TestRunArticleScanDedupsAcrossLocations(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}
	notifier.On("SendReport", mock.Anything).Return(nil)

	// Full name in both title and body: one record, title wins.
	article := models.Article{
		Source:  "newsapi",
		Title:   "Robert Downey returns to the franchise",
		URL:     "https://variety.com/article-2",
		Excerpt: "A deal months in the making.",
		Content: "Sources say Robert Downey finalized the agreement this week.",
	}
	service := testService(store, notifier, []models.Article{article}, nil)

	require.NoError(t, service.RunArticleScan())

	require.Len(t, store.matches, 1)
	match, err := store.GetMatch("https://variety.com/article-2", "c1")
	require.NoError(t, err)
	assert.Equal(t, models.LocationTitle, match.Location, "highest-priority location wins")
	assert.Equal(t, "exact", match.MatchType)
}

func TestRunArticleScanBodyOnlyMention(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}
	notifier.On("SendReport", mock.Anything).Return(nil)

	article := models.Article{
		Source:  "newsapi",
		Title:   "Franchise shake-up announced",
		URL:     "https://deadline.com/article-3",
		Content: "Insiders confirm Robert Downey will not return for the sequel.",
	}
	service := testService(store, notifier, []models.Article{article}, nil)

	require.NoError(t, service.RunArticleScan())

	match, err := store.GetMatch("https://deadline.com/article-3", "c1")
	require.NoError(t, err)
	assert.Equal(t, models.LocationBody, match.Location)
}

func TestRunArticleScanRescanIsNoOp(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}
	notifier.On("SendReport", mock.Anything).Return(nil)

	article := models.Article{
		Source: "newsapi",
		Title:  "Robert Downey in talks",
		URL:    "https://variety.com/article-4",
	}
	service := testService(store, notifier, []models.Article{article}, nil)

	require.NoError(t, service.RunArticleScan())
	require.NoError(t, service.RunArticleScan())

	assert.Len(t, store.matches, 1, "re-scan must not duplicate the record")
	assert.Equal(t, 2, store.upserts, "re-scan refreshes via upsert")

	// Only the first run had anything new to announce.
	notifier.AssertNumberOfCalls(t, "SendReport", 1)
}

func TestRunArticleScanNoCandidates(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}

	article := models.Article{
		Source:  "newsapi",
		Title:   "Streaming numbers climb again",
		URL:     "https://variety.com/article-5",
		Content: "Quarterly subscriptions exceeded projections.",
	}
	service := testService(store, notifier, []models.Article{article}, nil)

	require.NoError(t, service.RunArticleScan())

	assert.Empty(t, store.matches)
	notifier.AssertNotCalled(t, "SendReport", mock.Anything)
}

func TestRunArticleScanSameSurnameDifferentPerson(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}

	article := models.Article{
		Source: "newsapi",
		Title:  "Morton Downey retrospective announced",
		URL:    "https://variety.com/article-6",
	}
	service := testService(store, notifier, []models.Article{article}, nil)

	require.NoError(t, service.RunArticleScan())

	assert.Empty(t, store.matches, "shared surname alone is not a match")
}

func TestRunArticleScanSkipsWithoutContacts(t *testing.T) {
	store := newMemStore()
	notifier := &MockNotifier{}

	service := testService(store, notifier, []models.Article{{Title: "Anything", URL: "https://x/1"}}, nil)

	require.NoError(t, service.RunArticleScan())
	assert.Empty(t, store.matches)
	notifier.AssertNotCalled(t, "SendReport", mock.Anything)
}

func TestRunCreditScanNicknameCredit(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}
	notifier.On("SendAlert", mock.Anything).Return(nil)

	credit := models.Credit{
		Source:      "tmdb",
		Type:        "movie",
		ID:          603,
		Title:       "Untitled Heist Picture",
		PersonName:  "Bob Downey",
		Role:        "Marcus",
		Department:  "cast",
		ReleaseDate: time.Now().Add(14 * 24 * time.Hour),
		URL:         "https://www.themoviedb.org/movie/603",
	}
	service := testService(store, notifier, nil, []models.Credit{credit})

	require.NoError(t, service.RunCreditScan())

	require.Len(t, store.matches, 1)
	match, err := store.GetMatch("movie:603", "c1")
	require.NoError(t, err)
	assert.Equal(t, "nickname", match.MatchType)
	assert.Equal(t, 95, match.Score)
	assert.Equal(t, models.LocationCredit, match.Location)

	notifier.AssertNumberOfCalls(t, "SendAlert", 1)
	alert := notifier.Calls[0].Arguments.Get(0).(*models.Alert)
	assert.Equal(t, "premiere", alert.Type)
	require.NotNil(t, alert.Match)
	assert.Equal(t, "Robert Downey", alert.Match.ContactName)
}

func TestRunCreditScanRescanDoesNotReAlert(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}
	notifier.On("SendAlert", mock.Anything).Return(nil)

	credit := models.Credit{
		Source:     "tmdb",
		Type:       "movie",
		ID:         603,
		Title:      "Untitled Heist Picture",
		PersonName: "Robert Downey",
		Department: "cast",
	}
	service := testService(store, notifier, nil, []models.Credit{credit})

	require.NoError(t, service.RunCreditScan())
	require.NoError(t, service.RunCreditScan())

	assert.Len(t, store.matches, 1)
	notifier.AssertNumberOfCalls(t, "SendAlert", 1)
}

func TestRunCreditScanPrunesUnrelatedNames(t *testing.T) {
	store := newMemStore(contactRobertDowney())
	notifier := &MockNotifier{}

	credit := models.Credit{
		Source:     "tmdb",
		Type:       "movie",
		ID:         604,
		Title:      "Another Picture",
		PersonName: "Denis Villeneuve",
		Department: "Directing",
	}
	service := testService(store, notifier, nil, []models.Credit{credit})

	require.NoError(t, service.RunCreditScan())

	assert.Empty(t, store.matches)
	notifier.AssertNotCalled(t, "SendAlert", mock.Anything)
}

func TestSnippet(t *testing.T) {
	text := "Sources say Robert Downey finalized the agreement this week."
	out := snippet(text, "Downey")
	assert.Contains(t, out, "Robert Downey")
	assert.LessOrEqual(t, len(out), len(text)+6)

	assert.Equal(t, "short text", snippet("short text", "missing"))
}
