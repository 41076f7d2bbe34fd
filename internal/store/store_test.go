package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestContactRoundTrip(t *testing.T) {
	db := openTestDB(t)

	created, err := db.AddContact(models.Contact{
		FirstName: "Robert",
		LastName:  "Downey",
		Email:     "rdj@example.com",
		Category:  models.CategoryActor,
		Owner:     "user-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	contacts, err := db.ListContacts("user-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Robert", contacts[0].FirstName)
	assert.Equal(t, models.CategoryActor, contacts[0].Category)

	// Other owners never see it.
	other, err := db.ListContacts("user-2", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, db.DeleteContact(created.ID))
	contacts, err = db.ListContacts("user-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestListContactsPagination(t *testing.T) {
	db := openTestDB(t)

	for _, last := range []string{"Adams", "Baker", "Cruz", "Diaz", "Evans"} {
		_, err := db.AddContact(models.Contact{FirstName: "Test", LastName: last, Owner: "user-1"})
		require.NoError(t, err)
	}

	page1, err := db.ListContacts("user-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "Adams", page1[0].LastName)

	page3, err := db.ListContacts("user-1", 2, 4)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "Evans", page3[0].LastName)

	all, err := db.AllContacts("user-1")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestImportContactsCSV(t *testing.T) {
	db := openTestDB(t)

	csvData := strings.Join([]string{
		"first_name,last_name,email,category",
		"Robert,Downey,rdj@example.com,ACTOR",
		"Greta,Gerwig,,DIRECTOR",
		",,,",                    // fully empty row skipped
		"Ari,,ari@example.com,AGENT", // half a name still imports
		"Florence,Pugh,,not-a-category",
	}, "\n")

	imported, err := db.ImportContactsCSV(strings.NewReader(csvData), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 4, imported)

	contacts, err := db.AllContacts("user-1")
	require.NoError(t, err)
	require.Len(t, contacts, 4)

	byLast := make(map[string]models.Contact)
	for _, c := range contacts {
		byLast[c.LastName] = c
	}
	assert.Equal(t, models.CategoryDirector, byLast["Gerwig"].Category)
	assert.Equal(t, models.CategoryOther, byLast["Pugh"].Category, "unknown category degrades to OTHER")
}

func TestUpsertMatchIsIdempotentPerPair(t *testing.T) {
	db := openTestDB(t)

	match := models.Match{
		DocumentKey:   "https://variety.com/article-1",
		ContactID:     "c1",
		ContactName:   "Robert Downey",
		Category:      models.CategoryActor,
		Owner:         "user-1",
		DocumentTitle: "Bob Downey Jr. signs new deal",
		Source:        "newsapi",
		Location:      models.LocationTitle,
		MatchType:     "nickname",
		Score:         95,
	}

	first, err := db.UpsertMatch(match)
	require.NoError(t, err)

	// Re-scan finds the same pair again, now in the body.
	match.Location = models.LocationBody
	match.Score = 100
	match.MatchType = "exact"
	_, err = db.UpsertMatch(match)
	require.NoError(t, err)

	count, err := db.CountMatches("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "second upsert must update, not duplicate")

	stored, err := db.GetMatch(match.DocumentKey, match.ContactID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID, "original id survives the upsert")
	assert.Equal(t, "exact", stored.MatchType)
	assert.Equal(t, models.LocationBody, stored.Location)
}

func TestUpsertMatchDistinctPairs(t *testing.T) {
	db := openTestDB(t)

	base := models.Match{
		DocumentKey: "https://variety.com/article-1",
		ContactID:   "c1",
		Owner:       "user-1",
		MatchType:   "exact",
		Score:       100,
	}

	_, err := db.UpsertMatch(base)
	require.NoError(t, err)

	sameDocOtherContact := base
	sameDocOtherContact.ContactID = "c2"
	_, err = db.UpsertMatch(sameDocOtherContact)
	require.NoError(t, err)

	otherDoc := base
	otherDoc.DocumentKey = "https://deadline.com/article-2"
	_, err = db.UpsertMatch(otherDoc)
	require.NoError(t, err)

	count, err := db.CountMatches("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMarkMatchRead(t *testing.T) {
	db := openTestDB(t)

	m, err := db.UpsertMatch(models.Match{
		DocumentKey: "doc",
		ContactID:   "c1",
		Owner:       "user-1",
	})
	require.NoError(t, err)

	require.NoError(t, db.MarkMatchRead(m.ID))

	stored, err := db.GetMatch("doc", "c1")
	require.NoError(t, err)
	assert.True(t, stored.Read)

	// The read flag survives a later re-scan of the same pair.
	_, err = db.UpsertMatch(models.Match{DocumentKey: "doc", ContactID: "c1", Owner: "user-1", Score: 100})
	require.NoError(t, err)
	stored, err = db.GetMatch("doc", "c1")
	require.NoError(t, err)
	assert.True(t, stored.Read)
}

func TestListMatchesNewestFirst(t *testing.T) {
	db := openTestDB(t)

	for i, key := range []string{"doc-a", "doc-b", "doc-c"} {
		_, err := db.UpsertMatch(models.Match{
			DocumentKey: key,
			ContactID:   "c1",
			Owner:       "user-1",
			Score:       90 + i,
		})
		require.NoError(t, err)
	}

	matches, err := db.ListMatches("user-1", 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
