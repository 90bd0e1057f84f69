package news

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE news (
    id TEXT PRIMARY KEY,
    link TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    published TEXT NOT NULL DEFAULT '',
    fetched_at TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT ''
);
CREATE INDEX idx_news_fetched_at ON news(fetched_at DESC);
`

func setupTestRepo(t *testing.T) (*Repository, *sql.DB) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return NewRepository(db), db
}

func sampleItem(link, fetchedAt string) Item {
	return Item{
		Title:     "Markets rally",
		Summary:   "Stocks closed higher.",
		Link:      link,
		Published: "2025-01-02T10:00:00Z",
		FetchedAt: fetchedAt,
		Source:    "rss.nytimes.com",
	}
}

func TestUpsert_Insert(t *testing.T) {
	repo, _ := setupTestRepo(t)

	err := repo.Upsert(sampleItem("https://example.com/a", "2025-01-02T11:00:00Z"))
	require.NoError(t, err)

	items, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, "Markets rally", items[0].Title)
}

func TestUpsert_SameLinkKeepsOneRow(t *testing.T) {
	repo, db := setupTestRepo(t)

	item := sampleItem("https://example.com/a", "2025-01-02T11:00:00Z")
	require.NoError(t, repo.Upsert(item))
	require.NoError(t, repo.Upsert(item))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM news WHERE link = ?", item.Link).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpsert_OverwritesAllFieldsAndKeepsID(t *testing.T) {
	repo, _ := setupTestRepo(t)

	first := sampleItem("https://example.com/a", "2025-01-02T11:00:00Z")
	require.NoError(t, repo.Upsert(first))

	items, err := repo.ListRecent(1)
	require.NoError(t, err)
	originalID := items[0].ID

	updated := first
	updated.Title = "Markets rally (updated)"
	updated.Summary = "Revised summary."
	updated.FetchedAt = "2025-01-02T12:00:00Z"
	require.NoError(t, repo.Upsert(updated))

	items, err = repo.ListRecent(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, originalID, items[0].ID, "row id survives updates")
	assert.Equal(t, "Markets rally (updated)", items[0].Title)
	assert.Equal(t, "Revised summary.", items[0].Summary)
	assert.Equal(t, "2025-01-02T12:00:00Z", items[0].FetchedAt)
}

func TestUpsert_RequiresLink(t *testing.T) {
	repo, _ := setupTestRepo(t)

	err := repo.Upsert(Item{Title: "no link"})
	require.Error(t, err)
}

func TestListRecent_OrderAndLimit(t *testing.T) {
	repo, _ := setupTestRepo(t)

	require.NoError(t, repo.Upsert(sampleItem("https://example.com/t1", "2025-01-02T10:00:00Z")))
	require.NoError(t, repo.Upsert(sampleItem("https://example.com/t2", "2025-01-02T11:00:00Z")))
	require.NoError(t, repo.Upsert(sampleItem("https://example.com/t3", "2025-01-02T12:00:00Z")))

	items, err := repo.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://example.com/t3", items[0].Link)
	assert.Equal(t, "https://example.com/t2", items[1].Link)
}

func TestListRecent_Empty(t *testing.T) {
	repo, _ := setupTestRepo(t)

	items, err := repo.ListRecent(5)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = repo.ListRecent(0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCount(t *testing.T) {
	repo, _ := setupTestRepo(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.Upsert(sampleItem("https://example.com/a", "2025-01-02T11:00:00Z")))

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
