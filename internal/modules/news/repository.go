package news

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository provides storage operations for news items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new news repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the item or, when a row with the same link exists,
// overwrites all of its fields. The row id is assigned on first insert
// and preserved across updates. Repeated upserts of unchanged content
// are effective no-ops.
func (r *Repository) Upsert(item Item) error {
	if item.Link == "" {
		return fmt.Errorf("news item link is required")
	}

	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := r.db.Exec(`
		INSERT INTO news (id, link, title, summary, published, fetched_at, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			published = excluded.published,
			fetched_at = excluded.fetched_at,
			source = excluded.source`,
		id, item.Link, item.Title, item.Summary, item.Published, item.FetchedAt, item.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert news item: %w", err)
	}

	return nil
}

// ListRecent returns the limit most recently fetched items, newest first.
// Ordering ties are broken arbitrarily.
func (r *Repository) ListRecent(limit int) ([]Item, error) {
	if limit <= 0 {
		return []Item{}, nil
	}

	rows, err := r.db.Query(`
		SELECT id, link, title, summary, published, fetched_at, source
		FROM news
		ORDER BY fetched_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query news items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Link, &item.Title, &item.Summary, &item.Published, &item.FetchedAt, &item.Source); err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news items: %w", err)
	}

	return items, nil
}

// Count returns the number of stored items.
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM news").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count news items: %w", err)
	}
	return count, nil
}
