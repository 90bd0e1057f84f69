// Package news stores feed entries from the polled RSS sources and serves
// recency queries over them.
package news

// Item is one stored feed entry. Identity is Link: the polling job
// upserts by link, so at most one item exists per link. Items are never
// deleted and are read-only outside the polling job.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"` // HTML-stripped, whitespace-collapsed
	Link      string `json:"link"`
	Published string `json:"published"`
	FetchedAt string `json:"fetched_at"` // RFC3339 UTC
	Source    string `json:"source"`     // feed host, e.g. "rss.nytimes.com"
}
