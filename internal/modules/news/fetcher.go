package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// Fetcher downloads and normalizes entries from one RSS feed.
type Fetcher struct {
	parser *gofeed.Parser
	log    zerolog.Logger
	now    func() time.Time
}

// NewFetcher creates an RSS fetcher.
func NewFetcher(log zerolog.Logger) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0 (compatible; FinanceChatbot/1.0)"
	return &Fetcher{
		parser: parser,
		log:    log.With().Str("component", "news_fetcher").Logger(),
		now:    time.Now,
	}
}

// Fetch parses the feed at feedURL into news items. Summaries are
// HTML-stripped and whitespace-collapsed; the item source is the feed
// host.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]Item, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", feedURL, err)
	}

	now := f.now().UTC().Format(time.RFC3339)
	source := feedHost(feedURL)

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}

		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}

		published := entry.Published
		if published == "" && entry.PublishedParsed != nil {
			published = entry.PublishedParsed.Format(time.RFC3339)
		}
		if published == "" {
			published = now
		}

		title := entry.Title
		if title == "" {
			title = "No title"
		}

		items = append(items, Item{
			Title:     title,
			Summary:   stripHTML(summary),
			Link:      entry.Link,
			Published: published,
			FetchedAt: now,
			Source:    source,
		})
	}

	return items, nil
}

// feedHost extracts the host part of the feed URL for the source field.
func feedHost(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return feedURL
	}
	return u.Host
}

// stripHTML removes markup and collapses internal whitespace.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
