package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Business News</title>
    <item>
      <title>Fed holds rates</title>
      <link>https://example.com/fed-holds-rates</link>
      <description>&lt;p&gt;The  Fed &lt;b&gt;held&lt;/b&gt;
      rates   steady.&lt;/p&gt;</description>
      <pubDate>Thu, 02 Jan 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Oil slides</title>
      <link>https://example.com/oil-slides</link>
      <description>Crude fell 2%.</description>
    </item>
    <item>
      <title>Entry without link is skipped</title>
      <description>no link</description>
    </item>
  </channel>
</rss>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	f := NewFetcher(zerolog.Nop())

	items, err := f.Fetch(context.Background(), srv.URL+"/rss")
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Fed holds rates", first.Title)
	assert.Equal(t, "The Fed held rates steady.", first.Summary, "HTML stripped and whitespace collapsed")
	assert.Equal(t, "https://example.com/fed-holds-rates", first.Link)
	assert.NotEmpty(t, first.Published)
	assert.NotEmpty(t, first.FetchedAt)
	assert.Equal(t, "127.0.0.1", first.Source[:9])

	// Missing pubDate falls back to fetch time
	assert.NotEmpty(t, items[1].Published)
}

func TestFetch_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	f := NewFetcher(zerolog.Nop())

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"spaced \n\t words", "spaced words"},
		{"<a href='x'>link</a> tail", "link tail"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, stripHTML(tc.in))
	}
}

func TestSyncJob_FeedFailureDoesNotAbortOthers(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer bad.Close()

	repo, _ := setupTestRepo(t)
	job := NewSyncJob(NewFetcher(zerolog.Nop()), repo, []string{bad.URL, good.URL}, zerolog.Nop())
	assert.Equal(t, "news_sync", job.Name())

	require.NoError(t, job.Run(), "a failing feed is skipped, not fatal")

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "entries from the healthy feed are stored")
}

func TestSyncJob_RerunIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	repo, _ := setupTestRepo(t)
	job := NewSyncJob(NewFetcher(zerolog.Nop()), repo, []string{srv.URL}, zerolog.Nop())

	require.NoError(t, job.Run())
	require.NoError(t, job.Run())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "same links upserted, not duplicated")
}
