package ragservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ask-news", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "why is bitcoin up", body["text"])

		_, _ = w.Write([]byte(`{
			"answer": "Bitcoin rose on ETF inflows.",
			"snippets": [
				{"title": "ETF inflows surge", "summary": "Spot ETFs saw inflows.", "link": "https://example.com/a", "source": "coindesk.com"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())

	answer, err := c.AskNews(context.Background(), "why is bitcoin up")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin rose on ETF inflows.", answer.Answer)
	require.Len(t, answer.Snippets, 1)
	assert.Equal(t, "ETF inflows surge", answer.Snippets[0].Title)
	assert.Equal(t, "coindesk.com", answer.Snippets[0].Source)
}

func TestAskNews_ServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())

	_, err := c.AskNews(context.Background(), "anything")
	require.Error(t, err)
}
