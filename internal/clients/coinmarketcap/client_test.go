package coinmarketcap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/finchat/internal/httpx"
)

func TestQuotePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cryptocurrency/quotes/latest", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-CMC_PRO_API_KEY"))
		assert.Equal(t, "BTC", r.URL.Query().Get("symbol"))
		assert.Equal(t, "USD", r.URL.Query().Get("convert"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"BTC":{"quote":{"USD":{"price":67231.52}}}}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", zerolog.Nop())
	c.SetBaseURL(srv.URL)

	price, err := c.QuotePrice(context.Background(), "btc")
	require.NoError(t, err)
	assert.Equal(t, 67231.52, price)
}

func TestQuotePrice_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"error_message":"API key invalid"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key", zerolog.Nop())
	c.SetBaseURL(srv.URL)

	_, err := c.QuotePrice(context.Background(), "BTC")
	require.Error(t, err)

	var statusErr *httpx.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
}

func TestQuotePrice_SymbolMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", zerolog.Nop())
	c.SetBaseURL(srv.URL)

	_, err := c.QuotePrice(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no quote for NOPE")
}
