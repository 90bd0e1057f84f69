// Package fmp provides equity price fetching from Financial Modeling Prep.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/httpx"
)

// Client for financialmodelingprep.com
type Client struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
	log     zerolog.Logger
}

// NewClient creates a new Financial Modeling Prep client
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://financialmodelingprep.com",
		apiKey:  apiKey,
		client:  httpx.New(10 * time.Second),
		log:     log.With().Str("client", "fmp").Logger(),
	}
}

// Name identifies the provider in quote sources.
func (c *Client) Name() string { return "FMP" }

// SetBaseURL overrides the API endpoint (used in tests).
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// QuotePrice fetches the latest price for an equity ticker.
func (c *Client) QuotePrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(symbol)

	reqURL := fmt.Sprintf("%s/api/v3/quote/%s?apikey=%s", c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}

	c.log.Debug().Str("symbol", symbol).Msg("Fetching stock price")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := httpx.CheckStatus(resp); err != nil {
		return 0, err
	}

	var result []struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	// FMP returns an empty array for unknown tickers
	if len(result) == 0 {
		return 0, fmt.Errorf("no quote for %s in response", symbol)
	}

	c.log.Info().Str("symbol", symbol).Float64("price", result[0].Price).Msg("Fetched stock price")

	return result[0].Price, nil
}
