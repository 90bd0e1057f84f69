// Package coinmarketcap provides cryptocurrency price fetching from the
// CoinMarketCap Pro API.
package coinmarketcap

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

// Client for pro-api.coinmarketcap.com
type Client struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
	log     zerolog.Logger
}

// NewClient creates a new CoinMarketCap client
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://pro-api.coinmarketcap.com",
		apiKey:  apiKey,
		client:  httpx.New(10 * time.Second),
		log:     log.With().Str("client", "coinmarketcap").Logger(),
	}
}

// Name identifies the provider in quote sources.
func (c *Client) Name() string { return "CoinMarketCap" }

// SetBaseURL overrides the API endpoint (used in tests).
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// QuotePrice fetches the latest USD price for a crypto symbol.
func (c *Client) QuotePrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(symbol)

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("convert", "USD")

	reqURL := c.baseURL + "/v1/cryptocurrency/quotes/latest?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	c.log.Debug().Str("symbol", symbol).Msg("Fetching crypto price")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := httpx.CheckStatus(resp); err != nil {
		return 0, err
	}

	var result struct {
		Data map[string]struct {
			Quote struct {
				USD struct {
					Price float64 `json:"price"`
				} `json:"USD"`
			} `json:"quote"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	entry, ok := result.Data[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote for %s in response", symbol)
	}

	c.log.Info().Str("symbol", symbol).Float64("price", entry.Quote.USD.Price).Msg("Fetched crypto price")

	return entry.Quote.USD.Price, nil
}
