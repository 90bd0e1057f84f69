package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/cachedata"
	"github.com/aristath/finchat/internal/httpx"
)

// ProviderClient fetches the latest price for a symbol from one external API.
type ProviderClient interface {
	Name() string
	QuotePrice(ctx context.Context, symbol string) (float64, error)
}

// cachedQuote is the structure stored in the cache. Price and timestamp
// share one blob so they expire together.
type cachedQuote struct {
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
	Provider  string  `json:"provider"`
}

// Service resolves price lookups cache-first.
type Service struct {
	crypto    ProviderClient
	equity    ProviderClient
	cacheRepo *cachedata.Repository
	log       zerolog.Logger
	now       func() time.Time
}

// NewService creates a price lookup service.
func NewService(crypto, equity ProviderClient, cacheRepo *cachedata.Repository, log zerolog.Logger) *Service {
	return &Service{
		crypto:    crypto,
		equity:    equity,
		cacheRepo: cacheRepo,
		log:       log.With().Str("component", "prices").Logger(),
		now:       time.Now,
	}
}

// GetQuote returns the price for a ticker, serving from the cache when a
// fresh entry exists and fetching from the matching provider otherwise.
// Fetched quotes are cached for cachedata.TTLQuote.
func (s *Service) GetQuote(ctx context.Context, ticker string) (*Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	// Cache first
	data, err := s.cacheRepo.GetIfFresh("quotes", ticker)
	if err != nil {
		return nil, fmt.Errorf("cache lookup failed: %w", err)
	}
	if data != nil {
		var cached cachedQuote
		if err := json.Unmarshal(data, &cached); err == nil {
			s.log.Debug().Str("ticker", ticker).Msg("Cache hit")
			// A missing timestamp is tolerated, not an error
			return &Quote{
				Ticker:    ticker,
				Price:     cached.Price,
				Timestamp: cached.Timestamp,
				Source:    SourceCache,
			}, nil
		}
		s.log.Warn().Str("ticker", ticker).Msg("Discarding undecodable cache entry")
	}

	// Miss: classify and fetch from the matching provider.
	// No retry and no fallback provider on failure.
	provider := s.equity
	if IsCrypto(ticker) {
		provider = s.crypto
	}

	price, err := provider.QuotePrice(ctx, ticker)
	if err != nil {
		provErr := &ProviderError{Provider: provider.Name(), Err: err}
		var statusErr *httpx.StatusError
		if errors.As(err, &statusErr) {
			provErr.StatusCode = statusErr.Status
		}
		return nil, provErr
	}

	timestamp := s.now().UTC().Format(time.RFC3339)

	cached := cachedQuote{Price: price, Timestamp: timestamp, Provider: provider.Name()}
	if err := s.cacheRepo.Store("quotes", ticker, cached, cachedata.TTLQuote); err != nil {
		// A failed cache write only costs the next caller a provider hit
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("Failed to cache quote")
	}

	s.log.Info().
		Str("ticker", ticker).
		Float64("price", price).
		Str("provider", provider.Name()).
		Msg("Fetched quote")

	return &Quote{
		Ticker:    ticker,
		Price:     price,
		Timestamp: timestamp,
		Source:    provider.Name(),
	}, nil
}
