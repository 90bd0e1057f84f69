// Package prices implements the read-through price cache in front of the
// two external quote providers.
package prices

import (
	"fmt"
	"strings"
)

// SourceCache marks a quote served from the cache rather than a provider.
const SourceCache = "cache"

// Quote is a price lookup result.
type Quote struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"` // RFC3339 UTC; empty when the cached copy predates it
	Source    string  `json:"source"`    // "cache" or the provider name
}

// cryptoSymbols routes a ticker to the crypto provider.
// Everything else goes to the equity provider.
var cryptoSymbols = map[string]bool{
	"BTC":  true,
	"ETH":  true,
	"XRP":  true,
	"LTC":  true,
	"DOGE": true,
}

// IsCrypto reports whether the ticker routes to the crypto provider.
func IsCrypto(ticker string) bool {
	return cryptoSymbols[strings.ToUpper(ticker)]
}

// CryptoSymbols returns the crypto allow-list, for router construction.
func CryptoSymbols() []string {
	out := make([]string, 0, len(cryptoSymbols))
	for s := range cryptoSymbols {
		out = append(out, s)
	}
	return out
}

// ProviderError reports a failed quote fetch from an external provider.
// It is surfaced to API callers with the provider's status; there is no
// retry and no fallback provider.
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when the failure happened before a response
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s quote fetch failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s quote fetch failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
