// Package chat classifies free-text queries and dispatches them to the
// price, news, or retrieval/generation backends.
package chat

import (
	"strings"
)

// Kind is the routed intent of a query.
type Kind string

const (
	KindPrice Kind = "price"
	KindNews  Kind = "news"
	KindOpen  Kind = "open"
)

// DefaultNewsLimit is the fixed result count for the news intent.
const DefaultNewsLimit = 5

// DefaultTicker is used when a price query names no known ticker.
const DefaultTicker = "BTC"

// DefaultEquityTickers seeds the known-ticker allow-list alongside the
// crypto symbols. Without an allow-list, arbitrary words in a price
// query would be misread as tickers.
var DefaultEquityTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "META"}

// Decision is the routing outcome for one query.
type Decision struct {
	Kind   Kind
	Ticker string // set for KindPrice
	Limit  int    // set for KindNews
	Query  string // set for KindOpen: the original, un-normalized query
}

// rule pairs a predicate with its decision. Rules are evaluated in
// order and the first match wins; the ordering is part of the contract
// (a query containing both "price" and "latest news" is a price query).
type rule struct {
	name    string
	matches func(normalized string) bool
	decide  func(normalized, original string) Decision
}

// Router classifies queries with an ordered rule table.
type Router struct {
	rules        []rule
	knownTickers map[string]bool
}

// NewRouter creates a router. knownTickers is the allow-list used for
// ticker extraction in price queries.
func NewRouter(knownTickers []string) *Router {
	known := make(map[string]bool, len(knownTickers))
	for _, t := range knownTickers {
		known[strings.ToUpper(t)] = true
	}

	r := &Router{knownTickers: known}
	r.rules = []rule{
		{
			name: "price",
			matches: func(q string) bool {
				return strings.Contains(q, "price") || strings.Contains(q, "worth")
			},
			decide: func(q, _ string) Decision {
				return Decision{Kind: KindPrice, Ticker: r.extractTicker(q)}
			},
		},
		{
			name: "news",
			matches: func(q string) bool {
				return strings.Contains(q, "show me news") || strings.Contains(q, "latest news")
			},
			decide: func(_, _ string) Decision {
				return Decision{Kind: KindNews, Limit: DefaultNewsLimit}
			},
		},
	}
	return r
}

// Route classifies the query. Queries matching no rule are forwarded
// verbatim to the open-ended backend.
func (r *Router) Route(query string) Decision {
	normalized := normalize(query)

	for _, rule := range r.rules {
		if rule.matches(normalized) {
			return rule.decide(normalized, query)
		}
	}

	return Decision{Kind: KindOpen, Query: query}
}

// normalize lowercases, drops the literal "today" and trims whitespace.
func normalize(query string) string {
	q := strings.ToLower(query)
	q = strings.ReplaceAll(q, "today", "")
	return strings.TrimSpace(q)
}

// extractTicker returns the first whitespace-separated token whose
// uppercase form is in the allow-list, or DefaultTicker when none match.
func (r *Router) extractTicker(normalized string) string {
	for _, token := range strings.Fields(normalized) {
		token = strings.Trim(token, ".,!?;:")
		if token == "" {
			continue
		}
		if upper := strings.ToUpper(token); r.knownTickers[upper] {
			return upper
		}
	}
	return DefaultTicker
}
