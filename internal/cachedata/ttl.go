package cachedata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// TTLQuote - Price quotes from external providers. Both paid APIs
	// charge per call, so quotes are reused for 5 minutes.
	TTLQuote = 5 * time.Minute
)
