// Package handlers provides HTTP handlers for price lookups.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/modules/prices"
)

// Handler provides HTTP handlers for price endpoints
type Handler struct {
	service *prices.Service
	log     zerolog.Logger
}

// NewHandler creates a new prices handler
func NewHandler(service *prices.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "prices").Logger(),
	}
}

// HandleGetPrice handles GET /price?ticker=<symbol>
func (h *Handler) HandleGetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		writeJSONError(w, http.StatusBadRequest, "ticker query parameter is required")
		return
	}

	quote, err := h.service.GetQuote(r.Context(), ticker)
	if err != nil {
		var provErr *prices.ProviderError
		if errors.As(err, &provErr) {
			h.log.Error().Err(err).Str("ticker", ticker).Msg("Provider quote fetch failed")
			writeJSONError(w, http.StatusBadGateway, provErr.Error())
			return
		}
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Price lookup failed")
		writeJSONError(w, http.StatusServiceUnavailable, "price service unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode quote response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
