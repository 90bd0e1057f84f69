// Package handlers provides the HTTP surface of the chat module.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/modules/chat"
	"github.com/aristath/finchat/internal/modules/prices"
)

// Handler provides HTTP handlers for chat endpoints
type Handler struct {
	service *chat.Service
	log     zerolog.Logger
}

// NewHandler creates a new chat handler
func NewHandler(service *chat.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// HandleChat handles GET /chat?query=<text>.
//
// The chat surface is conversational: provider failures on price
// lookups come back as a 200 with an error field so the client can
// show them inline, only transport-level problems get error statuses.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter is required"})
		return
	}

	resp, err := h.service.Handle(r.Context(), query)
	if err != nil {
		var provErr *prices.ProviderError
		if errors.As(err, &provErr) {
			h.log.Error().Err(err).Str("query", query).Msg("Price lookup failed in chat")
			writeJSON(w, http.StatusOK, map[string]string{"error": provErr.Error()})
			return
		}
		h.log.Error().Err(err).Str("query", query).Msg("Chat query failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "chat service unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
