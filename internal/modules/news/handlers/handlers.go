// Package handlers provides HTTP handlers for the news collection.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/modules/news"
)

const (
	defaultLimit = 5
	maxLimit     = 100
)

// Handler provides HTTP handlers for news endpoints
type Handler struct {
	repo *news.Repository
	log  zerolog.Logger
}

// NewHandler creates a new news handler
func NewHandler(repo *news.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "news").Logger(),
	}
}

// HandleListNews handles GET /news?limit=<n>
func (h *Handler) HandleListNews(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, err := h.repo.ListRecent(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list news items")
		writeJSONError(w, http.StatusServiceUnavailable, "news service unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]news.Item{"news": items}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode news response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
