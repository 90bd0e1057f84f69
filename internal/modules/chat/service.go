package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/clients/ragservice"
	"github.com/aristath/finchat/internal/modules/news"
	"github.com/aristath/finchat/internal/modules/prices"
)

// RAGClient is the delegated retrieval/generation collaborator.
type RAGClient interface {
	AskNews(ctx context.Context, text string) (*ragservice.Answer, error)
}

// Response is the outcome of one chat query. Exactly one of Quote and
// Message is set. Price queries serialize the quote fields at the top
// level, identical to the price endpoint's payload; the other intents
// answer with a display string.
type Response struct {
	*prices.Quote
	Message string `json:"message,omitempty"`
}

// Service routes chat queries and assembles their responses.
type Service struct {
	router   *Router
	prices   *prices.Service
	newsRepo *news.Repository
	rag      RAGClient
	log      zerolog.Logger
}

// NewService creates a chat service.
func NewService(router *Router, priceService *prices.Service, newsRepo *news.Repository, rag RAGClient, log zerolog.Logger) *Service {
	return &Service{
		router:   router,
		prices:   priceService,
		newsRepo: newsRepo,
		rag:      rag,
		log:      log.With().Str("component", "chat").Logger(),
	}
}

// Handle answers a free-text query. Price lookups and store failures
// return errors for the handler to surface; a failing RAG call degrades
// to a soft apology message instead.
func (s *Service) Handle(ctx context.Context, query string) (*Response, error) {
	decision := s.router.Route(query)

	switch decision.Kind {
	case KindPrice:
		quote, err := s.prices.GetQuote(ctx, decision.Ticker)
		if err != nil {
			return nil, err
		}
		return &Response{Quote: quote}, nil

	case KindNews:
		items, err := s.newsRepo.ListRecent(decision.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list news: %w", err)
		}
		return &Response{Message: FormatNews(items)}, nil

	default:
		answer, err := s.rag.AskNews(ctx, decision.Query)
		if err != nil {
			// Degrade gracefully: the chat surface shows an apology
			// rather than an HTTP failure.
			s.log.Error().Err(err).Msg("RAG service call failed")
			return &Response{Message: RAGUnavailableMessage}, nil
		}
		return &Response{Message: FormatAnswer(answer)}, nil
	}
}
