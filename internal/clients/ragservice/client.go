// Package ragservice is the client for the delegated retrieval-augmented
// generation microservice. Embedding, vector search and text generation
// all live behind its HTTP contract; this package only speaks it.
package ragservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/httpx"
)

// Snippet is one supporting document returned alongside an answer.
// The shape mirrors the vector index payload.
type Snippet struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
	Source  string `json:"source"`
}

// Answer is the generated response plus its supporting snippets.
type Answer struct {
	Answer   string    `json:"answer"`
	Snippets []Snippet `json:"snippets"`
}

// Timeout is the request budget for the RAG service. The generation
// step can be slow, so it is generous; anything serving RAG-backed
// responses must allow at least this long before cutting the
// connection.
const Timeout = 60 * time.Second

// Client for the RAG service
type Client struct {
	baseURL string
	client  *httpx.Client
	log     zerolog.Logger
}

// NewClient creates a new RAG service client.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  httpx.New(Timeout),
		log:     log.With().Str("client", "ragservice").Logger(),
	}
}

// AskNews sends free text to the RAG service and returns the generated
// answer with supporting snippets.
func (c *Client) AskNews(ctx context.Context, text string) (*Answer, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask-news", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Int("query_len", len(text)).Msg("Querying RAG service")

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("RAG service request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := httpx.CheckStatus(resp); err != nil {
		return nil, err
	}

	var answer Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.log.Info().Int("snippets", len(answer.Snippets)).Msg("RAG service answered")

	return &answer, nil
}
