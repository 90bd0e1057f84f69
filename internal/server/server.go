// Package server wires the HTTP surface of the chatbot service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/finchat/internal/clients/ragservice"
	chathandlers "github.com/aristath/finchat/internal/modules/chat/handlers"
	newshandlers "github.com/aristath/finchat/internal/modules/news/handlers"
	priceshandlers "github.com/aristath/finchat/internal/modules/prices/handlers"
)

// Config holds server configuration
type Config struct {
	Port          int
	DevMode       bool
	AllowedOrigin string
	Log           zerolog.Logger

	Prices *priceshandlers.Handler
	News   *newshandlers.Handler
	Chat   *chathandlers.Handler
	System *SystemHandlers
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	port   int
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		port:   cfg.Port,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes(cfg)

	// WriteTimeout must outlast the RAG request budget or a slow but
	// successful answer is severed before it reaches the client. The
	// per-request bound is the timeout middleware.
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: ragservice.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(cfg Config) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(ragservice.Timeout))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !cfg.DevMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	s.router.Get("/health", cfg.System.HandleHealth)

	// Chatbot endpoints, mounted at the root for the frontend and under
	// /api for gateway-style clients.
	s.router.Get("/price", cfg.Prices.HandleGetPrice)
	s.router.Get("/news", cfg.News.HandleListNews)
	s.router.Get("/chat", cfg.Chat.HandleChat)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", cfg.System.HandleHealth)
		r.Get("/price", cfg.Prices.HandleGetPrice)
		r.Get("/news", cfg.News.HandleListNews)
		r.Get("/chat", cfg.Chat.HandleChat)

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", cfg.System.HandleSystemStatus)
			r.Post("/sync/news", cfg.System.HandleTriggerNewsSync)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
