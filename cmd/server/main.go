package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/finchat/internal/cachedata"
	"github.com/aristath/finchat/internal/clients/coinmarketcap"
	"github.com/aristath/finchat/internal/clients/fmp"
	"github.com/aristath/finchat/internal/clients/ragservice"
	"github.com/aristath/finchat/internal/config"
	"github.com/aristath/finchat/internal/database"
	"github.com/aristath/finchat/internal/modules/chat"
	chathandlers "github.com/aristath/finchat/internal/modules/chat/handlers"
	"github.com/aristath/finchat/internal/modules/news"
	newshandlers "github.com/aristath/finchat/internal/modules/news/handlers"
	"github.com/aristath/finchat/internal/modules/prices"
	priceshandlers "github.com/aristath/finchat/internal/modules/prices/handlers"
	"github.com/aristath/finchat/internal/scheduler"
	"github.com/aristath/finchat/internal/server"
	"github.com/aristath/finchat/pkg/logger"
)

func main() {
	// Load configuration first so LOG_LEVEL applies from the start
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting finance chatbot service")

	// Initialize databases
	newsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "news.db"),
		Profile: database.ProfileStandard,
		Name:    "news",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize news database")
	}
	defer newsDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache database")
	}
	defer cacheDB.Close()

	// Run migrations
	if err := newsDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate news database")
	}
	if err := cacheDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate cache database")
	}

	// Repositories
	newsRepo := news.NewRepository(newsDB.Conn())
	cacheRepo := cachedata.NewRepository(cacheDB.Conn())

	// Provider clients
	cmcClient := coinmarketcap.NewClient(cfg.CMCAPIKey, log)
	fmpClient := fmp.NewClient(cfg.FMPAPIKey, log)
	ragClient := ragservice.NewClient(cfg.RAGServiceURL, log)

	// Services
	priceService := prices.NewService(cmcClient, fmpClient, cacheRepo, log)
	chatRouter := chat.NewRouter(append(prices.CryptoSymbols(), chat.DefaultEquityTickers...))
	chatService := chat.NewService(chatRouter, priceService, newsRepo, ragClient, log)

	// Background jobs
	sched := scheduler.New(log)

	newsSyncJob := news.NewSyncJob(news.NewFetcher(log), newsRepo, cfg.Feeds, log)
	if err := sched.AddJob("0 0 * * * *", newsSyncJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register news sync job")
	}

	cacheCleanupJob := cachedata.NewCleanupJob(cacheRepo, log)
	if err := sched.AddJob("0 30 0 * * *", cacheCleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}

	sched.Start()
	defer sched.Stop()

	// Populate the news store right away instead of waiting for the
	// first scheduled run.
	go func() {
		if err := sched.RunNow(newsSyncJob); err != nil {
			log.Error().Err(err).Msg("Initial news sync failed")
		}
	}()

	// HTTP server
	systemHandlers := server.NewSystemHandlers(log, newsDB, cacheDB, newsRepo, sched)
	systemHandlers.SetNewsSyncJob(newsSyncJob)

	srv := server.New(server.Config{
		Port:          cfg.Port,
		DevMode:       cfg.DevMode,
		AllowedOrigin: cfg.AllowedOrigin,
		Log:           log,
		Prices:        priceshandlers.NewHandler(priceService, log),
		News:          newshandlers.NewHandler(newsRepo, log),
		Chat:          chathandlers.NewHandler(chatService, log),
		System:        systemHandlers,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
