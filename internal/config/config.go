// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultFeeds are polled when FINCHAT_FEEDS is not set.
var DefaultFeeds = []string{
	"https://rss.nytimes.com/services/xml/rss/nyt/Business.xml",
	"https://www.coindesk.com/arc/outboundfeeds/rss/",
}

// Config holds application configuration
type Config struct {
	DataDir       string // Base directory for all databases, always absolute
	Port          int
	DevMode       bool
	LogLevel      string
	CMCAPIKey     string // CoinMarketCap API key (required)
	FMPAPIKey     string // Financial Modeling Prep API key (required)
	RAGServiceURL string // Delegated retrieval/generation service
	AllowedOrigin string // CORS origin for the frontend
	Feeds         []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("FINCHAT_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:       absDataDir,
		Port:          getEnvAsInt("FINCHAT_PORT", 8001),
		DevMode:       getEnvAsBool("DEV_MODE", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CMCAPIKey:     getEnv("CMC_API_KEY", ""),
		FMPAPIKey:     getEnv("FMP_API_KEY", ""),
		RAGServiceURL: getEnv("RAG_SERVICE_URL", "http://localhost:8002"),
		AllowedOrigin: getEnv("FINCHAT_ALLOWED_ORIGIN", "http://localhost:3000"),
		Feeds:         getEnvAsList("FINCHAT_FEEDS", DefaultFeeds),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
// Provider credentials are required - the service refuses to start
// without them rather than substituting embedded defaults.
func (c *Config) Validate() error {
	if c.CMCAPIKey == "" {
		return fmt.Errorf("CMC_API_KEY is required")
	}
	if c.FMPAPIKey == "" {
		return fmt.Errorf("FMP_API_KEY is required")
	}
	if len(c.Feeds) == 0 {
		return fmt.Errorf("at least one news feed is required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
