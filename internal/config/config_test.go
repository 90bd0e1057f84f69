package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresProviderKeys(t *testing.T) {
	t.Setenv("FINCHAT_DATA_DIR", t.TempDir())
	t.Setenv("CMC_API_KEY", "")
	t.Setenv("FMP_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CMC_API_KEY")
}

func TestLoad_RequiresFMPKey(t *testing.T) {
	t.Setenv("FINCHAT_DATA_DIR", t.TempDir())
	t.Setenv("CMC_API_KEY", "test-key")
	t.Setenv("FMP_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FMP_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FINCHAT_DATA_DIR", t.TempDir())
	t.Setenv("CMC_API_KEY", "cmc")
	t.Setenv("FMP_API_KEY", "fmp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8002", cfg.RAGServiceURL)
	assert.Equal(t, DefaultFeeds, cfg.Feeds)
	assert.True(t, len(cfg.DataDir) > 0 && cfg.DataDir[0] == '/')
}

func TestLoad_FeedsFromEnv(t *testing.T) {
	t.Setenv("FINCHAT_DATA_DIR", t.TempDir())
	t.Setenv("CMC_API_KEY", "cmc")
	t.Setenv("FMP_API_KEY", "fmp")
	t.Setenv("FINCHAT_FEEDS", "https://a.example/rss, https://b.example/rss")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/rss"}, cfg.Feeds)
}

func TestValidate_EmptyFeeds(t *testing.T) {
	cfg := &Config{CMCAPIKey: "a", FMPAPIKey: "b"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed")
}
