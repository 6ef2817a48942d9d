package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/sophie/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 120, cfg.Server.WriteTimeout)

		require.Equal(t, 60, cfg.Chat.ProviderTimeout)

		require.Equal(t, "usage.csv", cfg.Ledger.UsagePath)
		require.Equal(t, "feedback.csv", cfg.Ledger.FeedbackPath)

		require.Empty(t, cfg.Session.RedisAddr)
		require.Equal(t, 0, cfg.Session.SnapshotTTL)

		require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		require.Equal(t, 60, cfg.OpenAI.Timeout)
		require.Equal(t, 3, cfg.OpenAI.MaxRetries)
		require.Empty(t, cfg.OpenAI.APIKey)

		require.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai", cfg.Gemini.BaseURL)
		require.Equal(t, "https://api.mistral.ai/v1", cfg.Mistral.BaseURL)
		require.Equal(t, int64(1), cfg.Sim.Seed)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("PROVIDER_TIMEOUT", "15")
		t.Setenv("LEDGER_USAGE_PATH", "/var/data/usage.csv")
		t.Setenv("SESSION_REDIS_ADDR", "localhost:6379")
		t.Setenv("SESSION_SNAPSHOT_TTL", "3600")
		t.Setenv("OPENAI_API_KEY", "sk-test-key")
		t.Setenv("GEMINI_API_KEY", "g-test-key")
		t.Setenv("MISTRAL_API_KEY", "m-test-key")
		t.Setenv("SIM_SEED", "99")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, 15, cfg.Chat.ProviderTimeout)
		require.Equal(t, "/var/data/usage.csv", cfg.Ledger.UsagePath)
		require.Equal(t, "localhost:6379", cfg.Session.RedisAddr)
		require.Equal(t, 3600, cfg.Session.SnapshotTTL)
		require.Equal(t, "sk-test-key", cfg.OpenAI.APIKey)
		require.Equal(t, "g-test-key", cfg.Gemini.APIKey)
		require.Equal(t, "m-test-key", cfg.Mistral.APIKey)
		require.Equal(t, int64(99), cfg.Sim.Seed)
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	os.Clearenv()

	cfg := config.Load()
	deps := config.ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Server, deps.Server)
	require.Same(t, &cfg.Chat, deps.Chat)
	require.Same(t, &cfg.Ledger, deps.Ledger)
	require.Equal(t, cfg.OpenAI, deps.OpenAI)
}
