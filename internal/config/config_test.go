package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.test:8001")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("AI_MAX_OUTPUT_TOKENS", "1500")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "http://backend.test:8001", cfg.Backend.URL)
	require.Equal(t, "localhost", cfg.Redis.Host)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.Equal(t, 1500, cfg.AI.MaxOutputTokens)
	require.Equal(t, "gemini-1.5-flash", cfg.AI.GeminiModel)
	require.InDelta(t, 0.7, cfg.AI.Temperature, 0.0001)
	require.Equal(t, 6, cfg.AI.HistoryLimit)
	require.Equal(t, 120*time.Minute, cfg.Conversation.TTL)
	require.True(t, cfg.AI.Configured())
}

func TestAIConfigured(t *testing.T) {
	require.False(t, AIConfig{}.Configured())
	require.True(t, AIConfig{AnthropicAPIKey: "k"}.Configured())
}
