package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/config"
)

func TestChainFromConfig(t *testing.T) {
	empty := ChainFromConfig(context.Background(), config.AIConfig{})
	assert.Equal(t, 0, empty.Len())

	c := ChainFromConfig(context.Background(), config.AIConfig{
		AnthropicAPIKey: "sk-test",
		AnthropicModel:  "claude-test",
		MaxAttempts:     1,
		Timeout:         time.Second,
	})
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "anthropic", c.Name())
}
