package ai

import (
	"context"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/config"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
)

// ChainFromConfig builds the configured providers, Anthropic first, each
// bounded by the request timeout and wrapped with retries. The chain is
// empty when no key is set.
func ChainFromConfig(ctx context.Context, c config.AIConfig) *Chain {
	gc := GenerationConfig{
		Temperature:     c.Temperature,
		TopP:            c.TopP,
		TopK:            c.TopK,
		MaxOutputTokens: c.MaxOutputTokens,
	}
	retry := DefaultRetryConfig()
	if c.MaxAttempts > 0 {
		retry.MaxAttempts = c.MaxAttempts
	}

	var gens []Generator
	if c.AnthropicAPIKey != "" {
		ac := gc
		ac.Model = c.AnthropicModel
		if g, err := NewAnthropicGenerator(c.AnthropicAPIKey, c.AnthropicBaseURL, ac); err != nil {
			logger.Warnf("anthropic generator disabled: %v", err)
		} else {
			gens = append(gens, WithRetry(WithTimeout(g, c.Timeout), retry))
		}
	}
	if c.GeminiAPIKey != "" {
		gm := gc
		gm.Model = c.GeminiModel
		if g, err := NewGeminiGenerator(ctx, c.GeminiAPIKey, gm); err != nil {
			logger.Warnf("gemini generator disabled: %v", err)
		} else {
			gens = append(gens, WithRetry(WithTimeout(g, c.Timeout), retry))
		}
	}
	return NewChain(gens...)
}
