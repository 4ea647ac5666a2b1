package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicGenerator calls the Claude messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	cfg    GenerationConfig
}

// NewAnthropicGenerator builds a generator for apiKey. baseURL may be empty.
func NewAnthropicGenerator(apiKey, baseURL string, cfg GenerationConfig) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-haiku-latest"
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 3000
	}
	return &AnthropicGenerator{client: anthropic.NewClient(opts...), cfg: cfg}, nil
}

func (a *AnthropicGenerator) Name() string { return "anthropic" }

func (a *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.cfg.Model),
		MaxTokens:   int64(a.cfg.MaxOutputTokens),
		Temperature: anthropic.Float(float64(a.cfg.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}
	if a.cfg.TopP > 0 {
		params.TopP = anthropic.Float(float64(a.cfg.TopP))
	}
	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", classifyAnthropic(ctx, err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

func classifyAnthropic(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	wrapped := fmt.Errorf("anthropic messages: %w", err)
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500 {
			return NewTransientError(wrapped)
		}
		return wrapped
	}
	// Transport failures carry no status.
	return NewTransientError(wrapped)
}
