package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator calls the Gemini generateContent API directly.
type GeminiGenerator struct {
	client *genai.Client
	cfg    GenerationConfig
}

func NewGeminiGenerator(ctx context.Context, apiKey string, cfg GenerationConfig) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	return &GeminiGenerator{client: client, cfg: cfg}, nil
}

func (g *GeminiGenerator) Name() string { return "gemini" }

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	conf := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens: int32(g.cfg.MaxOutputTokens),
	}
	if g.cfg.TopP > 0 {
		conf.TopP = genai.Ptr(g.cfg.TopP)
	}
	if g.cfg.TopK > 0 {
		conf.TopK = genai.Ptr(g.cfg.TopK)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), conf)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", NewTransientError(fmt.Errorf("gemini generate: %w", err))
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
