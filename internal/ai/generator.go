package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/metrics"
)

var (
	ErrEmptyMessage  = errors.New("message is required")
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrUnavailable is returned when no generator is configured or every
	// generator in a chain failed.
	ErrUnavailable = errors.New("ai generator unavailable")
)

// Generator turns a prompt into raw model text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationConfig holds the sampling parameters shared by providers.
type GenerationConfig struct {
	Model           string
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int
}

// TransientError marks a failure that may succeed on retry.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string { return e.err.Error() }
func (e *TransientError) Unwrap() error { return e.err }

// NewTransientError wraps err as retryable.
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// RetryConfig controls WithRetry.
type RetryConfig struct {
	MaxAttempts       int
	BackoffBase       time.Duration
	BackoffMultiplier float64
	MaxBackoff        time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        10 * time.Second,
	}
}

func (c RetryConfig) backoff(attempt int) time.Duration {
	multiplier := 1.0
	for i := 1; i < attempt; i++ {
		multiplier *= c.BackoffMultiplier
	}
	d := time.Duration(float64(c.BackoffBase) * multiplier)
	if c.MaxBackoff > 0 && d > c.MaxBackoff {
		d = c.MaxBackoff
	}
	jitter := float64(d) * 0.25 * (rand.Float64()*2 - 1)
	return d + time.Duration(jitter)
}

type retrying struct {
	next Generator
	cfg  RetryConfig
}

// WithRetry retries transient failures of g with exponential backoff.
func WithRetry(g Generator, cfg RetryConfig) Generator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retrying{next: g, cfg: cfg}
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		out, err := r.next.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsTransient(err) || attempt == r.cfg.MaxAttempts {
			break
		}
		wait := r.cfg.backoff(attempt)
		logger.WithFields(logger.Fields{
			"provider": r.next.Name(),
			"attempt":  attempt,
			"backoff":  wait,
		}).Warnf("generator call failed, retrying: %v", err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	return "", lastErr
}

// Chain tries generators in order; the first success wins.
type Chain struct {
	generators []Generator
}

// NewChain drops nil entries so callers can pass optional providers.
func NewChain(gens ...Generator) *Chain {
	c := &Chain{}
	for _, g := range gens {
		if g != nil {
			c.generators = append(c.generators, g)
		}
	}
	return c
}

func (c *Chain) Len() int { return len(c.generators) }

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.generators))
	for _, g := range c.generators {
		names = append(names, g.Name())
	}
	return strings.Join(names, ",")
}

func (c *Chain) Generate(ctx context.Context, prompt string) (string, error) {
	if len(c.generators) == 0 {
		return "", ErrUnavailable
	}
	var errs []error
	for _, g := range c.generators {
		out, err := g.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(out) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			metrics.GeneratorCalls.WithLabelValues(g.Name(), "success").Inc()
			return out, nil
		}
		metrics.GeneratorCalls.WithLabelValues(g.Name(), "error").Inc()
		logger.Warnf("generator %s failed: %v", g.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", g.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

type timeoutGenerator struct {
	next Generator
	d    time.Duration
}

// WithTimeout bounds each Generate call on g to d. A non-positive d returns g.
func WithTimeout(g Generator, d time.Duration) Generator {
	if d <= 0 {
		return g
	}
	return &timeoutGenerator{next: g, d: d}
}

func (t *timeoutGenerator) Name() string { return t.next.Name() }

func (t *timeoutGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Generate(ctx, prompt)
}
