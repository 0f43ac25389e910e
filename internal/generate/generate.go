// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces blog post prose from article context through a
// Generative AI API.
package generate

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Backend abstracts the Generative AI API so tests can supply a mock. An
// implementation accepts a complete prompt and returns the model's prose.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

const defaultMaxRetries = 3

// WithRetry calls the backend with exponential backoff. When maxRetries is
// zero or negative the default (3) is used. Backoff waits respect context
// cancellation.
func WithRetry(ctx context.Context, backend Backend, prompt string, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
