package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alfredoptarigan/job-tracker/internal/models"
)

// MaxCompletionTokens caps the length of every generated insight.
const MaxCompletionTokens = 2000

// CompletionClient sends one system message and one user message to a chat
// model and returns the text of the first choice.
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type retryingClient struct {
	next        CompletionClient
	maxAttempts int
	delay       time.Duration
}

// NewRetryingClient retries transport failures only. Empty completions and
// provider error objects are returned on the first attempt.
func NewRetryingClient(next CompletionClient, maxAttempts int, delay time.Duration) CompletionClient {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &retryingClient{
		next:        next,
		maxAttempts: maxAttempts,
		delay:       delay,
	}
}

func (r *retryingClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	var lastErr error
	delay := r.delay

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		text, err := r.next.Complete(ctx, system, prompt)
		if err == nil {
			return text, nil
		}

		var transportErr *models.CompletionTransportError
		if !errors.As(err, &transportErr) {
			return "", err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		log.Printf("⚠️ Completion attempt %d/%d failed: %v. Retrying in %v...\n", attempt, r.maxAttempts, err, delay)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", lastErr
}
