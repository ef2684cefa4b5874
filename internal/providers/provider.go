// Package providers holds completion clients for the enhancement provider.
// The rest of the system depends only on the Client interface: a single
// prompt-in, text-out operation.
package providers

import (
	"context"
	"errors"
	"time"
)

// ErrRateLimited classifies provider failures caused by quota exhaustion.
// Callers use it to decide between backoff-retry and fast fallback.
var ErrRateLimited = errors.New("provider rate limited")

// Client is the completion provider interface.
type Client interface {
	// Complete sends a completion request and returns the response text.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Name returns the client identifier (e.g. "openai").
	Name() string
}

// CompletionRequest is a request to a completion provider.
type CompletionRequest struct {
	Prompt string
	System string

	// Model selection (client default if empty)
	Model string

	Temperature float64
	MaxTokens   int
	Timeout     time.Duration

	// Request tracking
	RequestID string
}

// CompletionResult is the response from a completion call.
type CompletionResult struct {
	Content string

	PromptTokens     int
	CompletionTokens int
	TotalTokens      int

	ExecutionTime time.Duration

	Provider  string
	ModelUsed string
	RequestID string
	Attempts  int
}
