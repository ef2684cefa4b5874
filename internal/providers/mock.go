package providers

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const MockClientName = "mock"

// MockClient is a scriptable Client for tests.
type MockClient struct {
	mu sync.Mutex

	// Responses are returned in order; the last one repeats once exhausted.
	Responses []string

	// Err, when set, is returned by every Complete call.
	Err error

	// FailAfter fails requests once the count exceeds N (0 = never).
	FailAfter int

	Latency time.Duration

	requestCount int
	// Prompts records every prompt received, for assertions.
	Prompts []string
}

// NewMockClient creates a mock with a single canned response.
func NewMockClient(responses ...string) *MockClient {
	if len(responses) == 0 {
		responses = []string{"mock response"}
	}
	return &MockClient{Responses: responses}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Complete returns the next scripted response.
func (c *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	if c.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Latency):
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.requestCount++
	c.Prompts = append(c.Prompts, req.Prompt)

	if c.Err != nil {
		return nil, c.Err
	}
	if c.FailAfter > 0 && c.requestCount > c.FailAfter {
		return nil, fmt.Errorf("mock failure after %d requests", c.FailAfter)
	}

	idx := c.requestCount - 1
	if idx >= len(c.Responses) {
		idx = len(c.Responses) - 1
	}

	return &CompletionResult{
		Content:   c.Responses[idx],
		Provider:  MockClientName,
		ModelUsed: req.Model,
		RequestID: fmt.Sprintf("mock-%d", c.requestCount),
		Attempts:  1,
	}, nil
}

// RequestCount returns how many Complete calls were made.
func (c *MockClient) RequestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestCount
}

// Verify interface
var _ Client = (*MockClient)(nil)
