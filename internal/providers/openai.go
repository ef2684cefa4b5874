package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	OpenAIName    = "openai"
	OpenAIBaseURL = "https://api.openai.com/v1"
)

// OpenAIConfig holds configuration for the OpenAI-compatible client.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	Timeout      time.Duration
	MaxRetries   int           // Retry ceiling for rate-limit errors (default: 3)
	RetryDelay   time.Duration // Short delay for the single non-429 retry (default: 1s)
}

// OpenAIClient implements Client against an OpenAI-compatible chat API.
//
// Retry discipline: rate-limit responses back off exponentially up to
// MaxRetries attempts; transient failures (network, 5xx) are retried once
// after RetryDelay; everything else fails immediately.
type OpenAIClient struct {
	apiKey       string
	baseURL      string
	defaultModel string
	client       *http.Client
	maxRetries   int
	retryDelay   time.Duration
}

// NewOpenAIClient creates a new OpenAI-compatible completion client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OpenAIBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	return &OpenAIClient{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		defaultModel: cfg.DefaultModel,
		client:       &http.Client{Timeout: cfg.Timeout},
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
	}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// Complete sends a chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, attempts, err := c.doRequest(ctx, "/chat/completions", &body, req.Timeout)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty completion from %s", OpenAIName)
	}

	return &CompletionResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		ExecutionTime:    time.Since(start),
		Provider:         OpenAIName,
		ModelUsed:        resp.Model,
		RequestID:        requestID,
		Attempts:         attempts,
	}, nil
}

func (c *OpenAIClient) doRequest(ctx context.Context, path string, body *chatRequest, timeout time.Duration) (*chatResponse, int, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	transientRetried := false
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, attempt, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, attempt, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			// Network error or timeout: a single short-delay retry, then give up.
			lastErr = fmt.Errorf("request failed: %w", err)
			if transientRetried {
				return nil, attempt + 1, lastErr
			}
			transientRetried = true
			if werr := sleepCtx(ctx, c.retryDelay); werr != nil {
				return nil, attempt + 1, werr
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, attempt + 1, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w (status 429)", ErrRateLimited)
			// Exponential backoff: 1s, 2s, 4s, ...
			if werr := sleepCtx(ctx, c.retryDelay*time.Duration(1<<attempt)); werr != nil {
				return nil, attempt + 1, werr
			}
			continue

		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("provider error (status %d): %s", resp.StatusCode, truncateBody(respBody))
			if transientRetried {
				return nil, attempt + 1, lastErr
			}
			transientRetried = true
			if werr := sleepCtx(ctx, c.retryDelay); werr != nil {
				return nil, attempt + 1, werr
			}
			continue

		case resp.StatusCode != http.StatusOK:
			return nil, attempt + 1, fmt.Errorf("provider error (status %d): %s", resp.StatusCode, truncateBody(respBody))
		}

		var parsed chatResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, attempt + 1, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return &parsed, attempt + 1, nil
	}

	return nil, c.maxRetries, fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func truncateBody(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// OpenAI-compatible API types

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Verify interface
var _ Client = (*OpenAIClient)(nil)
