package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func chatOK(content string) string {
	resp := map[string]any{
		"model": "gpt-4o-mini",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func newTestClient(serverURL string) *OpenAIClient {
	return NewOpenAIClient(OpenAIConfig{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		RetryDelay: 10 * time.Millisecond,
	})
}

func TestOpenAIComplete(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(chatOK("the answer")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Complete(context.Background(), &CompletionRequest{
		Prompt: "question",
		System: "be helpful",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if result.Content != "the answer" {
		t.Errorf("Content = %q", result.Content)
	}
	if result.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", result.TotalTokens)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("messages = %+v, want system then user", gotBody.Messages)
	}
	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("default model not applied, got %q", gotBody.Model)
	}
}

func TestOpenAIRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(chatOK("recovered")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "q"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result.Content != "recovered" {
		t.Errorf("Content = %q", result.Content)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", result.Attempts)
	}
}

func TestOpenAIRateLimitExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "q"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("error should wrap ErrRateLimited, got %v", err)
	}
}

func TestOpenAIServerErrorRetriesOnce(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "q"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want exactly one retry", calls.Load())
	}
}

func TestOpenAIClientErrorFatal(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "q"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, 4xx must not retry", calls.Load())
	}
}

func TestOpenAIEmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), &CompletionRequest{Prompt: "q"})
	if err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestMockClientScript(t *testing.T) {
	mock := NewMockClient("first", "second")

	for i, want := range []string{"first", "second", "second"} {
		result, err := mock.Complete(context.Background(), &CompletionRequest{Prompt: "p"})
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if result.Content != want {
			t.Errorf("call %d = %q, want %q", i, result.Content, want)
		}
	}
	if mock.RequestCount() != 3 {
		t.Errorf("RequestCount = %d, want 3", mock.RequestCount())
	}
}
