package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const testFallback = "An error occurred while generating the greeting."

func newTestClient(url string) *Client {
	c := New(Config{
		APIKey:        "test-key",
		Model:         "gpt-3.5-turbo",
		Temperature:   0.7,
		SystemPrompt:  "Write a birthday greeting.",
		UserPromptFmt: "Generate a greeting for my friend. Their name is %s.",
		Fallback:      testFallback,
	}, zap.NewNop())
	c.baseURL = url
	return c
}

func TestGenerateGreeting(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Happy birthday, Anna!  "}},
			},
		})
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).GenerateGreeting(context.Background(), "Anna")
	if got != "Happy birthday, Anna!" {
		t.Fatalf("want trimmed greeting, got %q", got)
	}
	if gotReq.MaxTokens != greetingMaxTokens {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "Generate a greeting for my friend. Their name is Anna." {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestGenerateGreeting_APIErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "model overloaded", "type": "server_error"},
		})
	}))
	defer srv.Close()

	if got := newTestClient(srv.URL).GenerateGreeting(context.Background(), "Anna"); got != testFallback {
		t.Fatalf("want fallback, got %q", got)
	}
}

func TestGenerateGreeting_UnreachableFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	if got := newTestClient(srv.URL).GenerateGreeting(context.Background(), "Anna"); got != testFallback {
		t.Fatalf("want fallback, got %q", got)
	}
}

func TestGenerateGreeting_EmptyChoicesFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	if got := newTestClient(srv.URL).GenerateGreeting(context.Background(), "Anna"); got != testFallback {
		t.Fatalf("want fallback, got %q", got)
	}
}
