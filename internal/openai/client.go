// Package openai calls the chat completions API to produce a short
// birthday greeting for a given name.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	chatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	greetingMaxTokens  = 200
	requestTimeout     = 15 * time.Second
)

// Config parameterizes the greeting generator. Prompt strings arrive already
// localized; this package knows nothing about languages.
type Config struct {
	APIKey       string
	Model        string
	Temperature  float64
	SystemPrompt string
	// UserPromptFmt must contain one %s verb for the friend's name.
	UserPromptFmt string
	// Fallback is the canned text returned when the API call fails.
	Fallback string
}

// Client is a stateless adapter over the chat completions endpoint.
type Client struct {
	cfg     Config
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// New creates a Client. The HTTP client carries a bounded timeout so an
// unresponsive service degrades to the fallback instead of hanging a reply.
func New(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: chatCompletionsURL,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// GenerateGreeting returns a greeting for the named friend. On any failure
// (transport, API error, timeout) it logs and returns the canned fallback;
// no error escapes to the caller.
func (c *Client) GenerateGreeting(ctx context.Context, name string) string {
	text, err := c.complete(ctx, name)
	if err != nil {
		c.log.Error("greeting generation failed", zap.String("name", name), zap.Error(err))
		return c.cfg.Fallback
	}
	return text
}

// complete performs one chat completion round trip.
func (c *Client) complete(ctx context.Context, name string) (string, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.cfg.SystemPrompt},
			{Role: "user", Content: fmt.Sprintf(c.cfg.UserPromptFmt, name)},
		},
		MaxTokens:   greetingMaxTokens,
		Temperature: c.cfg.Temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
