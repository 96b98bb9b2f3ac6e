// Package genai implements the narrative TextGenerator on top of an
// OpenAI-compatible chat completions endpoint.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/huangsam/cruxaudit/internal/contract"
)

// systemPrompt frames every completion.
const systemPrompt = "You are a senior web performance engineer who explains Chrome UX Report data clearly and precisely."

// ErrEmptyCompletion is returned when the model answers without any content.
var ErrEmptyCompletion = errors.New("empty completion")

// Client calls POST {BaseURL}/chat/completions with bearer authentication.
type Client struct {
	apiKey       string
	baseURL      string
	model        string
	httpClient   *http.Client
	retryBackoff time.Duration
}

var _ contract.TextGenerator = &Client{} // Compile-time check

// NewClient creates a chat completions client. baseURL is something like
// "https://api.openai.com/v1".
func NewClient(apiKey, baseURL, model string, timeout, retryBackoff time.Duration) *Client {
	return &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		model:        model,
		httpClient:   &http.Client{Timeout: timeout},
		retryBackoff: retryBackoff,
	}
}

// NewFromConfig returns a client for cfg, or nil when no LLM key is configured.
func NewFromConfig(cfg *contract.Config) contract.TextGenerator {
	if !cfg.HasGenerator() {
		return nil
	}
	return NewClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.HTTPTimeout, cfg.RetryBackoff)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate implements the TextGenerator interface.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var respBody []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("LLM API returned status %d: %s", resp.StatusCode, contract.TruncateText(string(body), 200)))
		}
		respBody = body
		return nil
	}
	if err := contract.Retry(ctx, c.retryBackoff, op); err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("LLM API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
