package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Murari1104/pharmaAi/internal/config"
	apperrors "github.com/Murari1104/pharmaAi/internal/errors"
	"github.com/sony/gobreaker/v2"
)

// Client provides access to an OpenAI-compatible chat completion API
type Client struct {
	provider config.Provider
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[*ChatResponse]
}

// NewClient creates a new LLM client
func NewClient(provider config.Provider) *Client {
	timeout := provider.Timeout
	if timeout == 0 {
		timeout = 60
	}

	breaker := gobreaker.NewCircuitBreaker[*ChatResponse](gobreaker.Settings{
		Name:    "llm",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		provider: provider,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		breaker: breaker,
	}
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents an API request
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// ChatResponse represents a non-streaming API response
type ChatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int     `json:"index"`
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion sends a single non-streaming chat completion request.
// Calls go through a circuit breaker so a flapping upstream fails fast
// instead of holding every request for the full timeout.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	resp, err := c.breaker.Execute(func() (*ChatResponse, error) {
		return c.completion(ctx, req)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, apperrors.Wrap(err, apperrors.ErrProviderUnavailable.Code, apperrors.ErrProviderUnavailable.Message)
	}
	return resp, err
}

func (c *Client) completion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.provider.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.provider.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Complete sends a transcript under a system prompt and returns the reply text
func (c *Client) Complete(ctx context.Context, systemPrompt string, transcript []Message) (string, error) {
	messages := make([]Message, 0, len(transcript)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, transcript...)

	req := ChatRequest{
		Model:       c.provider.Model,
		Messages:    messages,
		MaxTokens:   c.provider.MaxTokens,
		Temperature: c.provider.Temperature,
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", apperrors.ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

// GetModel returns the configured model
func (c *Client) GetModel() string {
	return c.provider.Model
}
