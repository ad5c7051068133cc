package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client speaks the OpenAI-compatible chat completions API. It keeps the
// running conversation so follow-up instructions ("now delete those") keep
// their context.
type Client struct {
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	messages   []message
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ClientOption adjusts a Client at construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, used by tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds an oracle client for the given model and endpoint.
func NewClient(model, baseURL, apiKey string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	c := &Client{
		model:      model,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		messages:   []message{{Role: "system", Content: systemPrompt}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate sends the instruction to the model and parses its reply into a
// Command. The exchange is appended to the conversation on success.
func (c *Client) Translate(ctx context.Context, instruction string) (Command, error) {
	history := append(c.messages, message{Role: "user", Content: instruction})

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: history})
	if err != nil {
		return Command{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Command{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Command{}, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Command{}, fmt.Errorf("read model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Command{}, fmt.Errorf("model returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Command{}, fmt.Errorf("decode model response: %w", err)
	}
	if parsed.Error != nil {
		return Command{}, fmt.Errorf("model error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return Command{}, fmt.Errorf("model returned no choices")
	}

	content := parsed.Choices[0].Message.Content
	cmd, err := ExtractCommand(content)
	if err != nil {
		return Command{}, err
	}

	c.messages = append(history, message{Role: "assistant", Content: content})
	return cmd, nil
}
