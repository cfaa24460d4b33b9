package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resty.dev/v3"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultTimeout = 120 * time.Second
)

// Config holds the endpoint settings. Any OpenAI-compatible chat completions
// URL works as BaseURL.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to a chat completion endpoint and asks for JSON-only answers.
type Client struct {
	cfg   Config
	http  *resty.Client
	retry retryPolicy
}

// Option customizes the client.
type Option func(*Client)

// WithRetryMaxAttempts sets how many times a request is tried in total.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) { c.retry.attempts = attempts }
}

// WithRetryBackoff sets the first retry delay and the cap for later ones.
func WithRetryBackoff(base, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retry.base = base
		c.retry.max = maxDelay
	}
}

// WithSleeper replaces the real wait between retries.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) { c.retry.sleep = sleep }
}

// NewClient constructs a client for cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{cfg: cfg, retry: defaultRetryPolicy()}
	for _, opt := range opts {
		opt(c)
	}
	c.http = resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-Title", "moviekit")
	if cfg.APIKey != "" {
		c.http.SetAuthToken(cfg.APIKey)
	}
	return c
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	if c == nil || c.http == nil {
		return nil
	}
	return c.http.Close()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// content returns the first non-empty message and the finish reason seen.
func (r chatCompletionResponse) content() (string, string) {
	var reason string
	for _, choice := range r.Choices {
		if reason == "" {
			reason = choice.FinishReason
		}
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, reason
		}
	}
	return "", reason
}

// StatusError is a non-2xx answer from the endpoint.
type StatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm request: http %d: %s", e.Code, summarizePayloadSnippet(e.Body))
}

// errEmptyContent marks a 2xx answer without usable text; the model is asked again.
var errEmptyContent = errors.New("empty content")

// CompleteJSON sends one system and one user prompt and returns the model's
// JSON answer as text.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	systemPrompt = strings.TrimSpace(systemPrompt)
	userPrompt = strings.TrimSpace(userPrompt)
	switch {
	case systemPrompt == "" || userPrompt == "":
		return "", errors.New("llm complete: system and user prompts required")
	case c.cfg.APIKey == "":
		return "", errors.New("llm complete: api key required")
	}
	req := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	var lastErr error
	for attempt := 1; attempt <= c.retry.maxAttempts(); attempt++ {
		content, err := c.post(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err
		delay, ok := c.retry.next(ctx, err, attempt)
		if !ok {
			return "", fmt.Errorf("llm complete: %w", err)
		}
		if err := c.retry.wait(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("llm complete: failed after %d attempts: %w", c.retry.maxAttempts(), lastErr)
}

func (c *Client) post(ctx context.Context, req chatCompletionRequest) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("llm request (timeout %s): %w", c.cfg.Timeout, err)
	}
	body := resp.String()
	if resp.StatusCode() >= http.StatusMultipleChoices {
		retryAfter, _ := parseRetryAfter(resp.Header().Get("Retry-After"))
		return "", &StatusError{Code: resp.StatusCode(), Body: body, RetryAfter: retryAfter}
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return "", fmt.Errorf("llm request: decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("llm request: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	content, reason := decoded.content()
	if content == "" {
		return "", fmt.Errorf("%w (finish_reason=%q, response=%s)", errEmptyContent, reason, summarizePayloadSnippet(body))
	}
	return content, nil
}

// HealthCheck verifies the key, model and endpoint with a tiny JSON round trip.
func (c *Client) HealthCheck(ctx context.Context) error {
	content, err := c.CompleteJSON(ctx, "You must respond with JSON only.", `Respond with {"ok":true}`)
	if err != nil {
		return fmt.Errorf("llm health: %w", err)
	}
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := DecodeLLMJSON(content, &parsed); err != nil {
		return fmt.Errorf("llm health: parse payload: %w", err)
	}
	if !parsed.OK {
		return errors.New("llm health: unexpected response")
	}
	return nil
}
