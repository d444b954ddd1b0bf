package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-3-haiku-20240307"
	maxTokens    = 1024
)

// ErrServiceUnavailable wraps every failure to obtain a completion.
var ErrServiceUnavailable = errors.New("ai service unavailable")

// Client defines the interface for AI text generation.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
	url        string
	model      string
}

// Option customizes the client.
type Option func(*anthropicClient)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *anthropicClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithURL points the client to another messages endpoint.
func WithURL(url string) Option {
	return func(c *anthropicClient) {
		c.url = url
	}
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string, opts ...Option) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	c := &anthropicClient{httpClient: client, url: apiURL, model: defaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

// Message is a single conversation turn sent to the API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends a single user prompt and returns the concatenated text reply.
func (c *anthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []Message{{Role: "user", Content: prompt}},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(c.url)

	if err != nil {
		return "", fmt.Errorf("%w: anthropic api call: %v", ErrServiceUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: anthropic api error: status=%d body=%s", ErrServiceUnavailable, resp.StatusCode(), resp.String())
	}

	var text strings.Builder
	for _, block := range respBody.Content {
		text.WriteString(block.Text)
	}

	reply := strings.TrimSpace(text.String())
	if reply == "" {
		return "", fmt.Errorf("%w: empty response from ai", ErrServiceUnavailable)
	}

	return reply, nil
}
