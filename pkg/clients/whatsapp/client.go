package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/deliciarte/internal/config"
)

// MaxBodyLength is the longest text body accepted by the Cloud API.
const MaxBodyLength = 4096

// Client exposes WhatsApp Cloud API operations used by the application.
type Client interface {
	SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendTextMessageResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient    *resty.Client
	phoneNumberID string
}

// NewClient builds a WhatsApp API client using the provided configuration values.
func NewClient(cfg config.WhatsAppConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AccessToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:    restyClient,
		phoneNumberID: cfg.PhoneNumberID,
	}
}

// SendTextMessageRequest represents a simplified text message payload.
type SendTextMessageRequest struct {
	To         string
	Body       string
	PreviewURL bool
}

// SendTextMessageResponse mirrors the successful response from Meta.
type SendTextMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// SendTextMessage delivers a text body, split into several messages when it
// exceeds MaxBodyLength. Message IDs of every part are returned.
func (c *APIClient) SendTextMessage(ctx context.Context, req SendTextMessageRequest) (*SendTextMessageResponse, error) {
	combined := new(SendTextMessageResponse)
	for _, part := range SplitBody(req.Body, MaxBodyLength) {
		resp, err := c.sendPart(ctx, req.To, part, req.PreviewURL)
		if err != nil {
			return combined, err
		}
		combined.Messages = append(combined.Messages, resp.Messages...)
	}
	return combined, nil
}

func (c *APIClient) sendPart(ctx context.Context, to, body string, previewURL bool) (*SendTextMessageResponse, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"body":        body,
			"preview_url": previewURL,
		},
	}

	result := new(SendTextMessageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", c.phoneNumberID))
	if err != nil {
		return nil, fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		return nil, fmt.Errorf("whatsapp api error: code=%d, message=%s", code, apiErr.Error.Message)
	}

	return result, nil
}

// SplitBody cuts text into parts of at most limit runes, preferring line breaks.
func SplitBody(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			parts = append(parts, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for utf8.RuneCountInString(line) > limit {
			flush()
			runes := []rune(line)
			parts = append(parts, string(runes[:limit]))
			line = string(runes[limit:])
		}
		lineLen := utf8.RuneCountInString(line)
		if currentLen+lineLen > limit {
			flush()
		}
		current.WriteString(line)
		currentLen += lineLen
	}
	flush()

	return parts
}
