package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_ReturnsText(t *testing.T) {
	var got messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"text":"Preço "},{"text":"sugerido"}]}`))
	}))
	defer srv.Close()

	client := NewClient("secret", WithURL(srv.URL), WithModel("test-model"))
	reply, err := client.Complete(context.Background(), "system", "prompt")

	require.NoError(t, err)
	assert.Equal(t, "Preço sugerido", reply)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, "system", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "prompt", got.Messages[0].Content)
}

func TestComplete_ErrorsAreServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("secret", WithURL(srv.URL)).Complete(context.Background(), "", "prompt")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestComplete_EmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("secret", WithURL(srv.URL)).Complete(context.Background(), "", "prompt")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
