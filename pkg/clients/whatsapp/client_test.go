package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/deliciarte/internal/config"
)

func TestSplitBody(t *testing.T) {
	assert.Equal(t, []string{"curto"}, SplitBody("curto", 10))

	parts := SplitBody("linha um\nlinha dois\nlinha três\n", 12)
	assert.Equal(t, []string{"linha um\n", "linha dois\n", "linha três\n"}, parts)

	long := SplitBody(strings.Repeat("á", 25), 10)
	require.Len(t, long, 3)
	assert.Equal(t, strings.Repeat("á", 10), long[0])
	assert.Equal(t, strings.Repeat("á", 5), long[2])
}

func TestSendTextMessage(t *testing.T) {
	var mu sync.Mutex
	var bodies []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v20.0/555/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var payload struct {
			To   string `json:"to"`
			Text struct {
				Body string `json:"body"`
			} `json:"text"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		mu.Lock()
		bodies = append(bodies, payload.Text.Body)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{BaseURL: srv.URL + "/", APIVersion: "v20.0", AccessToken: "token", PhoneNumberID: "555"})
	resp, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{To: "5511999999999", Body: "Olá"})

	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "wamid.1", resp.Messages[0].ID)
	assert.Equal(t, []string{"Olá"}, bodies)
}

func TestSendTextMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid token","code":190}}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{BaseURL: srv.URL, APIVersion: "v20.0", PhoneNumberID: "555"})
	_, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{To: "1", Body: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=190")
	assert.Contains(t, err.Error(), "invalid token")
}
