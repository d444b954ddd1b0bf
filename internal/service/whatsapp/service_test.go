package whatsapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/deliciarte/internal/config"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/commands"
	client "github.com/mamadbah2/deliciarte/pkg/clients/whatsapp"
)

type recordingClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (c *recordingClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	c.sent = append(c.sent, req)
	return &client.SendTextMessageResponse{}, c.err
}

type stubDispatcher struct {
	reply string
	err   error
	calls int
}

func (d *stubDispatcher) HandleCommand(context.Context, models.Command, string) (string, error) {
	d.calls++
	return d.reply, d.err
}

func newService(dispatcher commands.Dispatcher) (*MetaWhatsAppService, *recordingClient) {
	rc := &recordingClient{}
	cfg := config.WhatsAppConfig{VerifyToken: "secret", OwnerID: "5511999990000"}
	return NewMetaWhatsAppService(cfg, rc, dispatcher, nil), rc
}

func textPayload(from, id, body string) models.WebhookPayload {
	return models.WebhookPayload{Entry: []models.WebhookEntry{{
		Changes: []models.WebhookChange{{
			Value: models.WebhookValue{Messages: []models.InboundMessage{{
				From: from, ID: id, Type: "text", Text: &models.TextContent{Body: body},
			}}},
		}},
	}}}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc, _ := newService(&stubDispatcher{})

	challenge, err := svc.VerifyWebhookToken("subscribe", "secret", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", challenge)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "42")
	assert.Error(t, err)

	_, err = svc.VerifyWebhookToken("unsubscribe", "secret", "42")
	assert.Error(t, err)
}

func TestHandleWebhook_RepliesToOwner(t *testing.T) {
	dispatcher := &stubDispatcher{reply: "resumo"}
	svc, rc := newService(dispatcher)

	require.NoError(t, svc.HandleWebhook(context.Background(), textPayload("5511999990000", "wamid.1", "/relatorio")))

	require.Len(t, rc.sent, 1)
	assert.Equal(t, "5511999990000", rc.sent[0].To)
	assert.Equal(t, "resumo", rc.sent[0].Body)
}

func TestHandleWebhook_IgnoresStrangersAndDuplicates(t *testing.T) {
	dispatcher := &stubDispatcher{reply: "ok"}
	svc, rc := newService(dispatcher)
	ctx := context.Background()

	require.NoError(t, svc.HandleWebhook(ctx, textPayload("5511888880000", "wamid.1", "/relatorio")))
	assert.Zero(t, dispatcher.calls)

	require.NoError(t, svc.HandleWebhook(ctx, textPayload("5511999990000", "wamid.2", "/estoque")))
	require.NoError(t, svc.HandleWebhook(ctx, textPayload("5511999990000", "wamid.2", "/estoque")))
	assert.Equal(t, 1, dispatcher.calls)
	assert.Len(t, rc.sent, 1)
}

func TestHandleWebhook_InteractiveReply(t *testing.T) {
	dispatcher := &stubDispatcher{reply: "estoque ok"}
	svc, rc := newService(dispatcher)

	payload := models.WebhookPayload{Entry: []models.WebhookEntry{{
		Changes: []models.WebhookChange{{
			Value: models.WebhookValue{Messages: []models.InboundMessage{{
				From: "+5511999990000", ID: "wamid.9", Type: "interactive",
				Interactive: &models.InteractiveContent{Type: "button_reply", ButtonReply: &models.ReplyToken{ID: "/estoque", Title: "Estoque"}},
			}}},
		}},
	}}}

	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.Equal(t, 1, dispatcher.calls)
	require.Len(t, rc.sent, 1)
	assert.Equal(t, "estoque ok", rc.sent[0].Body)
}

func TestHandleWebhook_ErrorReplies(t *testing.T) {
	ctx := context.Background()

	unsupported, rc := newService(&stubDispatcher{err: commands.ErrUnsupportedCommand})
	require.NoError(t, unsupported.HandleWebhook(ctx, textPayload("5511999990000", "a", "oi")))
	assert.Equal(t, commands.HelpText, rc.sent[0].Body)

	invalid, rc := newService(&stubDispatcher{err: commands.ErrInvalidArguments})
	require.NoError(t, invalid.HandleWebhook(ctx, textPayload("5511999990000", "b", "/pedidos x")))
	assert.Contains(t, rc.sent[0].Body, invalidArgumentsReply)

	failing, rc := newService(&stubDispatcher{err: errors.New("mongo down")})
	assert.Error(t, failing.HandleWebhook(ctx, textPayload("5511999990000", "c", "/relatorio")))
	assert.Equal(t, commandFailedReply, rc.sent[0].Body)
}

func TestSendToOwner(t *testing.T) {
	svc, rc := newService(&stubDispatcher{})
	require.NoError(t, svc.SendToOwner(context.Background(), "bom dia"))
	assert.Equal(t, "5511999990000", rc.sent[0].To)

	noOwner := NewMetaWhatsAppService(config.WhatsAppConfig{}, rc, &stubDispatcher{}, nil)
	assert.ErrorIs(t, noOwner.SendToOwner(context.Background(), "x"), ErrOwnerNotConfigured)
}

func TestSessionManager_EvictsIdleSenders(t *testing.T) {
	sm := NewSessionManager()
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	assert.True(t, sm.MarkSeen("a", "m1"))
	assert.False(t, sm.MarkSeen("a", "m1"))
	assert.Equal(t, 1, sm.Len())

	now = now.Add(25 * time.Hour)
	assert.True(t, sm.MarkSeen("b", "m1"))
	assert.Equal(t, 1, sm.Len())
	assert.True(t, sm.MarkSeen("a", "m1"))
}
