package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

type stubMessaging struct {
	handleErr error
	received  int
}

func (s *stubMessaging) VerifyWebhookToken(mode, token, challenge string) (string, error) {
	if token != "secret" {
		return "", errors.New("invalid verify token")
	}
	return challenge, nil
}

func (s *stubMessaging) HandleWebhook(context.Context, models.WebhookPayload) error {
	s.received++
	return s.handleErr
}

func (s *stubMessaging) SendOutbound(context.Context, models.OutboundMessageRequest) error {
	return nil
}

func webhookEngine(svc *stubMessaging) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(svc, nil)
	r := gin.New()
	r.GET("/webhook", h.Verify)
	r.POST("/webhook", h.Receive)
	return r
}

func TestWebhookVerify(t *testing.T) {
	engine := webhookEngine(&stubMessaging{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=secret&hub.challenge=abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", rec.Body.String())

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=abc", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookReceive(t *testing.T) {
	svc := &stubMessaging{}
	engine := webhookEngine(svc)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"object":"whatsapp_business_account","entry":[]}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.received)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookReceive_AcknowledgesFailedCommands(t *testing.T) {
	svc := &stubMessaging{handleErr: errors.New("mongo down")}
	engine := webhookEngine(svc)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"entry":[{"changes":[{"value":{"statuses":[{"id":"wamid.1","status":"read"}]}}]}]}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.received)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(models.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, statusFor(models.ErrInvalidStatus))
	assert.Equal(t, http.StatusNotFound, statusFor(repository.ErrNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(reporting.ErrExportDisabled))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
