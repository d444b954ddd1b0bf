package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	service "github.com/mamadbah2/deliciarte/internal/service/whatsapp"
)

// WebhookHandler receives the owner's WhatsApp commands and lets the back
// office message customers about their orders.
type WebhookHandler struct {
	svc    service.MessagingService
	logger *zap.Logger
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc service.MessagingService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, logger: orNop(logger)}
}

// Verify answers Meta's subscription handshake with the echoed challenge.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.svc.VerifyWebhookToken(
		c.Query("hub.mode"),
		c.Query("hub.verify_token"),
		c.Query("hub.challenge"),
	)
	if err != nil {
		h.logger.Warn("webhook subscription rejected", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, challenge)
}

// Receive acknowledges every well-formed callback with 200. Command failures
// are already reported to the owner in chat, and a non-200 answer would only
// make Meta redeliver the same message.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, st := range change.Value.Statuses {
				h.logger.Debug("delivery status", zap.String("message_id", st.ID), zap.String("status", st.Status))
			}
		}
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("owner command failed", zap.Error(err))
	}

	c.Status(http.StatusOK)
}

// SendMessage pushes a free-form message, typically an order confirmation to a customer.
func (h *WebhookHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	if err := h.svc.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("outbound message failed", zap.String("to", req.To), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}
