package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/config"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/commands"
	client "github.com/mamadbah2/deliciarte/pkg/clients/whatsapp"
)

const (
	sendTimeout    = 10 * time.Second
	commandTimeout = 45 * time.Second

	invalidArgumentsReply = "Não entendi os argumentos do comando."
	commandFailedReply    = "Não foi possível processar o comando agora. Tente novamente em instantes."
)

// ErrOwnerNotConfigured is returned when a message targets the owner but no owner number is set.
var ErrOwnerNotConfigured = errors.New("whatsapp owner is not configured")

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
// Only the configured owner may run commands.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	client     client.Client
	dispatcher commands.Dispatcher
	sessions   *SessionManager
	logger     *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, dispatcher commands.Dispatcher, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:        cfg,
		client:     client,
		dispatcher: dispatcher,
		sessions:   NewSessionManager(),
		logger:     logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	if !s.isOwner(msg.From) {
		s.logger.Warn("ignoring message from unknown sender", zap.String("from", msg.From))
		return nil
	}
	if !s.sessions.MarkSeen(msg.From, msg.ID) {
		s.logger.Debug("duplicate webhook delivery", zap.String("message_id", msg.ID))
		return nil
	}

	text := extractMessageText(msg)
	if text == "" {
		s.logger.Debug("ignoring message without text", zap.String("type", msg.Type))
		return nil
	}

	cmd := models.ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	reply, handleErr := s.dispatcher.HandleCommand(cmdCtx, cmd, msg.From)
	switch {
	case errors.Is(handleErr, commands.ErrUnsupportedCommand):
		reply, handleErr = commands.HelpText, nil
	case errors.Is(handleErr, commands.ErrInvalidArguments):
		reply, handleErr = invalidArgumentsReply+"\n"+commands.HelpText, nil
	case handleErr != nil:
		reply = commandFailedReply
	}

	if err := s.send(ctx, msg.From, reply); err != nil {
		return err
	}
	return handleErr
}

// SendOutbound lets internal operators push quick notifications via HTTP.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}

// SendToOwner delivers a message to the configured owner number.
func (s *MetaWhatsAppService) SendToOwner(ctx context.Context, message string) error {
	if s.cfg.OwnerID == "" {
		return ErrOwnerNotConfigured
	}
	return s.send(ctx, s.cfg.OwnerID, message)
}

func (s *MetaWhatsAppService) send(ctx context.Context, to, body string) error {
	return s.SendOutbound(ctx, models.OutboundMessageRequest{To: to, Message: body})
}

func (s *MetaWhatsAppService) isOwner(from string) bool {
	owner := strings.TrimPrefix(strings.TrimSpace(s.cfg.OwnerID), "+")
	return owner != "" && strings.TrimPrefix(from, "+") == owner
}

func extractMessageText(msg models.InboundMessage) string {
	if msg.Text != nil {
		return msg.Text.Body
	}

	if msg.Interactive != nil {
		if msg.Interactive.ButtonReply != nil {
			return msg.Interactive.ButtonReply.ID
		}
		if msg.Interactive.ListReply != nil {
			return msg.Interactive.ListReply.ID
		}
	}

	return ""
}
