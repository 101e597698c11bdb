package webhook

import (
	"fmt"

	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/httpclient"
	"github.com/finbooks/finbooks/internal/logger"
	pubsubRouter "github.com/finbooks/finbooks/internal/pubsub/router"
	"github.com/finbooks/finbooks/internal/webhook/handler"
	"github.com/finbooks/finbooks/internal/webhook/payload"
	"github.com/finbooks/finbooks/internal/webhook/publisher"
)

// WebhookService orchestrates webhook operations
type WebhookService struct {
	config    *config.Configuration
	publisher publisher.WebhookPublisher
	handler   handler.Handler
	factory   payload.PayloadBuilderFactory
	client    httpclient.Client
	logger    *logger.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	cfg *config.Configuration,
	publisher publisher.WebhookPublisher,
	h handler.Handler,
	f payload.PayloadBuilderFactory,
	c httpclient.Client,
	l *logger.Logger,
) *WebhookService {
	return &WebhookService{
		config:    cfg,
		publisher: publisher,
		handler:   h,
		factory:   f,
		client:    c,
		logger:    l,
	}
}

// RegisterHandler attaches the webhook consumer to the message router.
// It must be called before the router starts running.
func (s *WebhookService) RegisterHandler(router *pubsubRouter.Router) {
	if !s.config.Webhook.Enabled {
		s.logger.Info("webhook service disabled")
		return
	}

	s.handler.RegisterHandler(router)
	s.logger.Info("webhook handler registered")
}

// Stop stops the webhook service
func (s *WebhookService) Stop() error {
	s.logger.Debug("stopping webhook service")

	if err := s.publisher.Close(); err != nil {
		s.logger.Errorw("failed to close webhook publisher", "error", err)
		return fmt.Errorf("failed to close webhook publisher: %w", err)
	}

	s.logger.Info("webhook service stopped successfully")
	return nil
}
