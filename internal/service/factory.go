package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finbooks/finbooks/internal/cache"
	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/domain/account"
	"github.com/finbooks/finbooks/internal/domain/activity"
	"github.com/finbooks/finbooks/internal/domain/creditnote"
	"github.com/finbooks/finbooks/internal/domain/customer"
	"github.com/finbooks/finbooks/internal/domain/invoice"
	"github.com/finbooks/finbooks/internal/domain/item"
	"github.com/finbooks/finbooks/internal/domain/payment"
	"github.com/finbooks/finbooks/internal/domain/quote"
	"github.com/finbooks/finbooks/internal/domain/settings"
	"github.com/finbooks/finbooks/internal/domain/taxrate"
	"github.com/finbooks/finbooks/internal/domain/vendor"
	"github.com/finbooks/finbooks/internal/httpclient"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
	webhookPublisher "github.com/finbooks/finbooks/internal/webhook/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	// Repositories
	CustomerRepo   customer.Repository
	VendorRepo     vendor.Repository
	AccountRepo    account.Repository
	TaxRateRepo    taxrate.Repository
	ItemRepo       item.Repository
	InvoiceRepo    invoice.Repository
	CreditNoteRepo creditnote.Repository
	QuoteRepo      quote.Repository
	PaymentRepo    payment.Repository
	SettingsRepo   settings.Repository
	ActivityRepo   activity.Repository

	// Publishers
	WebhookPublisher webhookPublisher.WebhookPublisher

	// http client
	Client httpclient.Client
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	customerRepo customer.Repository,
	vendorRepo vendor.Repository,
	accountRepo account.Repository,
	taxRateRepo taxrate.Repository,
	itemRepo item.Repository,
	invoiceRepo invoice.Repository,
	creditNoteRepo creditnote.Repository,
	quoteRepo quote.Repository,
	paymentRepo payment.Repository,
	settingsRepo settings.Repository,
	activityRepo activity.Repository,
	webhookPublisher webhookPublisher.WebhookPublisher,
	client httpclient.Client,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               db,
		Cache:            cache,
		CustomerRepo:     customerRepo,
		VendorRepo:       vendorRepo,
		AccountRepo:      accountRepo,
		TaxRateRepo:      taxRateRepo,
		ItemRepo:         itemRepo,
		InvoiceRepo:      invoiceRepo,
		CreditNoteRepo:   creditNoteRepo,
		QuoteRepo:        quoteRepo,
		PaymentRepo:      paymentRepo,
		SettingsRepo:     settingsRepo,
		ActivityRepo:     activityRepo,
		WebhookPublisher: webhookPublisher,
		Client:           client,
	}
}

// publishWebhookEvent hands an event to the webhook pipeline. Delivery is
// best effort; a publish failure never fails the business operation.
func (p ServiceParams) publishWebhookEvent(ctx context.Context, eventName string, payload interface{}) {
	if p.WebhookPublisher == nil {
		return
	}

	webhookPayload, err := json.Marshal(payload)
	if err != nil {
		p.Logger.Errorw("failed to marshal webhook payload",
			"event_name", eventName,
			"error", err)
		return
	}

	webhookEvent := &types.WebhookEvent{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WEBHOOK),
		EventName: eventName,
		TenantID:  types.GetTenantID(ctx),
		UserID:    types.GetUserID(ctx),
		Timestamp: time.Now().UTC(),
		Payload:   json.RawMessage(webhookPayload),
	}

	if err := p.WebhookPublisher.PublishWebhook(ctx, webhookEvent); err != nil {
		p.Logger.Errorf("failed to publish %s event: %v", webhookEvent.EventName, err)
	}
}
