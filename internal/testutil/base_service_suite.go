package testutil

import (
	"context"
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
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
	webhookPublisher "github.com/finbooks/finbooks/internal/webhook/publisher"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
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
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx              context.Context
	stores           Stores
	webhookPublisher webhookPublisher.WebhookPublisher
	db               postgres.IClient
	logger           *logger.Logger
	config           *config.Configuration
	cache            cache.Cache
	now              time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Webhook: config.Webhook{
			Enabled: true,
			Topic:   "webhooks",
			PubSub:  types.MemoryPubSub,
		},
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	s.cache = cache.NewInMemoryCache(cfg)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		CustomerRepo:   NewInMemoryCustomerStore(),
		VendorRepo:     NewInMemoryVendorStore(),
		AccountRepo:    NewInMemoryAccountStore(),
		TaxRateRepo:    NewInMemoryTaxRateStore(),
		ItemRepo:       NewInMemoryItemStore(),
		InvoiceRepo:    NewInMemoryInvoiceStore(),
		CreditNoteRepo: NewInMemoryCreditNoteStore(),
		QuoteRepo:      NewInMemoryQuoteStore(),
		PaymentRepo:    NewInMemoryPaymentStore(),
		SettingsRepo:   NewInMemorySettingsStore(),
		ActivityRepo:   NewInMemoryActivityStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	pubsub := NewInMemoryPubSub()
	webhookPublisher, err := webhookPublisher.NewPublisher(pubsub, s.config, s.logger)
	if err != nil {
		s.T().Fatalf("failed to create webhook publisher: %v", err)
	}
	s.webhookPublisher = webhookPublisher
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.VendorRepo.(*InMemoryVendorStore).Clear()
	s.stores.AccountRepo.(*InMemoryAccountStore).Clear()
	s.stores.TaxRateRepo.(*InMemoryTaxRateStore).Clear()
	s.stores.ItemRepo.(*InMemoryItemStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.CreditNoteRepo.(*InMemoryCreditNoteStore).Clear()
	s.stores.QuoteRepo.(*InMemoryQuoteStore).Clear()
	s.stores.PaymentRepo.(*InMemoryPaymentStore).Clear()
	s.stores.SettingsRepo.(*InMemorySettingsStore).Clear()
	s.stores.ActivityRepo.(*InMemoryActivityStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetWebhookPublisher returns the test webhook publisher
func (s *BaseServiceTestSuite) GetWebhookPublisher() webhookPublisher.WebhookPublisher {
	return s.webhookPublisher
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
