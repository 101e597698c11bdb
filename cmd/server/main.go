package main

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/api"
	v1 "github.com/finbooks/finbooks/internal/api/v1"
	"github.com/finbooks/finbooks/internal/cache"
	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/httpclient"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	pubsubRouter "github.com/finbooks/finbooks/internal/pubsub/router"
	"github.com/finbooks/finbooks/internal/pyroscope"
	"github.com/finbooks/finbooks/internal/repository"
	"github.com/finbooks/finbooks/internal/sentry"
	"github.com/finbooks/finbooks/internal/service"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
	"github.com/finbooks/finbooks/internal/webhook"
	"go.uber.org/fx"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
)

// @title FinBooks API
// @version 1.0
// @description Accounting and invoicing API service
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Enter your token in the format *Bearer &lt;token&gt;*

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Repositories
			repository.NewCustomerRepository,
			repository.NewVendorRepository,
			repository.NewAccountRepository,
			repository.NewTaxRateRepository,
			repository.NewItemRepository,
			repository.NewInvoiceRepository,
			repository.NewCreditNoteRepository,
			repository.NewQuoteRepository,
			repository.NewPaymentRepository,
			repository.NewSettingsRepository,
			repository.NewActivityRepository,

			// PubSub
			pubsubRouter.NewRouter,
		),
	)

	// Webhook module (must be initialised before services)
	opts = append(opts, webhook.Module)

	// Profiling
	opts = append(opts, pyroscope.Module())

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			// Business services
			service.NewCustomerService,
			service.NewVendorService,
			service.NewAccountService,
			service.NewTaxRateService,
			service.NewItemService,
			service.NewStockService,
			service.NewInvoiceService,
			service.NewCreditNoteService,
			service.NewQuoteService,
			service.NewPaymentService,
			service.NewSettingsService,
			service.NewActivityService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// provideHandlers builds the versioned API handlers. The unused validator
// parameter forces construction of the shared request validator before any
// handler serves traffic.
func provideHandlers(
	logger *logger.Logger,
	_ *govalidator.Validate,
	customerService service.CustomerService,
	vendorService service.VendorService,
	accountService service.AccountService,
	taxRateService service.TaxRateService,
	itemService service.ItemService,
	stockService service.StockService,
	invoiceService service.InvoiceService,
	creditNoteService service.CreditNoteService,
	quoteService service.QuoteService,
	paymentService service.PaymentService,
	settingsService service.SettingsService,
	activityService service.ActivityService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(logger),
		Customer:   v1.NewCustomerHandler(customerService, logger),
		Vendor:     v1.NewVendorHandler(vendorService, logger),
		Account:    v1.NewAccountHandler(accountService, logger),
		TaxRate:    v1.NewTaxRateHandler(taxRateService, logger),
		Item:       v1.NewItemHandler(itemService, stockService, logger),
		Invoice:    v1.NewInvoiceHandler(invoiceService, logger),
		CreditNote: v1.NewCreditNoteHandler(creditNoteService, logger),
		Quote:      v1.NewQuoteHandler(quoteService, logger),
		Payment:    v1.NewPaymentHandler(paymentService, logger),
		Settings:   v1.NewSettingsHandler(settingsService, logger),
		Activity:   v1.NewActivityHandler(activityService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

// provideDBClient wraps the base postgres client with Sentry tracing so the
// rest of the application only ever sees one IClient.
func provideDBClient(db *postgres.DB, sentryService *sentry.Service, log *logger.Logger) postgres.IClient {
	client := postgres.NewClient(db, log)
	return postgres.NewSentryClient(client, sentryService, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	webhookService *webhook.WebhookService,
	router *pubsubRouter.Router,
	log *logger.Logger,
) {
	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(cfg, log, "file://migrations"); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, webhookService, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(r)
		startMessageRouter(lc, router, webhookService, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	webhookService *webhook.WebhookService,
	logger *logger.Logger,
) {
	// Register handlers before starting the router
	webhookService.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting message router")
			go func() {
				if err := router.Run(); err != nil {
					logger.Errorw("message router failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping message router")
			return router.Close()
		},
	})
}
