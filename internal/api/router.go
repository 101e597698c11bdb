package api

import (
	v1 "github.com/finbooks/finbooks/internal/api/v1"
	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/rest/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Customer   *v1.CustomerHandler
	Vendor     *v1.VendorHandler
	Account    *v1.AccountHandler
	TaxRate    *v1.TaxRateHandler
	Item       *v1.ItemHandler
	Invoice    *v1.InvoiceHandler
	CreditNote *v1.CreditNoteHandler
	Quote      *v1.QuoteHandler
	Payment    *v1.PaymentHandler
	Settings   *v1.SettingsHandler
	Activity   *v1.ActivityHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.PyroscopeMiddleware(cfg),
		middleware.ErrorHandler(),
	)

	// Health and swagger sit outside authentication
	router.GET("/health", handlers.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Without a configured secret every request runs as the default
	// tenant, which is what local development wants
	authMiddleware := middleware.GuestAuthenticateMiddleware
	if cfg.Auth.Secret != "" {
		authMiddleware = middleware.AuthenticateMiddleware(cfg, logger)
	}

	v1Group := router.Group("/v1")
	v1Group.Use(authMiddleware)
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.GetCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	vendors := router.Group("/vendors")
	{
		vendors.POST("", handlers.Vendor.CreateVendor)
		vendors.GET("", handlers.Vendor.GetVendors)
		vendors.GET("/:id", handlers.Vendor.GetVendor)
		vendors.PUT("/:id", handlers.Vendor.UpdateVendor)
		vendors.DELETE("/:id", handlers.Vendor.DeleteVendor)
	}

	accounts := router.Group("/accounts")
	{
		accounts.POST("", handlers.Account.CreateAccount)
		accounts.GET("", handlers.Account.GetAccounts)
		accounts.GET("/:id", handlers.Account.GetAccount)
		accounts.PUT("/:id", handlers.Account.UpdateAccount)
		accounts.DELETE("/:id", handlers.Account.DeleteAccount)
	}

	taxRates := router.Group("/tax-rates")
	{
		taxRates.POST("", handlers.TaxRate.CreateTaxRate)
		taxRates.GET("", handlers.TaxRate.GetTaxRates)
		taxRates.GET("/:id", handlers.TaxRate.GetTaxRate)
		taxRates.PUT("/:id", handlers.TaxRate.UpdateTaxRate)
		taxRates.DELETE("/:id", handlers.TaxRate.DeleteTaxRate)
	}

	items := router.Group("/items")
	{
		items.POST("", handlers.Item.CreateItem)
		items.GET("", handlers.Item.GetItems)
		items.GET("/:id", handlers.Item.GetItem)
		items.PUT("/:id", handlers.Item.UpdateItem)
		items.DELETE("/:id", handlers.Item.DeleteItem)
		items.POST("/:id/adjust-stock", handlers.Item.AdjustStock)
	}
	router.GET("/stock-transactions", handlers.Item.GetStockTransactions)

	invoices := router.Group("/sales-invoices")
	{
		invoices.GET("/summary", handlers.Invoice.GetInvoiceSummary)
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.GetInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	creditNotes := router.Group("/credit-notes")
	{
		creditNotes.POST("", handlers.CreditNote.CreateCreditNote)
		creditNotes.GET("", handlers.CreditNote.GetCreditNotes)
		creditNotes.GET("/:id", handlers.CreditNote.GetCreditNote)
	}

	quotes := router.Group("/quotes")
	{
		quotes.POST("", handlers.Quote.CreateQuote)
		quotes.GET("", handlers.Quote.GetQuotes)
		quotes.GET("/:id", handlers.Quote.GetQuote)
	}

	payments := router.Group("/payments")
	{
		payments.POST("", handlers.Payment.RecordPayment)
		payments.GET("", handlers.Payment.GetPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
	}

	settings := router.Group("/settings")
	{
		settings.GET("/invoice", handlers.Settings.GetInvoiceSettings)
		settings.PUT("/invoice", handlers.Settings.UpdateInvoiceSettings)
	}

	router.GET("/activities", handlers.Activity.GetActivities)
}
