package internal

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/cache"
	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/domain/settings"
	"github.com/finbooks/finbooks/internal/httpclient"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/repository"
	"github.com/finbooks/finbooks/internal/service"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var demoTaxRates = []dto.CreateTaxRateRequest{
	{TaxType: types.TaxRateTypeGST, TaxName: "GST 5%", TaxRate: decimal.NewFromInt(5)},
	{TaxType: types.TaxRateTypeGST, TaxName: "GST 12%", TaxRate: decimal.NewFromInt(12)},
	{TaxType: types.TaxRateTypeGST, TaxName: "GST 18%", TaxRate: decimal.NewFromInt(18)},
	{TaxType: types.TaxRateTypeGST, TaxName: "GST 28%", TaxRate: decimal.NewFromInt(28)},
	{
		TaxType:         types.TaxRateTypeTDS,
		TaxName:         "TDS 194J Professional Fees",
		TaxRate:         decimal.NewFromInt(10),
		NatureOfPayment: "Fees for professional or technical services",
		Section:         "194J",
		RateNoPan:       lo.ToPtr(decimal.NewFromInt(20)),
		Threshold:       lo.ToPtr(decimal.NewFromInt(30000)),
	},
	{
		TaxType:         types.TaxRateTypeTCS,
		TaxName:         "TCS 206C(1H) Sale of Goods",
		TaxRate:         decimal.NewFromFloat(0.1),
		NatureOfPayment: "Sale of goods",
		Section:         "206C(1H)",
		Threshold:       lo.ToPtr(decimal.NewFromInt(5000000)),
	},
}

var demoAccounts = []dto.CreateAccountRequest{
	{Name: "Sales", AccountType: "Income", Code: "4000", ParentCategory: "Income"},
	{Name: "Purchases", AccountType: "Expense", Code: "5000", ParentCategory: "Cost of Goods Sold"},
	{
		Name:           "HDFC Current Account",
		AccountType:    "Bank",
		Code:           "1100",
		ParentCategory: "Bank Accounts",
		OpeningBalance: lo.ToPtr(decimal.NewFromInt(250000)),
		BalanceAsOf:    lo.ToPtr(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
		Reconcile:      true,
		DashboardWatch: true,
	},
	{Name: "GST Payable", AccountType: "Liability", Code: "2200", ParentCategory: "Duties and Taxes"},
}

var demoCustomers = []dto.CreateCustomerRequest{
	{
		DisplayName:   "Acme Traders",
		CompanyName:   "Acme Traders Pvt Ltd",
		Email:         "accounts@acmetraders.example",
		Phone:         "+91 98200 11223",
		GSTIN:         "27AABCA1234F1Z5",
		PAN:           "AABCA1234F",
		GSTRegistered: true,
		BillingAddress: types.Address{
			AddressLine1: "14 Industrial Estate",
			City:         "Pune",
			State:        "Maharashtra",
			Pincode:      "411001",
			Country:      "India",
		},
		PaymentTerms: "Net 30",
	},
	{
		DisplayName:   "Bharat Supplies",
		CompanyName:   "Bharat Supplies & Co",
		Email:         "billing@bharatsupplies.example",
		GSTIN:         "07AACCB5678G1Z2",
		PAN:           "AACCB5678G",
		GSTRegistered: true,
		BillingAddress: types.Address{
			AddressLine1: "88 Karol Bagh",
			City:         "New Delhi",
			State:        "Delhi",
			Pincode:      "110005",
			Country:      "India",
		},
		PaymentTerms: "Net 15",
	},
	{
		DisplayName: "Nimbus Services",
		Email:       "hello@nimbus.example",
		BillingAddress: types.Address{
			AddressLine1: "3rd Floor, Indiranagar",
			City:         "Bengaluru",
			State:        "Karnataka",
			Pincode:      "560038",
			Country:      "India",
		},
		PaymentTerms: "Due on Receipt",
	},
}

var demoVendors = []dto.CreateVendorRequest{
	{
		DisplayName:   "Sharma Packaging",
		CompanyName:   "Sharma Packaging Industries",
		Email:         "sales@sharmapack.example",
		GSTIN:         "24AADCS9012H1Z8",
		GSTRegistered: true,
		PaymentTerms:  "Net 45",
	},
}

var demoItems = []dto.CreateItemRequest{
	{
		ItemName:        "Steel Bracket 50mm",
		ItemType:        types.ItemTypeProduct,
		Unit:            "pcs",
		HSNSAC:          "7308",
		SalesPrice:      decimal.NewFromInt(150),
		PurchasePrice:   decimal.NewFromInt(90),
		OpeningStockQty: decimal.NewFromInt(200),
	},
	{
		ItemName:        "Copper Wire 1.5mm",
		ItemType:        types.ItemTypeProduct,
		Unit:            "m",
		HSNSAC:          "8544",
		SalesPrice:      decimal.NewFromInt(42),
		PurchasePrice:   decimal.NewFromInt(28),
		OpeningStockQty: decimal.NewFromInt(500),
	},
	{
		ItemName:   "Site Installation",
		ItemType:   types.ItemTypeService,
		Unit:       "hrs",
		HSNSAC:     "9954",
		SalesPrice: decimal.NewFromInt(1200),
	},
	{
		ItemName:   "Annual Maintenance",
		ItemType:   types.ItemTypeService,
		HSNSAC:     "9987",
		SalesPrice: decimal.NewFromInt(18000),
	},
}

// SeedDemoData populates a tenant with a working set of masters and one
// invoice and quote. It goes through the service layer so sequences,
// stock entries and activity records are created the same way the API
// would create them.
func SeedDemoData() error {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error creating config: %v", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	tenantID := os.Getenv("TENANT_ID")
	if tenantID == "" {
		tenantID = types.DefaultTenantID
	}
	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = types.DefaultUserID
	}

	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, userID)

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	client := postgres.NewClient(db, log)
	inMemCache := cache.NewInMemoryCache(cfg)

	customerRepo := repository.NewCustomerRepository(db, log)
	vendorRepo := repository.NewVendorRepository(db, log)
	accountRepo := repository.NewAccountRepository(db, log)
	taxRateRepo := repository.NewTaxRateRepository(db, log)
	itemRepo := repository.NewItemRepository(db, log)
	invoiceRepo := repository.NewInvoiceRepository(db, log)
	creditNoteRepo := repository.NewCreditNoteRepository(db, log)
	quoteRepo := repository.NewQuoteRepository(db, log)
	paymentRepo := repository.NewPaymentRepository(db, log)
	settingsRepo := repository.NewSettingsRepository(db, log, inMemCache)
	activityRepo := repository.NewActivityRepository(db, log)

	// No webhook pipeline in scripts; publishWebhookEvent tolerates a
	// nil publisher.
	params := service.NewServiceParams(
		log,
		cfg,
		client,
		inMemCache,
		customerRepo,
		vendorRepo,
		accountRepo,
		taxRateRepo,
		itemRepo,
		invoiceRepo,
		creditNoteRepo,
		quoteRepo,
		paymentRepo,
		settingsRepo,
		activityRepo,
		nil,
		httpclient.NewDefaultClient(),
	)

	log.Infow("Seeding demo data", "tenant_id", tenantID)

	if err := seedTaxRates(ctx, service.NewTaxRateService(params), log); err != nil {
		return err
	}
	if err := seedAccounts(ctx, service.NewAccountService(params), log); err != nil {
		return err
	}
	customerIDs, err := seedCustomers(ctx, service.NewCustomerService(params), log)
	if err != nil {
		return err
	}
	if err := seedVendors(ctx, service.NewVendorService(params), log); err != nil {
		return err
	}
	items, err := seedItems(ctx, service.NewItemService(params), log)
	if err != nil {
		return err
	}
	if err := seedTheme(ctx, service.NewSettingsService(params), log); err != nil {
		return err
	}
	if err := seedDocuments(ctx, params, customerIDs[0], items, log); err != nil {
		return err
	}

	log.Info("Demo data seeded successfully")
	return nil
}

func seedTaxRates(ctx context.Context, svc service.TaxRateService, log *logger.Logger) error {
	for _, req := range demoTaxRates {
		resp, err := svc.CreateTaxRate(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create tax rate %q: %w", req.TaxName, err)
		}
		log.Infow("Created tax rate", "id", resp.ID, "name", resp.TaxName)
	}
	return nil
}

func seedAccounts(ctx context.Context, svc service.AccountService, log *logger.Logger) error {
	for _, req := range demoAccounts {
		resp, err := svc.CreateAccount(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create account %q: %w", req.Name, err)
		}
		log.Infow("Created account", "id", resp.ID, "name", resp.Name)
	}
	return nil
}

func seedCustomers(ctx context.Context, svc service.CustomerService, log *logger.Logger) ([]string, error) {
	ids := make([]string, 0, len(demoCustomers))
	for _, req := range demoCustomers {
		resp, err := svc.CreateCustomer(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to create customer %q: %w", req.DisplayName, err)
		}
		log.Infow("Created customer", "id", resp.ID, "name", resp.DisplayName)
		ids = append(ids, resp.ID)
	}
	return ids, nil
}

func seedVendors(ctx context.Context, svc service.VendorService, log *logger.Logger) error {
	for _, req := range demoVendors {
		resp, err := svc.CreateVendor(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create vendor %q: %w", req.DisplayName, err)
		}
		log.Infow("Created vendor", "id", resp.ID, "name", resp.DisplayName)
	}
	return nil
}

func seedItems(ctx context.Context, svc service.ItemService, log *logger.Logger) ([]*dto.ItemResponse, error) {
	items := make([]*dto.ItemResponse, 0, len(demoItems))
	for _, req := range demoItems {
		resp, err := svc.CreateItem(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to create item %q: %w", req.ItemName, err)
		}
		log.Infow("Created item", "id", resp.ID, "name", resp.ItemName, "type", resp.ItemType)
		items = append(items, resp)
	}
	return items, nil
}

func seedTheme(ctx context.Context, svc service.SettingsService, log *logger.Logger) error {
	resp, err := svc.UpdateInvoiceSettings(ctx, dto.UpdateInvoiceSettingsRequest{
		ActiveThemeName: lo.ToPtr("Classic"),
		SavedThemes: []settings.Theme{
			{
				Name:             "Classic",
				IsDefault:        true,
				InvoicePrefix:    "INV-",
				InvoiceSuffix:    "/25-26",
				CreditNotePrefix: "CN-",
				TaxType:          types.TaxDisplayModeDefault,
				SelectedColor:    "#1a73e8",
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save invoice theme: %w", err)
	}
	log.Infow("Saved invoice theme", "active_theme", resp.ActiveThemeName)
	return nil
}

// seedDocuments creates one approved invoice and one quote against the
// first demo customer, using the first product and first service item.
func seedDocuments(ctx context.Context, params service.ServiceParams, customerID string, items []*dto.ItemResponse, log *logger.Logger) error {
	var product, svcItem *dto.ItemResponse
	for _, it := range items {
		switch {
		case product == nil && it.ItemType == types.ItemTypeProduct:
			product = it
		case svcItem == nil && it.ItemType == types.ItemTypeService:
			svcItem = it
		}
	}
	if product == nil || svcItem == nil {
		return fmt.Errorf("demo items must include at least one product and one service")
	}

	gst18 := types.NewFlexDecimal(decimal.NewFromInt(18))
	now := time.Now().UTC()

	invoiceService := service.NewInvoiceService(params)
	inv, err := invoiceService.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		InvoiceDate: types.FlexTime{Time: &now},
		DueDate:     types.FlexTime{Time: lo.ToPtr(now.AddDate(0, 0, 30))},
		CustomerID:  customerID,
		LineItems: []dto.InvoiceLineItemRequest{
			{
				ItemID:   product.ID,
				ItemType: product.ItemType,
				HSNSAC:   product.HSNSAC,
				Quantity: types.NewFlexDecimal(decimal.NewFromInt(10)),
				Rate:     types.NewFlexDecimal(product.SalesPrice),
				TaxRate:  gst18,
			},
			{
				ItemID:   svcItem.ID,
				ItemType: svcItem.ItemType,
				HSNSAC:   svcItem.HSNSAC,
				Quantity: types.NewFlexDecimal(decimal.NewFromInt(4)),
				Rate:     types.NewFlexDecimal(svcItem.SalesPrice),
				TaxRate:  gst18,
			},
		},
		Notes:  "Thank you for your business.",
		Status: types.InvoiceStatusApproved,
	})
	if err != nil {
		return fmt.Errorf("failed to create demo invoice: %w", err)
	}
	log.Infow("Created invoice", "id", inv.ID, "number", inv.InvoiceNumber, "grand_total", inv.GrandTotal)

	// Quote totals are persisted as sent, so compute them here.
	qty := decimal.NewFromInt(20)
	subTotal := product.SalesPrice.Mul(qty)
	taxTotal := subTotal.Mul(decimal.NewFromInt(18)).Div(decimal.NewFromInt(100))

	quoteService := service.NewQuoteService(params)
	q, err := quoteService.CreateQuote(ctx, dto.CreateQuoteRequest{
		CustomerID: customerID,
		QuoteDate:  types.FlexTime{Time: &now},
		ExpiryDate: types.FlexTime{Time: lo.ToPtr(now.AddDate(0, 1, 0))},
		LineItems: []dto.InvoiceLineItemRequest{
			{
				ItemID:   product.ID,
				ItemType: product.ItemType,
				HSNSAC:   product.HSNSAC,
				Quantity: types.NewFlexDecimal(qty),
				Rate:     types.NewFlexDecimal(product.SalesPrice),
				TaxRate:  gst18,
			},
		},
		SubTotal:   types.NewFlexDecimal(subTotal),
		TaxTotal:   types.NewFlexDecimal(taxTotal),
		GrandTotal: types.NewFlexDecimal(subTotal.Add(taxTotal)),
		Notes:      "Valid for 30 days.",
	})
	if err != nil {
		return fmt.Errorf("failed to create demo quote: %w", err)
	}
	log.Infow("Created quote", "id", q.ID, "number", q.QuoteNumber)

	return nil
}
