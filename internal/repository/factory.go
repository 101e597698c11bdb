package repository

import (
	"github.com/finbooks/finbooks/internal/cache"
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
	postgresRepo "github.com/finbooks/finbooks/internal/repository/postgres"
)

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewVendorRepository(db *postgres.DB, logger *logger.Logger) vendor.Repository {
	return postgresRepo.NewVendorRepository(db, logger)
}

func NewAccountRepository(db *postgres.DB, logger *logger.Logger) account.Repository {
	return postgresRepo.NewAccountRepository(db, logger)
}

func NewTaxRateRepository(db *postgres.DB, logger *logger.Logger) taxrate.Repository {
	return postgresRepo.NewTaxRateRepository(db, logger)
}

func NewItemRepository(db *postgres.DB, logger *logger.Logger) item.Repository {
	return postgresRepo.NewItemRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewCreditNoteRepository(db *postgres.DB, logger *logger.Logger) creditnote.Repository {
	return postgresRepo.NewCreditNoteRepository(db, logger)
}

func NewQuoteRepository(db *postgres.DB, logger *logger.Logger) quote.Repository {
	return postgresRepo.NewQuoteRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) settings.Repository {
	return postgresRepo.NewSettingsRepository(db, logger, cache)
}

func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return postgresRepo.NewActivityRepository(db, logger)
}
