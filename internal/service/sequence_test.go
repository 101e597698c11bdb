package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/finbooks/finbooks/internal/domain/settings"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/stretchr/testify/suite"
)

type SequenceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SequenceService
}

func TestSequenceService(t *testing.T) {
	suite.Run(t, new(SequenceServiceSuite))
}

func (s *SequenceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *SequenceServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *SequenceServiceSuite) setupService() {
	s.service = NewSequenceService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		Cache:            s.GetCache(),
		CustomerRepo:     s.GetStores().CustomerRepo,
		VendorRepo:       s.GetStores().VendorRepo,
		AccountRepo:      s.GetStores().AccountRepo,
		TaxRateRepo:      s.GetStores().TaxRateRepo,
		ItemRepo:         s.GetStores().ItemRepo,
		InvoiceRepo:      s.GetStores().InvoiceRepo,
		CreditNoteRepo:   s.GetStores().CreditNoteRepo,
		QuoteRepo:        s.GetStores().QuoteRepo,
		PaymentRepo:      s.GetStores().PaymentRepo,
		SettingsRepo:     s.GetStores().SettingsRepo,
		ActivityRepo:     s.GetStores().ActivityRepo,
		WebhookPublisher: s.GetWebhookPublisher(),
	})
}

func (s *SequenceServiceSuite) TestFirstAllocationSeedsSettings() {
	// no settings row exists yet for the tenant
	_, err := s.GetStores().SettingsRepo.Get(s.GetContext())
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	number, raw, err := s.service.NextNumber(s.GetContext(), types.SequenceCounterInvoice)
	s.NoError(err)
	s.Equal("INV-1", number)
	s.Equal(int64(1), raw)

	stored, err := s.GetStores().SettingsRepo.Get(s.GetContext())
	s.NoError(err)
	s.Equal(int64(2), stored.NextInvoiceNumber)
	s.Equal(int64(1), stored.NextCreditNoteNumber)
}

func (s *SequenceServiceSuite) TestAllocationsAreContiguous() {
	for i := int64(1); i <= 5; i++ {
		number, raw, err := s.service.NextNumber(s.GetContext(), types.SequenceCounterInvoice)
		s.NoError(err)
		s.Equal(i, raw)
		s.Equal(fmt.Sprintf("INV-%d", i), number)
	}
}

func (s *SequenceServiceSuite) TestCountersAreIndependent() {
	number, _, err := s.service.NextNumber(s.GetContext(), types.SequenceCounterInvoice)
	s.NoError(err)
	s.Equal("INV-1", number)

	number, _, err = s.service.NextNumber(s.GetContext(), types.SequenceCounterInvoice)
	s.NoError(err)
	s.Equal("INV-2", number)

	number, _, err = s.service.NextNumber(s.GetContext(), types.SequenceCounterCreditNote)
	s.NoError(err)
	s.Equal("CRN-1", number)

	number, _, err = s.service.NextNumber(s.GetContext(), types.SequenceCounterQuote)
	s.NoError(err)
	s.Equal("QUO-1", number)
}

func (s *SequenceServiceSuite) TestConcurrentAllocationsNeverCollide() {
	const workers = 20

	var wg sync.WaitGroup
	raws := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, raw, err := s.service.NextNumber(s.GetContext(), types.SequenceCounterInvoice)
			s.NoError(err)
			raws <- raw
		}()
	}
	wg.Wait()
	close(raws)

	seen := make(map[int64]bool, workers)
	for raw := range raws {
		s.False(seen[raw], "number allocated twice")
		seen[raw] = true
	}
	s.Len(seen, workers)
	for i := int64(1); i <= workers; i++ {
		s.True(seen[i], "sequence has a gap")
	}
}

func (s *SequenceServiceSuite) TestThemePrefixAndSuffix() {
	s.NoError(s.GetStores().SettingsRepo.Upsert(s.GetContext(), &settings.InvoiceSettings{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTINGS),
		ActiveThemeName:      "Letterhead",
		NextInvoiceNumber:    1,
		NextCreditNoteNumber: 1,
		NextQuoteNumber:      1,
		SavedThemes: settings.Themes{
			{
				Name:             "Letterhead",
				IsDefault:        true,
				InvoicePrefix:    "ACME/",
				InvoiceSuffix:    "/24-25",
				CreditNotePrefix: "CN-",
			},
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	number, _, err := s.service.NextNumber(s.GetContext(), types.SequenceCounterInvoice)
	s.NoError(err)
	s.Equal("ACME/1/24-25", number)

	number, _, err = s.service.NextNumber(s.GetContext(), types.SequenceCounterCreditNote)
	s.NoError(err)
	s.Equal("CN-1", number)

	// quote numbering ignores theme prefixes
	number, _, err = s.service.NextNumber(s.GetContext(), types.SequenceCounterQuote)
	s.NoError(err)
	s.Equal("QUO-1", number)
}

func (s *SequenceServiceSuite) TestEmptyThemePrefixFallsBack() {
	s.NoError(s.GetStores().SettingsRepo.Upsert(s.GetContext(), &settings.InvoiceSettings{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTINGS),
		ActiveThemeName:      "Bare",
		NextInvoiceNumber:    7,
		NextCreditNoteNumber: 3,
		NextQuoteNumber:      1,
		SavedThemes: settings.Themes{
			{Name: "Bare", IsDefault: true},
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	number, raw, err := s.service.NextNumber(s.GetContext(), types.SequenceCounterInvoice)
	s.NoError(err)
	s.Equal("INV-7", number)
	s.Equal(int64(7), raw)

	number, _, err = s.service.NextNumber(s.GetContext(), types.SequenceCounterCreditNote)
	s.NoError(err)
	s.Equal("CRN-3", number)
}
