package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaxRateServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TaxRateService
}

func TestTaxRateService(t *testing.T) {
	suite.Run(t, new(TaxRateServiceSuite))
}

func (s *TaxRateServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *TaxRateServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *TaxRateServiceSuite) setupService() {
	s.service = NewTaxRateService(ServiceParams{
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

func (s *TaxRateServiceSuite) TestCreateGSTSlab() {
	resp, err := s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType: types.TaxRateTypeGST,
		TaxName: "GST 18%",
		TaxRate: decimal.NewFromInt(18),
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(types.TaxRateTypeGST, resp.TaxType)
	s.Equal("GST 18%", resp.TaxName)
	s.True(resp.TaxRate.TaxRate.Equal(decimal.NewFromInt(18)))
}

func (s *TaxRateServiceSuite) TestCreateTDSRateWithStatutoryFields() {
	resp, err := s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType:         types.TaxRateTypeTDS,
		TaxName:         "TDS on Professional Fees",
		TaxRate:         decimal.NewFromInt(10),
		NatureOfPayment: "Fees for professional services",
		Section:         "194J",
		RateNoPan:       lo.ToPtr(decimal.NewFromInt(20)),
		Threshold:       lo.ToPtr(decimal.NewFromInt(30000)),
	})
	s.NoError(err)
	s.Equal("194J", resp.Section)
	s.NotNil(resp.RateNoPan)
	s.True(resp.RateNoPan.Equal(decimal.NewFromInt(20)))
	s.NotNil(resp.Threshold)
	s.True(resp.Threshold.Equal(decimal.NewFromInt(30000)))
}

func (s *TaxRateServiceSuite) TestCreateTaxRateUnknownRegime() {
	_, err := s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType: types.TaxRateType("vat"),
		TaxName: "VAT 20%",
		TaxRate: decimal.NewFromInt(20),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Contains(err.Error(), "invalid tax type")
}

func (s *TaxRateServiceSuite) TestCreateTaxRateNegativeRate() {
	_, err := s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType: types.TaxRateTypeGST,
		TaxName: "Broken",
		TaxRate: decimal.NewFromInt(-5),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TaxRateServiceSuite) TestUpdateTaxRateKeepsRegime() {
	created, err := s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType: types.TaxRateTypeGST,
		TaxName: "GST 12%",
		TaxRate: decimal.NewFromInt(12),
	})
	s.NoError(err)

	resp, err := s.service.UpdateTaxRate(s.GetContext(), created.ID, dto.UpdateTaxRateRequest{
		TaxName: lo.ToPtr("GST 18%"),
		TaxRate: lo.ToPtr(decimal.NewFromInt(18)),
	})
	s.NoError(err)
	s.Equal("GST 18%", resp.TaxName)
	s.True(resp.TaxRate.TaxRate.Equal(decimal.NewFromInt(18)))
	s.Equal(types.TaxRateTypeGST, resp.TaxType)
}

func (s *TaxRateServiceSuite) TestGetTaxRatesFilterByRegime() {
	_, err := s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType: types.TaxRateTypeGST,
		TaxName: "GST 5%",
		TaxRate: decimal.NewFromInt(5),
	})
	s.NoError(err)
	_, err = s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType: types.TaxRateTypeTCS,
		TaxName: "TCS on Sale of Goods",
		TaxRate: decimal.RequireFromString("0.1"),
		Section: "206C(1H)",
	})
	s.NoError(err)

	filter := types.NewNoLimitTaxRateFilter()
	filter.TaxType = lo.ToPtr(types.TaxRateTypeTCS)
	resp, err := s.service.GetTaxRates(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("TCS on Sale of Goods", resp.Items[0].TaxName)
}

func (s *TaxRateServiceSuite) TestDeleteTaxRate() {
	created, err := s.service.CreateTaxRate(s.GetContext(), dto.CreateTaxRateRequest{
		TaxType: types.TaxRateTypeGST,
		TaxName: "GST 28%",
		TaxRate: decimal.NewFromInt(28),
	})
	s.NoError(err)

	s.NoError(s.service.DeleteTaxRate(s.GetContext(), created.ID))

	_, err = s.service.GetTaxRate(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
