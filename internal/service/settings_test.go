package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/settings"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SettingsService
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *SettingsServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *SettingsServiceSuite) setupService() {
	s.service = NewSettingsService(ServiceParams{
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

func (s *SettingsServiceSuite) TestGetInvoiceSettingsDefaultsWhenUnsaved() {
	resp, err := s.service.GetInvoiceSettings(s.GetContext())
	s.NoError(err)
	s.Equal("Modern", resp.ActiveThemeName)
	s.Equal(int64(1), resp.Global.NextInvoiceNumber)
	s.Equal(int64(1), resp.Global.NextCreditNoteNumber)
	s.Equal(int64(1), resp.Global.NextQuoteNumber)
	s.Len(resp.SavedThemes, 1)
	s.Equal("Modern", resp.SavedThemes[0].Name)
	s.True(resp.SavedThemes[0].IsDefault)

	// serving defaults must not write a row
	_, err = s.GetStores().SettingsRepo.Get(s.GetContext())
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SettingsServiceSuite) TestUpdateInvoiceSettingsPersists() {
	req := dto.UpdateInvoiceSettingsRequest{
		Global: &dto.GlobalInvoiceSettings{
			NextInvoiceNumber:    100,
			NextCreditNoteNumber: 5,
			NextQuoteNumber:      2,
		},
		ActiveThemeName: lo.ToPtr("Classic"),
		SavedThemes: []settings.Theme{
			{
				Name:          "Classic",
				IsDefault:     true,
				InvoicePrefix: "SI-",
				TaxType:       types.TaxDisplayModeNoTax,
			},
		},
	}

	resp, err := s.service.UpdateInvoiceSettings(s.GetContext(), req)
	s.NoError(err)
	s.Equal(int64(100), resp.Global.NextInvoiceNumber)
	s.Equal("Classic", resp.ActiveThemeName)

	stored, err := s.GetStores().SettingsRepo.Get(s.GetContext())
	s.NoError(err)
	s.Equal(int64(100), stored.NextInvoiceNumber)
	s.Equal(int64(5), stored.NextCreditNoteNumber)
	s.Equal(int64(2), stored.NextQuoteNumber)
	s.Equal("Classic", stored.ActiveThemeName)
	s.Len(stored.SavedThemes, 1)
	s.Equal("SI-", stored.SavedThemes[0].InvoicePrefix)

	entries, err := s.GetStores().ActivityRepo.List(s.GetContext(), &types.ActivityFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		DocumentID:  stored.ID,
	})
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal(types.ActivitySaveSettings, entries[0].ActionType)
	s.Equal("Saved invoice settings", entries[0].Details)
}

func (s *SettingsServiceSuite) TestUpdateInvoiceSettingsMergesOntoStored() {
	_, err := s.service.UpdateInvoiceSettings(s.GetContext(), dto.UpdateInvoiceSettingsRequest{
		Global: &dto.GlobalInvoiceSettings{NextInvoiceNumber: 42},
		SavedThemes: []settings.Theme{
			{Name: "Classic", IsDefault: true, InvoicePrefix: "SI-"},
		},
	})
	s.NoError(err)

	// a later partial update keeps the untouched sections
	resp, err := s.service.UpdateInvoiceSettings(s.GetContext(), dto.UpdateInvoiceSettingsRequest{
		ActiveThemeName: lo.ToPtr("Classic"),
	})
	s.NoError(err)
	s.Equal("Classic", resp.ActiveThemeName)
	s.Equal(int64(42), resp.Global.NextInvoiceNumber)
	s.Len(resp.SavedThemes, 1)
	s.Equal("SI-", resp.SavedThemes[0].InvoicePrefix)
}

func (s *SettingsServiceSuite) TestUpdateInvoiceSettingsRequiresSingleDefaultTheme() {
	_, err := s.service.UpdateInvoiceSettings(s.GetContext(), dto.UpdateInvoiceSettingsRequest{
		SavedThemes: []settings.Theme{
			{Name: "First", IsDefault: true},
			{Name: "Second", IsDefault: true},
		},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Contains(err.Error(), "exactly one default theme is required")

	_, err = s.service.UpdateInvoiceSettings(s.GetContext(), dto.UpdateInvoiceSettingsRequest{
		SavedThemes: []settings.Theme{
			{Name: "First"},
			{Name: "Second"},
		},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SettingsServiceSuite) TestUpdateInvoiceSettingsRequiresThemeNames() {
	_, err := s.service.UpdateInvoiceSettings(s.GetContext(), dto.UpdateInvoiceSettingsRequest{
		SavedThemes: []settings.Theme{
			{IsDefault: true},
		},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Contains(err.Error(), "theme name is required")
}

func (s *SettingsServiceSuite) TestGetDefaultThemeFallsBackToBuiltin() {
	theme, err := s.service.GetDefaultTheme(s.GetContext())
	s.NoError(err)
	s.Equal("Modern", theme.Name)
	s.Equal("INV-", theme.InvoicePrefix)
	s.Equal("CRN-", theme.CreditNotePrefix)
	s.Equal(types.TaxDisplayModeDefault, theme.TaxType)
}

func (s *SettingsServiceSuite) TestGetDefaultThemeUsesSavedDefault() {
	_, err := s.service.UpdateInvoiceSettings(s.GetContext(), dto.UpdateInvoiceSettingsRequest{
		SavedThemes: []settings.Theme{
			{Name: "Plain", InvoicePrefix: "P-"},
			{Name: "Letterhead", IsDefault: true, InvoicePrefix: "LH-", TaxType: types.TaxDisplayModeNoTax},
		},
	})
	s.NoError(err)

	theme, err := s.service.GetDefaultTheme(s.GetContext())
	s.NoError(err)
	s.Equal("Letterhead", theme.Name)
	s.Equal("LH-", theme.InvoicePrefix)
	s.Equal(types.TaxDisplayModeNoTax, theme.TaxType)
}
