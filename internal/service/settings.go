package service

import (
	"context"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/settings"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// SettingsService manages the tenant's invoice settings document:
// sequence counters, saved themes and the active theme name.
type SettingsService interface {
	GetInvoiceSettings(ctx context.Context) (*dto.InvoiceSettingsResponse, error)
	UpdateInvoiceSettings(ctx context.Context, req dto.UpdateInvoiceSettingsRequest) (*dto.InvoiceSettingsResponse, error)
	GetDefaultTheme(ctx context.Context) (*settings.Theme, error)
}

type settingsService struct {
	ServiceParams
}

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{
		ServiceParams: params,
	}
}

// loadOrDefault returns the stored settings row, or an unsaved default
// document when the tenant has never written settings.
func (s *settingsService) loadOrDefault(ctx context.Context) (*settings.InvoiceSettings, error) {
	stored, err := s.SettingsRepo.Get(ctx)
	if err != nil {
		if ierr.IsNotFound(err) {
			return settings.Default(types.GetTenantID(ctx)), nil
		}
		return nil, err
	}
	return stored, nil
}

func (s *settingsService) GetInvoiceSettings(ctx context.Context) (*dto.InvoiceSettingsResponse, error) {
	stored, err := s.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceSettingsResponse(stored), nil
}

func (s *settingsService) UpdateInvoiceSettings(ctx context.Context, req dto.UpdateInvoiceSettingsRequest) (*dto.InvoiceSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}

	// work on a copy so a failed upsert cannot leave a half-applied
	// document in the settings cache
	updated := *stored
	if updated.ID == "" {
		updated.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTINGS)
	}
	req.Apply(&updated)

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	updated.UpdatedBy = types.GetUserID(ctx)
	if err := s.SettingsRepo.Upsert(ctx, &updated); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivitySaveSettings,
		"Saved invoice settings", updated.ID, "invoice_settings")

	return dto.NewInvoiceSettingsResponse(&updated), nil
}

// GetDefaultTheme resolves the theme used for numbering prefixes and the
// invoice tax mode. Falls back to the built-in theme when the tenant has
// no saved themes.
func (s *settingsService) GetDefaultTheme(ctx context.Context) (*settings.Theme, error) {
	stored, err := s.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	theme := stored.DefaultTheme()
	return &theme, nil
}
