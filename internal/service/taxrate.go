package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// TaxRateService manages the tenant's configured GST, TDS and TCS rates.
// Rates are reference data; invoices copy the percentage at use, so a
// later rate edit never rewrites an issued document.
type TaxRateService interface {
	CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error)
	GetTaxRate(ctx context.Context, id string) (*dto.TaxRateResponse, error)
	GetTaxRates(ctx context.Context, filter *types.TaxRateFilter) (*dto.ListTaxRatesResponse, error)
	UpdateTaxRate(ctx context.Context, id string, req dto.UpdateTaxRateRequest) (*dto.TaxRateResponse, error)
	DeleteTaxRate(ctx context.Context, id string) error
}

type taxRateService struct {
	ServiceParams
}

func NewTaxRateService(params ServiceParams) TaxRateService {
	return &taxRateService{
		ServiceParams: params,
	}
}

func (s *taxRateService) CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rate := req.ToTaxRate(ctx)

	if err := s.TaxRateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateTaxRate,
		fmt.Sprintf("Created Tax Rate: %s", rate.TaxName), rate.ID, "tax_rates")

	return &dto.TaxRateResponse{TaxRate: rate}, nil
}

func (s *taxRateService) GetTaxRate(ctx context.Context, id string) (*dto.TaxRateResponse, error) {
	if id == "" {
		return nil, ierr.NewError("tax rate ID is required").
			WithHint("Tax rate ID is required").
			Mark(ierr.ErrValidation)
	}

	rate, err := s.TaxRateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.TaxRateResponse{TaxRate: rate}, nil
}

func (s *taxRateService) GetTaxRates(ctx context.Context, filter *types.TaxRateFilter) (*dto.ListTaxRatesResponse, error) {
	if filter == nil {
		filter = types.NewTaxRateFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rates, err := s.TaxRateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.TaxRateRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TaxRateResponse, 0, len(rates))
	for _, r := range rates {
		items = append(items, &dto.TaxRateResponse{TaxRate: r})
	}

	return &dto.ListTaxRatesResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *taxRateService) UpdateTaxRate(ctx context.Context, id string, req dto.UpdateTaxRateRequest) (*dto.TaxRateResponse, error) {
	if id == "" {
		return nil, ierr.NewError("tax rate ID is required").
			WithHint("Tax rate ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	rate, err := s.TaxRateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(rate)
	rate.UpdatedBy = types.GetUserID(ctx)

	if err := rate.Validate(); err != nil {
		return nil, err
	}

	if err := s.TaxRateRepo.Update(ctx, rate); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityUpdateTaxRate,
		fmt.Sprintf("Updated Tax Rate ID: %s", rate.ID), rate.ID, "tax_rates")

	return &dto.TaxRateResponse{TaxRate: rate}, nil
}

func (s *taxRateService) DeleteTaxRate(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("tax rate ID is required").
			WithHint("Tax rate ID is required").
			Mark(ierr.ErrValidation)
	}

	rate, err := s.TaxRateRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.TaxRateRepo.Delete(ctx, rate.ID); err != nil {
		return err
	}

	s.recordActivity(ctx, types.ActivityDeleteTaxRate,
		fmt.Sprintf("Deleted Tax Rate ID: %s", rate.ID), rate.ID, "tax_rates")

	return nil
}
