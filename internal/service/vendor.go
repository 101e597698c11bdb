package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// VendorService manages the parties a tenant buys from.
type VendorService interface {
	CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error)
	GetVendor(ctx context.Context, id string) (*dto.VendorResponse, error)
	GetVendors(ctx context.Context, filter *types.VendorFilter) (*dto.ListVendorsResponse, error)
	UpdateVendor(ctx context.Context, id string, req dto.UpdateVendorRequest) (*dto.VendorResponse, error)
	DeleteVendor(ctx context.Context, id string) error
}

type vendorService struct {
	ServiceParams
}

func NewVendorService(params ServiceParams) VendorService {
	return &vendorService{
		ServiceParams: params,
	}
}

func (s *vendorService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v := req.ToVendor(ctx)

	if err := s.VendorRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateVendor,
		fmt.Sprintf("Created Vendor: %s", v.DisplayName), v.ID, "vendors")

	return &dto.VendorResponse{Vendor: v}, nil
}

func (s *vendorService) GetVendor(ctx context.Context, id string) (*dto.VendorResponse, error) {
	if id == "" {
		return nil, ierr.NewError("vendor ID is required").
			WithHint("Vendor ID is required").
			Mark(ierr.ErrValidation)
	}

	v, err := s.VendorRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.VendorResponse{Vendor: v}, nil
}

func (s *vendorService) GetVendors(ctx context.Context, filter *types.VendorFilter) (*dto.ListVendorsResponse, error) {
	if filter == nil {
		filter = types.NewVendorFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	vendors, err := s.VendorRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.VendorRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		items = append(items, &dto.VendorResponse{Vendor: v})
	}

	return &dto.ListVendorsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, id string, req dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	if id == "" {
		return nil, ierr.NewError("vendor ID is required").
			WithHint("Vendor ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, err := s.VendorRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(v)
	v.UpdatedBy = types.GetUserID(ctx)

	if err := v.Validate(); err != nil {
		return nil, err
	}

	if err := s.VendorRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityUpdateVendor,
		fmt.Sprintf("Updated Vendor ID: %s", v.ID), v.ID, "vendors")

	return &dto.VendorResponse{Vendor: v}, nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("vendor ID is required").
			WithHint("Vendor ID is required").
			Mark(ierr.ErrValidation)
	}

	v, err := s.VendorRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.VendorRepo.Delete(ctx, v.ID); err != nil {
		return err
	}

	s.recordActivity(ctx, types.ActivityDeleteVendor,
		fmt.Sprintf("Deleted Vendor ID: %s", v.ID), v.ID, "vendors")

	return nil
}
