package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// CustomerService manages the parties a tenant sells to.
type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	GetCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error)
	UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust := req.ToCustomer(ctx)

	if err := s.CustomerRepo.Create(ctx, cust); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateCustomer,
		fmt.Sprintf("Created Customer: %s", cust.DisplayName), cust.ID, "customers")

	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	if id == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = types.NewCustomerFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	customers, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.CustomerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, &dto.CustomerResponse{Customer: c})
	}

	return &dto.ListCustomersResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if id == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(cust)
	cust.UpdatedBy = types.GetUserID(ctx)

	if err := cust.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Update(ctx, cust); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityUpdateCustomer,
		fmt.Sprintf("Updated Customer ID: %s", cust.ID), cust.ID, "customers")

	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("customer ID is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.CustomerRepo.Delete(ctx, cust.ID); err != nil {
		return err
	}

	s.recordActivity(ctx, types.ActivityDeleteCustomer,
		fmt.Sprintf("Deleted Customer ID: %s", cust.ID), cust.ID, "customers")

	return nil
}
