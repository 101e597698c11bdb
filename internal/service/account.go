package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// AccountService manages the tenant's chart of accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error)
	GetAccount(ctx context.Context, id string) (*dto.AccountResponse, error)
	GetAccounts(ctx context.Context, filter *types.AccountFilter) (*dto.ListAccountsResponse, error)
	UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	DeleteAccount(ctx context.Context, id string) error
}

type accountService struct {
	ServiceParams
}

func NewAccountService(params ServiceParams) AccountService {
	return &accountService{
		ServiceParams: params,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	acc := req.ToAccount(ctx)

	if err := s.AccountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateAccount,
		fmt.Sprintf("Created Account: %s", acc.Name), acc.ID, "chart_of_accounts")

	return &dto.AccountResponse{Account: acc}, nil
}

func (s *accountService) GetAccount(ctx context.Context, id string) (*dto.AccountResponse, error) {
	if id == "" {
		return nil, ierr.NewError("account ID is required").
			WithHint("Account ID is required").
			Mark(ierr.ErrValidation)
	}

	acc, err := s.AccountRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.AccountResponse{Account: acc}, nil
}

func (s *accountService) GetAccounts(ctx context.Context, filter *types.AccountFilter) (*dto.ListAccountsResponse, error) {
	if filter == nil {
		filter = types.NewAccountFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	accounts, err := s.AccountRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.AccountRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, &dto.AccountResponse{Account: a})
	}

	return &dto.ListAccountsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	if id == "" {
		return nil, ierr.NewError("account ID is required").
			WithHint("Account ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	acc, err := s.AccountRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(acc)
	acc.UpdatedBy = types.GetUserID(ctx)

	if err := acc.Validate(); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Update(ctx, acc); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityUpdateAccount,
		fmt.Sprintf("Updated Account ID: %s", acc.ID), acc.ID, "chart_of_accounts")

	return &dto.AccountResponse{Account: acc}, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("account ID is required").
			WithHint("Account ID is required").
			Mark(ierr.ErrValidation)
	}

	acc, err := s.AccountRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.AccountRepo.Delete(ctx, acc.ID); err != nil {
		return err
	}

	s.recordActivity(ctx, types.ActivityDeleteAccount,
		fmt.Sprintf("Deleted Account ID: %s", acc.ID), acc.ID, "chart_of_accounts")

	return nil
}
