package dto

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/domain/account"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	AccountType    string `json:"accountType" validate:"required,max=100"`
	Code           string `json:"code" validate:"required,max=50"`
	ParentCategory string `json:"parentCategory" validate:"required,max=100"`
	IsSubAccount   bool   `json:"isSubAccount"`

	// OpeningBalance and BalanceAsOf are optional; a missing balance is
	// stored as null, not zero
	OpeningBalance *decimal.Decimal `json:"openingBalance,omitempty"`
	BalanceAsOf    *time.Time       `json:"balanceAsOf,omitempty"`

	Reconcile      bool `json:"reconcile"`
	DashboardWatch bool `json:"dashboardWatch"`
	IsFavorite     bool `json:"isFavorite"`
}

type UpdateAccountRequest struct {
	Name           *string          `json:"name" validate:"omitempty,max=255"`
	AccountType    *string          `json:"accountType" validate:"omitempty,max=100"`
	Code           *string          `json:"code" validate:"omitempty,max=50"`
	ParentCategory *string          `json:"parentCategory" validate:"omitempty,max=100"`
	IsSubAccount   *bool            `json:"isSubAccount"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	BalanceAsOf    *time.Time       `json:"balanceAsOf"`
	Reconcile      *bool            `json:"reconcile"`
	DashboardWatch *bool            `json:"dashboardWatch"`
	IsFavorite     *bool            `json:"isFavorite"`
}

type AccountResponse struct {
	*account.Account
}

// ListAccountsResponse represents the response for listing chart of accounts entries
type ListAccountsResponse = types.ListResponse[*AccountResponse]

func (r *CreateAccountRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateAccountRequest) ToAccount(ctx context.Context) *account.Account {
	return &account.Account{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		Name:           r.Name,
		AccountType:    r.AccountType,
		Code:           r.Code,
		ParentCategory: r.ParentCategory,
		IsSubAccount:   r.IsSubAccount,
		OpeningBalance: r.OpeningBalance,
		BalanceAsOf:    r.BalanceAsOf,
		Reconcile:      r.Reconcile,
		DashboardWatch: r.DashboardWatch,
		IsFavorite:     r.IsFavorite,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateAccountRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the provided fields onto an existing account.
func (r *UpdateAccountRequest) Apply(a *account.Account) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.AccountType != nil {
		a.AccountType = *r.AccountType
	}
	if r.Code != nil {
		a.Code = *r.Code
	}
	if r.ParentCategory != nil {
		a.ParentCategory = *r.ParentCategory
	}
	if r.IsSubAccount != nil {
		a.IsSubAccount = *r.IsSubAccount
	}
	if r.OpeningBalance != nil {
		a.OpeningBalance = r.OpeningBalance
	}
	if r.BalanceAsOf != nil {
		a.BalanceAsOf = r.BalanceAsOf
	}
	if r.Reconcile != nil {
		a.Reconcile = *r.Reconcile
	}
	if r.DashboardWatch != nil {
		a.DashboardWatch = *r.DashboardWatch
	}
	if r.IsFavorite != nil {
		a.IsFavorite = *r.IsFavorite
	}
}
