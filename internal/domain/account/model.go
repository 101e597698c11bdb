package account

import (
	"time"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// Account is a chart of accounts entry. JSON field names are the wire
// contract shared with existing clients.
type Account struct {
	// ID is the unique identifier for the account
	ID string `db:"id" json:"id"`

	// Name is the account name, e.g. "Office Supplies"
	Name string `db:"name" json:"name"`

	// AccountType is the configured account type, e.g. "Expense"
	AccountType string `db:"account_type" json:"accountType"`

	// Code is the ledger code for the account
	Code string `db:"code" json:"code"`

	// ParentCategory is the top level accounting category ("Heads")
	ParentCategory string `db:"parent_category" json:"parentCategory"`

	// IsSubAccount marks the account as a child of another account
	IsSubAccount bool `db:"is_sub_account" json:"isSubAccount"`

	// OpeningBalance is the balance carried in when the account was
	// added; nil when never supplied
	OpeningBalance *decimal.Decimal `db:"opening_balance" json:"openingBalance,omitempty"`

	// BalanceAsOf is the date the opening balance was measured at
	BalanceAsOf *time.Time `db:"balance_as_of" json:"balanceAsOf,omitempty"`

	// Reconcile marks the account for bank reconciliation
	Reconcile bool `db:"reconcile" json:"reconcile"`

	// DashboardWatch shows the account on the dashboard
	DashboardWatch bool `db:"dashboard_watch" json:"dashboardWatch"`

	// IsFavorite pins the account in pickers
	IsFavorite bool `db:"is_favorite" json:"isFavorite"`

	types.BaseModel
}

func (a *Account) TableName() string {
	return "chart_of_accounts"
}

func (a *Account) Validate() error {
	if a.Name == "" || a.Code == "" || a.AccountType == "" || a.ParentCategory == "" {
		return ierr.NewError("missing required fields").
			WithHint("Name, code, accountType and parentCategory are required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
