package service

import (
	"testing"
	"time"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AccountService
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *AccountServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *AccountServiceSuite) setupService() {
	s.service = NewAccountService(ServiceParams{
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

func (s *AccountServiceSuite) newAccountRequest(name string) dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		Name:           name,
		AccountType:    "Bank",
		Code:           "1100",
		ParentCategory: "Bank Accounts",
	}
}

func (s *AccountServiceSuite) TestCreateAccount() {
	req := s.newAccountRequest("HDFC Current Account")
	req.OpeningBalance = lo.ToPtr(decimal.NewFromInt(250000))
	req.BalanceAsOf = lo.ToPtr(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	req.Reconcile = true

	resp, err := s.service.CreateAccount(s.GetContext(), req)
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal("HDFC Current Account", resp.Name)
	s.Equal("Bank", resp.AccountType)
	s.NotNil(resp.OpeningBalance)
	s.True(resp.OpeningBalance.Equal(decimal.NewFromInt(250000)))
	s.True(resp.Reconcile)

	entries, err := s.GetStores().ActivityRepo.List(s.GetContext(), &types.ActivityFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		DocumentID:  resp.ID,
	})
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal(types.ActivityCreateAccount, entries[0].ActionType)
	s.Equal("Created Account: HDFC Current Account", entries[0].Details)
}

func (s *AccountServiceSuite) TestCreateAccountWithoutBalanceKeepsItNull() {
	resp, err := s.service.CreateAccount(s.GetContext(), s.newAccountRequest("Petty Cash"))
	s.NoError(err)
	s.Nil(resp.OpeningBalance)
	s.Nil(resp.BalanceAsOf)
}

func (s *AccountServiceSuite) TestCreateAccountRequiresCode() {
	req := s.newAccountRequest("HDFC Current Account")
	req.Code = ""

	resp, err := s.service.CreateAccount(s.GetContext(), req)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}

func (s *AccountServiceSuite) TestCreateAccountRequiresParentCategory() {
	req := s.newAccountRequest("HDFC Current Account")
	req.ParentCategory = ""

	_, err := s.service.CreateAccount(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AccountServiceSuite) TestUpdateAccountAppliesPartialFields() {
	created, err := s.service.CreateAccount(s.GetContext(), s.newAccountRequest("HDFC Current Account"))
	s.NoError(err)

	resp, err := s.service.UpdateAccount(s.GetContext(), created.ID, dto.UpdateAccountRequest{
		Name:       lo.ToPtr("HDFC Savings Account"),
		IsFavorite: lo.ToPtr(true),
	})
	s.NoError(err)
	s.Equal("HDFC Savings Account", resp.Name)
	s.True(resp.IsFavorite)
	s.Equal("Bank", resp.AccountType)
	s.Equal("1100", resp.Code)
}

func (s *AccountServiceSuite) TestUpdateAccountCannotBlankName() {
	created, err := s.service.CreateAccount(s.GetContext(), s.newAccountRequest("HDFC Current Account"))
	s.NoError(err)

	_, err = s.service.UpdateAccount(s.GetContext(), created.ID, dto.UpdateAccountRequest{
		Name: lo.ToPtr(""),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AccountServiceSuite) TestUpdateAccountNotFound() {
	_, err := s.service.UpdateAccount(s.GetContext(), "acct_missing", dto.UpdateAccountRequest{
		Name: lo.ToPtr("Renamed"),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *AccountServiceSuite) TestDeleteAccount() {
	created, err := s.service.CreateAccount(s.GetContext(), s.newAccountRequest("HDFC Current Account"))
	s.NoError(err)

	s.NoError(s.service.DeleteAccount(s.GetContext(), created.ID))

	_, err = s.service.GetAccount(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *AccountServiceSuite) TestGetAccountsFilterByType() {
	_, err := s.service.CreateAccount(s.GetContext(), s.newAccountRequest("HDFC Current Account"))
	s.NoError(err)
	expense := s.newAccountRequest("Office Rent")
	expense.AccountType = "Expense"
	expense.Code = "5200"
	expense.ParentCategory = "Operating Expenses"
	_, err = s.service.CreateAccount(s.GetContext(), expense)
	s.NoError(err)

	filter := types.NewNoLimitAccountFilter()
	filter.AccountType = "Expense"
	resp, err := s.service.GetAccounts(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Office Rent", resp.Items[0].Name)
}

func (s *AccountServiceSuite) TestGetAccountsSearch() {
	_, err := s.service.CreateAccount(s.GetContext(), s.newAccountRequest("HDFC Current Account"))
	s.NoError(err)
	other := s.newAccountRequest("ICICI Current Account")
	other.Code = "1101"
	_, err = s.service.CreateAccount(s.GetContext(), other)
	s.NoError(err)

	filter := types.NewNoLimitAccountFilter()
	filter.Search = "hdfc"
	resp, err := s.service.GetAccounts(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("HDFC Current Account", resp.Items[0].Name)
}

func (s *AccountServiceSuite) TestGetAccountRequiresID() {
	_, err := s.service.GetAccount(s.GetContext(), "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
