package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *CustomerServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *CustomerServiceSuite) setupService() {
	s.service = NewCustomerService(ServiceParams{
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

func (s *CustomerServiceSuite) newCustomerRequest(name string) dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		DisplayName:  name,
		Email:        "billing@acme.test",
		PaymentTerms: "Net 30",
		BillingAddress: types.Address{
			AddressLine1: "12 Market Road",
			City:         "Pune",
			State:        "Maharashtra",
		},
	}
}

func (s *CustomerServiceSuite) TestCreateCustomer() {
	req := s.newCustomerRequest("Acme Traders")
	req.GSTIN = "27AAPFU0939F1ZV"
	req.GSTRegistered = true

	resp, err := s.service.CreateCustomer(s.GetContext(), req)
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal("Acme Traders", resp.DisplayName)
	s.Equal("27AAPFU0939F1ZV", resp.GSTIN)
	s.Equal("Net 30", resp.PaymentTerms)
	s.Equal("Pune", resp.BillingAddress.City)

	entries, err := s.GetStores().ActivityRepo.List(s.GetContext(), &types.ActivityFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		DocumentID:  resp.ID,
	})
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal(types.ActivityCreateCustomer, entries[0].ActionType)
	s.Equal("Created Customer: Acme Traders", entries[0].Details)
}

func (s *CustomerServiceSuite) TestCreateCustomerRequiresDisplayName() {
	req := s.newCustomerRequest("")

	resp, err := s.service.CreateCustomer(s.GetContext(), req)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestCreateCustomerRequiresPaymentTerms() {
	req := s.newCustomerRequest("Acme Traders")
	req.PaymentTerms = ""

	_, err := s.service.CreateCustomer(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestCreateCustomerRejectsMalformedEmail() {
	req := s.newCustomerRequest("Acme Traders")
	req.Email = "not-an-email"

	_, err := s.service.CreateCustomer(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestUpdateCustomerAppliesPartialFields() {
	created, err := s.service.CreateCustomer(s.GetContext(), s.newCustomerRequest("Acme Traders"))
	s.NoError(err)

	resp, err := s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		Phone:        lo.ToPtr("+91 98200 12345"),
		PaymentTerms: lo.ToPtr("Net 45"),
	})
	s.NoError(err)
	s.Equal("+91 98200 12345", resp.Phone)
	s.Equal("Net 45", resp.PaymentTerms)
	s.Equal("Acme Traders", resp.DisplayName)
	s.Equal("billing@acme.test", resp.Email)
}

func (s *CustomerServiceSuite) TestUpdateCustomerCannotBlankDisplayName() {
	created, err := s.service.CreateCustomer(s.GetContext(), s.newCustomerRequest("Acme Traders"))
	s.NoError(err)

	_, err = s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		DisplayName: lo.ToPtr(""),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestUpdateCustomerNotFound() {
	_, err := s.service.UpdateCustomer(s.GetContext(), "cust_missing", dto.UpdateCustomerRequest{
		Phone: lo.ToPtr("12345"),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestDeleteCustomer() {
	created, err := s.service.CreateCustomer(s.GetContext(), s.newCustomerRequest("Acme Traders"))
	s.NoError(err)

	s.NoError(s.service.DeleteCustomer(s.GetContext(), created.ID))

	_, err = s.service.GetCustomer(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestGetCustomersSearch() {
	_, err := s.service.CreateCustomer(s.GetContext(), s.newCustomerRequest("Acme Traders"))
	s.NoError(err)
	other := s.newCustomerRequest("Bharat Supplies")
	other.Email = "accounts@bharat.test"
	_, err = s.service.CreateCustomer(s.GetContext(), other)
	s.NoError(err)

	filter := types.NewNoLimitCustomerFilter()
	filter.Search = "acme"
	resp, err := s.service.GetCustomers(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Acme Traders", resp.Items[0].DisplayName)
}

func (s *CustomerServiceSuite) TestGetCustomersFilterByGSTRegistration() {
	registered := s.newCustomerRequest("Acme Traders")
	registered.GSTRegistered = true
	_, err := s.service.CreateCustomer(s.GetContext(), registered)
	s.NoError(err)
	_, err = s.service.CreateCustomer(s.GetContext(), s.newCustomerRequest("Bharat Supplies"))
	s.NoError(err)

	filter := types.NewNoLimitCustomerFilter()
	filter.GSTRegistered = lo.ToPtr(true)
	resp, err := s.service.GetCustomers(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Acme Traders", resp.Items[0].DisplayName)
}

func (s *CustomerServiceSuite) TestGetCustomerRequiresID() {
	_, err := s.service.GetCustomer(s.GetContext(), "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
