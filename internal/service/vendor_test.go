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

type VendorServiceSuite struct {
	testutil.BaseServiceTestSuite
	service VendorService
}

func TestVendorService(t *testing.T) {
	suite.Run(t, new(VendorServiceSuite))
}

func (s *VendorServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *VendorServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *VendorServiceSuite) setupService() {
	s.service = NewVendorService(ServiceParams{
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

func (s *VendorServiceSuite) newVendorRequest(name string) dto.CreateVendorRequest {
	return dto.CreateVendorRequest{
		DisplayName: name,
		CompanyName: name + " Pvt Ltd",
		Email:       "sales@sharmapack.test",
		BillingAddress: types.Address{
			AddressLine1: "Plot 7, GIDC",
			City:         "Vadodara",
			State:        "Gujarat",
		},
	}
}

func (s *VendorServiceSuite) TestCreateVendor() {
	req := s.newVendorRequest("Sharma Packaging")
	req.GSTIN = "24AADCS9012H1Z8"
	req.GSTRegistered = true
	req.PaymentTerms = "Net 45"

	resp, err := s.service.CreateVendor(s.GetContext(), req)
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal("Sharma Packaging", resp.DisplayName)
	s.Equal("24AADCS9012H1Z8", resp.GSTIN)
	s.True(resp.GSTRegistered)
	s.Equal("Vadodara", resp.BillingAddress.City)

	entries, err := s.GetStores().ActivityRepo.List(s.GetContext(), &types.ActivityFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		DocumentID:  resp.ID,
	})
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal(types.ActivityCreateVendor, entries[0].ActionType)
	s.Equal("Created Vendor: Sharma Packaging", entries[0].Details)
}

func (s *VendorServiceSuite) TestCreateVendorRequiresDisplayName() {
	req := s.newVendorRequest("")

	resp, err := s.service.CreateVendor(s.GetContext(), req)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}

func (s *VendorServiceSuite) TestCreateVendorRejectsMalformedEmail() {
	req := s.newVendorRequest("Sharma Packaging")
	req.Email = "not-an-email"

	_, err := s.service.CreateVendor(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *VendorServiceSuite) TestUpdateVendorAppliesPartialFields() {
	created, err := s.service.CreateVendor(s.GetContext(), s.newVendorRequest("Sharma Packaging"))
	s.NoError(err)

	resp, err := s.service.UpdateVendor(s.GetContext(), created.ID, dto.UpdateVendorRequest{
		Phone:        lo.ToPtr("+91 98250 44556"),
		PaymentTerms: lo.ToPtr("Net 60"),
	})
	s.NoError(err)
	s.Equal("+91 98250 44556", resp.Phone)
	s.Equal("Net 60", resp.PaymentTerms)
	s.Equal("Sharma Packaging", resp.DisplayName)
	s.Equal("sales@sharmapack.test", resp.Email)
}

func (s *VendorServiceSuite) TestUpdateVendorNotFound() {
	_, err := s.service.UpdateVendor(s.GetContext(), "vend_missing", dto.UpdateVendorRequest{
		Phone: lo.ToPtr("12345"),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *VendorServiceSuite) TestDeleteVendor() {
	created, err := s.service.CreateVendor(s.GetContext(), s.newVendorRequest("Sharma Packaging"))
	s.NoError(err)

	s.NoError(s.service.DeleteVendor(s.GetContext(), created.ID))

	_, err = s.service.GetVendor(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *VendorServiceSuite) TestGetVendorsSearch() {
	_, err := s.service.CreateVendor(s.GetContext(), s.newVendorRequest("Sharma Packaging"))
	s.NoError(err)
	other := s.newVendorRequest("Mehta Logistics")
	other.Email = "ops@mehtalogistics.test"
	_, err = s.service.CreateVendor(s.GetContext(), other)
	s.NoError(err)

	filter := types.NewNoLimitVendorFilter()
	filter.Search = "sharma"
	resp, err := s.service.GetVendors(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Sharma Packaging", resp.Items[0].DisplayName)
}

func (s *VendorServiceSuite) TestGetVendorsFilterByIDs() {
	first, err := s.service.CreateVendor(s.GetContext(), s.newVendorRequest("Sharma Packaging"))
	s.NoError(err)
	_, err = s.service.CreateVendor(s.GetContext(), s.newVendorRequest("Mehta Logistics"))
	s.NoError(err)

	filter := types.NewNoLimitVendorFilter()
	filter.VendorIDs = []string{first.ID}
	resp, err := s.service.GetVendors(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal(first.ID, resp.Items[0].ID)
}

func (s *VendorServiceSuite) TestGetVendorRequiresID() {
	_, err := s.service.GetVendor(s.GetContext(), "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
