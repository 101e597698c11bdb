package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/finbooks/finbooks/internal/domain/activity"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ActivityServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ActivityService
}

func TestActivityService(t *testing.T) {
	suite.Run(t, new(ActivityServiceSuite))
}

func (s *ActivityServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *ActivityServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *ActivityServiceSuite) setupService() {
	s.service = NewActivityService(ServiceParams{
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

func (s *ActivityServiceSuite) seedEntry(action types.ActivityAction, user, documentID string, ts time.Time) *activity.Entry {
	entry := &activity.Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVITY),
		Timestamp:      ts,
		ActionType:     action,
		User:           user,
		Details:        fmt.Sprintf("%s on %s", action, documentID),
		DocumentID:     documentID,
		CollectionName: "sales_invoices",
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	err := s.GetStores().ActivityRepo.Create(s.GetContext(), entry)
	s.NoError(err)
	return entry
}

func (s *ActivityServiceSuite) TestListActivitiesNewestFirst() {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	oldest := s.seedEntry(types.ActivityCreateInvoice, "user_1", "inv_1", base)
	middle := s.seedEntry(types.ActivityUpdateInvoice, "user_1", "inv_1", base.Add(time.Minute))
	newest := s.seedEntry(types.ActivityRecordPayment, "user_1", "inv_1", base.Add(2*time.Minute))

	resp, err := s.service.ListActivities(s.GetContext(), types.NewActivityFilter())
	s.NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(newest.ID, resp.Items[0].Entry.ID)
	s.Equal(middle.ID, resp.Items[1].Entry.ID)
	s.Equal(oldest.ID, resp.Items[2].Entry.ID)
	s.Equal(3, resp.Pagination.Total)
}

func (s *ActivityServiceSuite) TestListActivitiesFilterByDocument() {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	s.seedEntry(types.ActivityCreateInvoice, "user_1", "inv_1", base)
	s.seedEntry(types.ActivityUpdateInvoice, "user_1", "inv_1", base.Add(time.Minute))
	s.seedEntry(types.ActivityCreateInvoice, "user_1", "inv_2", base.Add(2*time.Minute))

	filter := types.NewActivityFilter()
	filter.DocumentID = "inv_1"

	resp, err := s.service.ListActivities(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	for _, item := range resp.Items {
		s.Equal("inv_1", item.Entry.DocumentID)
	}
}

func (s *ActivityServiceSuite) TestListActivitiesFilterByAction() {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	s.seedEntry(types.ActivityCreateInvoice, "user_1", "inv_1", base)
	s.seedEntry(types.ActivityRecordPayment, "user_1", "inv_1", base.Add(time.Minute))
	s.seedEntry(types.ActivityRecordPayment, "user_1", "inv_2", base.Add(2*time.Minute))

	filter := types.NewActivityFilter()
	filter.ActionType = lo.ToPtr(types.ActivityRecordPayment)

	resp, err := s.service.ListActivities(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	for _, item := range resp.Items {
		s.Equal(types.ActivityRecordPayment, item.Entry.ActionType)
	}
}

func (s *ActivityServiceSuite) TestListActivitiesFilterByUser() {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	s.seedEntry(types.ActivityCreateInvoice, "user_accounts", "inv_1", base)
	s.seedEntry(types.ActivityCreateInvoice, "user_sales", "inv_2", base.Add(time.Minute))

	filter := types.NewActivityFilter()
	filter.User = "user_sales"

	resp, err := s.service.ListActivities(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("user_sales", resp.Items[0].Entry.User)
}

func (s *ActivityServiceSuite) TestListActivitiesPagination() {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.seedEntry(types.ActivityCreateInvoice, "user_1", fmt.Sprintf("inv_%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	filter := types.NewActivityFilter()
	filter.QueryFilter.Limit = lo.ToPtr(2)
	filter.QueryFilter.Offset = lo.ToPtr(2)

	resp, err := s.service.ListActivities(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(5, resp.Pagination.Total)
	s.Equal(2, resp.Pagination.Limit)
	s.Equal(2, resp.Pagination.Offset)
}

func (s *ActivityServiceSuite) TestListActivitiesNilFilterUsesDefaults() {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	s.seedEntry(types.ActivityCreateCustomer, "user_1", "cust_1", base)

	resp, err := s.service.ListActivities(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(1, resp.Pagination.Total)
}
