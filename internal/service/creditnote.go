package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	webhookDto "github.com/finbooks/finbooks/internal/webhook/dto"
)

// CreditNoteService issues credit notes. Notes are immutable once
// created; a note whose reason marks returned goods puts the credited
// product quantities back into stock in the same transaction.
type CreditNoteService interface {
	CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest) (*dto.CreditNoteResponse, error)
	GetCreditNote(ctx context.Context, id string) (*dto.CreditNoteResponse, error)
	GetCreditNotes(ctx context.Context, filter *types.CreditNoteFilter) (*dto.ListCreditNotesResponse, error)
}

type creditNoteService struct {
	ServiceParams
}

func NewCreditNoteService(params ServiceParams) CreditNoteService {
	return &creditNoteService{
		ServiceParams: params,
	}
}

func (s *creditNoteService) CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest) (*dto.CreditNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Amount.Degraded || req.IssueDate.Degraded {
		s.Logger.Warnw("credit note fields could not be parsed and fell back to defaults",
			"amount_raw", req.Amount.Raw,
			"issue_date_raw", req.IssueDate.Raw,
			"tenant_id", types.GetTenantID(ctx))
	}

	note := req.ToCreditNote(ctx)

	cust, err := s.CustomerRepo.Get(ctx, note.CustomerID)
	if err != nil {
		return nil, err
	}
	note.CustomerName = cust.DisplayName

	sequenceService := NewSequenceService(s.ServiceParams)
	stockService := NewStockService(s.ServiceParams)

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		number, _, err := sequenceService.NextNumber(txCtx, types.SequenceCounterCreditNote)
		if err != nil {
			return err
		}
		note.CreditNoteNumber = number

		if err := s.CreditNoteRepo.Create(txCtx, note); err != nil {
			return err
		}

		if !note.RestocksInventory() {
			return nil
		}
		for _, li := range note.LineItems {
			if !li.MovesStock() || !li.Quantity.IsPositive() {
				continue
			}
			if _, err := stockService.ApplyTransaction(txCtx, li.ItemID,
				types.StockTransactionIn, li.Quantity, nil,
				fmt.Sprintf("Return against Credit Note #%s", note.CreditNoteNumber)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateCreditNote,
		fmt.Sprintf("Created Credit Note: %s", note.CreditNoteNumber), note.ID, "credit_notes")

	s.publishWebhookEvent(ctx, types.WebhookEventCreditNoteCreated, webhookDto.InternalCreditNoteEvent{
		CreditNoteID: note.ID,
		TenantID:     types.GetTenantID(ctx),
	})

	return &dto.CreditNoteResponse{CreditNote: note}, nil
}

func (s *creditNoteService) GetCreditNote(ctx context.Context, id string) (*dto.CreditNoteResponse, error) {
	if id == "" {
		return nil, ierr.NewError("credit note ID is required").
			WithHint("Credit note ID is required").
			Mark(ierr.ErrValidation)
	}

	note, err := s.CreditNoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CreditNoteResponse{CreditNote: note}, nil
}

func (s *creditNoteService) GetCreditNotes(ctx context.Context, filter *types.CreditNoteFilter) (*dto.ListCreditNotesResponse, error) {
	if filter == nil {
		filter = types.NewCreditNoteFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	notes, err := s.CreditNoteRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.CreditNoteRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CreditNoteResponse, 0, len(notes))
	for _, note := range notes {
		items = append(items, &dto.CreditNoteResponse{CreditNote: note})
	}

	return &dto.ListCreditNotesResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}
