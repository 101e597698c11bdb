package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// QuoteService issues price quotations. Quotes never move stock or take
// payments, so creation is a plain numbered insert.
type QuoteService interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error)
	GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)
	GetQuotes(ctx context.Context, filter *types.QuoteFilter) (*dto.ListQuotesResponse, error)
}

type quoteService struct {
	ServiceParams
}

func NewQuoteService(params ServiceParams) QuoteService {
	return &quoteService{
		ServiceParams: params,
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := req.ToQuote(ctx)

	cust, err := s.CustomerRepo.Get(ctx, q.CustomerID)
	if err != nil {
		return nil, err
	}
	q.CustomerName = cust.DisplayName

	sequenceService := NewSequenceService(s.ServiceParams)

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		number, _, err := sequenceService.NextNumber(txCtx, types.SequenceCounterQuote)
		if err != nil {
			return err
		}
		q.QuoteNumber = number

		return s.QuoteRepo.Create(txCtx, q)
	}); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateQuote,
		fmt.Sprintf("Created Quote: %s", q.QuoteNumber), q.ID, "quotes")

	return &dto.QuoteResponse{Quote: q}, nil
}

func (s *quoteService) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	if id == "" {
		return nil, ierr.NewError("quote ID is required").
			WithHint("Quote ID is required").
			Mark(ierr.ErrValidation)
	}

	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.QuoteResponse{Quote: q}, nil
}

func (s *quoteService) GetQuotes(ctx context.Context, filter *types.QuoteFilter) (*dto.ListQuotesResponse, error) {
	if filter == nil {
		filter = types.NewQuoteFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	quotes, err := s.QuoteRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.QuoteRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, &dto.QuoteResponse{Quote: q})
	}

	return &dto.ListQuotesResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}
