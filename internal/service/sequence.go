package service

import (
	"context"
	"strconv"

	"github.com/finbooks/finbooks/internal/types"
)

// SequenceService hands out per-tenant document numbers. Allocation is a
// single atomic increment on the settings row, so two concurrent
// requests can never receive the same number.
type SequenceService interface {
	// NextNumber allocates the next number for the counter and returns
	// it formatted with the default theme's prefix and suffix, along
	// with the raw sequence value.
	NextNumber(ctx context.Context, counter types.SequenceCounter) (string, int64, error)
}

type sequenceService struct {
	ServiceParams
}

func NewSequenceService(params ServiceParams) SequenceService {
	return &sequenceService{
		ServiceParams: params,
	}
}

func (s *sequenceService) NextNumber(ctx context.Context, counter types.SequenceCounter) (string, int64, error) {
	settingsService := NewSettingsService(s.ServiceParams)
	theme, err := settingsService.GetDefaultTheme(ctx)
	if err != nil {
		return "", 0, err
	}

	raw, err := s.SettingsRepo.IncrementCounter(ctx, counter)
	if err != nil {
		return "", 0, err
	}

	var prefix, suffix string
	switch counter {
	case types.SequenceCounterInvoice:
		prefix = theme.InvoicePrefix
		suffix = theme.InvoiceSuffix
		if prefix == "" {
			prefix = "INV-"
		}
	case types.SequenceCounterCreditNote:
		prefix = theme.CreditNotePrefix
		if prefix == "" {
			prefix = "CRN-"
		}
	case types.SequenceCounterQuote:
		// quote numbering is not themed
		prefix = "QUO-"
	}

	formatted := prefix + strconv.FormatInt(raw, 10) + suffix

	s.Logger.Debugw("allocated document number",
		"counter", counter,
		"number", formatted,
		"raw", raw,
		"tenant_id", types.GetTenantID(ctx),
	)

	return formatted, raw, nil
}
