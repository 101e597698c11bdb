package types

// SequenceCounter names a per-tenant document number counter held on the
// tenant's invoice settings row. The allocator increments exactly one of
// these per call.
type SequenceCounter string

const (
	SequenceCounterInvoice    SequenceCounter = "nextInvoiceNumber"
	SequenceCounterCreditNote SequenceCounter = "nextCreditNoteNumber"
	SequenceCounterQuote      SequenceCounter = "nextQuoteNumber"
)

func (c SequenceCounter) String() string {
	return string(c)
}

// Valid reports whether c is a known counter.
func (c SequenceCounter) Valid() bool {
	switch c {
	case SequenceCounterInvoice, SequenceCounterCreditNote, SequenceCounterQuote:
		return true
	}
	return false
}
