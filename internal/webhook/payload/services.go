package payload

import "github.com/finbooks/finbooks/internal/service"

// Services container for all services needed by payload builders
type Services struct {
	InvoiceService    service.InvoiceService
	PaymentService    service.PaymentService
	CreditNoteService service.CreditNoteService
	ItemService       service.ItemService
}

// NewServices creates a new Services container
func NewServices(
	invoiceService service.InvoiceService,
	paymentService service.PaymentService,
	creditNoteService service.CreditNoteService,
	itemService service.ItemService,
) *Services {
	return &Services{
		InvoiceService:    invoiceService,
		PaymentService:    paymentService,
		CreditNoteService: creditNoteService,
		ItemService:       itemService,
	}
}
