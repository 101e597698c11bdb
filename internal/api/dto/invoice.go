package dto

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
	"github.com/shopspring/decimal"
)

// InvoiceLineItemRequest is one line on an incoming invoice, credit note
// or quote payload. Amount fields bind permissively; see types.FlexDecimal.
type InvoiceLineItemRequest struct {
	ItemID      string         `json:"itemId,omitempty"`
	ItemType    types.ItemType `json:"itemType,omitempty"`
	Description string         `json:"description" validate:"omitempty,max=500"`
	HSNSAC      string         `json:"hsnSac,omitempty"`

	Quantity        types.FlexDecimal `json:"quantity"`
	Rate            types.FlexDecimal `json:"rate"`
	DiscountPerItem types.FlexDecimal `json:"discountPerItem"`
	TaxRate         types.FlexDecimal `json:"taxRate"`
	TaxAmount       types.FlexDecimal `json:"taxAmount"`
	Amount          types.FlexDecimal `json:"amount"`
}

// ToLineItem converts the wire line into its domain form. An absent
// quantity means one unit; an explicit zero is kept as sent.
func (r InvoiceLineItemRequest) ToLineItem() invoice.LineItem {
	qty := r.Quantity.Decimal
	if r.Quantity.Raw == "" && qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	return invoice.LineItem{
		ItemID:          r.ItemID,
		ItemType:        r.ItemType,
		Description:     r.Description,
		HSNSAC:          r.HSNSAC,
		Quantity:        qty,
		Rate:            r.Rate.Decimal,
		DiscountPerItem: r.DiscountPerItem.Decimal,
		TaxRate:         r.TaxRate.Decimal,
		TaxAmount:       r.TaxAmount.Decimal,
		Amount:          r.Amount.Decimal,
	}
}

type CreateInvoiceRequest struct {
	// InvoiceNumber is honored when supplied (imports, migrations);
	// left empty it is allocated from the tenant's sequence
	InvoiceNumber string `json:"invoiceNumber" validate:"omitempty,max=50"`

	InvoiceDate types.FlexTime `json:"invoiceDate"`
	DueDate     types.FlexTime `json:"dueDate"`

	CustomerID string `json:"customerId" validate:"required"`

	CustomerGSTIN   string `json:"customerGstin,omitempty"`
	CustomerAddress string `json:"customerAddress,omitempty"`
	ShipToAddress   string `json:"shipToAddress,omitempty"`

	LineItems []InvoiceLineItemRequest `json:"lineItems" validate:"required,min=1"`

	SubTotal types.FlexDecimal `json:"subTotal"`

	DiscountType             types.DiscountType `json:"discountType,omitempty"`
	DiscountValue            string             `json:"discountValue,omitempty"`
	DiscountAmountCalculated types.FlexDecimal  `json:"discountAmountCalculated"`

	TaxableAmount types.FlexDecimal `json:"taxableAmount"`
	CGSTAmount    types.FlexDecimal `json:"cgstAmount"`
	SGSTAmount    types.FlexDecimal `json:"sgstAmount"`
	IGSTAmount    types.FlexDecimal `json:"igstAmount"`
	CessAmount    types.FlexDecimal `json:"cessAmount"`
	TaxTotal      types.FlexDecimal `json:"taxTotal"`

	GrandTotal types.FlexDecimal `json:"grandTotal"`
	AmountPaid types.FlexDecimal `json:"amountPaid"`

	Notes              string `json:"notes,omitempty"`
	TermsAndConditions string `json:"termsAndConditions,omitempty"`
	Currency           string `json:"currency,omitempty"`

	Status types.InvoiceStatus `json:"status,omitempty"`

	// IgnoreStockWarning skips the aggregate stock pre-validation so a
	// knowingly oversold invoice can still be recorded
	IgnoreStockWarning bool `json:"ignoreStockWarning,omitempty"`
}

// UpdateInvoiceRequest replaces the document's editable content. The
// invoice number is immutable once allocated and payment fields move
// only through recorded payments.
type UpdateInvoiceRequest struct {
	InvoiceDate types.FlexTime `json:"invoiceDate"`
	DueDate     types.FlexTime `json:"dueDate"`

	CustomerID string `json:"customerId,omitempty"`

	CustomerGSTIN   *string `json:"customerGstin"`
	CustomerAddress *string `json:"customerAddress"`
	ShipToAddress   *string `json:"shipToAddress"`

	LineItems []InvoiceLineItemRequest `json:"lineItems" validate:"omitempty,min=1"`

	SubTotal *types.FlexDecimal `json:"subTotal"`

	DiscountType             types.DiscountType `json:"discountType,omitempty"`
	DiscountValue            *string            `json:"discountValue"`
	DiscountAmountCalculated *types.FlexDecimal `json:"discountAmountCalculated"`

	TaxableAmount *types.FlexDecimal `json:"taxableAmount"`
	CGSTAmount    *types.FlexDecimal `json:"cgstAmount"`
	SGSTAmount    *types.FlexDecimal `json:"sgstAmount"`
	IGSTAmount    *types.FlexDecimal `json:"igstAmount"`
	CessAmount    *types.FlexDecimal `json:"cessAmount"`
	TaxTotal      *types.FlexDecimal `json:"taxTotal"`

	GrandTotal *types.FlexDecimal `json:"grandTotal"`

	Notes              *string `json:"notes"`
	TermsAndConditions *string `json:"termsAndConditions"`

	Status types.InvoiceStatus `json:"status,omitempty"`

	IgnoreStockWarning bool `json:"ignoreStockWarning,omitempty"`
}

type InvoiceResponse struct {
	*invoice.Invoice
}

// ListInvoicesResponse represents the response for listing sales invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

// InvoiceStatusSummary is the count and value of invoices in one status.
type InvoiceStatusSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// InvoiceAgingBuckets groups unpaid balances by how far past due they
// are, measured from dueDate against now.
type InvoiceAgingBuckets struct {
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days1To30"`
	Days31To60 decimal.Decimal `json:"days31To60"`
	Days61To90 decimal.Decimal `json:"days61To90"`
	Days90Plus decimal.Decimal `json:"days90Plus"`
}

// InvoiceSummaryResponse is the receivables dashboard payload.
type InvoiceSummaryResponse struct {
	TotalInvoices    int                             `json:"totalInvoices"`
	TotalOutstanding decimal.Decimal                 `json:"totalOutstanding"`
	ByStatus         map[string]InvoiceStatusSummary `json:"byStatus"`
	Aging            InvoiceAgingBuckets             `json:"aging"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != "" && !r.Status.Valid() {
		return ierr.NewError("invalid invoice status").
			WithHint("Unknown invoice status").
			WithReportableDetails(map[string]interface{}{
				"status": r.Status,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToInvoice builds the domain document. Number allocation, customer
// snapshotting and total recalculation happen in the service.
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	lines := make(invoice.LineItems, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		lines = append(lines, li.ToLineItem())
	}

	status := r.Status
	if status == "" {
		status = types.InvoiceStatusDraft
	}
	currency := r.Currency
	if currency == "" {
		currency = "INR"
	}

	return &invoice.Invoice{
		ID:                       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber:            r.InvoiceNumber,
		InvoiceDate:              r.InvoiceDate.Time,
		DueDate:                  r.DueDate.Time,
		CustomerID:               r.CustomerID,
		CustomerGSTIN:            r.CustomerGSTIN,
		CustomerAddress:          r.CustomerAddress,
		ShipToAddress:            r.ShipToAddress,
		LineItems:                lines,
		SubTotal:                 r.SubTotal.Decimal,
		DiscountType:             r.DiscountType,
		DiscountValue:            r.DiscountValue,
		DiscountAmountCalculated: r.DiscountAmountCalculated.Decimal,
		TaxableAmount:            r.TaxableAmount.Decimal,
		CGSTAmount:               r.CGSTAmount.Decimal,
		SGSTAmount:               r.SGSTAmount.Decimal,
		IGSTAmount:               r.IGSTAmount.Decimal,
		CessAmount:               r.CessAmount.Decimal,
		TaxTotal:                 r.TaxTotal.Decimal,
		GrandTotal:               r.GrandTotal.Decimal,
		AmountPaid:               r.AmountPaid.Decimal,
		Notes:                    r.Notes,
		TermsAndConditions:       r.TermsAndConditions,
		Currency:                 currency,
		Status:                   status,
		Version:                  1,
		BaseModel:                types.GetDefaultBaseModel(ctx),
	}
}

// DegradedFields lists the wire fields whose values could not be parsed
// and fell back to defaults. The service logs them before persisting.
func (r *CreateInvoiceRequest) DegradedFields() []string {
	var fields []string
	appendDegraded := func(name string, d types.FlexDecimal) {
		if d.Degraded {
			fields = append(fields, name)
		}
	}
	appendDegraded("subTotal", r.SubTotal)
	appendDegraded("discountAmountCalculated", r.DiscountAmountCalculated)
	appendDegraded("taxableAmount", r.TaxableAmount)
	appendDegraded("cgstAmount", r.CGSTAmount)
	appendDegraded("sgstAmount", r.SGSTAmount)
	appendDegraded("igstAmount", r.IGSTAmount)
	appendDegraded("cessAmount", r.CessAmount)
	appendDegraded("taxTotal", r.TaxTotal)
	appendDegraded("grandTotal", r.GrandTotal)
	appendDegraded("amountPaid", r.AmountPaid)
	if r.InvoiceDate.Degraded {
		fields = append(fields, "invoiceDate")
	}
	if r.DueDate.Degraded {
		fields = append(fields, "dueDate")
	}
	for i, li := range r.LineItems {
		fields = append(fields, li.degradedFields(i)...)
	}
	return fields
}

// degradedFields reports the line's unparseable wire values, prefixed
// with the line's position so the log pinpoints the offending field.
func (r InvoiceLineItemRequest) degradedFields(index int) []string {
	var fields []string
	checks := []struct {
		name string
		d    types.FlexDecimal
	}{
		{"quantity", r.Quantity},
		{"rate", r.Rate},
		{"discountPerItem", r.DiscountPerItem},
		{"taxRate", r.TaxRate},
		{"taxAmount", r.TaxAmount},
		{"amount", r.Amount},
	}
	for _, c := range checks {
		if c.d.Degraded {
			fields = append(fields, fmt.Sprintf("lineItems[%d].%s", index, c.name))
		}
	}
	return fields
}

func (r *UpdateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != "" && !r.Status.Valid() {
		return ierr.NewError("invalid invoice status").
			WithHint("Unknown invoice status").
			WithReportableDetails(map[string]interface{}{
				"status": r.Status,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DegradedFields lists the wire fields whose values could not be parsed
// and fell back to defaults.
func (r *UpdateInvoiceRequest) DegradedFields() []string {
	var fields []string
	appendDegraded := func(name string, d *types.FlexDecimal) {
		if d != nil && d.Degraded {
			fields = append(fields, name)
		}
	}
	appendDegraded("subTotal", r.SubTotal)
	appendDegraded("discountAmountCalculated", r.DiscountAmountCalculated)
	appendDegraded("taxableAmount", r.TaxableAmount)
	appendDegraded("cgstAmount", r.CGSTAmount)
	appendDegraded("sgstAmount", r.SGSTAmount)
	appendDegraded("igstAmount", r.IGSTAmount)
	appendDegraded("cessAmount", r.CessAmount)
	appendDegraded("taxTotal", r.TaxTotal)
	appendDegraded("grandTotal", r.GrandTotal)
	if r.InvoiceDate.Degraded {
		fields = append(fields, "invoiceDate")
	}
	if r.DueDate.Degraded {
		fields = append(fields, "dueDate")
	}
	for i, li := range r.LineItems {
		fields = append(fields, li.degradedFields(i)...)
	}
	return fields
}

// Apply copies the provided fields onto an existing invoice. Status is
// handled by the caller so the Draft transition can be observed first.
func (r *UpdateInvoiceRequest) Apply(inv *invoice.Invoice) {
	if r.InvoiceDate.Time != nil {
		inv.InvoiceDate = r.InvoiceDate.Time
	}
	if r.DueDate.Time != nil {
		inv.DueDate = r.DueDate.Time
	}
	if r.CustomerGSTIN != nil {
		inv.CustomerGSTIN = *r.CustomerGSTIN
	}
	if r.CustomerAddress != nil {
		inv.CustomerAddress = *r.CustomerAddress
	}
	if r.ShipToAddress != nil {
		inv.ShipToAddress = *r.ShipToAddress
	}
	if len(r.LineItems) > 0 {
		lines := make(invoice.LineItems, 0, len(r.LineItems))
		for _, li := range r.LineItems {
			lines = append(lines, li.ToLineItem())
		}
		inv.LineItems = lines
	}
	if r.SubTotal != nil {
		inv.SubTotal = r.SubTotal.Decimal
	}
	if r.DiscountType != "" {
		inv.DiscountType = r.DiscountType
	}
	if r.DiscountValue != nil {
		inv.DiscountValue = *r.DiscountValue
	}
	if r.DiscountAmountCalculated != nil {
		inv.DiscountAmountCalculated = r.DiscountAmountCalculated.Decimal
	}
	if r.TaxableAmount != nil {
		inv.TaxableAmount = r.TaxableAmount.Decimal
	}
	if r.CGSTAmount != nil {
		inv.CGSTAmount = r.CGSTAmount.Decimal
	}
	if r.SGSTAmount != nil {
		inv.SGSTAmount = r.SGSTAmount.Decimal
	}
	if r.IGSTAmount != nil {
		inv.IGSTAmount = r.IGSTAmount.Decimal
	}
	if r.CessAmount != nil {
		inv.CessAmount = r.CessAmount.Decimal
	}
	if r.TaxTotal != nil {
		inv.TaxTotal = r.TaxTotal.Decimal
	}
	if r.GrandTotal != nil {
		inv.GrandTotal = r.GrandTotal.Decimal
	}
	if r.Notes != nil {
		inv.Notes = *r.Notes
	}
	if r.TermsAndConditions != nil {
		inv.TermsAndConditions = *r.TermsAndConditions
	}
}
