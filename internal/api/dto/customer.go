package dto

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/customer"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
)

type CreateCustomerRequest struct {
	DisplayName     string        `json:"displayName" validate:"required,max=255"`
	CompanyName     string        `json:"companyName" validate:"omitempty,max=255"`
	Email           string        `json:"email" validate:"omitempty,email"`
	Phone           string        `json:"phone" validate:"omitempty,max=20"`
	GSTIN           string        `json:"gstin" validate:"omitempty,max=15"`
	PAN             string        `json:"pan" validate:"omitempty,max=10"`
	GSTRegistered   bool          `json:"gstRegistered"`
	BillingAddress  types.Address `json:"billingAddress"`
	ShippingAddress types.Address `json:"shippingAddress"`
	PaymentTerms    string        `json:"paymentTerms" validate:"required,max=50"`
	Notes           string        `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	DisplayName     *string        `json:"displayName" validate:"omitempty,max=255"`
	CompanyName     *string        `json:"companyName" validate:"omitempty,max=255"`
	Email           *string        `json:"email" validate:"omitempty,email"`
	Phone           *string        `json:"phone" validate:"omitempty,max=20"`
	GSTIN           *string        `json:"gstin" validate:"omitempty,max=15"`
	PAN             *string        `json:"pan" validate:"omitempty,max=10"`
	GSTRegistered   *bool          `json:"gstRegistered"`
	BillingAddress  *types.Address `json:"billingAddress"`
	ShippingAddress *types.Address `json:"shippingAddress"`
	PaymentTerms    *string        `json:"paymentTerms" validate:"omitempty,max=50"`
	Notes           *string        `json:"notes"`
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		DisplayName:     r.DisplayName,
		CompanyName:     r.CompanyName,
		Email:           r.Email,
		Phone:           r.Phone,
		GSTIN:           r.GSTIN,
		PAN:             r.PAN,
		GSTRegistered:   r.GSTRegistered,
		BillingAddress:  r.BillingAddress,
		ShippingAddress: r.ShippingAddress,
		PaymentTerms:    r.PaymentTerms,
		Notes:           r.Notes,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the provided fields onto an existing customer.
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	if r.DisplayName != nil {
		c.DisplayName = *r.DisplayName
	}
	if r.CompanyName != nil {
		c.CompanyName = *r.CompanyName
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.GSTIN != nil {
		c.GSTIN = *r.GSTIN
	}
	if r.PAN != nil {
		c.PAN = *r.PAN
	}
	if r.GSTRegistered != nil {
		c.GSTRegistered = *r.GSTRegistered
	}
	if r.BillingAddress != nil {
		c.BillingAddress = *r.BillingAddress
	}
	if r.ShippingAddress != nil {
		c.ShippingAddress = *r.ShippingAddress
	}
	if r.PaymentTerms != nil {
		c.PaymentTerms = *r.PaymentTerms
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
}
