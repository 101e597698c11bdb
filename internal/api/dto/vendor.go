package dto

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/vendor"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
)

type CreateVendorRequest struct {
	DisplayName     string        `json:"displayName" validate:"required,max=255"`
	CompanyName     string        `json:"companyName" validate:"omitempty,max=255"`
	Email           string        `json:"email" validate:"omitempty,email"`
	Phone           string        `json:"phone" validate:"omitempty,max=20"`
	GSTIN           string        `json:"gstin" validate:"omitempty,max=15"`
	PAN             string        `json:"pan" validate:"omitempty,max=10"`
	GSTRegistered   bool          `json:"gstRegistered"`
	BillingAddress  types.Address `json:"billingAddress"`
	ShippingAddress types.Address `json:"shippingAddress"`
	PaymentTerms    string        `json:"paymentTerms" validate:"omitempty,max=50"`
	Notes           string        `json:"notes,omitempty"`
}

type UpdateVendorRequest struct {
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

type VendorResponse struct {
	*vendor.Vendor
}

// ListVendorsResponse represents the response for listing vendors
type ListVendorsResponse = types.ListResponse[*VendorResponse]

func (r *CreateVendorRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateVendorRequest) ToVendor(ctx context.Context) *vendor.Vendor {
	return &vendor.Vendor{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VENDOR),
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

func (r *UpdateVendorRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the provided fields onto an existing vendor.
func (r *UpdateVendorRequest) Apply(v *vendor.Vendor) {
	if r.DisplayName != nil {
		v.DisplayName = *r.DisplayName
	}
	if r.CompanyName != nil {
		v.CompanyName = *r.CompanyName
	}
	if r.Email != nil {
		v.Email = *r.Email
	}
	if r.Phone != nil {
		v.Phone = *r.Phone
	}
	if r.GSTIN != nil {
		v.GSTIN = *r.GSTIN
	}
	if r.PAN != nil {
		v.PAN = *r.PAN
	}
	if r.GSTRegistered != nil {
		v.GSTRegistered = *r.GSTRegistered
	}
	if r.BillingAddress != nil {
		v.BillingAddress = *r.BillingAddress
	}
	if r.ShippingAddress != nil {
		v.ShippingAddress = *r.ShippingAddress
	}
	if r.PaymentTerms != nil {
		v.PaymentTerms = *r.PaymentTerms
	}
	if r.Notes != nil {
		v.Notes = *r.Notes
	}
}
