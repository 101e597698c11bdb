package dto

import (
	"github.com/finbooks/finbooks/internal/domain/settings"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/validator"
)

// GlobalInvoiceSettings carries the tenant's document number counters.
// Each counter stores the next number to hand out.
type GlobalInvoiceSettings struct {
	NextInvoiceNumber    int64 `json:"nextInvoiceNumber" validate:"omitempty,min=1"`
	NextCreditNoteNumber int64 `json:"nextCreditNoteNumber" validate:"omitempty,min=1"`
	NextQuoteNumber      int64 `json:"nextQuoteNumber" validate:"omitempty,min=1"`
}

// InvoiceSettingsResponse is the settings document as clients know it:
// counters nested under "global", themes under "savedThemes".
type InvoiceSettingsResponse struct {
	Global          GlobalInvoiceSettings `json:"global"`
	ActiveThemeName string                `json:"activeThemeName"`
	SavedThemes     []settings.Theme      `json:"savedThemes"`
}

// UpdateInvoiceSettingsRequest replaces the provided sections of the
// settings document; omitted sections keep their stored values.
type UpdateInvoiceSettingsRequest struct {
	Global          *GlobalInvoiceSettings `json:"global"`
	ActiveThemeName *string                `json:"activeThemeName" validate:"omitempty,max=100"`
	SavedThemes     []settings.Theme       `json:"savedThemes"`
}

// NewInvoiceSettingsResponse re-nests the stored row into the wire shape.
func NewInvoiceSettingsResponse(s *settings.InvoiceSettings) *InvoiceSettingsResponse {
	return &InvoiceSettingsResponse{
		Global: GlobalInvoiceSettings{
			NextInvoiceNumber:    s.NextInvoiceNumber,
			NextCreditNoteNumber: s.NextCreditNoteNumber,
			NextQuoteNumber:      s.NextQuoteNumber,
		},
		ActiveThemeName: s.ActiveThemeName,
		SavedThemes:     s.SavedThemes,
	}
}

func (r *UpdateInvoiceSettingsRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if len(r.SavedThemes) > 0 {
		defaults := 0
		for _, t := range r.SavedThemes {
			if t.Name == "" {
				return ierr.NewError("theme name is required").
					WithHint("Every saved theme needs a name").
					Mark(ierr.ErrValidation)
			}
			if t.IsDefault {
				defaults++
			}
		}
		if defaults != 1 {
			return ierr.NewError("exactly one default theme is required").
				WithHint("Mark exactly one saved theme as the default").
				WithReportableDetails(map[string]interface{}{
					"default_count": defaults,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// Apply copies the provided sections onto the stored settings row.
func (r *UpdateInvoiceSettingsRequest) Apply(s *settings.InvoiceSettings) {
	if r.Global != nil {
		if r.Global.NextInvoiceNumber > 0 {
			s.NextInvoiceNumber = r.Global.NextInvoiceNumber
		}
		if r.Global.NextCreditNoteNumber > 0 {
			s.NextCreditNoteNumber = r.Global.NextCreditNoteNumber
		}
		if r.Global.NextQuoteNumber > 0 {
			s.NextQuoteNumber = r.Global.NextQuoteNumber
		}
	}
	if r.ActiveThemeName != nil {
		s.ActiveThemeName = *r.ActiveThemeName
	}
	if len(r.SavedThemes) > 0 {
		s.SavedThemes = settings.Themes(r.SavedThemes)
	}
}
