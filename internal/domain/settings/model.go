package settings

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// Theme is one saved invoice theme profile. The default theme drives
// document number formatting and the tax display mode for new invoices.
// JSON field names are the wire contract.
type Theme struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`

	InvoicePrefix    string `json:"invoicePrefix"`
	InvoiceSuffix    string `json:"invoiceSuffix,omitempty"`
	CreditNotePrefix string `json:"creditNotePrefix"`

	// TaxType switches invoice tax handling, default or no_tax
	TaxType types.TaxDisplayMode `json:"taxType"`

	SelectedColor    string          `json:"selectedColor,omitempty"`
	ItemTableColumns map[string]bool `json:"itemTableColumns,omitempty"`
	NotesDefault     string          `json:"notesDefault,omitempty"`
}

// Themes is the JSONB list of saved theme profiles.
type Themes []Theme

// Scan implements the sql.Scanner interface for Themes
func (t *Themes) Scan(value interface{}) error {
	if value == nil {
		*t = Themes{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
	return json.Unmarshal(bytes, t)
}

// Value implements the driver.Valuer interface for Themes
func (t Themes) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(Themes{})
	}
	return json.Marshal(t)
}

// InvoiceSettings is the per-tenant settings row: document number
// counters plus the saved invoice themes. Exactly one row per tenant;
// the counters are relational columns so sequence allocation can
// increment them in a single atomic statement.
type InvoiceSettings struct {
	// ID is the unique identifier for the settings row
	ID string `db:"id" json:"id"`

	ActiveThemeName string `db:"active_theme_name" json:"activeThemeName"`

	// Counters hold the next number to allocate for each document kind
	NextInvoiceNumber    int64 `db:"next_invoice_number" json:"nextInvoiceNumber"`
	NextCreditNoteNumber int64 `db:"next_credit_note_number" json:"nextCreditNoteNumber"`
	NextQuoteNumber      int64 `db:"next_quote_number" json:"nextQuoteNumber"`

	SavedThemes Themes `db:"saved_themes" json:"savedThemes"`

	types.BaseModel
}

func (s *InvoiceSettings) TableName() string {
	return "invoice_settings"
}

// DefaultTheme returns the theme marked as default, falling back to the
// first saved theme, then to the built-in one.
func (s *InvoiceSettings) DefaultTheme() Theme {
	if s != nil {
		if theme, ok := lo.Find(s.SavedThemes, func(t Theme) bool { return t.IsDefault }); ok {
			return theme
		}
		if len(s.SavedThemes) > 0 {
			return s.SavedThemes[0]
		}
	}
	return BuiltinTheme()
}

// BuiltinTheme is the theme used before a tenant ever saves settings.
func BuiltinTheme() Theme {
	return Theme{
		Name:             "Modern",
		IsDefault:        true,
		InvoicePrefix:    "INV-",
		CreditNotePrefix: "CRN-",
		TaxType:          types.TaxDisplayModeDefault,
		SelectedColor:    "#4CAF50",
		ItemTableColumns: map[string]bool{
			"pricePerItem":    true,
			"quantity":        true,
			"batchNo":         false,
			"expDate":         false,
			"mfgDate":         false,
			"discountPerItem": false,
			"taxPerItem":      true,
			"hsnSacCode":      true,
			"serialNo":        false,
		},
		NotesDefault: "Thank you for your business!",
	}
}

// Default returns the settings served before a tenant ever saves a row.
func Default(tenantID string) *InvoiceSettings {
	return &InvoiceSettings{
		ActiveThemeName:      "Modern",
		NextInvoiceNumber:    1,
		NextCreditNoteNumber: 1,
		NextQuoteNumber:      1,
		SavedThemes:          Themes{BuiltinTheme()},
		BaseModel: types.BaseModel{
			TenantID: tenantID,
			Status:   types.StatusPublished,
		},
	}
}

func (s *InvoiceSettings) Validate() error {
	defaults := lo.CountBy(s.SavedThemes, func(t Theme) bool { return t.IsDefault })
	if len(s.SavedThemes) > 0 && defaults != 1 {
		return ierr.NewError("exactly one default theme is required").
			WithHint("Mark exactly one saved theme as default").
			WithReportableDetails(map[string]interface{}{
				"default_count": defaults,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
