package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FlexDecimal is a decimal that tolerates the numeric sloppiness of
// existing clients. Plain JSON numbers, quoted numbers and comma grouped
// strings ("1,000.50") all parse; anything else degrades to zero and
// flags the value instead of failing the whole request.
type FlexDecimal struct {
	decimal.Decimal

	// Degraded is set when the wire value could not be parsed and the
	// amount fell back to zero. Services log these before persisting.
	Degraded bool `json:"-"`

	// Raw keeps the original wire token for the degradation warning.
	Raw string `json:"-"`
}

// NewFlexDecimal wraps an already parsed decimal.
func NewFlexDecimal(d decimal.Decimal) FlexDecimal {
	return FlexDecimal{Decimal: d}
}

func (d *FlexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		d.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	d.Raw = s
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		d.Decimal = decimal.Zero
		return nil
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		d.Decimal = decimal.Zero
		d.Degraded = true
		return nil
	}
	d.Decimal = parsed
	return nil
}

// FlexTime is a timestamp that accepts RFC 3339 as well as the plain
// date and datetime layouts older clients send. Unparseable values
// degrade to an absent time rather than failing the request.
type FlexTime struct {
	Time *time.Time

	// Degraded is set when a non-empty wire value could not be parsed.
	Degraded bool

	// Raw keeps the original wire token for the degradation warning.
	Raw string
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		t.Time = nil
		return nil
	}
	s = strings.Trim(s, `"`)
	t.Raw = s
	if s == "" {
		t.Time = nil
		return nil
	}
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			parsed = parsed.UTC()
			t.Time = &parsed
			return nil
		}
	}
	t.Time = nil
	t.Degraded = true
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.Time == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.UTC().Format(time.RFC3339) + `"`), nil
}
