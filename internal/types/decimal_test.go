package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFlexDecimalUnmarshal(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		want         decimal.Decimal
		wantDegraded bool
	}{
		{
			name: "plain number",
			in:   `120.5`,
			want: decimal.NewFromFloat(120.5),
		},
		{
			name: "quoted number",
			in:   `"120.50"`,
			want: decimal.NewFromFloat(120.5),
		},
		{
			name: "comma grouped",
			in:   `"1,20,000.50"`,
			want: decimal.NewFromFloat(120000.5),
		},
		{
			name: "negative",
			in:   `-42.75`,
			want: decimal.NewFromFloat(-42.75),
		},
		{
			name: "null",
			in:   `null`,
			want: decimal.Zero,
		},
		{
			name: "empty string",
			in:   `""`,
			want: decimal.Zero,
		},
		{
			name:         "unparseable token degrades to zero",
			in:           `"N/A"`,
			want:         decimal.Zero,
			wantDegraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d FlexDecimal
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !d.Decimal.Equal(tt.want) {
				t.Errorf("got %s, want %s", d.Decimal, tt.want)
			}
			if d.Degraded != tt.wantDegraded {
				t.Errorf("degraded = %v, want %v", d.Degraded, tt.wantDegraded)
			}
		})
	}
}

func TestFlexDecimalKeepsRawToken(t *testing.T) {
	var d FlexDecimal
	if err := json.Unmarshal([]byte(`"not a number"`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Raw != "not a number" {
		t.Errorf("raw = %q, want %q", d.Raw, "not a number")
	}
}

func TestFlexDecimalRoundTrip(t *testing.T) {
	in := NewFlexDecimal(decimal.RequireFromString("1250.75"))

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out FlexDecimal
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Decimal.Equal(in.Decimal) {
		t.Errorf("round trip changed value: got %s, want %s", out.Decimal, in.Decimal)
	}
}

func TestFlexTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		want         *time.Time
		wantDegraded bool
	}{
		{
			name: "rfc3339",
			in:   `"2025-04-01T10:30:00Z"`,
			want: timePtr(time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name: "naive datetime",
			in:   `"2025-04-01T10:30:00"`,
			want: timePtr(time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name: "space separated datetime",
			in:   `"2025-04-01 10:30:00"`,
			want: timePtr(time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name: "plain date",
			in:   `"2025-04-01"`,
			want: timePtr(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "null",
			in:   `null`,
		},
		{
			name: "empty string",
			in:   `""`,
		},
		{
			name:         "unparseable token degrades to absent",
			in:           `"yesterday"`,
			wantDegraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexTime
			if err := json.Unmarshal([]byte(tt.in), &ft); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == nil {
				if ft.Time != nil {
					t.Errorf("got %v, want absent", ft.Time)
				}
			} else {
				if ft.Time == nil {
					t.Fatalf("got absent, want %v", tt.want)
				}
				if !ft.Time.Equal(*tt.want) {
					t.Errorf("got %v, want %v", ft.Time, tt.want)
				}
			}
			if ft.Degraded != tt.wantDegraded {
				t.Errorf("degraded = %v, want %v", ft.Degraded, tt.wantDegraded)
			}
		})
	}
}

func TestFlexTimeMarshal(t *testing.T) {
	var absent FlexTime
	data, err := json.Marshal(absent)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("absent time marshaled as %s, want null", data)
	}

	at := time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)
	data, err = json.Marshal(FlexTime{Time: &at})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-04-01T10:30:00Z"` {
		t.Errorf("got %s, want %q", data, "2025-04-01T10:30:00Z")
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
