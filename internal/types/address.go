package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Address is a postal address stored as a JSONB column on customers and
// vendors. Field names are part of the wire contract.
type Address struct {
	Attention    string `json:"attention,omitempty"`
	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Pincode      string `json:"pincode,omitempty"`
	Country      string `json:"country,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// Scan implements the sql.Scanner interface for Address
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	return json.Unmarshal(bytes, a)
}

// Value implements the driver.Valuer interface for Address
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}
