package types

import "strings"

// ShippingAddress is the delivery destination captured at checkout. Postal
// code is optional; everything else is required by checkout validation.
// Stored as jsonb.
type ShippingAddress struct {
	Street     string  `json:"street"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postal_code,omitempty"`
}

// IsComplete reports whether the required fields are populated.
func (a ShippingAddress) IsComplete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != ""
}
