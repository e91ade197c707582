package types

import "strings"

// Address is the delivery destination captured at checkout. Stored as a JSON
// snapshot on the order; pickup orders carry no address.
type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Normalize trims surrounding whitespace, uppercases the postal code, and
// defaults the country. Runs before validation and zone matching.
func (a Address) Normalize() Address {
	out := Address{
		Line1:      strings.TrimSpace(a.Line1),
		City:       strings.TrimSpace(a.City),
		Province:   strings.ToUpper(strings.TrimSpace(a.Province)),
		PostalCode: strings.ToUpper(strings.TrimSpace(a.PostalCode)),
		Country:    strings.TrimSpace(a.Country),
	}
	if out.Country == "" {
		out.Country = "Canada"
	}
	return out
}
