package enums

import "fmt"

// QuoteStatus reports whether a shipping quote could be computed. An
// unresolved quote is an intermediate state, not an error: it keeps the
// delivery price pending until the shopper supplies a valid postal code.
type QuoteStatus string

const (
	QuoteStatusResolved   QuoteStatus = "resolved"
	QuoteStatusUnresolved QuoteStatus = "unresolved"
)

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteStatus.
func (q QuoteStatus) IsValid() bool {
	return q == QuoteStatusResolved || q == QuoteStatusUnresolved
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	switch QuoteStatus(value) {
	case QuoteStatusResolved, QuoteStatusUnresolved:
		return QuoteStatus(value), nil
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
