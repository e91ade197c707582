package enums

import "fmt"

// TotalsState is the tagged state of an order's grand total. Pending means
// shipping is not yet resolvable for a delivery order; consumers must never
// read the grand total amount unless the state is resolved.
type TotalsState string

const (
	TotalsStateResolved TotalsState = "resolved"
	TotalsStatePending  TotalsState = "pending"
	TotalsStateInvalid  TotalsState = "invalid"
)

var validTotalsStates = []TotalsState{
	TotalsStateResolved,
	TotalsStatePending,
	TotalsStateInvalid,
}

// String implements fmt.Stringer.
func (t TotalsState) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TotalsState.
func (t TotalsState) IsValid() bool {
	for _, candidate := range validTotalsStates {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTotalsState converts raw input into a TotalsState.
func ParseTotalsState(value string) (TotalsState, error) {
	for _, candidate := range validTotalsStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid totals state %q", value)
}
