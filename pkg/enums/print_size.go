package enums

import "fmt"

// PrintSize is one of the four print dimensions every photo is offered in.
type PrintSize string

const (
	PrintSizeSmall      PrintSize = "small"
	PrintSizeMedium     PrintSize = "medium"
	PrintSizeLarge      PrintSize = "large"
	PrintSizeExtraLarge PrintSize = "extraLarge"
)

var validPrintSizes = []PrintSize{
	PrintSizeSmall,
	PrintSizeMedium,
	PrintSizeLarge,
	PrintSizeExtraLarge,
}

var printSizeLabels = map[PrintSize]string{
	PrintSizeSmall:      "5×7 in",
	PrintSizeMedium:     "8×11 in",
	PrintSizeLarge:      "11×14 in",
	PrintSizeExtraLarge: "16×20 in",
}

// String implements fmt.Stringer.
func (p PrintSize) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PrintSize.
func (p PrintSize) IsValid() bool {
	for _, candidate := range validPrintSizes {
		if candidate == p {
			return true
		}
	}
	return false
}

// Label returns the human-readable dimensions for the size.
func (p PrintSize) Label() string {
	if label, ok := printSizeLabels[p]; ok {
		return label
	}
	return string(p)
}

// PrintSizes returns every supported size in display order.
func PrintSizes() []PrintSize {
	out := make([]PrintSize, len(validPrintSizes))
	copy(out, validPrintSizes)
	return out
}

// ParsePrintSize converts raw input into a PrintSize.
func ParsePrintSize(value string) (PrintSize, error) {
	for _, candidate := range validPrintSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid print size %q", value)
}
