package enums

import (
	"fmt"
	"strings"
)

// FrameStyle is the framing option selected for a print.
type FrameStyle string

const (
	FrameStyleNone    FrameStyle = "none"
	FrameStyleBlack   FrameStyle = "black"
	FrameStyleWhite   FrameStyle = "white"
	FrameStyleNatural FrameStyle = "natural"
)

var validFrameStyles = []FrameStyle{
	FrameStyleNone,
	FrameStyleBlack,
	FrameStyleWhite,
	FrameStyleNatural,
}

// String implements fmt.Stringer.
func (f FrameStyle) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FrameStyle.
func (f FrameStyle) IsValid() bool {
	for _, candidate := range validFrameStyles {
		if candidate == f {
			return true
		}
	}
	return false
}

// Display returns the storefront label, e.g. "Black Frame" or "No Frame".
func (f FrameStyle) Display() string {
	if f == FrameStyleNone {
		return "No Frame"
	}
	if f == FrameStyleNatural {
		return "Natural Wood Frame"
	}
	return strings.ToUpper(string(f)[:1]) + string(f)[1:] + " Frame"
}

// FrameStyles returns every supported style in display order.
func FrameStyles() []FrameStyle {
	out := make([]FrameStyle, len(validFrameStyles))
	copy(out, validFrameStyles)
	return out
}

// ParseFrameStyle converts raw input into a FrameStyle.
func ParseFrameStyle(value string) (FrameStyle, error) {
	for _, candidate := range validFrameStyles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid frame style %q", value)
}
