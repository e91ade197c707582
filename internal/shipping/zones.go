package shipping

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Zone is a delivery region matched by postal code prefix.
type Zone struct {
	Name                 string
	Description          string
	Prefixes             []string
	Price                decimal.Decimal
	DeliveryDays         string
	FreeShippingEligible bool
}

// zones is ordered by prefix specificity. Resolution picks the zone with the
// longest matching prefix, so ordering here is cosmetic.
var zones = []Zone{
	{
		Name:                 "Local",
		Description:          "Strathmore local delivery",
		Prefixes:             []string{"T1P"},
		Price:                decimal.RequireFromString("0.00"),
		DeliveryDays:         "1-2 business days",
		FreeShippingEligible: true,
	},
	{
		Name:                 "Calgary & Area",
		Description:          "Calgary and surrounding communities",
		Prefixes:             []string{"T1", "T2", "T3"},
		Price:                decimal.RequireFromString("9.99"),
		DeliveryDays:         "2-3 business days",
		FreeShippingEligible: true,
	},
	{
		Name:                 "Alberta",
		Description:          "Alberta-wide delivery",
		Prefixes:             []string{"T"},
		Price:                decimal.RequireFromString("14.99"),
		DeliveryDays:         "3-5 business days",
		FreeShippingEligible: true,
	},
	{
		Name:                 "Western Canada",
		Description:          "British Columbia, Saskatchewan, and Manitoba",
		Prefixes:             []string{"V", "S", "R"},
		Price:                decimal.RequireFromString("19.99"),
		DeliveryDays:         "5-7 business days",
		FreeShippingEligible: true,
	},
}

// defaultZone covers every valid Canadian postal code no prefix claims.
var defaultZone = Zone{
	Name:                 "Rest of Canada",
	Description:          "Standard Canada-wide delivery",
	Price:                decimal.RequireFromString("29.99"),
	DeliveryDays:         "7-14 business days",
	FreeShippingEligible: false,
}

var postalCodePattern = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z]\s?\d[A-Za-z]\d$`)

// NormalizePostalCode trims and uppercases raw input. Validation runs on the
// normalized form, so " t1p 1j9 " and "T1P1J9" are the same code.
func NormalizePostalCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsValidPostalCode reports whether the normalized input is a Canadian
// postal code.
func IsValidPostalCode(raw string) bool {
	return postalCodePattern.MatchString(NormalizePostalCode(raw))
}

// zoneFor picks the zone whose prefix matches the most characters of the
// postal code. A T1P code matches Local before Calgary & Area before Alberta.
func zoneFor(postalCode string) Zone {
	best := defaultZone
	bestLen := 0
	for _, zone := range zones {
		for _, prefix := range zone.Prefixes {
			if strings.HasPrefix(postalCode, prefix) && len(prefix) > bestLen {
				best = zone
				bestLen = len(prefix)
			}
		}
	}
	return best
}
