package shipping

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
)

// Quote is the priced result of resolving a delivery destination. An
// unresolved quote means the postal code failed validation; the order total
// stays pending until the shopper fixes it.
type Quote struct {
	Status              enums.QuoteStatus
	PostalCode          string
	Zone                *Zone
	Price               decimal.Decimal
	DeliveryDays        string
	FreeShippingApplied bool
}

// QuoteInput captures the destination and context for a shipping quote.
type QuoteInput struct {
	PostalCode        string
	Subtotal          decimal.Decimal
	FulfillmentMethod enums.FulfillmentMethod
}

// Service resolves delivery destinations to shipping quotes.
type Service interface {
	Resolve(ctx context.Context, input QuoteInput) (*Quote, error)
}

type service struct {
	freeShippingThreshold decimal.Decimal
}

// NewService builds the resolver with the free shipping threshold.
func NewService(freeShippingThreshold decimal.Decimal) (Service, error) {
	if freeShippingThreshold.IsNegative() {
		return nil, fmt.Errorf("free shipping threshold may not be negative")
	}
	return &service{freeShippingThreshold: freeShippingThreshold}, nil
}

// Resolve prices delivery to the postal code. Pickup orders short-circuit to
// a free resolved quote with no zone. Subtotals at or above the threshold
// ship free in eligible zones; Rest of Canada always pays the flat rate.
func (s *service) Resolve(_ context.Context, input QuoteInput) (*Quote, error) {
	if !input.FulfillmentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown fulfillment method %q", input.FulfillmentMethod))
	}
	if input.Subtotal.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtotal may not be negative")
	}

	if input.FulfillmentMethod == enums.FulfillmentPickup {
		return &Quote{
			Status: enums.QuoteStatusResolved,
			Price:  decimal.Zero,
		}, nil
	}

	postalCode := NormalizePostalCode(input.PostalCode)
	if !postalCodePattern.MatchString(postalCode) {
		return &Quote{
			Status:     enums.QuoteStatusUnresolved,
			PostalCode: postalCode,
			Price:      decimal.Zero,
		}, nil
	}

	zone := zoneFor(postalCode)
	price := zone.Price
	freeShipping := false
	if zone.FreeShippingEligible && input.Subtotal.GreaterThanOrEqual(s.freeShippingThreshold) && price.IsPositive() {
		price = decimal.Zero
		freeShipping = true
	}

	return &Quote{
		Status:              enums.QuoteStatusResolved,
		PostalCode:          postalCode,
		Zone:                &zone,
		Price:               price,
		DeliveryDays:        zone.DeliveryDays,
		FreeShippingApplied: freeShipping,
	}, nil
}
