package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/internal/cart"
	"github.com/lisatcreative/printshop-backend/internal/shipping"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
)

// Totals is the priced summary of a cart against a destination. State tracks
// whether the grand total is final: invalid for an empty cart, pending while
// the shipping quote is unresolved, resolved otherwise.
type Totals struct {
	State    enums.TotalsState
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Quote    *shipping.Quote
}

// TotalsInput names the cart and destination being priced.
type TotalsInput struct {
	FulfillmentMethod enums.FulfillmentMethod
	PostalCode        string
}

// computeTotals prices the cart. GST rounds half-up to the cent. While the
// quote is unresolved, tax and total are computed on the subtotal alone and
// the state stays pending; submission is blocked until the postal code is
// fixed.
func (s *service) computeTotals(ctx context.Context, shopperCart *cart.Cart, input TotalsInput) (*Totals, error) {
	if shopperCart.IsEmpty() {
		return &Totals{
			State:    enums.TotalsStateInvalid,
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}, nil
	}

	subtotal := shopperCart.Subtotal()
	quote, err := s.shipping.Resolve(ctx, shipping.QuoteInput{
		PostalCode:        input.PostalCode,
		Subtotal:          subtotal,
		FulfillmentMethod: input.FulfillmentMethod,
	})
	if err != nil {
		return nil, err
	}

	state := enums.TotalsStateResolved
	shippingPrice := quote.Price
	if quote.Status == enums.QuoteStatusUnresolved {
		state = enums.TotalsStatePending
		shippingPrice = decimal.Zero
	}

	taxable := subtotal
	if s.taxShipping {
		taxable = taxable.Add(shippingPrice)
	}
	tax := taxable.Mul(s.taxRate).Round(2)
	total := subtotal.Add(shippingPrice).Add(tax)

	return &Totals{
		State:    state,
		Subtotal: subtotal,
		Shipping: shippingPrice,
		Tax:      tax,
		Total:    total,
		Quote:    quote,
	}, nil
}
