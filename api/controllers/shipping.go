package controllers

import (
	"net/http"
	"strings"

	"github.com/lisatcreative/printshop-backend/api/middleware"
	"github.com/lisatcreative/printshop-backend/api/responses"
	"github.com/lisatcreative/printshop-backend/api/validators"
	"github.com/lisatcreative/printshop-backend/internal/cart"
	"github.com/lisatcreative/printshop-backend/internal/shipping"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
)

type shippingZoneResponse struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DeliveryDays string `json:"deliveryDays"`
}

type shippingQuoteResponse struct {
	Status              string                `json:"status"`
	PostalCode          string                `json:"postalCode,omitempty"`
	Zone                *shippingZoneResponse `json:"zone,omitempty"`
	Price               string                `json:"price"`
	DeliveryDays        string                `json:"deliveryDays,omitempty"`
	FreeShippingApplied bool                  `json:"freeShippingApplied"`
}

func toQuoteResponse(quote *shipping.Quote) *shippingQuoteResponse {
	if quote == nil {
		return nil
	}
	out := &shippingQuoteResponse{
		Status:              quote.Status.String(),
		PostalCode:          quote.PostalCode,
		Price:               quote.Price.StringFixed(2),
		DeliveryDays:        quote.DeliveryDays,
		FreeShippingApplied: quote.FreeShippingApplied,
	}
	if quote.Zone != nil {
		out.Zone = &shippingZoneResponse{
			Name:         quote.Zone.Name,
			Description:  quote.Zone.Description,
			DeliveryDays: quote.Zone.DeliveryDays,
		}
	}
	return out
}

// Postal code is optional: pickup quotes resolve without one, and delivery
// quotes with a missing or malformed code come back unresolved rather than
// erroring.
type shippingQuoteRequest struct {
	PostalCode string `json:"postalCode"`
	Method     string `json:"method"`
}

// QuoteShipping prices delivery for the session's cart. The subtotal comes
// from the stored cart so the client cannot influence free shipping.
func QuoteShipping(shippingSvc shipping.Service, cartSvc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if shippingSvc == nil || cartSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var payload shippingQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method := enums.FulfillmentDelivery
		if raw := strings.TrimSpace(payload.Method); raw != "" {
			parsed, err := enums.ParseFulfillmentMethod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fulfillment method"))
				return
			}
			method = parsed
		}

		shopperCart, err := cartSvc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := shippingSvc.Resolve(r.Context(), shipping.QuoteInput{
			PostalCode:        payload.PostalCode,
			Subtotal:          shopperCart.Subtotal(),
			FulfillmentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toQuoteResponse(quote))
	}
}
