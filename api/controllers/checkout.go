package controllers

import (
	"net/http"
	"strings"

	"github.com/lisatcreative/printshop-backend/api/middleware"
	"github.com/lisatcreative/printshop-backend/api/responses"
	"github.com/lisatcreative/printshop-backend/api/validators"
	"github.com/lisatcreative/printshop-backend/internal/checkout"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
	"github.com/lisatcreative/printshop-backend/pkg/types"
)

type totalsResponse struct {
	State    string                 `json:"state"`
	Subtotal string                 `json:"subtotal"`
	Shipping string                 `json:"shipping"`
	Tax      string                 `json:"tax"`
	Total    string                 `json:"total"`
	Quote    *shippingQuoteResponse `json:"quote,omitempty"`
}

func toTotalsResponse(totals *checkout.Totals) totalsResponse {
	return totalsResponse{
		State:    totals.State.String(),
		Subtotal: totals.Subtotal.StringFixed(2),
		Shipping: totals.Shipping.StringFixed(2),
		Tax:      totals.Tax.StringFixed(2),
		Total:    totals.Total.StringFixed(2),
		Quote:    toQuoteResponse(totals.Quote),
	}
}

// CheckoutTotals prices the session's cart against the query destination.
func CheckoutTotals(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		query := r.URL.Query()
		method := enums.FulfillmentDelivery
		if raw := strings.TrimSpace(query.Get("method")); raw != "" {
			parsed, err := enums.ParseFulfillmentMethod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fulfillment method"))
				return
			}
			method = parsed
		}

		totals, err := svc.Totals(r.Context(), sessionID, checkout.TotalsInput{
			FulfillmentMethod: method,
			PostalCode:        query.Get("postalCode"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toTotalsResponse(totals))
	}
}

type checkoutCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type checkoutAddressRequest struct {
	Line1      string `json:"line1" validate:"required"`
	City       string `json:"city" validate:"required"`
	Province   string `json:"province" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required,postal_code_ca"`
	Country    string `json:"country"`
}

type submitCheckoutRequest struct {
	Method   string                  `json:"method" validate:"required"`
	Customer checkoutCustomerRequest `json:"customer" validate:"required"`
	Address  *checkoutAddressRequest `json:"address,omitempty"`
}

type notificationsResponse struct {
	MerchantSent bool `json:"merchantSent"`
	CustomerSent bool `json:"customerSent"`
}

// SubmitCheckout places the order for the session's cart.
func SubmitCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var payload submitCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParseFulfillmentMethod(strings.TrimSpace(payload.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fulfillment method"))
			return
		}
		if method == enums.FulfillmentDelivery && payload.Address == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shipping address required for delivery"))
			return
		}

		input := checkout.SubmitInput{
			FulfillmentMethod: method,
			Customer: checkout.CustomerInput{
				FirstName: strings.TrimSpace(payload.Customer.FirstName),
				LastName:  strings.TrimSpace(payload.Customer.LastName),
				Email:     strings.TrimSpace(payload.Customer.Email),
				Phone:     strings.TrimSpace(payload.Customer.Phone),
			},
		}
		if payload.Address != nil {
			input.Address = &types.Address{
				Line1:      payload.Address.Line1,
				City:       payload.Address.City,
				Province:   payload.Address.Province,
				PostalCode: payload.Address.PostalCode,
				Country:    payload.Address.Country,
			}
		}

		result, err := svc.Submit(r.Context(), sessionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order": toOrderResponse(result.Order),
			"notifications": notificationsResponse{
				MerchantSent: result.Notifications.MerchantSent,
				CustomerSent: result.Notifications.CustomerSent,
			},
		})
	}
}
