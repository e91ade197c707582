package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lisatcreative/printshop-backend/api/middleware"
	"github.com/lisatcreative/printshop-backend/api/responses"
	"github.com/lisatcreative/printshop-backend/api/validators"
	"github.com/lisatcreative/printshop-backend/internal/cart"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
)

type cartLineResponse struct {
	PhotoID    int    `json:"photoId"`
	Size       string `json:"size"`
	SizeLabel  string `json:"sizeLabel"`
	Frame      string `json:"frame"`
	FrameLabel string `json:"frameLabel"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	LineTotal  string `json:"lineTotal"`
}

type cartResponse struct {
	Items     []cartLineResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Subtotal  string             `json:"subtotal"`
}

func toCartResponse(shopperCart *cart.Cart) cartResponse {
	items := make([]cartLineResponse, 0, len(shopperCart.Items))
	for _, line := range shopperCart.Items {
		items = append(items, cartLineResponse{
			PhotoID:    line.PhotoID,
			Size:       line.Size.String(),
			SizeLabel:  line.Size.Label(),
			Frame:      line.Frame.String(),
			FrameLabel: line.Frame.Display(),
			Title:      line.Title,
			Category:   line.Category,
			Image:      line.Image,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice.StringFixed(2),
			LineTotal:  line.LineTotal().StringFixed(2),
		})
	}
	return cartResponse{
		Items:     items,
		ItemCount: shopperCart.ItemCount(),
		Subtotal:  shopperCart.Subtotal().StringFixed(2),
	}
}

func sessionFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}

func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopperCart, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(shopperCart))
	}
}

type addCartItemRequest struct {
	PhotoID  int    `json:"photoId" validate:"required,min=1"`
	Size     string `json:"size" validate:"required"`
	Frame    string `json:"frame"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=50"`
}

func AddCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		size, err := enums.ParsePrintSize(strings.TrimSpace(payload.Size))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid print size"))
			return
		}
		frame := enums.FrameStyleNone
		if raw := strings.TrimSpace(payload.Frame); raw != "" {
			frame, err = enums.ParseFrameStyle(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid frame style"))
				return
			}
		}

		shopperCart, err := svc.AddItem(r.Context(), sessionID, cart.AddItemInput{
			PhotoID:  payload.PhotoID,
			Size:     size,
			Frame:    frame,
			Quantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCartResponse(shopperCart))
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=50"`
}

// UpdateCartItem sets a line's quantity. Zero removes the line.
func UpdateCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		key, err := itemKeyFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopperCart, err := svc.UpdateQuantity(r.Context(), sessionID, key, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(shopperCart))
	}
}

func RemoveCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		key, err := itemKeyFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopperCart, err := svc.RemoveItem(r.Context(), sessionID, key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(shopperCart))
	}
}

func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(&cart.Cart{SessionID: sessionID}))
	}
}

func itemKeyFromURL(r *http.Request) (cart.ItemKey, error) {
	photoID, err := parsePhotoID(chi.URLParam(r, "photoID"))
	if err != nil {
		return cart.ItemKey{}, err
	}
	size, err := enums.ParsePrintSize(chi.URLParam(r, "size"))
	if err != nil {
		return cart.ItemKey{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid print size")
	}
	frame, err := enums.ParseFrameStyle(chi.URLParam(r, "frame"))
	if err != nil {
		return cart.ItemKey{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid frame style")
	}
	return cart.ItemKey{PhotoID: photoID, Size: size, Frame: frame}, nil
}
