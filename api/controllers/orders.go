package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/api/responses"
	"github.com/lisatcreative/printshop-backend/internal/orders"
	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
	"github.com/lisatcreative/printshop-backend/pkg/types"
)

type orderLineResponse struct {
	PhotoID    int    `json:"photoId"`
	Title      string `json:"title"`
	Category   string `json:"category,omitempty"`
	Size       string `json:"size"`
	SizeLabel  string `json:"sizeLabel"`
	Frame      string `json:"frame"`
	FrameLabel string `json:"frameLabel"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	LineTotal  string `json:"lineTotal"`
}

type orderResponse struct {
	OrderNumber       string             `json:"orderNumber"`
	Status            string             `json:"status"`
	FulfillmentMethod string             `json:"fulfillmentMethod"`
	CustomerFirstName string             `json:"customerFirstName"`
	CustomerLastName  string             `json:"customerLastName"`
	CustomerEmail     string             `json:"customerEmail"`
	CustomerPhone     string             `json:"customerPhone,omitempty"`
	ShippingAddress   *types.Address     `json:"shippingAddress,omitempty"`
	ZoneName          string             `json:"zoneName,omitempty"`
	DeliveryWindow    string             `json:"deliveryWindow,omitempty"`
	Subtotal          string             `json:"subtotal"`
	Shipping          string             `json:"shipping"`
	Tax               string             `json:"tax"`
	Total             string             `json:"total"`
	MerchantNotified  bool               `json:"merchantNotified"`
	CustomerNotified  bool               `json:"customerNotified"`
	Items             []orderLineResponse `json:"items"`
	CreatedAt         time.Time          `json:"createdAt"`
}

func centsToDollars(cents int) string {
	return decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func toOrderResponse(order *models.Order) orderResponse {
	items := make([]orderLineResponse, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, orderLineResponse{
			PhotoID:    line.PhotoID,
			Title:      line.Title,
			Category:   line.Category,
			Size:       line.Size.String(),
			SizeLabel:  line.Size.Label(),
			Frame:      line.Frame.String(),
			FrameLabel: line.Frame.Display(),
			Quantity:   line.Quantity,
			UnitPrice:  centsToDollars(line.UnitPriceCents),
			LineTotal:  centsToDollars(line.LineTotalCents),
		})
	}
	return orderResponse{
		OrderNumber:       order.OrderNumber,
		Status:            order.Status.String(),
		FulfillmentMethod: order.FulfillmentMethod.String(),
		CustomerFirstName: order.CustomerFirstName,
		CustomerLastName:  order.CustomerLastName,
		CustomerEmail:     order.CustomerEmail,
		CustomerPhone:     order.CustomerPhone,
		ShippingAddress:   order.ShippingAddress,
		ZoneName:          order.ZoneName,
		DeliveryWindow:    order.DeliveryWindow,
		Subtotal:          centsToDollars(order.SubtotalCents),
		Shipping:          centsToDollars(order.ShippingCents),
		Tax:               centsToDollars(order.TaxCents),
		Total:             centsToDollars(order.TotalCents),
		MerchantNotified:  order.MerchantNotified,
		CustomerNotified:  order.CustomerNotified,
		Items:             items,
		CreatedAt:         order.CreatedAt,
	}
}

// GetOrder looks up an archived order by its public order number.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderNumber := strings.TrimSpace(chi.URLParam(r, "orderNumber"))
		if orderNumber == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number required"))
			return
		}
		order, err := svc.GetByOrderNumber(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}
