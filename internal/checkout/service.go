package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/internal/cart"
	"github.com/lisatcreative/printshop-backend/internal/notifications"
	"github.com/lisatcreative/printshop-backend/internal/orders"
	"github.com/lisatcreative/printshop-backend/internal/shipping"
	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
	"github.com/lisatcreative/printshop-backend/pkg/metrics"
	"github.com/lisatcreative/printshop-backend/pkg/types"
)

const archiveAttempts = 3

// Service prices carts and turns them into placed orders.
type Service interface {
	Totals(ctx context.Context, sessionID string, input TotalsInput) (*Totals, error)
	Submit(ctx context.Context, sessionID string, input SubmitInput) (*SubmitResult, error)
}

// Config carries the pricing knobs and the order number prefix.
type Config struct {
	TaxRate     decimal.Decimal
	TaxShipping bool
	OrderPrefix string
}

type service struct {
	carts         cart.Service
	shipping      shipping.Service
	orders        orders.Service
	notifications notifications.Service
	logger        *logger.Logger
	metrics       *metrics.StorefrontMetrics

	taxRate     decimal.Decimal
	taxShipping bool
	orderPrefix string
	now         func() time.Time
}

// NewService wires the checkout engine. Metrics may be nil.
func NewService(
	carts cart.Service,
	shippingSvc shipping.Service,
	ordersSvc orders.Service,
	notificationsSvc notifications.Service,
	logg *logger.Logger,
	m *metrics.StorefrontMetrics,
	cfg Config,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if shippingSvc == nil {
		return nil, fmt.Errorf("shipping service required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if notificationsSvc == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate may not be negative")
	}
	prefix := strings.TrimSpace(cfg.OrderPrefix)
	if prefix == "" {
		prefix = "LT"
	}
	return &service{
		carts:         carts,
		shipping:      shippingSvc,
		orders:        ordersSvc,
		notifications: notificationsSvc,
		logger:        logg,
		metrics:       m,
		taxRate:       cfg.TaxRate,
		taxShipping:   cfg.TaxShipping,
		orderPrefix:   prefix,
		now:           time.Now,
	}, nil
}

// Totals prices the session's cart against the destination.
func (s *service) Totals(ctx context.Context, sessionID string, input TotalsInput) (*Totals, error) {
	if !input.FulfillmentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown fulfillment method %q", input.FulfillmentMethod))
	}
	shopperCart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.computeTotals(ctx, shopperCart, input)
}

// CustomerInput is the contact block collected at checkout. Phone is
// optional; it only shows up in the notification bodies.
type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// SubmitInput is a checkout submission for the session's cart.
type SubmitInput struct {
	FulfillmentMethod enums.FulfillmentMethod
	Customer          CustomerInput
	Address           *types.Address
}

// SubmitResult is the placed order plus the notification outcome.
type SubmitResult struct {
	Order         *models.Order
	Notifications notifications.DispatchResult
}

func (s *service) validateSubmit(input SubmitInput) error {
	if !input.FulfillmentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown fulfillment method %q", input.FulfillmentMethod))
	}
	if strings.TrimSpace(input.Customer.FirstName) == "" || strings.TrimSpace(input.Customer.LastName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Customer.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if input.FulfillmentMethod == enums.FulfillmentDelivery {
		if input.Address == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
		}
		if strings.TrimSpace(input.Address.Line1) == "" || strings.TrimSpace(input.Address.City) == "" || strings.TrimSpace(input.Address.Province) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is incomplete")
		}
		if !shipping.IsValidPostalCode(input.Address.PostalCode) {
			return pkgerrors.New(pkgerrors.CodeValidation, "postal code is invalid")
		}
	}
	return nil
}

// Submit prices the cart, archives the order, dispatches notifications, and
// clears the cart. Notification failures do not fail the submission; the
// order is already placed and the outcome is recorded on the archive row.
func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (*SubmitResult, error) {
	started := s.now()

	if err := s.validateSubmit(input); err != nil {
		return nil, err
	}

	shopperCart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if shopperCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	var postalCode string
	if input.Address != nil {
		postalCode = input.Address.PostalCode
	}
	totals, err := s.computeTotals(ctx, shopperCart, TotalsInput{
		FulfillmentMethod: input.FulfillmentMethod,
		PostalCode:        postalCode,
	})
	if err != nil {
		return nil, err
	}
	if totals.State != enums.TotalsStateResolved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order totals are not resolved")
	}

	order := s.buildOrder(shopperCart, input, totals)

	archived, err := s.archiveWithFreshNumber(ctx, order)
	if err != nil {
		return nil, err
	}

	ctx = s.logger.WithOrderNumber(ctx, archived.OrderNumber)
	s.logger.Info(ctx, "order placed")
	s.metrics.IncOrderPlaced(archived.FulfillmentMethod.String())

	dispatch := s.notifications.Dispatch(ctx, archived)
	if err := s.orders.RecordNotifications(ctx, archived.OrderNumber, dispatch.MerchantSent, dispatch.CustomerSent); err != nil {
		s.logger.Error(ctx, "recording notification outcome failed", err)
	}
	archived.MerchantNotified = dispatch.MerchantSent
	archived.CustomerNotified = dispatch.CustomerSent

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Error(ctx, "clearing cart after checkout failed", err)
	}

	s.metrics.ObserveCheckoutDuration(archived.FulfillmentMethod.String(), s.now().Sub(started))

	return &SubmitResult{Order: archived, Notifications: dispatch}, nil
}

// archiveWithFreshNumber retries on order-number collisions. Numbers are
// millisecond timestamps, so two submissions landing in the same tick is the
// only way to collide.
func (s *service) archiveWithFreshNumber(ctx context.Context, order *models.Order) (*models.Order, error) {
	var lastErr error
	for attempt := 0; attempt < archiveAttempts; attempt++ {
		order.OrderNumber = s.newOrderNumber()
		archived, err := s.orders.Archive(ctx, order)
		if err == nil {
			return archived, nil
		}
		lastErr = err
		if domainErr := pkgerrors.As(err); domainErr == nil || domainErr.Code() != pkgerrors.CodeConflict {
			return nil, err
		}
		time.Sleep(time.Millisecond)
	}
	return nil, lastErr
}

func (s *service) newOrderNumber() string {
	return fmt.Sprintf("%s-%d", s.orderPrefix, s.now().UnixMilli())
}

func (s *service) buildOrder(shopperCart *cart.Cart, input SubmitInput, totals *Totals) *models.Order {
	order := &models.Order{
		ID:                uuid.New(),
		Status:            enums.OrderStatusPendingPayment,
		FulfillmentMethod: input.FulfillmentMethod,
		CustomerFirstName: strings.TrimSpace(input.Customer.FirstName),
		CustomerLastName:  strings.TrimSpace(input.Customer.LastName),
		CustomerEmail:     strings.TrimSpace(input.Customer.Email),
		CustomerPhone:     strings.TrimSpace(input.Customer.Phone),
		SubtotalCents:     toCents(totals.Subtotal),
		ShippingCents:     toCents(totals.Shipping),
		TaxCents:          toCents(totals.Tax),
		TotalCents:        toCents(totals.Total),
	}

	if input.FulfillmentMethod == enums.FulfillmentDelivery && input.Address != nil {
		normalized := input.Address.Normalize()
		order.ShippingAddress = &normalized
		if totals.Quote != nil && totals.Quote.Zone != nil {
			order.ZoneName = totals.Quote.Zone.Name
			order.DeliveryWindow = totals.Quote.Zone.DeliveryDays
		}
	}

	items := make([]models.OrderLineItem, 0, len(shopperCart.Items))
	for _, line := range shopperCart.Items {
		items = append(items, models.OrderLineItem{
			ID:             uuid.New(),
			PhotoID:        line.PhotoID,
			Title:          line.Title,
			Category:       line.Category,
			Size:           line.Size,
			Frame:          line.Frame,
			Quantity:       line.Quantity,
			UnitPriceCents: toCents(line.UnitPrice),
			LineTotalCents: toCents(line.LineTotal()),
		})
	}
	order.Items = items
	return order
}

func toCents(amount decimal.Decimal) int {
	return int(amount.Round(2).Mul(decimal.NewFromInt(100)).IntPart())
}
