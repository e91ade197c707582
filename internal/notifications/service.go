package notifications

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/lisatcreative/printshop-backend/pkg/config"
	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	"github.com/lisatcreative/printshop-backend/pkg/email"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
	"github.com/lisatcreative/printshop-backend/pkg/metrics"
)

// DispatchResult reports which notifications went out. The two sends are
// independent; one failing never blocks the other.
type DispatchResult struct {
	MerchantSent bool
	CustomerSent bool
}

// Service fans order notifications out to the merchant and the customer.
type Service interface {
	Dispatch(ctx context.Context, order *models.Order) DispatchResult
}

type service struct {
	sender   email.Sender
	merchant config.MerchantConfig
	logger   *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService builds the dispatcher. Metrics may be nil.
func NewService(sender email.Sender, merchant config.MerchantConfig, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	if merchant.OrderEmail == "" {
		return nil, fmt.Errorf("merchant order email required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{sender: sender, merchant: merchant, logger: logg, metrics: m}, nil
}

// Dispatch sends both notifications concurrently and reports per-recipient
// outcomes. Failures are logged and counted but never returned as errors;
// the order is already placed by the time this runs.
func (s *service) Dispatch(ctx context.Context, order *models.Order) DispatchResult {
	ctx = s.logger.WithOrderNumber(ctx, order.OrderNumber)

	merchantMsg := email.Message{
		To:      []string{s.merchant.OrderEmail},
		Subject: fmt.Sprintf("New Order - %s", order.OrderNumber),
		Text:    merchantBody(order, s.merchant),
		ReplyTo: order.CustomerEmail,
	}
	customerMsg := email.Message{
		To:      []string{order.CustomerEmail},
		Subject: fmt.Sprintf("Order Confirmation - %s", order.OrderNumber),
		Text:    customerBody(order, s.merchant),
		ReplyTo: s.merchant.ReplyTo,
	}

	var (
		wg          sync.WaitGroup
		merchantErr error
		customerErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		merchantErr = s.sender.Send(ctx, merchantMsg)
	}()
	go func() {
		defer wg.Done()
		customerErr = s.sender.Send(ctx, customerMsg)
	}()
	wg.Wait()

	result := DispatchResult{
		MerchantSent: merchantErr == nil,
		CustomerSent: customerErr == nil,
	}
	s.metrics.IncEmailSend("merchant", result.MerchantSent)
	s.metrics.IncEmailSend("customer", result.CustomerSent)

	if combined := multierr.Combine(merchantErr, customerErr); combined != nil {
		s.logger.Error(ctx, "order notification dispatch incomplete", combined)
	} else {
		s.logger.Info(ctx, "order notifications sent")
	}
	return result
}
