package notifications

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/lisatcreative/printshop-backend/pkg/config"
	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	"github.com/lisatcreative/printshop-backend/pkg/email"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
	"github.com/lisatcreative/printshop-backend/pkg/types"
)

type stubSender struct {
	mu       sync.Mutex
	sent     []email.Message
	failFunc func(msg email.Message) error
}

func (s *stubSender) Send(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFunc != nil {
		if err := s.failFunc(msg); err != nil {
			return err
		}
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *stubSender) messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.sent...)
}

func testMerchant() config.MerchantConfig {
	return config.MerchantConfig{
		BusinessName:   "Lisa T Photography",
		OrderEmail:     "dat210@telus.net",
		ETransferEmail: "dat210@telus.net",
		Phone:          "(403) 934-7262",
		PickupLocation: "Strathmore, AB",
		SecurityAnswer: "Lisa T Photography",
		ReplyTo:        "dat210@telus.net",
	}
}

func deliveryOrder() *models.Order {
	return &models.Order{
		ID:                uuid.New(),
		OrderNumber:       "LT-1723400000000",
		Status:            enums.OrderStatusPendingPayment,
		FulfillmentMethod: enums.FulfillmentDelivery,
		CustomerFirstName: "Pat",
		CustomerLastName:  "Shopper",
		CustomerEmail:     "pat@example.com",
		CustomerPhone:     "(403) 555-0142",
		ShippingAddress: &types.Address{
			Line1:      "123 Main St SW",
			City:       "Calgary",
			Province:   "AB",
			PostalCode: "T2N 4N1",
			Country:    "Canada",
		},
		ZoneName:       "Calgary & Area",
		DeliveryWindow: "2-3 business days",
		SubtotalCents:  5000,
		ShippingCents:  999,
		TaxCents:       250,
		TotalCents:     6249,
		Items: []models.OrderLineItem{
			{
				Title:          "Morning Mist at Eagle Lake",
				Category:       "Landscape",
				Size:           enums.PrintSizeMedium,
				Frame:          enums.FrameStyleBlack,
				Quantity:       1,
				UnitPriceCents: 5000,
				LineTotalCents: 5000,
			},
		},
	}
}

func pickupOrder() *models.Order {
	order := deliveryOrder()
	order.FulfillmentMethod = enums.FulfillmentPickup
	order.ShippingAddress = nil
	order.ZoneName = ""
	order.DeliveryWindow = ""
	order.ShippingCents = 0
	order.TaxCents = 250
	order.TotalCents = 5250
	return order
}

func newTestService(t *testing.T, sender email.Sender) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(sender, testMerchant(), logg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestDispatchSendsBothEmails(t *testing.T) {
	t.Parallel()
	sender := &stubSender{}
	svc := newTestService(t, sender)

	result := svc.Dispatch(context.Background(), deliveryOrder())
	if !result.MerchantSent || !result.CustomerSent {
		t.Fatalf("expected both sends, got %+v", result)
	}

	sent := sender.messages()
	if len(sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sent))
	}

	recipients := map[string]email.Message{}
	for _, msg := range sent {
		recipients[msg.To[0]] = msg
	}
	merchantMsg, ok := recipients["dat210@telus.net"]
	if !ok {
		t.Fatal("merchant email missing")
	}
	if !strings.Contains(merchantMsg.Subject, "New Order - LT-1723400000000") {
		t.Fatalf("unexpected merchant subject %q", merchantMsg.Subject)
	}
	customerMsg, ok := recipients["pat@example.com"]
	if !ok {
		t.Fatal("customer email missing")
	}
	if !strings.Contains(customerMsg.Subject, "Order Confirmation - LT-1723400000000") {
		t.Fatalf("unexpected customer subject %q", customerMsg.Subject)
	}
}

func TestDispatchReportsPartialFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		failTo       string
		wantMerchant bool
		wantCustomer bool
	}{
		{name: "merchant send fails", failTo: "dat210@telus.net", wantMerchant: false, wantCustomer: true},
		{name: "customer send fails", failTo: "pat@example.com", wantMerchant: true, wantCustomer: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sender := &stubSender{failFunc: func(msg email.Message) error {
				if msg.To[0] == tc.failTo {
					return errors.New("send failed")
				}
				return nil
			}}
			svc := newTestService(t, sender)

			result := svc.Dispatch(context.Background(), deliveryOrder())
			if result.MerchantSent != tc.wantMerchant || result.CustomerSent != tc.wantCustomer {
				t.Fatalf("unexpected result %+v", result)
			}
		})
	}
}

func TestMerchantBodyCarriesDeliveryDetails(t *testing.T) {
	t.Parallel()

	body := merchantBody(deliveryOrder(), testMerchant())
	for _, want := range []string{
		"NEW ORDER RECEIVED - LT-1723400000000",
		"Name: Pat Shopper",
		"123 Main St SW",
		"Calgary, AB T2N 4N1",
		"SHIPPING ZONE: Calgary & Area",
		"ESTIMATED DELIVERY: 2-3 business days",
		"- Morning Mist at Eagle Lake (8×11 in, Black Frame) x1 = $50.00",
		"Subtotal: $50.00",
		"Delivery: $9.99",
		"GST (5%): $2.50",
		"TOTAL: $62.49",
		"e-transfer for $62.49 to: dat210@telus.net",
		"Answer: Lisa T Photography",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("merchant body missing %q:\n%s", want, body)
		}
	}
}

func TestMerchantBodyCarriesPickupDetails(t *testing.T) {
	t.Parallel()

	body := merchantBody(pickupOrder(), testMerchant())
	for _, want := range []string{
		"Customer will pick up order in Strathmore, AB",
		"Contact customer at: pat@example.com or (403) 555-0142",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("merchant body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "SHIPPING ZONE") {
		t.Fatal("pickup body must not mention a shipping zone")
	}
}

func TestCustomerBodyCarriesPaymentInstructions(t *testing.T) {
	t.Parallel()

	body := customerBody(pickupOrder(), testMerchant())
	for _, want := range []string{
		"ORDER CONFIRMATION - LT-1723400000000",
		"Hi Pat Shopper,",
		"Pickup: FREE",
		"Please send an Interac e-transfer for $52.50 to:",
		"Security Question: What is my business name?",
		"arrange pickup in Strathmore, AB",
		"Phone: (403) 934-7262",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("customer body missing %q:\n%s", want, body)
		}
	}
}

func TestCustomerBodyFreeDelivery(t *testing.T) {
	t.Parallel()

	order := deliveryOrder()
	order.ShippingCents = 0
	body := customerBody(order, testMerchant())
	if !strings.Contains(body, "Delivery: FREE") {
		t.Fatalf("expected free delivery line:\n%s", body)
	}
}
