package shipping

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/pkg/enums"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func deliveryInput(postal, subtotal string) QuoteInput {
	return QuoteInput{
		PostalCode:        postal,
		Subtotal:          decimal.RequireFromString(subtotal),
		FulfillmentMethod: enums.FulfillmentDelivery,
	}
}

func TestPostalCodeValidation(t *testing.T) {
	t.Parallel()

	valid := []string{"T1P 1J9", "t1p1j9", " T2X 0A1 ", "V6B2W9", "S7K 3R5"}
	for _, code := range valid {
		if !IsValidPostalCode(code) {
			t.Fatalf("expected %q to be valid", code)
		}
	}

	invalid := []string{"", "12345", "T1P", "T1P 1J", "1T1 P1J", "T1P  1J9", "T1P-1J9"}
	for _, code := range invalid {
		if IsValidPostalCode(code) {
			t.Fatalf("expected %q to be invalid", code)
		}
	}
}

func TestResolvePicksLongestMatchingPrefix(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	cases := []struct {
		postal    string
		wantZone  string
		wantPrice string
		wantDays  string
	}{
		{postal: "T1P 1J9", wantZone: "Local", wantPrice: "0.00", wantDays: "1-2 business days"},
		{postal: "T1X 0A1", wantZone: "Calgary & Area", wantPrice: "9.99", wantDays: "2-3 business days"},
		{postal: "T2N 4N1", wantZone: "Calgary & Area", wantPrice: "9.99", wantDays: "2-3 business days"},
		{postal: "T3K 5P4", wantZone: "Calgary & Area", wantPrice: "9.99", wantDays: "2-3 business days"},
		{postal: "T8N 1B4", wantZone: "Alberta", wantPrice: "14.99", wantDays: "3-5 business days"},
		{postal: "V6B 2W9", wantZone: "Western Canada", wantPrice: "19.99", wantDays: "5-7 business days"},
		{postal: "S7K 3R5", wantZone: "Western Canada", wantPrice: "19.99", wantDays: "5-7 business days"},
		{postal: "R3C 4A5", wantZone: "Western Canada", wantPrice: "19.99", wantDays: "5-7 business days"},
		{postal: "M5V 2T6", wantZone: "Rest of Canada", wantPrice: "29.99", wantDays: "7-14 business days"},
		{postal: "K1A 0B1", wantZone: "Rest of Canada", wantPrice: "29.99", wantDays: "7-14 business days"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.postal, func(t *testing.T) {
			t.Parallel()
			quote, err := svc.Resolve(context.Background(), deliveryInput(tc.postal, "50.00"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.Status != enums.QuoteStatusResolved {
				t.Fatalf("expected resolved quote, got %s", quote.Status)
			}
			if quote.Zone == nil || quote.Zone.Name != tc.wantZone {
				t.Fatalf("expected zone %q, got %+v", tc.wantZone, quote.Zone)
			}
			if !quote.Price.Equal(decimal.RequireFromString(tc.wantPrice)) {
				t.Fatalf("expected price %s, got %s", tc.wantPrice, quote.Price)
			}
			if quote.DeliveryDays != tc.wantDays {
				t.Fatalf("expected delivery %q, got %q", tc.wantDays, quote.DeliveryDays)
			}
		})
	}
}

func TestResolveNormalizesBeforeMatching(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	quote, err := svc.Resolve(context.Background(), deliveryInput("  t1p 1j9 ", "50.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.PostalCode != "T1P 1J9" {
		t.Fatalf("expected normalized postal code, got %q", quote.PostalCode)
	}
	if quote.Zone == nil || quote.Zone.Name != "Local" {
		t.Fatalf("expected Local zone, got %+v", quote.Zone)
	}
}

func TestResolveInvalidPostalCodeIsUnresolved(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	quote, err := svc.Resolve(context.Background(), deliveryInput("12345", "50.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Status != enums.QuoteStatusUnresolved {
		t.Fatalf("expected unresolved quote, got %s", quote.Status)
	}
	if quote.Zone != nil {
		t.Fatal("unresolved quote must not carry a zone")
	}
	if !quote.Price.IsZero() {
		t.Fatalf("unresolved quote must be unpriced, got %s", quote.Price)
	}
}

func TestResolveFreeShippingAtThreshold(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	cases := []struct {
		name     string
		postal   string
		subtotal string
		wantFree bool
		want     string
	}{
		{name: "under threshold pays", postal: "T2N 4N1", subtotal: "99.99", wantFree: false, want: "9.99"},
		{name: "at threshold ships free", postal: "T2N 4N1", subtotal: "100.00", wantFree: true, want: "0.00"},
		{name: "over threshold ships free", postal: "V6B 2W9", subtotal: "150.00", wantFree: true, want: "0.00"},
		{name: "rest of canada never free", postal: "M5V 2T6", subtotal: "500.00", wantFree: false, want: "29.99"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			quote, err := svc.Resolve(context.Background(), deliveryInput(tc.postal, tc.subtotal))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.FreeShippingApplied != tc.wantFree {
				t.Fatalf("expected free=%v, got %v", tc.wantFree, quote.FreeShippingApplied)
			}
			if !quote.Price.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected price %s, got %s", tc.want, quote.Price)
			}
		})
	}
}

func TestResolvePickupShortCircuits(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	quote, err := svc.Resolve(context.Background(), QuoteInput{
		PostalCode:        "not even a postal code",
		Subtotal:          decimal.RequireFromString("10.00"),
		FulfillmentMethod: enums.FulfillmentPickup,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Status != enums.QuoteStatusResolved {
		t.Fatalf("expected resolved quote, got %s", quote.Status)
	}
	if quote.Zone != nil {
		t.Fatal("pickup quote must not carry a zone")
	}
	if !quote.Price.IsZero() {
		t.Fatalf("pickup must be free, got %s", quote.Price)
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	if _, err := svc.Resolve(context.Background(), QuoteInput{FulfillmentMethod: "courier"}); err == nil {
		t.Fatal("expected error for unknown fulfillment method")
	}
	if _, err := svc.Resolve(context.Background(), QuoteInput{
		FulfillmentMethod: enums.FulfillmentDelivery,
		Subtotal:          decimal.RequireFromString("-1.00"),
	}); err == nil {
		t.Fatal("expected error for negative subtotal")
	}
}
