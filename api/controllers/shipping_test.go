package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lisatcreative/printshop-backend/internal/shipping"
)

func newShippingFixture(t *testing.T) shipping.Service {
	t.Helper()
	svc, err := shipping.NewService(decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestQuoteShippingResolvesZone(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)
	addItem(t, AddCartItem(carts, logg), "session-1", `{"photoId":1,"size":"medium","quantity":1}`)

	handler := QuoteShipping(newShippingFixture(t), carts, logg)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(`{"postalCode":"t2x 0a1"}`)), "session-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload shippingQuoteResponse
	decodeEnvelope(t, rec, &payload)
	if payload.Status != "resolved" {
		t.Fatalf("expected resolved quote, got %+v", payload)
	}
	if payload.Zone == nil || payload.Zone.Name != "Calgary & Area" {
		t.Fatalf("unexpected zone %+v", payload.Zone)
	}
	if payload.Price != "9.99" || payload.PostalCode != "T2X 0A1" {
		t.Fatalf("unexpected quote %+v", payload)
	}
}

func TestQuoteShippingFreeOverThreshold(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)
	// 2 x $50.00 framed prints hits the free shipping threshold.
	addItem(t, AddCartItem(carts, logg), "session-1", `{"photoId":1,"size":"medium","frame":"black","quantity":2}`)

	handler := QuoteShipping(newShippingFixture(t), carts, logg)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(`{"postalCode":"T2X 0A1"}`)), "session-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var payload shippingQuoteResponse
	decodeEnvelope(t, rec, &payload)
	if payload.Price != "0.00" || !payload.FreeShippingApplied {
		t.Fatalf("expected free shipping, got %+v", payload)
	}
}

func TestQuoteShippingPickupNeedsNoPostalCode(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)

	handler := QuoteShipping(newShippingFixture(t), carts, logg)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(`{"method":"pickup"}`)), "session-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload shippingQuoteResponse
	decodeEnvelope(t, rec, &payload)
	if payload.Status != "resolved" || payload.Price != "0.00" {
		t.Fatalf("expected free resolved pickup quote, got %+v", payload)
	}
	if payload.Zone != nil {
		t.Fatalf("pickup quote must not carry a zone, got %+v", payload.Zone)
	}
}

func TestQuoteShippingUnresolvedPostalCode(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)

	handler := QuoteShipping(newShippingFixture(t), carts, logg)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(`{"postalCode":"12345"}`)), "session-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload shippingQuoteResponse
	decodeEnvelope(t, rec, &payload)
	if payload.Status != "unresolved" || payload.Zone != nil {
		t.Fatalf("expected unresolved quote, got %+v", payload)
	}
}
