package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	pkgerrors "github.com/lisatcreative/printshop-backend/pkg/errors"
)

type stubOrders struct {
	order *models.Order
}

func (s *stubOrders) Archive(_ context.Context, order *models.Order) (*models.Order, error) {
	return order, nil
}

func (s *stubOrders) GetByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	if s.order != nil && s.order.OrderNumber == orderNumber {
		return s.order, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *stubOrders) RecordNotifications(_ context.Context, _ string, _, _ bool) error {
	return nil
}

func TestGetOrder(t *testing.T) {
	t.Parallel()

	svc := &stubOrders{order: archivedOrder()}
	handler := GetOrder(svc, testLogger(t))

	req := withURLParams(
		httptest.NewRequest(http.MethodGet, "/api/v1/orders/LT-1723400000000", nil),
		map[string]string{"orderNumber": "LT-1723400000000"},
	)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload orderResponse
	decodeEnvelope(t, rec, &payload)
	if payload.OrderNumber != "LT-1723400000000" || payload.Status != "pending_payment" {
		t.Fatalf("unexpected order %+v", payload)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("expected one line item, got %d", len(payload.Items))
	}
	item := payload.Items[0]
	if item.SizeLabel != "8×11 in" || item.FrameLabel != "Black Frame" {
		t.Fatalf("unexpected labels %+v", item)
	}
	if item.UnitPrice != "50.00" || payload.Total != "62.49" {
		t.Fatalf("unexpected money %+v", payload)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubOrders{}
	handler := GetOrder(svc, testLogger(t))

	req := withURLParams(
		httptest.NewRequest(http.MethodGet, "/api/v1/orders/LT-0", nil),
		map[string]string{"orderNumber": "LT-0"},
	)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
