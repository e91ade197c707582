package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lisatcreative/printshop-backend/api/middleware"
	"github.com/lisatcreative/printshop-backend/internal/cart"
	"github.com/lisatcreative/printshop-backend/internal/catalog"
	"github.com/lisatcreative/printshop-backend/internal/pricing"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type memoryCartStore struct {
	carts map[string]*cart.Cart
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: map[string]*cart.Cart{}}
}

func (m *memoryCartStore) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	if stored, ok := m.carts[sessionID]; ok {
		clone := *stored
		clone.Items = append([]cart.LineItem(nil), stored.Items...)
		return &clone, nil
	}
	return &cart.Cart{SessionID: sessionID}, nil
}

func (m *memoryCartStore) Save(_ context.Context, shopperCart *cart.Cart) error {
	clone := *shopperCart
	clone.Items = append([]cart.LineItem(nil), shopperCart.Items...)
	m.carts[shopperCart.SessionID] = &clone
	return nil
}

func (m *memoryCartStore) Clear(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

func newCatalogFixture(t *testing.T) (catalog.Service, pricing.Service, cart.Service) {
	t.Helper()
	photos, err := catalog.NewService()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pricer, err := pricing.NewService(photos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	carts, err := cart.NewService(newMemoryCartStore(), photos, pricer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return photos, pricer, carts
}

func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(middleware.WithSessionID(r.Context(), sessionID))
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatalf("expected data envelope, got %s", rec.Body.String())
	}
	if dest != nil {
		if err := json.Unmarshal(envelope.Data, dest); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}
