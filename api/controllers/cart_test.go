package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func addItem(t *testing.T, handler http.HandlerFunc, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), sessionID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAddCartItemAndGetCart(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)

	rec := addItem(t, AddCartItem(carts, logg), "session-1", `{"photoId":1,"size":"medium","frame":"black","quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload cartResponse
	decodeEnvelope(t, rec, &payload)
	if len(payload.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(payload.Items))
	}
	line := payload.Items[0]
	if line.UnitPrice != "50.00" || line.LineTotal != "100.00" {
		t.Fatalf("unexpected pricing %+v", line)
	}
	if payload.Subtotal != "100.00" || payload.ItemCount != 2 {
		t.Fatalf("unexpected cart summary %+v", payload)
	}

	getReq := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "session-1")
	getRec := httptest.NewRecorder()
	GetCart(carts, logg).ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}
	var fetched cartResponse
	decodeEnvelope(t, getRec, &fetched)
	if fetched.Subtotal != "100.00" {
		t.Fatalf("expected persisted cart, got %+v", fetched)
	}
}

func TestAddCartItemRejectsUnknownSize(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	rec := addItem(t, AddCartItem(carts, testLogger(t)), "session-1", `{"photoId":1,"size":"poster","quantity":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddCartItemRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	rec := addItem(t, AddCartItem(carts, testLogger(t)), "session-1", `{"photoId":1,"size":"medium","quantity":1,"price":"0.01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateCartItemToZeroRemovesLine(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)
	addItem(t, AddCartItem(carts, logg), "session-1", `{"photoId":1,"size":"medium","frame":"black","quantity":2}`)

	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/1/medium/black", strings.NewReader(`{"quantity":0}`)), "session-1")
	req = withURLParams(req, map[string]string{"photoID": "1", "size": "medium", "frame": "black"})
	rec := httptest.NewRecorder()
	UpdateCartItem(carts, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload cartResponse
	decodeEnvelope(t, rec, &payload)
	if len(payload.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", payload.Items)
	}
}

func TestUpdateCartItemUnknownLine(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/1/medium/black", strings.NewReader(`{"quantity":1}`)), "session-1")
	req = withURLParams(req, map[string]string{"photoID": "1", "size": "medium", "frame": "black"})
	rec := httptest.NewRecorder()
	UpdateCartItem(carts, testLogger(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRemoveCartItem(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)
	addItem(t, AddCartItem(carts, logg), "session-1", `{"photoId":1,"size":"medium","quantity":1}`)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/1/medium/none", nil), "session-1")
	req = withURLParams(req, map[string]string{"photoID": "1", "size": "medium", "frame": "none"})
	rec := httptest.NewRecorder()
	RemoveCartItem(carts, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload cartResponse
	decodeEnvelope(t, rec, &payload)
	if len(payload.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", payload.Items)
	}
}

func TestClearCart(t *testing.T) {
	t.Parallel()

	_, _, carts := newCatalogFixture(t)
	logg := testLogger(t)
	addItem(t, AddCartItem(carts, logg), "session-1", `{"photoId":1,"size":"medium","quantity":1}`)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "session-1")
	rec := httptest.NewRecorder()
	ClearCart(carts, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	getReq := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "session-1")
	getRec := httptest.NewRecorder()
	GetCart(carts, logg).ServeHTTP(getRec, getReq)
	var payload cartResponse
	decodeEnvelope(t, getRec, &payload)
	if len(payload.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", payload.Items)
	}
}
