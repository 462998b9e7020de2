package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/api/middleware"
	cartsvc "github.com/atelier-ng/atelier-backend/internal/cart"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
)

type stubCartService struct {
	dto      *cartsvc.CartDTO
	err      error
	lastCall string
	gotInput cartsvc.AddItemInput
	gotQty   int
}

func (s *stubCartService) Get(ctx context.Context, sessionID string) (*cartsvc.CartDTO, error) {
	s.lastCall = "get"
	return s.dto, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.CartDTO, error) {
	s.lastCall = "add"
	s.gotInput = input
	return s.dto, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*cartsvc.CartDTO, error) {
	s.lastCall = "update"
	s.gotQty = quantity
	return s.dto, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*cartsvc.CartDTO, error) {
	s.lastCall = "remove"
	return s.dto, s.err
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) (*cartsvc.CartDTO, error) {
	s.lastCall = "clear"
	return s.dto, s.err
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithCartSession(req.Context(), uuid.NewString()))
}

func TestGetCartSuccess(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{TotalItems: 2, TotalAmount: 100000}}
	handler := GetCart(stub, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalAmount != 100000 {
		t.Fatalf("unexpected total %d", envelope.Data.TotalAmount)
	}
}

func TestGetCartMissingSession(t *testing.T) {
	handler := GetCart(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestAddCartItemDecodesPayload(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{}}
	handler := AddCartItem(stub, nil)

	productID := uuid.NewString()
	body := `{"product_id":"` + productID + `","size":"M","quantity":2}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotInput.ProductID.String() != productID {
		t.Fatalf("unexpected product id %s", stub.gotInput.ProductID)
	}
	if stub.gotInput.Quantity != 2 || stub.gotInput.Size != "M" {
		t.Fatalf("unexpected input %+v", stub.gotInput)
	}
}

func TestAddCartItemRejectsBadProductID(t *testing.T) {
	handler := AddCartItem(&stubCartService{}, nil)

	body := `{"product_id":"nope","size":"M"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAddCartItemRejectsUnknownFields(t *testing.T) {
	handler := AddCartItem(&stubCartService{}, nil)

	body := `{"product_id":"` + uuid.NewString() + `","size":"M","price":1}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAddCartItemOutOfStock(t *testing.T) {
	stub := &stubCartService{err: pkgerrors.New(pkgerrors.CodeValidation, "size is out of stock")}
	handler := AddCartItem(stub, nil)

	body := `{"product_id":"` + uuid.NewString() + `","size":"M"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateCartItemPassesQuantity(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{}}
	handler := chiHandler(t, "/api/v1/cart/items/{itemID}", http.MethodPut, UpdateCartItem(stub, nil))

	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/abc", strings.NewReader(`{"quantity":0}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.lastCall != "update" || stub.gotQty != 0 {
		t.Fatalf("unexpected call %s qty %d", stub.lastCall, stub.gotQty)
	}
}

func TestClearCart(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{}}
	handler := ClearCart(stub, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.lastCall != "clear" {
		t.Fatalf("unexpected call %s", stub.lastCall)
	}
}
