package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atelier-ng/atelier-backend/internal/checkout"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

type stubCheckoutService struct {
	dto      *checkout.SessionDTO
	result   *checkout.SubmitResult
	err      error
	lastCall string
	gotInfo  checkout.CustomerInfo
}

func (s *stubCheckoutService) Get(ctx context.Context, sessionID string) (*checkout.SessionDTO, error) {
	s.lastCall = "get"
	return s.dto, s.err
}

func (s *stubCheckoutService) SubmitInfo(ctx context.Context, sessionID string, info checkout.CustomerInfo) (*checkout.SessionDTO, error) {
	s.lastCall = "info"
	s.gotInfo = info
	return s.dto, s.err
}

func (s *stubCheckoutService) SubmitMeasurements(ctx context.Context, sessionID string, m types.Measurements) (*checkout.SessionDTO, error) {
	s.lastCall = "measurements"
	return s.dto, s.err
}

func (s *stubCheckoutService) Back(ctx context.Context, sessionID string) (*checkout.SessionDTO, error) {
	s.lastCall = "back"
	return s.dto, s.err
}

func (s *stubCheckoutService) Submit(ctx context.Context, sessionID string) (*checkout.SubmitResult, error) {
	s.lastCall = "submit"
	return s.result, s.err
}

func TestSubmitCheckoutInfoDecodesPayload(t *testing.T) {
	stub := &stubCheckoutService{dto: &checkout.SessionDTO{Step: checkout.StepMeasurements}}
	handler := SubmitCheckoutInfo(stub, nil)

	body := `{"name":"Ada Obi","email":"ada@example.com","phone":"+2348012345678","street":"12 Awolowo Road","city":"Ikoyi","state":"Lagos","country":"Nigeria"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/info", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotInfo.Email != "ada@example.com" || stub.gotInfo.City != "Ikoyi" {
		t.Fatalf("unexpected info %+v", stub.gotInfo)
	}

	var envelope struct {
		Data checkout.SessionDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Step != checkout.StepMeasurements {
		t.Fatalf("unexpected step %s", envelope.Data.Step)
	}
}

func TestSubmitCheckoutInfoRejectsMissingEmail(t *testing.T) {
	handler := SubmitCheckoutInfo(&stubCheckoutService{}, nil)

	body := `{"name":"Ada Obi","phone":"+2348012345678","street":"12 Awolowo Road","city":"Ikoyi","state":"Lagos"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/info", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSubmitOrderReturnsCreated(t *testing.T) {
	stub := &stubCheckoutService{result: &checkout.SubmitResult{AuthorizationURL: "https://checkout.paystack.com/abc"}}
	handler := SubmitOrder(stub, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data checkout.SubmitResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AuthorizationURL == "" {
		t.Fatal("expected authorization url in payload")
	}
}

func TestSubmitOrderUnconfirmedCheckout(t *testing.T) {
	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has not been confirmed")}
	handler := SubmitOrder(stub, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutBack(t *testing.T) {
	stub := &stubCheckoutService{dto: &checkout.SessionDTO{Step: checkout.StepInfo}}
	handler := CheckoutBack(stub, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/back", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.lastCall != "back" {
		t.Fatalf("unexpected call %s", stub.lastCall)
	}
}
