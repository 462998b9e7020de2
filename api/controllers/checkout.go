package controllers

import (
	"net/http"

	"github.com/atelier-ng/atelier-backend/api/responses"
	"github.com/atelier-ng/atelier-backend/api/validators"
	"github.com/atelier-ng/atelier-backend/internal/checkout"
	"github.com/atelier-ng/atelier-backend/pkg/logger"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

type checkoutInfoRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required,min=7"`
	Street     string  `json:"street" validate:"required"`
	City       string  `json:"city" validate:"required"`
	State      string  `json:"state" validate:"required"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postal_code,omitempty"`
}

func (req checkoutInfoRequest) toInfo() checkout.CustomerInfo {
	return checkout.CustomerInfo{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		Country: req.Country,
		Postal:  req.PostalCode,
	}
}

func GetCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, logg)
		if !ok {
			return
		}

		dto, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func SubmitCheckoutInfo(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, logg)
		if !ok {
			return
		}

		var payload checkoutInfoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SubmitInfo(r.Context(), sessionID, payload.toInfo())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func SubmitCheckoutMeasurements(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, logg)
		if !ok {
			return
		}

		var payload types.Measurements
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SubmitMeasurements(r.Context(), sessionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func CheckoutBack(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, logg)
		if !ok {
			return
		}

		dto, err := svc.Back(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// SubmitOrder places the order for a confirmed checkout session and returns
// the payment redirect.
func SubmitOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCartSession(w, r, logg)
		if !ok {
			return
		}

		result, err := svc.Submit(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
