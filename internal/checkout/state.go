package checkout

import (
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// Step is a checkout stage. The flow is strictly linear: info, then
// measurements when the cart holds bespoke items, then confirm.
type Step string

const (
	StepInfo         Step = "info"
	StepMeasurements Step = "measurements"
	StepConfirm      Step = "confirm"
)

// CustomerInfo is the contact and shipping payload collected at the info step.
type CustomerInfo struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,min=7"`
	Street  string  `json:"street" validate:"required"`
	City    string  `json:"city" validate:"required"`
	State   string  `json:"state" validate:"required"`
	Country string  `json:"country"`
	Postal  *string `json:"postal_code,omitempty"`
}

// ShippingAddress maps the info fields onto the order address shape.
func (c CustomerInfo) ShippingAddress() types.ShippingAddress {
	return types.ShippingAddress{
		Street:     strings.TrimSpace(c.Street),
		City:       strings.TrimSpace(c.City),
		State:      strings.TrimSpace(c.State),
		Country:    strings.TrimSpace(c.Country),
		PostalCode: c.Postal,
	}
}

var infoValidator = validator.New(validator.WithRequiredStructEnabled())

// Session is the per-cart-session checkout state, persisted between steps.
type Session struct {
	Step         Step                `json:"step"`
	HasBespoke   bool                `json:"has_bespoke"`
	Info         *CustomerInfo       `json:"info,omitempty"`
	Measurements *types.Measurements `json:"measurements,omitempty"`
}

// NewSession starts a fresh checkout at the info step.
func NewSession() *Session {
	return &Session{Step: StepInfo}
}

// SubmitInfo validates the contact payload and advances. With bespoke items
// the next step is measurements, otherwise the flow skips straight to
// confirm. On validation failure the session stays at info.
func (s *Session) SubmitInfo(info CustomerInfo, hasBespoke bool) error {
	if fields := validateInfo(info); len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid customer info").WithDetails(fields)
	}

	s.Info = &info
	s.HasBespoke = hasBespoke
	if hasBespoke {
		s.Step = StepMeasurements
	} else {
		s.Step = StepConfirm
	}
	return nil
}

// SubmitMeasurements records the optional measurements and advances to
// confirm. Blank fields stay unset: "to be collected later" is a valid
// submission, so this transition never blocks on content.
func (s *Session) SubmitMeasurements(m types.Measurements) error {
	if s.Step != StepMeasurements {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "measurements are not expected at this step")
	}
	if m.IsEmpty() {
		s.Measurements = nil
	} else {
		s.Measurements = &m
	}
	s.Step = StepConfirm
	return nil
}

// Back always returns to the info step, regardless of current position.
func (s *Session) Back() {
	s.Step = StepInfo
}

// ReadyToSubmit reports whether the order can be placed.
func (s *Session) ReadyToSubmit() bool {
	return s.Step == StepConfirm && s.Info != nil
}

func validateInfo(info CustomerInfo) map[string]string {
	err := infoValidator.Struct(info)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = "invalid payload"
		return fields
	}
	for _, fieldErr := range validationErrs {
		switch fieldErr.Field() {
		case "Name":
			fields["name"] = "name is required"
		case "Email":
			fields["email"] = "a valid email is required"
		case "Phone":
			fields["phone"] = "phone must be at least 7 characters"
		case "Street":
			fields["street"] = "street is required"
		case "City":
			fields["city"] = "city is required"
		case "State":
			fields["state"] = "state is required"
		default:
			fields[strings.ToLower(fieldErr.Field())] = "invalid value"
		}
	}
	return fields
}
