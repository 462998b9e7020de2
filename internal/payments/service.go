package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-ng/atelier-backend/internal/orders"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/logger"
	"github.com/atelier-ng/atelier-backend/pkg/money"
	"github.com/atelier-ng/atelier-backend/pkg/paystack"
)

// Config carries the storefront settings used when talking to the gateway.
type Config struct {
	Currency    string
	CallbackURL string
}

type gateway interface {
	InitializeTransaction(ctx context.Context, req paystack.InitializeRequest) (*paystack.Authorization, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.Transaction, error)
}

// InitializeResult is the redirect handle for a freshly created transaction.
type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyResult reports the settled state of a transaction verification.
type VerifyResult struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Paid      bool   `json:"paid"`
	OrderID   string `json:"order_id,omitempty"`
}

// Service initializes and verifies gateway transactions for orders. Both
// operations are safe to repeat: re-initializing issues a fresh redirect and
// re-verifying a settled order changes nothing.
type Service interface {
	Initialize(ctx context.Context, orderID uuid.UUID) (*InitializeResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

type service struct {
	repo    *orders.Repository
	gateway gateway
	cfg     Config
	logg    *logger.Logger
}

func NewService(repo *orders.Repository, gw gateway, cfg Config, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments: orders repository is required")
	}
	if gw == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments: gateway is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments: logger is required")
	}
	return &service{repo: repo, gateway: gw, cfg: cfg, logg: logg}, nil
}

// Initialize creates a gateway transaction for a pending order. Used both for
// the checkout redirect and to retry orders whose payment was deferred.
func (s *service) Initialize(ctx context.Context, orderID uuid.UUID) (*InitializeResult, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not awaiting payment")
	}

	reference := newReference(order.ID)
	auth, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:       order.CustomerEmail,
		Amount:      money.ToMinorUnits(order.TotalAmount),
		Reference:   reference,
		Currency:    s.cfg.Currency,
		CallbackURL: s.cfg.CallbackURL,
		Metadata:    map[string]string{"order_id": order.ID.String()},
	})
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"paystack_reference": auth.Reference}
	if order.PaymentDeferred {
		fields["payment_deferred"] = false
	}
	if err := s.repo.UpdateFields(ctx, order.ID, fields); err != nil {
		return nil, err
	}

	return &InitializeResult{
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
		Reference:        auth.Reference,
	}, nil
}

// Verify checks a transaction with the gateway and, on success, marks the
// matching order paid. Repeat calls for an already-paid order are no-ops.
func (s *service) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction reference is required")
	}

	txn, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Reference: txn.Reference, Status: txn.Status, Paid: txn.Paid()}
	if !txn.Paid() {
		return result, nil
	}

	order, err := s.repo.FindByPaystackReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	result.OrderID = order.ID.String()

	if order.Status != enums.OrderStatusPending {
		return result, nil
	}

	if expected := money.ToMinorUnits(order.TotalAmount); txn.Amount != expected {
		ctx = s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Warn(ctx, fmt.Sprintf("verified amount %d does not match order total %d", txn.Amount, expected))
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "settled amount does not match the order total")
	}

	fields := map[string]any{"status": enums.OrderStatusPaid}
	if order.PaymentDeferred {
		fields["payment_deferred"] = false
	}
	if err := s.repo.UpdateFields(ctx, order.ID, fields); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "order marked paid")

	return result, nil
}

func newReference(orderID uuid.UUID) string {
	return fmt.Sprintf("atl_%s_%s", strings.ReplaceAll(orderID.String(), "-", ""), uuid.NewString()[:8])
}
