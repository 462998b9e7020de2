package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/pagination"
)

// Service exposes the admin order surface and the customer tracking lookup.
type Service interface {
	AdminList(ctx context.Context, input AdminListInput) (*OrderListResult, error)
	AdminGet(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	SetDeliveryDate(ctx context.Context, orderID uuid.UUID, date *time.Time) (*OrderDTO, error)
	Track(ctx context.Context, token string) (*TrackingDTO, error)
}

// AdminListInput filters the admin order list.
type AdminListInput struct {
	Status          *enums.OrderStatus
	OrderType       *enums.OrderType
	PaymentDeferred *bool
	Pagination      pagination.Params
}

type service struct {
	repo *Repository
}

// NewService constructs an orders service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// AdminList returns orders newest-first with optional status, type, and
// payment-deferred filters.
func (s *service) AdminList(ctx context.Context, input AdminListInput) (*OrderListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	if input.OrderType != nil && !input.OrderType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order type")
	}
	result, err := s.repo.ListOrders(ctx, orderListQuery{
		Pagination:      input.Pagination,
		Status:          input.Status,
		OrderType:       input.OrderType,
		PaymentDeferred: input.PaymentDeferred,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return result, nil
}

// AdminGet loads one order with its items.
func (s *service) AdminGet(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return NewOrderDTO(order), nil
}

// UpdateStatus writes the admin-chosen status. Any status may replace any
// other; the progression is not a graph.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	if _, err := s.AdminGet(ctx, orderID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, orderID, map[string]any{"status": status}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return s.AdminGet(ctx, orderID)
}

// SetDeliveryDate writes or clears the expected delivery date.
func (s *service) SetDeliveryDate(ctx context.Context, orderID uuid.UUID, date *time.Time) (*OrderDTO, error) {
	if _, err := s.AdminGet(ctx, orderID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, orderID, map[string]any{"delivery_date": date}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery date")
	}
	return s.AdminGet(ctx, orderID)
}

// Track resolves a customer tracking token to the reduced order view.
func (s *service) Track(ctx context.Context, token string) (*TrackingDTO, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking token is required")
	}
	order, err := s.repo.FindByTrackingToken(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return NewTrackingDTO(order), nil
}
