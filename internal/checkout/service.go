package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-ng/atelier-backend/internal/cart"
	"github.com/atelier-ng/atelier-backend/internal/catalog"
	"github.com/atelier-ng/atelier-backend/internal/orders"
	"github.com/atelier-ng/atelier-backend/pkg/db/models"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/logger"
	"github.com/atelier-ng/atelier-backend/pkg/metrics"
	"github.com/atelier-ng/atelier-backend/pkg/money"
	"github.com/atelier-ng/atelier-backend/pkg/paystack"
	"github.com/atelier-ng/atelier-backend/pkg/security"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

const trackingTokenBytes = 24

// SessionDTO is the checkout state returned to the storefront, combined with
// the cart figures the confirm step renders.
type SessionDTO struct {
	Step         Step                `json:"step"`
	Info         *CustomerInfo       `json:"info,omitempty"`
	Measurements *types.Measurements `json:"measurements,omitempty"`
	HasBespoke   bool                `json:"has_bespoke"`
	TotalItems   int                 `json:"total_items"`
	TotalAmount  int                 `json:"total_amount"`
}

// SubmitResult reports the outcome of placing an order. AuthorizationURL is
// empty when the payment gateway was unreachable and payment was deferred.
type SubmitResult struct {
	Order            *orders.OrderDTO `json:"order"`
	AuthorizationURL string           `json:"authorization_url,omitempty"`
	Reference        string           `json:"reference,omitempty"`
	PaymentDeferred  bool             `json:"payment_deferred"`
}

// Config carries the storefront settings the submission pipeline needs.
type Config struct {
	Currency    string
	CallbackURL string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type paymentGateway interface {
	InitializeTransaction(ctx context.Context, req paystack.InitializeRequest) (*paystack.Authorization, error)
}

// Service drives the checkout flow for a cart session and turns a confirmed
// session into a persisted order.
type Service interface {
	Get(ctx context.Context, sessionID string) (*SessionDTO, error)
	SubmitInfo(ctx context.Context, sessionID string, info CustomerInfo) (*SessionDTO, error)
	SubmitMeasurements(ctx context.Context, sessionID string, m types.Measurements) (*SessionDTO, error)
	Back(ctx context.Context, sessionID string) (*SessionDTO, error)
	Submit(ctx context.Context, sessionID string) (*SubmitResult, error)
}

type service struct {
	store       *SessionStore
	carts       *cart.SessionStore
	ordersRepo  *orders.Repository
	catalogRepo *catalog.Repository
	runner      txRunner
	gateway     paymentGateway
	cfg         Config
	logg        *logger.Logger
	metrics     *metrics.OrderMetrics
}

func NewService(
	store *SessionStore,
	carts *cart.SessionStore,
	ordersRepo *orders.Repository,
	catalogRepo *catalog.Repository,
	runner txRunner,
	gateway paymentGateway,
	cfg Config,
	logg *logger.Logger,
	orderMetrics *metrics.OrderMetrics,
) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: session store is required")
	}
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: cart store is required")
	}
	if ordersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: orders repository is required")
	}
	if catalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: catalog repository is required")
	}
	if runner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: transaction runner is required")
	}
	if gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: payment gateway is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: logger is required")
	}
	return &service{
		store:       store,
		carts:       carts,
		ordersRepo:  ordersRepo,
		catalogRepo: catalogRepo,
		runner:      runner,
		gateway:     gateway,
		cfg:         cfg,
		logg:        logg,
		metrics:     orderMetrics,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*SessionDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, sessionID, session)
}

func (s *service) SubmitInfo(ctx context.Context, sessionID string, info CustomerInfo) (*SessionDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	current, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	if err := session.SubmitInfo(info, current.HasBespokeItems()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return nil, err
	}
	return s.toDTO(ctx, sessionID, session)
}

func (s *service) SubmitMeasurements(ctx context.Context, sessionID string, m types.Measurements) (*SessionDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SubmitMeasurements(m); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return nil, err
	}
	return s.toDTO(ctx, sessionID, session)
}

func (s *service) Back(ctx context.Context, sessionID string) (*SessionDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Back()
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return nil, err
	}
	return s.toDTO(ctx, sessionID, session)
}

// Submit places the order for a confirmed checkout. Order creation and stock
// decrement happen in one transaction; the payment call runs after commit so
// a gateway outage defers payment instead of losing the order.
func (s *service) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	ctx = s.logg.WithCartSession(ctx, sessionID)

	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.ReadyToSubmit() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has not been confirmed")
	}

	current, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		s.countSubmitted("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	order, err := s.buildOrder(session, current)
	if err != nil {
		return nil, err
	}

	err = s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		shortfall, txErr := s.decrementStock(ctx, tx, current.Items)
		if txErr != nil {
			return txErr
		}
		order.StockShortfall = shortfall

		_, txErr = s.ordersRepo.WithTx(tx).CreateOrder(ctx, order)
		return txErr
	})
	if err != nil {
		s.countSubmitted("failed")
		return nil, err
	}
	s.countSubmitted("success")

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	if order.StockShortfall {
		if s.metrics != nil {
			s.metrics.IncStockShortfall()
		}
		s.logg.Warn(ctx, "order created with stock shortfall")
	}

	result := &SubmitResult{Order: orders.NewOrderDTO(order)}
	s.initializePayment(ctx, order, session.Info.Email, result)

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "failed to clear cart after submission", err)
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "failed to clear checkout session after submission", err)
	}
	return result, nil
}

func (s *service) buildOrder(session *Session, current *cart.Cart) (*models.Order, error) {
	token, err := security.GenerateToken(trackingTokenBytes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to generate tracking token")
	}

	orderType := enums.OrderTypeStock
	var measurements *types.Measurements
	if current.HasBespokeItems() {
		orderType = enums.OrderTypeBespoke
		if session.Measurements != nil && !session.Measurements.IsEmpty() {
			copied := *session.Measurements
			measurements = &copied
		}
	}

	items := make([]models.OrderItem, 0, len(current.Items))
	for _, item := range current.Items {
		productID := item.ProductID
		items = append(items, models.OrderItem{
			ProductID: &productID,
			Title:     item.Title,
			Price:     item.Price,
			Size:      item.Size,
			Quantity:  item.Quantity,
			IsBespoke: item.IsBespoke,
			Image:     item.Image,
		})
	}

	info := session.Info
	return &models.Order{
		CustomerName:    strings.TrimSpace(info.Name),
		CustomerEmail:   strings.TrimSpace(info.Email),
		CustomerPhone:   strings.TrimSpace(info.Phone),
		ShippingAddress: info.ShippingAddress(),
		TotalAmount:     current.TotalAmount(),
		Status:          enums.OrderStatusPending,
		OrderType:       orderType,
		Measurements:    measurements,
		TrackingToken:   token,
		Items:           items,
	}, nil
}

// decrementStock locks each stocked product row and reduces its level,
// flooring at zero. A true return means at least one line could not be fully
// covered and the order should be flagged for manual review.
func (s *service) decrementStock(ctx context.Context, tx *gorm.DB, items []cart.Item) (bool, error) {
	repo := s.catalogRepo.WithTx(tx)
	shortfall := false

	for _, item := range items {
		if item.IsBespoke {
			continue
		}
		product, err := repo.FindForUpdate(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				shortfall = true
				continue
			}
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock product stock")
		}
		if product.StockLevels == nil {
			product.StockLevels = types.StockLevels{}
		}
		if missed := product.StockLevels.Decrement(item.Size, item.Quantity); missed > 0 {
			shortfall = true
		}
		if err := repo.UpdateStockLevels(ctx, product); err != nil {
			return false, err
		}
	}
	return shortfall, nil
}

// initializePayment calls the gateway after the order is committed. Failures
// mark the order payment-deferred rather than surfacing an error.
func (s *service) initializePayment(ctx context.Context, order *models.Order, email string, result *SubmitResult) {
	reference := paymentReference(order.ID)
	auth, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:       email,
		Amount:      money.ToMinorUnits(order.TotalAmount),
		Reference:   reference,
		Currency:    s.cfg.Currency,
		CallbackURL: s.cfg.CallbackURL,
		Metadata:    map[string]string{"order_id": order.ID.String()},
	})
	if err != nil {
		s.logg.Error(ctx, "payment initialization failed, deferring payment", err)
		if updateErr := s.ordersRepo.UpdateFields(ctx, order.ID, map[string]any{"payment_deferred": true}); updateErr != nil {
			s.logg.Error(ctx, "failed to flag order as payment deferred", updateErr)
		}
		if s.metrics != nil {
			s.metrics.IncPaymentDeferred()
		}
		result.PaymentDeferred = true
		result.Order.PaymentDeferred = true
		return
	}

	if err := s.ordersRepo.UpdateFields(ctx, order.ID, map[string]any{"paystack_reference": auth.Reference}); err != nil {
		s.logg.Error(ctx, "failed to store payment reference", err)
	}
	result.AuthorizationURL = auth.AuthorizationURL
	result.Reference = auth.Reference
	result.Order.PaystackReference = &auth.Reference
}

func (s *service) countSubmitted(outcome string) {
	if s.metrics != nil {
		s.metrics.IncSubmitted(outcome)
	}
}

func (s *service) toDTO(ctx context.Context, sessionID string, session *Session) (*SessionDTO, error) {
	current, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionDTO{
		Step:         session.Step,
		Info:         session.Info,
		Measurements: session.Measurements,
		HasBespoke:   current.HasBespokeItems(),
		TotalItems:   current.TotalItems(),
		TotalAmount:  current.TotalAmount(),
	}, nil
}

func paymentReference(orderID uuid.UUID) string {
	return fmt.Sprintf("atl_%s", strings.ReplaceAll(orderID.String(), "-", ""))
}
