package payments

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/atelier-ng/atelier-backend/internal/orders"
	"github.com/atelier-ng/atelier-backend/pkg/db/models"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/logger"
	"github.com/atelier-ng/atelier-backend/pkg/paystack"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

type fakeGateway struct {
	initErr      error
	verifyErr    error
	transactions map[string]*paystack.Transaction
	initialized  []paystack.InitializeRequest
	verified     []string
}

func (f *fakeGateway) InitializeTransaction(_ context.Context, req paystack.InitializeRequest) (*paystack.Authorization, error) {
	f.initialized = append(f.initialized, req)
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &paystack.Authorization{
		AuthorizationURL: "https://checkout.paystack.com/xyz789",
		AccessCode:       "xyz789",
		Reference:        req.Reference,
	}, nil
}

func (f *fakeGateway) VerifyTransaction(_ context.Context, reference string) (*paystack.Transaction, error) {
	f.verified = append(f.verified, reference)
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	txn, ok := f.transactions[reference]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
	}
	return txn, nil
}

func setupPaymentsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:payments_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL DEFAULT '',
  shipping_address TEXT,
  total_amount INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  order_type TEXT NOT NULL DEFAULT 'stock',
  measurements TEXT,
  delivery_date DATETIME,
  paystack_reference TEXT,
  tracking_token TEXT NOT NULL UNIQUE,
  payment_deferred INTEGER NOT NULL DEFAULT 0,
  stock_shortfall INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	itemsTable := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  title TEXT NOT NULL,
  price INTEGER NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  is_bespoke INTEGER NOT NULL DEFAULT 0,
  image TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(itemsTable).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB, gw *fakeGateway) (Service, *orders.Repository) {
	t.Helper()

	repo := orders.NewRepository(db)
	logg := logger.New(logger.Options{ServiceName: "payments-test", Output: io.Discard})
	svc, err := NewService(repo, gw, Config{Currency: "NGN", CallbackURL: "https://atelier.example.com/payment/callback"}, logg)
	require.NoError(t, err)
	return svc, repo
}

func createPendingOrder(t *testing.T, repo *orders.Repository, total int, deferred bool) *models.Order {
	t.Helper()

	order := &models.Order{
		CustomerName:    "Ada Obi",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+2348012345678",
		ShippingAddress: types.ShippingAddress{Street: "12 Awolowo Road", City: "Ikoyi", State: "Lagos", Country: "Nigeria"},
		TotalAmount:     total,
		Status:          enums.OrderStatusPending,
		OrderType:       enums.OrderTypeStock,
		TrackingToken:   uuid.NewString(),
		PaymentDeferred: deferred,
	}
	created, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestInitializeCreatesTransaction(t *testing.T) {
	db := setupPaymentsDB(t)
	gw := &fakeGateway{}
	svc, repo := newTestService(t, db, gw)
	ctx := context.Background()

	order := createPendingOrder(t, repo, 180000, false)

	result, err := svc.Initialize(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/xyz789", result.AuthorizationURL)
	assert.NotEmpty(t, result.Reference)

	require.Len(t, gw.initialized, 1)
	assert.Equal(t, "ada@example.com", gw.initialized[0].Email)
	assert.Equal(t, int64(18000000), gw.initialized[0].Amount)
	assert.Equal(t, "NGN", gw.initialized[0].Currency)
	assert.Equal(t, order.ID.String(), gw.initialized[0].Metadata["order_id"])

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaystackReference)
	assert.Equal(t, result.Reference, *stored.PaystackReference)
}

func TestInitializeClearsDeferredFlag(t *testing.T) {
	db := setupPaymentsDB(t)
	gw := &fakeGateway{}
	svc, repo := newTestService(t, db, gw)
	ctx := context.Background()

	order := createPendingOrder(t, repo, 50000, true)

	_, err := svc.Initialize(ctx, order.ID)
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, stored.PaymentDeferred)
}

func TestInitializeRejectsSettledOrder(t *testing.T) {
	db := setupPaymentsDB(t)
	svc, repo := newTestService(t, db, &fakeGateway{})
	ctx := context.Background()

	order := createPendingOrder(t, repo, 50000, false)
	require.NoError(t, repo.UpdateFields(ctx, order.ID, map[string]any{"status": enums.OrderStatusPaid}))

	_, err := svc.Initialize(ctx, order.ID)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestInitializeUnknownOrder(t *testing.T) {
	db := setupPaymentsDB(t)
	svc, _ := newTestService(t, db, &fakeGateway{})

	_, err := svc.Initialize(context.Background(), uuid.New())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestVerifyMarksOrderPaid(t *testing.T) {
	db := setupPaymentsDB(t)
	gw := &fakeGateway{}
	svc, repo := newTestService(t, db, gw)
	ctx := context.Background()

	order := createPendingOrder(t, repo, 180000, false)
	reference := "atl_ref_1"
	require.NoError(t, repo.UpdateFields(ctx, order.ID, map[string]any{"paystack_reference": reference}))
	gw.transactions = map[string]*paystack.Transaction{
		reference: {Reference: reference, Status: paystack.TransactionSuccess, Amount: 18000000, Currency: "NGN"},
	}

	result, err := svc.Verify(ctx, reference)
	require.NoError(t, err)
	assert.True(t, result.Paid)
	assert.Equal(t, order.ID.String(), result.OrderID)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, stored.Status)
}

func TestVerifyIsIdempotent(t *testing.T) {
	db := setupPaymentsDB(t)
	gw := &fakeGateway{}
	svc, repo := newTestService(t, db, gw)
	ctx := context.Background()

	order := createPendingOrder(t, repo, 180000, false)
	reference := "atl_ref_2"
	require.NoError(t, repo.UpdateFields(ctx, order.ID, map[string]any{"paystack_reference": reference}))
	gw.transactions = map[string]*paystack.Transaction{
		reference: {Reference: reference, Status: paystack.TransactionSuccess, Amount: 18000000, Currency: "NGN"},
	}

	_, err := svc.Verify(ctx, reference)
	require.NoError(t, err)

	result, err := svc.Verify(ctx, reference)
	require.NoError(t, err)
	assert.True(t, result.Paid)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, stored.Status)
}

func TestVerifyUnpaidTransactionLeavesOrderPending(t *testing.T) {
	db := setupPaymentsDB(t)
	gw := &fakeGateway{}
	svc, repo := newTestService(t, db, gw)
	ctx := context.Background()

	order := createPendingOrder(t, repo, 180000, false)
	reference := "atl_ref_3"
	require.NoError(t, repo.UpdateFields(ctx, order.ID, map[string]any{"paystack_reference": reference}))
	gw.transactions = map[string]*paystack.Transaction{
		reference: {Reference: reference, Status: "abandoned", Amount: 18000000, Currency: "NGN"},
	}

	result, err := svc.Verify(ctx, reference)
	require.NoError(t, err)
	assert.False(t, result.Paid)
	assert.Equal(t, "abandoned", result.Status)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, stored.Status)
}

func TestVerifyRejectsAmountMismatch(t *testing.T) {
	db := setupPaymentsDB(t)
	gw := &fakeGateway{}
	svc, repo := newTestService(t, db, gw)
	ctx := context.Background()

	order := createPendingOrder(t, repo, 180000, false)
	reference := "atl_ref_4"
	require.NoError(t, repo.UpdateFields(ctx, order.ID, map[string]any{"paystack_reference": reference}))
	gw.transactions = map[string]*paystack.Transaction{
		reference: {Reference: reference, Status: paystack.TransactionSuccess, Amount: 100, Currency: "NGN"},
	}

	_, err := svc.Verify(ctx, reference)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, stored.Status)
}

func TestVerifyUnknownReference(t *testing.T) {
	db := setupPaymentsDB(t)
	gw := &fakeGateway{transactions: map[string]*paystack.Transaction{}}
	svc, _ := newTestService(t, db, gw)

	_, err := svc.Verify(context.Background(), "missing-ref")
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestVerifyPaidReferenceWithoutOrder(t *testing.T) {
	db := setupPaymentsDB(t)
	reference := "atl_ref_orphan"
	gw := &fakeGateway{transactions: map[string]*paystack.Transaction{
		reference: {Reference: reference, Status: paystack.TransactionSuccess, Amount: 18000000, Currency: "NGN"},
	}}
	svc, _ := newTestService(t, db, gw)

	_, err := svc.Verify(context.Background(), reference)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestVerifyBlankReference(t *testing.T) {
	db := setupPaymentsDB(t)
	svc, _ := newTestService(t, db, &fakeGateway{})

	_, err := svc.Verify(context.Background(), "  ")
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
