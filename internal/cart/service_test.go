package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/internal/catalog"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/redis"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

type fakeProductReader struct {
	products map[uuid.UUID]*catalog.ProductDTO
}

func (f *fakeProductReader) GetPublished(_ context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	if product, ok := f.products[id]; ok {
		return product, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func newTestService(t *testing.T, products ...*catalog.ProductDTO) Service {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewFromAddr(srv.Addr())
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewSessionStore(client, time.Hour)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}

	reader := &fakeProductReader{products: map[uuid.UUID]*catalog.ProductDTO{}}
	for _, p := range products {
		reader.products[p.ID] = p
	}

	svc, err := NewService(store, reader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func stockProduct(stock types.StockLevels) *catalog.ProductDTO {
	return &catalog.ProductDTO{
		ID:          uuid.New(),
		Title:       "Charcoal Suit",
		Price:       50000,
		Images:      []string{"https://cdn.example.com/suit.jpg"},
		StockLevels: stock,
	}
}

func TestServiceAddItemSnapshotsAndPersists(t *testing.T) {
	product := stockProduct(types.StockLevels{"M": 5})
	svc := newTestService(t, product)
	ctx := context.Background()

	dto, err := svc.AddItem(ctx, "session-1", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 2})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(dto.Items))
	}
	if dto.Items[0].Price != 50000 || dto.Items[0].Title != "Charcoal Suit" {
		t.Fatalf("expected snapshotted product data, got %+v", dto.Items[0])
	}
	if dto.TotalAmount != 100000 {
		t.Fatalf("expected total 100000, got %d", dto.TotalAmount)
	}

	// reload from the store
	reloaded, err := svc.Get(ctx, "session-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if reloaded.TotalItems != 2 {
		t.Fatalf("expected persisted quantity 2, got %d", reloaded.TotalItems)
	}
}

func TestServiceAddItemClampsToStock(t *testing.T) {
	product := stockProduct(types.StockLevels{"M": 3})
	svc := newTestService(t, product)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	dto, err := svc.AddItem(ctx, "s", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 5})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if dto.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity clamped to 3, got %d", dto.Items[0].Quantity)
	}

	_, err = svc.AddItem(ctx, "s", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 1})
	if err == nil {
		t.Fatal("expected error when size is fully in cart")
	}
}

func TestServiceAddItemOutOfStock(t *testing.T) {
	product := stockProduct(types.StockLevels{"M": 0})
	svc := newTestService(t, product)

	_, err := svc.AddItem(context.Background(), "s", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 1})
	if err == nil {
		t.Fatal("expected out-of-stock error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestServiceAddBespokeItems(t *testing.T) {
	product := stockProduct(types.StockLevels{})
	svc := newTestService(t, product)
	ctx := context.Background()

	notes := "client prefers slim fit"
	measurements := &types.Measurements{Notes: &notes}

	if _, err := svc.AddItem(ctx, "s", AddItemInput{ProductID: product.ID, Size: "M", IsBespoke: true, Measurements: measurements, Quantity: 1}); err != nil {
		t.Fatalf("first bespoke add: %v", err)
	}
	dto, err := svc.AddItem(ctx, "s", AddItemInput{ProductID: product.ID, Size: "M", IsBespoke: true, Quantity: 1})
	if err != nil {
		t.Fatalf("second bespoke add: %v", err)
	}
	if len(dto.Items) != 2 {
		t.Fatalf("expected 2 distinct bespoke lines, got %d", len(dto.Items))
	}
	if !dto.HasBespokeItems {
		t.Fatal("expected bespoke flag")
	}
}

func TestServiceRejectsBespokeForStockedNonHybrid(t *testing.T) {
	product := stockProduct(types.StockLevels{"M": 4})
	svc := newTestService(t, product)

	_, err := svc.AddItem(context.Background(), "s", AddItemInput{ProductID: product.ID, Size: "M", IsBespoke: true, Quantity: 1})
	if err == nil {
		t.Fatal("expected rejection for bespoke on stocked non-hybrid product")
	}
}

func TestServiceHybridAllowsBespokeWhileStocked(t *testing.T) {
	product := stockProduct(types.StockLevels{"M": 4})
	product.IsHybrid = true
	svc := newTestService(t, product)

	dto, err := svc.AddItem(context.Background(), "s", AddItemInput{ProductID: product.ID, Size: "M", IsBespoke: true, Quantity: 1})
	if err != nil {
		t.Fatalf("bespoke add on hybrid: %v", err)
	}
	if !dto.Items[0].IsBespoke {
		t.Fatal("expected bespoke line")
	}
}

func TestServiceUpdateRemoveClear(t *testing.T) {
	product := stockProduct(types.StockLevels{"M": 10})
	svc := newTestService(t, product)
	ctx := context.Background()

	dto, err := svc.AddItem(ctx, "s", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id := dto.Items[0].ID

	dto, err = svc.UpdateQuantity(ctx, "s", id, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", dto.Items[0].Quantity)
	}

	// clamped to stock
	dto, err = svc.UpdateQuantity(ctx, "s", id, 50)
	if err != nil {
		t.Fatalf("update beyond stock: %v", err)
	}
	if dto.Items[0].Quantity != 10 {
		t.Fatalf("expected quantity clamped to 10, got %d", dto.Items[0].Quantity)
	}

	// zero removes
	dto, err = svc.UpdateQuantity(ctx, "s", id, 0)
	if err != nil {
		t.Fatalf("zero update: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected cart emptied, got %d lines", len(dto.Items))
	}

	if _, err := svc.AddItem(ctx, "s", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 1}); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	dto, err = svc.Clear(ctx, "s")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if dto.TotalItems != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", dto.TotalItems)
	}
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	product := stockProduct(types.StockLevels{"M": 10})
	svc := newTestService(t, product)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "alpha", AddItemInput{ProductID: product.ID, Size: "M", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	other, err := svc.Get(ctx, "beta")
	if err != nil {
		t.Fatalf("get other session: %v", err)
	}
	if other.TotalItems != 0 {
		t.Fatalf("expected empty cart for other session, got %d items", other.TotalItems)
	}
}
