package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/internal/catalog"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// Service exposes the session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*CartDTO, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*CartDTO, error)
	Clear(ctx context.Context, sessionID string) (*CartDTO, error)
}

// AddItemInput is the candidate line before price/title snapshotting.
type AddItemInput struct {
	ProductID    uuid.UUID
	Size         string
	Quantity     int
	IsBespoke    bool
	Measurements *types.Measurements
}

// CartDTO is the cart payload returned to clients, with derived aggregates
// recomputed on every read.
type CartDTO struct {
	Items           []Item `json:"items"`
	TotalItems      int    `json:"total_items"`
	TotalAmount     int    `json:"total_amount"`
	HasBespokeItems bool   `json:"has_bespoke_items"`
	Open            bool   `json:"open"`
}

type productReader interface {
	GetPublished(ctx context.Context, productID uuid.UUID) (*catalog.ProductDTO, error)
}

type service struct {
	store    *SessionStore
	products productReader
}

// NewService constructs a cart service instance.
func NewService(store *SessionStore, products productReader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart session store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{store: store, products: products}, nil
}

// Get returns the session cart.
func (s *service) Get(ctx context.Context, sessionID string) (*CartDTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartDTO(cart), nil
}

// AddItem snapshots the product into a cart line. Stock lines clamp to the
// quantity the size actually has; bespoke lines always append.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error) {
	if !enums.Size(input.Size).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown size")
	}

	product, err := s.products.GetPublished(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	available := product.StockLevels.Qty(input.Size)
	if input.IsBespoke {
		if !product.IsHybrid && available > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not accept bespoke orders while in stock")
		}
	} else {
		if available == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "size is out of stock")
		}
		inCart := 0
		if existing := cart.Find(StockItemID(input.ProductID, input.Size)); existing != nil {
			inCart = existing.Quantity
		}
		if inCart+quantity > available {
			quantity = available - inCart
		}
		if quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "no more stock available for this size")
		}
	}

	var image *string
	if len(product.Images) > 0 {
		image = &product.Images[0]
	}

	cart.AddItem(Item{
		ProductID:    product.ID,
		Title:        product.Title,
		Price:        product.Price,
		Size:         input.Size,
		Quantity:     quantity,
		Image:        image,
		IsBespoke:    input.IsBespoke,
		Measurements: input.Measurements,
	})

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return newCartDTO(cart), nil
}

// UpdateQuantity overwrites a line's quantity; zero removes the line.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*CartDTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity > 0 {
		if item := cart.Find(itemID); item != nil && !item.IsBespoke {
			if product, err := s.products.GetPublished(ctx, item.ProductID); err == nil {
				if available := product.StockLevels.Qty(item.Size); quantity > available {
					quantity = available
				}
			}
		}
	}

	cart.UpdateQuantity(itemID, quantity)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return newCartDTO(cart), nil
}

// RemoveItem deletes the line; absent ids are a no-op.
func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (*CartDTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(itemID)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return newCartDTO(cart), nil
}

// Clear empties the session cart.
func (s *service) Clear(ctx context.Context, sessionID string) (*CartDTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return newCartDTO(cart), nil
}

func newCartDTO(cart *Cart) *CartDTO {
	return &CartDTO{
		Items:           cart.Items,
		TotalItems:      cart.TotalItems(),
		TotalAmount:     cart.TotalAmount(),
		HasBespokeItems: cart.HasBespokeItems(),
		Open:            cart.Open,
	}
}
