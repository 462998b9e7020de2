package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/pkg/db/models"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// DefaultProductionTime is the label shown when a product has no explicit
// production duration.
const DefaultProductionTime = "2-3 weeks"

// ProductDTO represents the product payload returned to clients. Fields that
// legacy rows may lack come back defaulted, never null.
type ProductDTO struct {
	ID             uuid.UUID         `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Price          int               `json:"price"`
	CompareAtPrice *int              `json:"compare_at_price,omitempty"`
	Images         []string          `json:"images"`
	Colors         []string          `json:"colors"`
	IsHybrid       bool              `json:"is_hybrid"`
	StockLevels    types.StockLevels `json:"stock_levels"`
	TotalStock     int               `json:"total_stock"`
	ProductionTime string            `json:"production_time"`
	IsPublished    bool              `json:"is_published"`
	IsFeatured     bool              `json:"is_featured"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductListResult is a page of products plus the cursor for the next page.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model, applying read defaults.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:             product.ID,
		Title:          product.Title,
		Description:    product.Description,
		Category:       string(product.Category),
		Price:          product.Price,
		CompareAtPrice: product.CompareAtPrice,
		Images:         append([]string{}, product.Images...),
		Colors:         append([]string{}, product.Colors...),
		IsHybrid:       product.IsHybrid,
		StockLevels:    defaultedStockLevels(product.StockLevels),
		ProductionTime: product.ProductionTime,
		IsPublished:    product.IsPublished,
		IsFeatured:     product.IsFeatured,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
	dto.TotalStock = dto.StockLevels.Total()
	if dto.ProductionTime == "" {
		dto.ProductionTime = DefaultProductionTime
	}
	return dto
}

// defaultedStockLevels guarantees every known size has an entry, filling
// absent sizes with zero.
func defaultedStockLevels(levels types.StockLevels) types.StockLevels {
	out := make(types.StockLevels, len(enums.Sizes()))
	for _, size := range enums.Sizes() {
		out[size.String()] = levels.Qty(size.String())
	}
	return out
}
