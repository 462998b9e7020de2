package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/atelier-ng/atelier-backend/pkg/enums"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// Product represents a catalog listing. Prices are whole major currency
// units; the payment layer converts to minor units when charging.
type Product struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title          string                `gorm:"column:title;not null"`
	Description    string                `gorm:"column:description;not null;default:''"`
	Category       enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Price          int                   `gorm:"column:price;not null"`
	CompareAtPrice *int                  `gorm:"column:compare_at_price"`
	Images         pq.StringArray        `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Colors         pq.StringArray        `gorm:"column:colors;type:text[];not null;default:ARRAY[]::text[]"`
	IsHybrid       bool                  `gorm:"column:is_hybrid;not null;default:false"`
	StockLevels    types.StockLevels     `gorm:"column:stock_levels;type:jsonb;serializer:json"`
	ProductionTime string                `gorm:"column:production_time;not null;default:''"`
	IsPublished    bool                  `gorm:"column:is_published;not null;default:false"`
	IsFeatured     bool                  `gorm:"column:is_featured;not null;default:false"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
