package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the snapshot of each line within an order. Price is
// copied from the cart at creation time, immune to later product edits.
type OrderItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Title     string     `gorm:"column:title;not null"`
	Price     int        `gorm:"column:price;not null"`
	Size      string     `gorm:"column:size;not null"`
	Quantity  int        `gorm:"column:quantity;not null"`
	IsBespoke bool       `gorm:"column:is_bespoke;not null;default:false"`
	Image     *string    `gorm:"column:image"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
