package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/pkg/enums"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// Order is the persisted result of a checkout submission. Item snapshots and
// the total are frozen at creation time and survive later catalog edits.
type Order struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName      string                `gorm:"column:customer_name;not null"`
	CustomerEmail     string                `gorm:"column:customer_email;not null"`
	CustomerPhone     string                `gorm:"column:customer_phone;not null"`
	ShippingAddress   types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	TotalAmount       int                   `gorm:"column:total_amount;not null"`
	Status            enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending'"`
	OrderType         enums.OrderType       `gorm:"column:order_type;type:text;not null;default:'stock'"`
	Measurements      *types.Measurements   `gorm:"column:measurements;type:jsonb;serializer:json"`
	DeliveryDate      *time.Time            `gorm:"column:delivery_date"`
	PaystackReference *string               `gorm:"column:paystack_reference"`
	TrackingToken     string                `gorm:"column:tracking_token;not null;uniqueIndex"`
	PaymentDeferred   bool                  `gorm:"column:payment_deferred;not null;default:false"`
	StockShortfall    bool                  `gorm:"column:stock_shortfall;not null;default:false"`
	Items             []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
