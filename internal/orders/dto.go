package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/pkg/db/models"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// OrderDTO is the full admin-facing order payload.
type OrderDTO struct {
	ID                uuid.UUID             `json:"id"`
	CustomerName      string                `json:"customer_name"`
	CustomerEmail     string                `json:"customer_email"`
	CustomerPhone     string                `json:"customer_phone"`
	ShippingAddress   types.ShippingAddress `json:"shipping_address"`
	TotalAmount       int                   `json:"total_amount"`
	Status            string                `json:"status"`
	OrderType         string                `json:"order_type"`
	Measurements      *types.Measurements   `json:"measurements,omitempty"`
	DeliveryDate      *time.Time            `json:"delivery_date,omitempty"`
	PaystackReference *string               `json:"paystack_reference,omitempty"`
	TrackingToken     string                `json:"tracking_token"`
	PaymentDeferred   bool                  `json:"payment_deferred"`
	StockShortfall    bool                  `json:"stock_shortfall"`
	Items             []OrderItemDTO        `json:"items"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// OrderItemDTO is one snapshotted order line.
type OrderItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Title     string     `json:"title"`
	Price     int        `json:"price"`
	Size      string     `json:"size"`
	Quantity  int        `json:"quantity"`
	IsBespoke bool       `json:"is_bespoke"`
	Image     *string    `json:"image,omitempty"`
}

// OrderListResult is a page of orders plus the cursor for the next page.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// TrackingDTO is the reduced payload returned to customers following a
// tracking link. Contact fields stay private.
type TrackingDTO struct {
	Status       string         `json:"status"`
	OrderType    string         `json:"order_type"`
	TotalAmount  int            `json:"total_amount"`
	DeliveryDate *time.Time     `json:"delivery_date,omitempty"`
	Items        []OrderItemDTO `json:"items"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewOrderDTO builds the admin DTO from the persisted order.
func NewOrderDTO(order *models.Order) *OrderDTO {
	return &OrderDTO{
		ID:                order.ID,
		CustomerName:      order.CustomerName,
		CustomerEmail:     order.CustomerEmail,
		CustomerPhone:     order.CustomerPhone,
		ShippingAddress:   order.ShippingAddress,
		TotalAmount:       order.TotalAmount,
		Status:            string(order.Status),
		OrderType:         string(order.OrderType),
		Measurements:      order.Measurements,
		DeliveryDate:      order.DeliveryDate,
		PaystackReference: order.PaystackReference,
		TrackingToken:     order.TrackingToken,
		PaymentDeferred:   order.PaymentDeferred,
		StockShortfall:    order.StockShortfall,
		Items:             newOrderItemDTOs(order.Items),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

// NewTrackingDTO builds the customer tracking payload.
func NewTrackingDTO(order *models.Order) *TrackingDTO {
	return &TrackingDTO{
		Status:       string(order.Status),
		OrderType:    string(order.OrderType),
		TotalAmount:  order.TotalAmount,
		DeliveryDate: order.DeliveryDate,
		Items:        newOrderItemDTOs(order.Items),
		CreatedAt:    order.CreatedAt,
	}
}

func newOrderItemDTOs(items []models.OrderItem) []OrderItemDTO {
	out := make([]OrderItemDTO, len(items))
	for i, item := range items {
		out[i] = OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Size:      item.Size,
			Quantity:  item.Quantity,
			IsBespoke: item.IsBespoke,
			Image:     item.Image,
		}
	}
	return out
}
