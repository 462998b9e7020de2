package enums

import "fmt"

// OrderStatus tracks the admin-driven lifecycle of an order. The progression
// is not enforced as a transition graph: any status may be written over any
// other by an admin.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusMeasuring  OrderStatus = "measuring"
	OrderStatusProduction OrderStatus = "production"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusMeasuring,
	OrderStatusProduction,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// OrderType distinguishes off-the-shelf orders from made-to-measure ones. An
// order is bespoke when any of its items is bespoke.
type OrderType string

const (
	OrderTypeStock   OrderType = "stock"
	OrderTypeBespoke OrderType = "bespoke"
)

// String implements fmt.Stringer.
func (t OrderType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known OrderType.
func (t OrderType) IsValid() bool {
	return t == OrderTypeStock || t == OrderTypeBespoke
}

// ParseOrderType converts raw input into an OrderType.
func ParseOrderType(value string) (OrderType, error) {
	switch OrderType(value) {
	case OrderTypeStock:
		return OrderTypeStock, nil
	case OrderTypeBespoke:
		return OrderTypeBespoke, nil
	}
	return "", fmt.Errorf("invalid order type %q", value)
}
