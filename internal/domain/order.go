package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus returns the status matching s, or false when s is
// not one of the five lifecycle states.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

func (s OrderStatus) String() string {
	return string(s)
}

type Order struct {
	ID          uint64
	CustomerID  int64
	Status      OrderStatus
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
	Items       []OrderItem
}

type OrderItem struct {
	ID          uint64
	OrderID     uint64
	ProductID   int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// IsCancellable reports whether the customer may still cancel the
// order. Only pending orders are.
func (o *Order) IsCancellable() bool {
	return o.Status == OrderStatusPending
}

// Cancel marks the order cancelled and stamps cancelledAt. It applies
// no guard; callers must check IsCancellable first.
func (o *Order) Cancel() {
	now := time.Now().UTC()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
}
