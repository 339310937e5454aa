package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		status, ok := ParseOrderStatus(s)
		assert.True(t, ok)
		assert.Equal(t, s, status.String())
	}
}

func TestParseOrderStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "PENDING", "canceled", "unknown"} {
		_, ok := ParseOrderStatus(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestOrder_IsCancellable(t *testing.T) {
	order := Order{Status: OrderStatusPending}
	assert.True(t, order.IsCancellable())

	for _, status := range []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		order.Status = status
		assert.False(t, order.IsCancellable(), "status %s must not be cancellable", status)
	}
}

func TestOrder_Cancel(t *testing.T) {
	order := Order{
		ID:          1,
		CustomerID:  7,
		Status:      OrderStatusPending,
		TotalAmount: decimal.NewFromInt(250),
		CreatedAt:   time.Now(),
	}

	before := time.Now().UTC()
	order.Cancel()

	assert.Equal(t, OrderStatusCancelled, order.Status)
	assert.NotNil(t, order.CancelledAt)
	assert.False(t, order.CancelledAt.Before(before.Truncate(time.Second)))
}

func TestOrder_CancelledAtNilUntilCancelled(t *testing.T) {
	order := Order{Status: OrderStatusPending}
	assert.Nil(t, order.CancelledAt)

	order.Cancel()
	assert.NotNil(t, order.CancelledAt)
}
