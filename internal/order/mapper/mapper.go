// Package mapper holds the pure transformations between order
// payloads and the domain model. It has no error paths; malformed
// input is rejected by controller validation before mapping.
package mapper

import (
	"github.com/shopspring/decimal"

	"ordersvc/internal/domain"
	"ordersvc/internal/dto"
)

// ToOrder builds a new pending order for customerID from a validated
// creation request. The total is the exact decimal sum of
// price * quantity over the items.
func ToOrder(customerID int64, req dto.CreateOrderRequest) *domain.Order {
	order := &domain.Order{
		CustomerID:  customerID,
		Status:      domain.OrderStatusPending,
		TotalAmount: totalAmount(req.Items),
	}

	order.Items = make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		order.Items[i] = domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return order
}

// ToResponse projects a persisted order into its response form, items
// in stored order.
func ToResponse(order *domain.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return dto.OrderResponse{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status.String(),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		Items:       items,
	}
}

func totalAmount(items []dto.OrderItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
