package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"ordersvc/internal/domain"
	apperrors "ordersvc/internal/errors"
	"ordersvc/internal/order/repository"
	"ordersvc/internal/testutil"
)

func setupIntegrationService(t *testing.T) *OrderService {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	repo := repository.NewMySQLOrderRepository(db)
	return NewOrderService(db, repo, zap.NewNop(), 5*time.Second)
}

func TestCancelOrder_FullFlow(t *testing.T) {
	svc := setupIntegrationService(t)
	ctx := context.Background()

	order := pendingOrder(0, 7)
	created, err := svc.Create(ctx, order)
	assert.NoError(t, err)

	cancelled, err := svc.CancelOrder(ctx, created.OrderID, 7)
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	found, err := svc.GetOrder(ctx, created.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", found.Status)
}

func TestCancelOrder_SecondCallFails(t *testing.T) {
	svc := setupIntegrationService(t)
	ctx := context.Background()

	order := pendingOrder(0, 7)
	created, err := svc.Create(ctx, order)
	assert.NoError(t, err)

	_, err = svc.CancelOrder(ctx, created.OrderID, 7)
	assert.NoError(t, err)

	_, err = svc.CancelOrder(ctx, created.OrderID, 7)
	br, ok := apperrors.IsBadRequestError(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.CodeOrderNotCancellable, br.Code)
	assert.Contains(t, br.Message, "already cancelled")
}

func TestCancelOrder_WrongCustomerDoesNotMutate(t *testing.T) {
	svc := setupIntegrationService(t)
	ctx := context.Background()

	order := pendingOrder(0, 7)
	created, err := svc.Create(ctx, order)
	assert.NoError(t, err)

	_, err = svc.CancelOrder(ctx, created.OrderID, 8)
	br, ok := apperrors.IsBadRequestError(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorizedCancel, br.Code)

	found, err := svc.GetOrder(ctx, created.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, "pending", found.Status)
}

func TestCancelOrder_NotFound(t *testing.T) {
	svc := setupIntegrationService(t)

	_, err := svc.CancelOrder(context.Background(), 424242, 7)

	nf, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Contains(t, nf.Message, "424242")
}

func TestCreateAndList_StatusFilter(t *testing.T) {
	svc := setupIntegrationService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		order := pendingOrder(0, int64(i+1))
		_, err := svc.Create(ctx, order)
		assert.NoError(t, err)
	}

	cancelledOrder := pendingOrder(0, 9)
	created, err := svc.Create(ctx, cancelledOrder)
	assert.NoError(t, err)
	_, err = svc.CancelOrder(ctx, created.OrderID, 9)
	assert.NoError(t, err)

	status := domain.OrderStatusPending
	pending, err := svc.GetAllOrders(ctx, &status, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, pending, 3)
	for _, resp := range pending {
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, decimal.NewFromInt(250).Equal(resp.TotalAmount))
	}

	all, err := svc.GetAllOrders(ctx, nil, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, all, 4)
}
