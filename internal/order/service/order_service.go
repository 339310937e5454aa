package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ordersvc/internal/domain"
	"ordersvc/internal/dto"
	apperrors "ordersvc/internal/errors"
	"ordersvc/internal/order/mapper"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint64) (*domain.Order, error)
	FindPage(ctx context.Context, status *domain.OrderStatus, page, size int) ([]domain.Order, error)
	UpdateCancelled(ctx context.Context, tx *sql.Tx, order *domain.Order) error
}

type OrderService struct {
	db              TransactionManager
	orderRepo       OrderRepository
	logger          *zap.Logger
	cancelTxTimeout time.Duration
}

func NewOrderService(
	db TransactionManager,
	orderRepo OrderRepository,
	logger *zap.Logger,
	cancelTxTimeout time.Duration,
) *OrderService {
	return &OrderService{
		db:              db,
		orderRepo:       orderRepo,
		logger:          logger,
		cancelTxTimeout: cancelTxTimeout,
	}
}

// Create persists a fully-constructed domain order. Construction
// already guarantees validity; no further checks happen here.
func (s *OrderService) Create(ctx context.Context, order *domain.Order) (dto.OrderResponse, error) {
	if err := s.orderRepo.Insert(ctx, order); err != nil {
		s.logger.Error("failed to persist order", zap.Int64("customerId", order.CustomerID), zap.Error(err))
		return dto.OrderResponse{}, err
	}

	s.logger.Info("order created",
		zap.Uint64("orderId", order.ID),
		zap.Int64("customerId", order.CustomerID),
		zap.String("totalAmount", order.TotalAmount.String()),
		zap.Int("itemCount", len(order.Items)),
	)

	return mapper.ToResponse(order), nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint64) (dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return dto.OrderResponse{}, err
	}
	return mapper.ToResponse(order), nil
}

// GetAllOrders returns the requested page of orders, filtered by
// status when one is given. Bounds are the caller's concern; nothing
// is clamped here.
func (s *OrderService) GetAllOrders(ctx context.Context, status *domain.OrderStatus, page, size int) ([]dto.OrderResponse, error) {
	orders, err := s.orderRepo.FindPage(ctx, status, page, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = mapper.ToResponse(&orders[i])
	}
	return responses, nil
}

// CancelOrder cancels a pending order on behalf of its owning
// customer. The row-locked read and the write share one transaction so
// the promotion sweep cannot interleave.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uint64, customerID int64) (dto.OrderResponse, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.cancelTxTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin cancel transaction", zap.Uint64("orderId", orderID), zap.Error(err))
		return dto.OrderResponse{}, err
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	order, err := s.orderRepo.FindByIDForUpdate(txCtx, tx, orderID)
	if err != nil {
		return dto.OrderResponse{}, err
	}

	if err := validateOrderCancellable(order, customerID); err != nil {
		s.logger.Warn("cancel rejected",
			zap.Uint64("orderId", orderID),
			zap.Int64("customerId", customerID),
			zap.String("status", order.Status.String()),
			zap.Error(err),
		)
		return dto.OrderResponse{}, err
	}

	order.Cancel()

	if err := s.orderRepo.UpdateCancelled(txCtx, tx, order); err != nil {
		s.logger.Error("failed to persist cancellation", zap.Uint64("orderId", orderID), zap.Error(err))
		return dto.OrderResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit cancellation", zap.Uint64("orderId", orderID), zap.Error(err))
		return dto.OrderResponse{}, err
	}

	s.logger.Info("order cancelled", zap.Uint64("orderId", orderID), zap.Int64("customerId", customerID))

	return mapper.ToResponse(order), nil
}

func validateOrderCancellable(order *domain.Order, customerID int64) error {
	if order.CustomerID != customerID {
		return apperrors.NewBadRequestError(
			"You are not authorized to cancel this order",
			apperrors.CodeUnauthorizedCancel,
		)
	}

	if !order.IsCancellable() {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("Order cannot be canceled because it is already %s", order.Status),
			apperrors.CodeOrderNotCancellable,
		)
	}

	return nil
}
