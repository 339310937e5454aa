package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ordersvc/internal/domain"
	"ordersvc/internal/infrastructure/metrics"
)

type OrderRepository interface {
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	PromotePending(ctx context.Context, ids []uint64, now time.Time) (int64, error)
}

// StatusPromotionJob advances pending orders to processing on a fixed
// interval. It shares nothing with request handling beyond the
// repository.
type StatusPromotionJob struct {
	orderRepo OrderRepository
	logger    *zap.Logger
	interval  time.Duration
	metrics   *metrics.SweepMetrics
}

func NewStatusPromotionJob(
	orderRepo OrderRepository,
	logger *zap.Logger,
	interval time.Duration,
	m *metrics.SweepMetrics,
) *StatusPromotionJob {
	return &StatusPromotionJob{
		orderRepo: orderRepo,
		logger:    logger,
		interval:  interval,
		metrics:   m,
	}
}

// Start runs the sweep loop until ctx is cancelled. A failed sweep is
// logged and retried at the next tick.
func (j *StatusPromotionJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info("status promotion job started", zap.Duration("interval", j.interval))

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("status promotion job stopped")
			return
		case <-ticker.C:
			if err := j.Sweep(ctx); err != nil {
				j.logger.Error("promotion sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep loads every pending order and promotes the batch to
// processing in one conditional write. Orders cancelled between the
// read and the write no longer match the pending predicate and are
// skipped.
func (j *StatusPromotionJob) Sweep(ctx context.Context) error {
	if j.metrics != nil {
		j.metrics.Sweeps.Inc()
	}

	pending, err := j.orderRepo.FindByStatus(ctx, domain.OrderStatusPending)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		j.logger.Info("no pending orders found for processing")
		return nil
	}

	ids := make([]uint64, len(pending))
	for i := range pending {
		ids[i] = pending[i].ID
	}

	promoted, err := j.orderRepo.PromotePending(ctx, ids, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		return err
	}

	if j.metrics != nil {
		j.metrics.PromotedOrders.Add(float64(promoted))
	}

	fields := []zap.Field{
		zap.Int64("promoted", promoted),
		zap.Int("pendingFound", len(pending)),
	}
	if skipped := int64(len(pending)) - promoted; skipped > 0 {
		fields = append(fields, zap.Int64("skipped", skipped))
	}
	j.logger.Info("updated orders from pending to processing", fields...)

	return nil
}
