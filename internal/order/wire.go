package order

import (
	"database/sql"

	"go.uber.org/zap"

	"ordersvc/internal/config"
	"ordersvc/internal/infrastructure/metrics"
	"ordersvc/internal/order/controller"
	"ordersvc/internal/order/job"
	"ordersvc/internal/order/repository"
	"ordersvc/internal/order/service"
)

// NewModule assembles the order feature: repository, service,
// controller and the background promotion job.
func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*controller.OrderController, *job.StatusPromotionJob) {
	orderRepo := repository.NewMySQLOrderRepository(db)

	svc := service.NewOrderService(
		db,
		orderRepo,
		logger,
		cfg.Order.CancelTxTimeout,
	)

	promotionJob := job.NewStatusPromotionJob(
		orderRepo,
		logger,
		cfg.Job.PromotionInterval,
		metrics.NewSweepMetrics(),
	)

	return controller.NewOrderController(svc, logger), promotionJob
}
