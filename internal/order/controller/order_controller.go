package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ordersvc/internal/domain"
	"ordersvc/internal/dto"
	apperrors "ordersvc/internal/errors"
	"ordersvc/internal/order/mapper"
)

const customerIDHeader = "X-Customer-Id"

const (
	defaultPage = 0
	defaultSize = 10
)

type OrderService interface {
	Create(ctx context.Context, order *domain.Order) (dto.OrderResponse, error)
	GetOrder(ctx context.Context, orderID uint64) (dto.OrderResponse, error)
	GetAllOrders(ctx context.Context, status *domain.OrderStatus, page, size int) ([]dto.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID uint64, customerID int64) (dto.OrderResponse, error)
}

type OrderController struct {
	service OrderService
	logger  *zap.Logger
}

func NewOrderController(service OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		service: service,
		logger:  logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	customerID, err := parseCustomerHeader(r)
	if err != nil {
		logger.Warn("invalid customer header", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if err := validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		logger.Warn("create order validation failed", zap.String("details", ve.Message))
		c.writeError(w, http.StatusBadRequest, ve.Message)
		return
	}

	order := mapper.ToOrder(customerID, req)

	resp, err := c.service.Create(r.Context(), order)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, err := parseOrderID(r)
	if err != nil {
		logger.Warn("invalid orderId in path", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "orderId must be a positive integer")
		return
	}

	resp, err := c.service.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var status *domain.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := domain.ParseOrderStatus(raw)
		if !ok {
			logger.Warn("invalid status filter", zap.String("status", raw))
			c.writeError(w, http.StatusBadRequest, "invalid status filter: "+raw)
			return
		}
		status = &parsed
	}

	page, err := parseQueryInt(r, "page", defaultPage)
	if err != nil || page < 0 {
		c.writeError(w, http.StatusBadRequest, "page must be a non-negative integer")
		return
	}

	size, err := parseQueryInt(r, "size", defaultSize)
	if err != nil || size <= 0 {
		c.writeError(w, http.StatusBadRequest, "size must be a positive integer")
		return
	}

	resp, err := c.service.GetAllOrders(r.Context(), status, page, size)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, err := parseOrderID(r)
	if err != nil {
		logger.Warn("invalid orderId in path", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "orderId must be a positive integer")
		return
	}

	customerID, err := parseCustomerHeader(r)
	if err != nil {
		logger.Warn("invalid customer header", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := c.service.CancelOrder(r.Context(), orderID, customerID)
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func parseOrderID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "orderId"), 10, 64)
}

func parseCustomerHeader(r *http.Request) (int64, error) {
	raw := r.Header.Get(customerIDHeader)
	if raw == "" {
		return 0, apperrors.NewValidationError(customerIDHeader + " header is required")
	}
	customerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(customerIDHeader + " header must be an integer")
	}
	return customerID, nil
}

func parseQueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func validateCreateRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range req.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productName",
				Message: "productName must not be blank",
			})
		}

		if item.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be positive",
			})
		}

		if !item.Price.IsPositive() {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].price",
				Message: "price must be positive",
			})
		}
	}

	if len(details) > 0 {
		messages := make([]string, len(details))
		for i, d := range details {
			messages[i] = d.Field + ": " + d.Message
		}
		return apperrors.NewValidationError("validation failed: "+strings.Join(messages, "; "), details...)
	}

	return nil
}

func (c *OrderController) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, nf.Message)
		return
	}

	if br, ok := apperrors.IsBadRequestError(err); ok {
		c.writeError(w, http.StatusBadRequest, br.Message)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "Something went wrong: "+err.Error())
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, dto.ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
