package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"order-management/internal/data/entity"
	"order-management/internal/dto/request"
	"order-management/internal/usecase"
	"order-management/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /orders/create (protected)
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseUnprocessable(w, "Invalid request body", nil)
		return
	}

	// Validate request: product_name tidak boleh kosong, amount > 0
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseUnprocessable(w, "Validation failed", validationErrors)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), user, &req)
	if err != nil {
		h.log.Error("Failed to create order", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseCreated(w, "Order created", order)
}

// MyOrders handles GET /orders/my-orders?status= (protected)
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	// Filter status opsional
	var status *entity.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		if !entity.ValidOrderStatus(raw) {
			utils.ResponseUnprocessable(w, "Invalid status filter", map[string]string{
				"status": "Must be one of: PENDING, PROCESSING, COMPLETED, CANCELLED",
			})
			return
		}
		s := entity.OrderStatus(raw)
		status = &s
	}

	orders, err := h.service.GetUserOrders(r.Context(), user, status)
	if err != nil {
		h.log.Error("Failed to get user orders", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// CancelOrder handles POST /orders/{id}/cancel (protected)
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")

	order, err := h.service.CancelOrder(r.Context(), user, orderID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			// Order orang lain dan order yang tidak ada dijawab sama
			utils.ResponseNotFound(w, "Order not found")
		case errors.Is(err, usecase.ErrInvalidTransition):
			utils.ResponseBadRequest(w, err.Error(), nil)
		default:
			h.log.Error("Failed to cancel order", zap.Error(err), zap.String("order_id", orderID))
			utils.ResponseInternalError(w, "Internal server error")
		}
		return
	}

	utils.ResponseSuccess(w, "Order cancelled", order)
}
