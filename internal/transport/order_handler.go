package transport

import (
	"encoding/json"
	"net/http"

	"hallever/internal/domain"
	"hallever/internal/middleware"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateOrderRequest is the order submission payload. The total is computed
// server-side from the lines; a client supplied totalAmount is ignored.
type CreateOrderRequest struct {
	FormData         domain.OrderForm   `json:"formData" validate:"required"`
	SelectedProducts []domain.OrderLine `json:"selectedProducts" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order to a new state.
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

// OverrideTotalRequest replaces the computed order total.
type OverrideTotalRequest struct {
	TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
}

// OrderHandler handles order capture and management. Submission is public
// (the website checkout), everything else is admin-only.
type OrderHandler struct {
	orders *service.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// RegisterRoutes mounts the order endpoints.
func (h *OrderHandler) RegisterRoutes(r chi.Router, auth, admin func(http.Handler) http.Handler) {
	r.Route("/api/routes/orders", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
			r.Put("/{id}/status", h.UpdateStatus)
			r.Put("/{id}/total", h.OverrideTotal)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Create captures a new order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))
		respondDecodeError(w, err)
		return
	}

	order := &domain.Order{
		FormData:         req.FormData,
		SelectedProducts: req.SelectedProducts,
	}
	created, err := h.orders.CreateOrder(r.Context(), order)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to create order")
		return
	}
	respondData(w, http.StatusCreated, created)
}

// List returns all orders newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), r.URL.Query().Get("refresh") == "true")
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to list orders")
		return
	}
	respondData(w, http.StatusOK, orders)
}

// Get returns one order.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch order")
		return
	}
	respondData(w, http.StatusOK, order)
}

// UpdateStatus moves an order through its lifecycle.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondServiceError(h.logger, w, err, "failed to update order status")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

// OverrideTotal replaces the computed total.
func (h *OrderHandler) OverrideTotal(w http.ResponseWriter, r *http.Request) {
	var req OverrideTotalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.orders.OverrideTotal(r.Context(), id, req.TotalAmount); err != nil {
		respondServiceError(h.logger, w, err, "failed to override order total")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}

// Delete removes an order.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.orders.Delete(r.Context(), id); err != nil {
		respondServiceError(h.logger, w, err, "failed to delete order")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}
