package transport

import (
	"net/http"

	"hallever/internal/domain"
	"hallever/internal/middleware"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// UpdateCartItemRequest sets a line's quantity. Zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CheckoutRequest turns the cart into an order.
type CheckoutRequest struct {
	FormData domain.OrderForm `json:"formData" validate:"required"`
}

// CartHandler serves the guest cart. The cart id is client-generated and
// carried in the URL; no authentication is involved.
type CartHandler struct {
	carts  *service.CartService
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// RegisterRoutes mounts the cart endpoints.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/routes/cart/{cartID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.UpdateItem)
		r.Delete("/items/{productID}", h.RemoveItem)
		r.Post("/clear", h.Clear)
		r.Post("/reconcile", h.Reconcile)
		r.Post("/checkout", h.Checkout)
	})
}

// Get returns the cart snapshot.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to load cart")
		return
	}
	respondData(w, http.StatusOK, c)
}

// AddItem adds a product line, snapshotting its current price.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	c, err := h.carts.AddItem(r.Context(), chi.URLParam(r, "cartID"), req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to add cart item")
		return
	}
	respondData(w, http.StatusOK, c)
}

// UpdateItem sets a line's quantity; zero removes it.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	c, err := h.carts.UpdateQuantity(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to update cart item")
		return
	}
	respondData(w, http.StatusOK, c)
}

// RemoveItem deletes a line.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.RemoveItem(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to remove cart item")
		return
	}
	respondData(w, http.StatusOK, c)
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), chi.URLParam(r, "cartID")); err != nil {
		respondServiceError(h.logger, w, err, "failed to clear cart")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

// Reconcile refreshes line prices against the catalog.
func (h *CartHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Reconcile(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to reconcile cart")
		return
	}
	respondData(w, http.StatusOK, c)
}

// Checkout creates an order from the cart lines.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	order, err := h.carts.Checkout(r.Context(), chi.URLParam(r, "cartID"), req.FormData)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to checkout")
		return
	}
	respondData(w, http.StatusCreated, order)
}
