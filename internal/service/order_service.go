package service

import (
	"context"
	"errors"
	"fmt"

	"hallever/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	// ErrEmptyOrder rejects checkouts with no line items.
	ErrEmptyOrder = errors.New("order has no line items")
	// ErrInvalidStatus rejects status values outside the closed enum.
	ErrInvalidStatus = errors.New("invalid status")
)

// OrderService captures and manages orders.
type OrderService struct {
	*Resource[*domain.Order]
}

// NewOrderService creates the order service.
func NewOrderService(store Store[*domain.Order], logger *zap.Logger) *OrderService {
	return &OrderService{
		Resource: NewResource[*domain.Order]("orders", store, logger),
	}
}

// CreateOrder validates and stores a new order. The total is always computed
// from the lines; submission comes from the public website, so a client
// supplied total is never trusted. Admin corrections go through
// OverrideTotal. Status defaults to processing.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if len(order.SelectedProducts) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range order.SelectedProducts {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("line %s: quantity must be at least 1", line.ProductID)
		}
	}

	order.TotalAmount = order.LineTotal()

	if order.Status == "" {
		order.Status = domain.OrderStatusProcessing
	}
	if !order.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, order.Status)
	}

	return s.Create(ctx, order)
}

// UpdateStatus moves an order to a new state within the closed enum.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.Update(ctx, id, bson.M{"status": status})
}

// OverrideTotal lets an admin replace the computed total.
func (s *OrderService) OverrideTotal(ctx context.Context, id string, total float64) error {
	if total < 0 {
		return fmt.Errorf("total must not be negative")
	}
	return s.Update(ctx, id, bson.M{"totalAmount": total})
}
