package service

import (
	"context"
	"fmt"

	"hallever/internal/cart"
	"hallever/internal/domain"

	"go.uber.org/zap"
)

// CartPersistence is the snapshot store behind guest carts.
type CartPersistence interface {
	Load(ctx context.Context, id string) (*cart.Cart, error)
	Save(ctx context.Context, id string, c *cart.Cart) error
	Clear(ctx context.Context, id string) error
}

// CatalogReader is the slice of the product service the cart needs.
type CatalogReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, forceRefresh bool) ([]*domain.Product, error)
}

// OrderCreator is the slice of the order service checkout needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// CartService runs the guest cart: every mutation is load, apply, save. The
// persisted snapshot is the cart's only durability; the catalog stays the
// price authority via Reconcile.
type CartService struct {
	store    CartPersistence
	products CatalogReader
	orders   OrderCreator
	logger   *zap.Logger
}

// NewCartService creates the cart service.
func NewCartService(store CartPersistence, products CatalogReader, orders OrderCreator, logger *zap.Logger) *CartService {
	return &CartService{
		store:    store,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// Get returns the current cart snapshot.
func (s *CartService) Get(ctx context.Context, cartID string) (*cart.Cart, error) {
	return s.store.Load(ctx, cartID)
}

// AddItem snapshots the product's current price into a cart line. The
// product must exist; the snapshot price is taken at add time.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, qty int) (*cart.Cart, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item := cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Wattage:   product.Wattage,
		Category:  product.Category,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	c.Add(item, qty)

	if err := s.store.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets a line's quantity. Quantities below 1 remove the line
// (the decrement-to-zero path).
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, qty int) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if qty < 1 {
		c.Remove(productID)
	} else if !c.UpdateQuantity(productID, qty) {
		return nil, fmt.Errorf("no cart line for product %s", productID)
	}

	if err := s.store.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem deletes a line.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)

	if err := s.store.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart and drops the persisted snapshot.
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.store.Clear(ctx, cartID)
}

// Reconcile refreshes the snapshot prices of every line against the current
// catalog without touching quantities.
func (s *CartService) Reconcile(ctx context.Context, cartID string) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return c, nil
	}

	catalog, err := s.products.List(ctx, false)
	if err != nil {
		return nil, err
	}
	c.ReconcilePrices(catalog)

	if err := s.store.Save(ctx, cartID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Checkout bundles the cart lines into a new order. On success the cart is
// cleared; on failure it is left untouched so the user can retry.
func (s *CartService) Checkout(ctx context.Context, cartID string, form domain.OrderForm) (*domain.Order, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmptyOrder
	}

	order := &domain.Order{
		FormData:         form,
		SelectedProducts: c.OrderLines(),
		Status:           domain.OrderStatusProcessing,
	}

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.store.Clear(ctx, cartID); err != nil {
		// The order exists; a lingering cart snapshot is the lesser harm.
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
	}

	s.logger.Info("Checkout completed",
		zap.String("cart_id", cartID),
		zap.String("order_id", created.ID),
		zap.Float64("total", created.TotalAmount),
	)
	return created, nil
}
