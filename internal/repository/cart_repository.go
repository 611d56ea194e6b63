package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hallever/internal/cart"

	"github.com/redis/go-redis/v9"
)

// CartTTL is how long an untouched guest cart survives.
const CartTTL = 30 * 24 * time.Hour

// CartStore persists guest carts in Redis, one JSON snapshot per cart id.
// Carts are client-owned state; a missing key is simply the empty cart.
type CartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCartStore creates a cart store with the default TTL.
func NewCartStore(rdb *redis.Client) *CartStore {
	return &CartStore{rdb: rdb, ttl: CartTTL}
}

func cartKey(id string) string {
	return "cart:" + id
}

// Load reads the cart snapshot for id. An absent key yields the empty cart.
func (s *CartStore) Load(ctx context.Context, id string) (*cart.Cart, error) {
	raw, err := s.rdb.Get(ctx, cartKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &cart.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to load cart %s: %w", id, err)
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}
	return &c, nil
}

// Save writes the full snapshot and refreshes the TTL. An empty cart is
// deleted instead of stored, so Clear and "removed last line" converge on the
// same persisted state: no key.
func (s *CartStore) Save(ctx context.Context, id string, c *cart.Cart) error {
	if c.Empty() {
		return s.Clear(ctx, id)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", id, err)
	}
	if err := s.rdb.Set(ctx, cartKey(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", id, err)
	}
	return nil
}

// Clear removes the persisted snapshot.
func (s *CartStore) Clear(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, cartKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", id, err)
	}
	return nil
}
