package repository

import (
	"context"

	"hallever/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRepository stores catalog products.
type ProductRepository struct {
	*Collection[*domain.Product]
}

// NewProductRepository creates the products repository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		Collection: NewCollection(db, CollProducts, func() *domain.Product { return &domain.Product{} }),
	}
}

// ListByCategory reads all products in a category, newest first.
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return r.Find(ctx, bson.M{"category": category})
}
