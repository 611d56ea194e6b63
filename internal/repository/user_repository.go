package repository

import (
	"context"

	"hallever/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository stores admin accounts.
type UserRepository struct {
	*Collection[*domain.User]
}

// NewUserRepository creates the users repository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		Collection: NewCollection(db, CollUsers, func() *domain.User { return &domain.User{} }),
	}
}

// FindByEmail fetches the account registered under email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.FindOne(ctx, bson.M{"email": email})
}
