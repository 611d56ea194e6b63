package repository

import (
	"context"
	"errors"

	"hallever/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OfferRepository stores the singleton site-wide offer. At most one document
// lives in the collection; writes replace it in place.
type OfferRepository struct {
	*Collection[*domain.Offer]
}

// NewOfferRepository creates the offers repository.
func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{
		Collection: NewCollection(db, CollOffers, func() *domain.Offer { return &domain.Offer{} }),
	}
}

// Get fetches the single offer document, ErrNotFound when none exists.
func (r *OfferRepository) Get(ctx context.Context) (*domain.Offer, error) {
	return r.FindOne(ctx, bson.M{})
}

// Put upserts the single offer document. A replacement adopts the existing
// document's id, since Mongo treats _id as immutable under ReplaceOne.
func (r *OfferRepository) Put(ctx context.Context, offer *domain.Offer) error {
	existing, err := r.Get(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		offer.ID = existing.ID
	}
	return r.Upsert(ctx, bson.M{"_id": offer.ID}, offer)
}
