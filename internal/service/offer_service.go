package service

import (
	"context"
	"errors"
	"time"

	"hallever/internal/domain"
	"hallever/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OfferStore is the singleton persistence surface behind the offer service.
// Satisfied by *repository.OfferRepository.
type OfferStore interface {
	Get(ctx context.Context) (*domain.Offer, error)
	Put(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id string) error
}

// OfferService manages the singleton site-wide offer.
type OfferService struct {
	store  OfferStore
	logger *zap.Logger
}

// NewOfferService creates the offer service.
func NewOfferService(store OfferStore, logger *zap.Logger) *OfferService {
	return &OfferService{store: store, logger: logger}
}

// Get returns the current offer, repository.ErrNotFound when none is set.
func (s *OfferService) Get(ctx context.Context) (*domain.Offer, error) {
	return s.store.Get(ctx)
}

// Put replaces the offer. The first write stamps a fresh id and creation
// time; replacements keep both and touch updatedOn instead.
func (s *OfferService) Put(ctx context.Context, offer *domain.Offer) (*domain.Offer, error) {
	now := time.Now().UTC()

	existing, err := s.store.Get(ctx)
	switch {
	case err == nil:
		offer.SetDocumentID(existing.ID)
		offer.CreatedOn = existing.CreatedOn
		offer.TouchUpdated(now)
	case errors.Is(err, repository.ErrNotFound):
		offer.SetDocumentID(uuid.NewString())
		offer.TouchCreated(now)
	default:
		return nil, err
	}

	if err := s.store.Put(ctx, offer); err != nil {
		return nil, err
	}

	s.logger.Info("Offer replaced", zap.String("title", offer.Title))
	return offer, nil
}

// Clear removes the offer entirely.
func (s *OfferService) Clear(ctx context.Context) error {
	current, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, current.ID)
}
