package service

import (
	"context"
	"fmt"
	"time"

	"hallever/internal/cache"
	"hallever/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Store is the persistence surface a resource service needs. Satisfied by
// *repository.Collection and by the map-backed mocks in tests.
type Store[T repository.Document] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, doc T) error
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

// Resource implements the shared domain-service pattern: CRUD over one
// collection with a cooperative full-list cache. Every mutation force
// refreshes the cache; staleness between mutations is accepted.
type Resource[T repository.Document] struct {
	name   string
	store  Store[T]
	cache  *cache.List[T]
	logger *zap.Logger
}

// NewResource creates a resource service with its own cache instance.
func NewResource[T repository.Document](name string, store Store[T], logger *zap.Logger) *Resource[T] {
	return &Resource[T]{
		name:   name,
		store:  store,
		cache:  cache.NewList[T](),
		logger: logger,
	}
}

// List returns all records newest first. The first call (or forceRefresh)
// reads through to the store; later calls serve the cached slice.
func (r *Resource[T]) List(ctx context.Context, forceRefresh bool) ([]T, error) {
	items, err := r.cache.Get(ctx, forceRefresh, r.store.List)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.name, err)
	}
	return items, nil
}

// GetByID scans the cache first and falls back to a single-document fetch.
// Absence surfaces as repository.ErrNotFound.
func (r *Resource[T]) GetByID(ctx context.Context, id string) (T, error) {
	if cached, ok := r.cache.Find(func(doc T) bool { return doc.DocumentID() == id }); ok {
		return cached, nil
	}

	doc, err := r.store.FindByID(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return doc, nil
}

// Create stamps a fresh id and creation time, inserts the record and force
// refreshes the cache. It returns the caller's document with the stamps
// applied, not a re-read of the stored copy.
func (r *Resource[T]) Create(ctx context.Context, doc T) (T, error) {
	doc.SetDocumentID(uuid.NewString())
	doc.TouchCreated(time.Now().UTC())

	if err := r.store.Insert(ctx, doc); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to create %s: %w", r.name, err)
	}

	r.refreshCache(ctx)

	r.logger.Info("Record created",
		zap.String("collection", r.name),
		zap.String("id", doc.DocumentID()),
	)
	return doc, nil
}

// Update applies a partial $set of the provided fields and force refreshes
// the cache.
func (r *Resource[T]) Update(ctx context.Context, id string, fields bson.M) error {
	if err := r.store.UpdateFields(ctx, id, fields); err != nil {
		return err
	}

	r.refreshCache(ctx)

	r.logger.Info("Record updated",
		zap.String("collection", r.name),
		zap.String("id", id),
	)
	return nil
}

// Delete removes the record and force refreshes the cache.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}

	r.refreshCache(ctx)

	r.logger.Info("Record deleted",
		zap.String("collection", r.name),
		zap.String("id", id),
	)
	return nil
}

// ResetCache drops the cache so the next List reads through. Used by tests.
func (r *Resource[T]) ResetCache() {
	r.cache.Reset()
}

// refreshCache reloads the list after a mutation. A refresh failure is not a
// mutation failure: the write already happened, so log and move on. The next
// read retries.
func (r *Resource[T]) refreshCache(ctx context.Context) {
	if _, err := r.cache.Refresh(ctx, r.store.List); err != nil {
		r.logger.Warn("Cache refresh after mutation failed",
			zap.String("collection", r.name),
			zap.Error(err),
		)
	}
}
