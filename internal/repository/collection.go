package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
)

// Document is implemented by every stored entity (via domain.Meta).
type Document interface {
	DocumentID() string
	SetDocumentID(id string)
	TouchCreated(t time.Time)
	TouchUpdated(t time.Time)
}

// Collection wraps one Mongo collection with the CRUD surface every domain
// service shares. T is instantiated with a pointer type (e.g. *domain.Product);
// factory allocates a fresh document for decoding.
type Collection[T Document] struct {
	coll    *mongo.Collection
	factory func() T
}

// NewCollection creates a Collection over db.name.
func NewCollection[T Document](db *mongo.Database, name string, factory func() T) *Collection[T] {
	return &Collection[T]{
		coll:    db.Collection(name),
		factory: factory,
	}
}

// Name returns the underlying collection name.
func (c *Collection[T]) Name() string {
	return c.coll.Name()
}

// Insert writes a new document. The caller stamps id and createdOn.
func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}
	return nil
}

// FindByID fetches a single document, mapping absence to ErrNotFound.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	doc := c.factory()
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to find in %s: %w", c.coll.Name(), err)
	}
	return doc, nil
}

// List reads every document ordered by creation time descending.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.Find(ctx, bson.M{})
}

// Find reads all documents matching filter, newest first.
func (c *Collection[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdOn", Value: -1}})
	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.coll.Name(), err)
	}
	defer cur.Close(ctx)

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

// FindOne fetches the first document matching filter.
func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var zero T
	doc := c.factory()
	err := c.coll.FindOne(ctx, filter).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to find in %s: %w", c.coll.Name(), err)
	}
	return doc, nil
}

// UpdateFields applies a partial $set of the provided fields plus updatedOn.
// Only the fields present in the map are written.
func (c *Collection[T]) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	set := bson.M{"updatedOn": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert replaces the document matching filter, inserting when absent.
func (c *Collection[T]) Upsert(ctx context.Context, filter bson.M, doc T) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := c.coll.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", c.coll.Name(), err)
	}
	return nil
}

// Delete removes a document by id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
