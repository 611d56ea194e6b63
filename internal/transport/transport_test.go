package transport

import (
	"context"
	"net/http"
	"sync"

	"hallever/internal/cart"
	"hallever/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// memStore is the slice-backed store behind the handler tests.
type memStore[T repository.Document] struct {
	mu   sync.Mutex
	docs []T
}

func (m *memStore[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *memStore[T]) FindByID(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc.DocumentID() == id {
			return doc, nil
		}
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (m *memStore[T]) Insert(ctx context.Context, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memStore[T]) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc.DocumentID() == id {
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, doc := range m.docs {
		if doc.DocumentID() == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// memCartStore is an in-memory cart persistence.
type memCartStore struct {
	mu    sync.Mutex
	carts map[string][]cart.Item
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string][]cart.Item)}
}

func (m *memCartStore) Load(ctx context.Context, id string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.carts[id]
	if !ok {
		return &cart.Cart{}, nil
	}
	copied := make([]cart.Item, len(items))
	copy(copied, items)
	return &cart.Cart{Items: copied}, nil
}

func (m *memCartStore) Save(ctx context.Context, id string, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.Empty() {
		delete(m.carts, id)
		return nil
	}
	copied := make([]cart.Item, len(c.Items))
	copy(copied, c.Items)
	m.carts[id] = copied
	return nil
}

func (m *memCartStore) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, id)
	return nil
}

// passthrough stands in for the auth middlewares on routes the test treats
// as already authorized.
func passthrough(next http.Handler) http.Handler { return next }
