package service

import (
	"context"
	"sync"

	"hallever/internal/cart"
	"hallever/internal/domain"
	"hallever/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// mockStore is the map/slice-backed Store used across the service tests.
type mockStore[T repository.Document] struct {
	mu        sync.Mutex
	docs      []T
	updates   map[string]bson.M
	listCalls int
	findCalls int
	insertErr error
	updateErr error
	deleteErr error
	listErr   error
}

func newMockStore[T repository.Document]() *mockStore[T] {
	return &mockStore[T]{updates: make(map[string]bson.M)}
}

func (m *mockStore[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]T, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *mockStore[T]) FindByID(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	for _, doc := range m.docs {
		if doc.DocumentID() == id {
			return doc, nil
		}
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (m *mockStore[T]) Insert(ctx context.Context, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *mockStore[T]) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	for _, doc := range m.docs {
		if doc.DocumentID() == id {
			m.updates[id] = fields
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockStore[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, doc := range m.docs {
		if doc.DocumentID() == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// mockProductStore adds the category read for ProductStore.
type mockProductStore struct {
	*mockStore[*domain.Product]
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{mockStore: newMockStore[*domain.Product]()}
}

func (m *mockProductStore) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, p := range m.docs {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockUserStore adds the email lookup for UserStore.
type mockUserStore struct {
	*mockStore[*domain.User]
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{mockStore: newMockStore[*domain.User]()}
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.docs {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// mockCartStore is an in-memory CartPersistence. Snapshots are copied on
// save/load the way a real serialize/deserialize round trip would.
type mockCartStore struct {
	mu      sync.Mutex
	carts   map[string][]cart.Item
	saveErr error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[string][]cart.Item)}
}

func (m *mockCartStore) Load(ctx context.Context, id string) (*cart.Cart, error) {
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

func (m *mockCartStore) Save(ctx context.Context, id string, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if c.Empty() {
		delete(m.carts, id)
		return nil
	}
	copied := make([]cart.Item, len(c.Items))
	copy(copied, c.Items)
	m.carts[id] = copied
	return nil
}

func (m *mockCartStore) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, id)
	return nil
}
