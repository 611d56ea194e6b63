package service

import (
	"context"
	"errors"
	"testing"

	"hallever/internal/domain"
	"hallever/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newLeadResource(store Store[*domain.Lead]) *Resource[*domain.Lead] {
	return NewResource[*domain.Lead]("leads", store, zap.NewNop())
}

func TestProperty_CreateThenListIncludesRecord(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a created record appears in the forced list with id and timestamp", prop.ForAll(
		func(name string) bool {
			store := newMockStore[*domain.Lead]()
			svc := newLeadResource(store)
			ctx := context.Background()

			created, err := svc.Create(ctx, &domain.Lead{Name: name, Email: "x@example.com", Phone: "1", Status: domain.LeadStatusNew})
			if err != nil {
				t.Logf("FAIL: create: %v", err)
				return false
			}
			if created.ID == "" || created.CreatedOn.IsZero() {
				t.Logf("FAIL: create did not stamp id/createdOn: %+v", created.Meta)
				return false
			}

			leads, err := svc.List(ctx, true)
			if err != nil {
				t.Logf("FAIL: list: %v", err)
				return false
			}
			for _, l := range leads {
				if l.ID == created.ID && l.Name == name {
					return true
				}
			}
			t.Logf("FAIL: created record not listed")
			return false
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t)
}

func TestListServesCacheUntilMutation(t *testing.T) {
	store := newMockStore[*domain.Lead]()
	svc := newLeadResource(store)
	ctx := context.Background()

	if _, err := svc.List(ctx, false); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.List(ctx, false); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.listCalls != 1 {
		t.Errorf("expected 1 store read for repeated lists, got %d", store.listCalls)
	}

	if _, err := svc.Create(ctx, &domain.Lead{Name: "n", Email: "e@example.com", Phone: "1", Status: domain.LeadStatusNew}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Create force-refreshes, so the next plain List is served from cache.
	listCallsAfterCreate := store.listCalls
	if listCallsAfterCreate != 2 {
		t.Errorf("expected create to refresh the cache, got %d store reads", listCallsAfterCreate)
	}

	leads, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.listCalls != listCallsAfterCreate {
		t.Errorf("expected cached read after mutation refresh, got %d store reads", store.listCalls)
	}
	if len(leads) != 1 {
		t.Errorf("expected the created lead in the cached list, got %d", len(leads))
	}
}

func TestGetByIDScansCacheBeforeStore(t *testing.T) {
	store := newMockStore[*domain.Lead]()
	svc := newLeadResource(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Lead{Name: "cached", Email: "c@example.com", Phone: "1", Status: domain.LeadStatusNew})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected cached record, got %+v", got)
	}
	if store.findCalls != 0 {
		t.Errorf("expected cache hit without a store fetch, got %d fetches", store.findCalls)
	}

	if _, err := svc.GetByID(ctx, "missing-id"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
	if store.findCalls != 1 {
		t.Errorf("expected a store fetch on cache miss, got %d", store.findCalls)
	}
}

func TestCreateReturnsCallerDocumentNotAReRead(t *testing.T) {
	// The store keeps its own copy; Create's return value is the caller's
	// document with stamps applied, even if the store transforms on write.
	store := newMockStore[*domain.Lead]()
	svc := newLeadResource(store)

	lead := &domain.Lead{Name: "input", Email: "i@example.com", Phone: "1", Status: domain.LeadStatusNew}
	created, err := svc.Create(context.Background(), lead)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created != lead {
		t.Error("expected Create to hand back the caller's document")
	}
}

func TestUpdateWritesOnlyProvidedFields(t *testing.T) {
	store := newMockStore[*domain.Lead]()
	svc := newLeadResource(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Lead{Name: "n", Email: "e@example.com", Phone: "1", Status: domain.LeadStatusNew})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(ctx, created.ID, bson.M{"status": domain.LeadStatusContacted}); err != nil {
		t.Fatalf("update: %v", err)
	}

	fields := store.updates[created.ID]
	if len(fields) != 1 {
		t.Errorf("expected exactly the provided field in the partial update, got %v", fields)
	}
	if fields["status"] != domain.LeadStatusContacted {
		t.Errorf("expected status field, got %v", fields)
	}
}

func TestMutationErrorsPropagate(t *testing.T) {
	store := newMockStore[*domain.Lead]()
	store.insertErr = errors.New("store down")
	svc := newLeadResource(store)

	if _, err := svc.Create(context.Background(), &domain.Lead{Name: "n", Email: "e@example.com", Phone: "1", Status: domain.LeadStatusNew}); err == nil {
		t.Fatal("expected create to surface the store error")
	}

	if err := svc.Delete(context.Background(), "whatever"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting a missing record, got %v", err)
	}
}
