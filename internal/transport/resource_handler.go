package transport

import (
	"encoding/json"
	"net/http"

	"hallever/internal/middleware"
	"hallever/internal/repository"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ResourceRoutes controls which endpoints of a CRUD resource skip auth.
// Mutations are admin-only unless PublicCreate opens the POST (lead and
// order submission come from the public website).
type ResourceRoutes struct {
	PublicRead   bool
	PublicCreate bool
}

// ResourceHandler serves the shared CRUD surface for one entity.
type ResourceHandler[T repository.Document] struct {
	svc      *service.Resource[T]
	factory  func() T
	logger   *zap.Logger
	onCreate func(T) error
	onUpdate func(map[string]interface{}) error
}

// NewResourceHandler creates a CRUD handler. factory allocates the concrete
// document type for decoding.
func NewResourceHandler[T repository.Document](svc *service.Resource[T], factory func() T, logger *zap.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc, factory: factory, logger: logger}
}

// WithHooks sets defaulting and validation steps run before create and
// update writes. A hook error rejects the request with a 400. Either hook
// may be nil.
func (h *ResourceHandler[T]) WithHooks(onCreate func(T) error, onUpdate func(map[string]interface{}) error) *ResourceHandler[T] {
	h.onCreate = onCreate
	h.onUpdate = onUpdate
	return h
}

// RegisterRoutes mounts the CRUD endpoints under base.
func (h *ResourceHandler[T]) RegisterRoutes(r chi.Router, base string, auth, admin func(http.Handler) http.Handler, routes ResourceRoutes) {
	r.Route(base, func(r chi.Router) {
		guard := func(handler http.HandlerFunc, public bool) http.Handler {
			if public {
				return handler
			}
			return auth(admin(handler))
		}

		r.Method(http.MethodGet, "/", guard(h.List, routes.PublicRead))
		r.Method(http.MethodPost, "/", guard(h.Create, routes.PublicCreate))
		r.Method(http.MethodGet, "/{id}", guard(h.Get, routes.PublicRead))
		r.Method(http.MethodPut, "/{id}", guard(h.Update, false))
		r.Method(http.MethodDelete, "/{id}", guard(h.Delete, false))
	})
}

// List returns all records newest first.
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), r.URL.Query().Get("refresh") == "true")
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to list records")
		return
	}
	respondData(w, http.StatusOK, items)
}

// Get returns one record by id.
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch record")
		return
	}
	respondData(w, http.StatusOK, doc)
}

// Create decodes a full document and stores it.
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	doc := h.factory()
	if err := json.NewDecoder(r.Body).Decode(doc); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if h.onCreate != nil {
		if err := h.onCreate(doc); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	created, err := h.svc.Create(r.Context(), doc)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to create record")
		return
	}
	respondData(w, http.StatusCreated, created)
}

// Update applies a partial update from the request body.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := decodePartialFields(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(fields) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if h.onUpdate != nil {
		if err := h.onUpdate(fields); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
		respondServiceError(h.logger, w, err, "failed to update record")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")})
}

// Delete removes one record.
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(h.logger, w, err, "failed to delete record")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")})
}

// decodePartialFields reads the body as a field map for a $set update.
// Identity and timestamp fields are never client-writable.
func decodePartialFields(r *http.Request) (bson.M, error) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	delete(raw, "_id")
	delete(raw, "id")
	delete(raw, "createdOn")
	delete(raw, "updatedOn")

	fields := bson.M{}
	for k, v := range raw {
		fields[k] = v
	}
	return fields, nil
}
