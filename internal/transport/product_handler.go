package transport

import (
	"net/http"

	"hallever/internal/domain"
	"hallever/internal/middleware"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ProductHandler handles the catalog endpoints. Create and update are
// multipart: a "data" JSON field plus "images" file parts.
type ProductHandler struct {
	products *service.ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// RegisterRoutes mounts the product endpoints. Reads are public, mutations
// admin-only.
func (h *ProductHandler) RegisterRoutes(r chi.Router, auth, admin func(http.Handler) http.Handler) {
	r.Route("/api/routes/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns the catalog, optionally filtered by ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		products, err := h.products.ListByCategory(r.Context(), category)
		if err != nil {
			respondServiceError(h.logger, w, err, "failed to list products")
			return
		}
		respondData(w, http.StatusOK, products)
		return
	}

	products, err := h.products.List(r.Context(), r.URL.Query().Get("refresh") == "true")
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to list products")
		return
	}
	respondData(w, http.StatusOK, products)
}

// Get returns one product.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch product")
		return
	}
	respondData(w, http.StatusOK, product)
}

// Create stores a new product with its uploaded images.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var product domain.Product
	if ok, err := decodeFormJSON(r, "data", &product); err != nil || !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing or invalid data field")
		return
	}
	if product.Name == "" || product.Price <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "name and a positive price are required")
		return
	}

	files, closeFiles, err := openUploads(r, "images")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}
	defer closeFiles()

	created, err := h.products.CreateWithImages(r.Context(), &product, files)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to create product")
		return
	}
	respondData(w, http.StatusCreated, created)
}

// Update applies a partial update. The "data" field carries the changed
// fields, "retainedImages" the kept URLs, "removedImages" the dropped ones;
// new files arrive under "images".
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	fields := bson.M{}
	var raw map[string]interface{}
	if ok, err := decodeFormJSON(r, "data", &raw); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		delete(raw, "_id")
		delete(raw, "id")
		delete(raw, "createdOn")
		delete(raw, "updatedOn")
		delete(raw, "images")
		for k, v := range raw {
			fields[k] = v
		}
	}

	var retained, removed []string
	if _, err := decodeFormJSON(r, "retainedImages", &retained); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := decodeFormJSON(r, "removedImages", &removed); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	files, closeFiles, err := openUploads(r, "images")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}
	defer closeFiles()

	id := chi.URLParam(r, "id")
	if err := h.products.UpdateWithImages(r.Context(), id, fields, retained, files, removed); err != nil {
		respondServiceError(h.logger, w, err, "failed to update product")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}

// Delete removes a product and its stored images.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.products.DeleteWithImages(r.Context(), id); err != nil {
		respondServiceError(h.logger, w, err, "failed to delete product")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}
