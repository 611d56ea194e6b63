package transport

import (
	"net/http"

	"hallever/internal/middleware"
	"hallever/internal/repository"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ImageResourceHandler serves CRUD for content entities carrying one image
// (blog cover, team photo). Create and update accept multipart with a "data"
// JSON field and an optional "image" file; plain JSON bodies work too when no
// image changes.
type ImageResourceHandler[T repository.Document] struct {
	svc        *service.Resource[T]
	images     service.ImageStore
	factory    func() T
	setImage   func(T, string)
	imageField string
	logger     *zap.Logger
}

// NewImageResourceHandler creates the handler. imageField is the document
// field the uploaded URL lands in, setImage writes it on a decoded document.
func NewImageResourceHandler[T repository.Document](
	svc *service.Resource[T],
	images service.ImageStore,
	factory func() T,
	setImage func(T, string),
	imageField string,
	logger *zap.Logger,
) *ImageResourceHandler[T] {
	return &ImageResourceHandler[T]{
		svc:        svc,
		images:     images,
		factory:    factory,
		setImage:   setImage,
		imageField: imageField,
		logger:     logger,
	}
}

// RegisterRoutes mounts the endpoints under base. Reads are public,
// mutations admin-only.
func (h *ImageResourceHandler[T]) RegisterRoutes(r chi.Router, base string, auth, admin func(http.Handler) http.Handler) {
	r.Route(base, func(r chi.Router) {
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

// List returns all records newest first.
func (h *ImageResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), r.URL.Query().Get("refresh") == "true")
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to list records")
		return
	}
	respondData(w, http.StatusOK, items)
}

// Get returns one record.
func (h *ImageResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch record")
		return
	}
	respondData(w, http.StatusOK, doc)
}

// Create stores a new record, uploading the image first when one is sent.
func (h *ImageResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	doc := h.factory()
	if ok, err := decodeFormJSON(r, "data", doc); err != nil || !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing or invalid data field")
		return
	}

	files, closeFiles, err := openUploads(r, "image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}
	defer closeFiles()

	if len(files) > 0 {
		url, err := h.images.UploadImage(r.Context(), files[0].Reader, files[0].ContentType)
		if err != nil {
			respondServiceError(h.logger, w, err, "failed to upload image")
			return
		}
		h.setImage(doc, url)
	}

	created, err := h.svc.Create(r.Context(), doc)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to create record")
		return
	}
	respondData(w, http.StatusCreated, created)
}

// Update applies a partial update; a new "image" file replaces the stored
// one, and the previous URL in "removedImage" is deleted best-effort.
func (h *ImageResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
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
		for k, v := range raw {
			fields[k] = v
		}
	}

	files, closeFiles, err := openUploads(r, "image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image upload")
		return
	}
	defer closeFiles()

	if len(files) > 0 {
		url, err := h.images.UploadImage(r.Context(), files[0].Reader, files[0].ContentType)
		if err != nil {
			respondServiceError(h.logger, w, err, "failed to upload image")
			return
		}
		fields[h.imageField] = url
	}

	if len(fields) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Update(r.Context(), id, fields); err != nil {
		respondServiceError(h.logger, w, err, "failed to update record")
		return
	}

	if old := r.FormValue("removedImage"); old != "" {
		h.images.Delete(r.Context(), old)
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}

// Delete removes a record.
func (h *ImageResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondServiceError(h.logger, w, err, "failed to delete record")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}
