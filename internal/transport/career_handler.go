package transport

import (
	"net/http"

	"hallever/internal/domain"
	"hallever/internal/middleware"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateApplicationStatusRequest moves an application through screening.
type UpdateApplicationStatusRequest struct {
	Status domain.ApplicationStatus `json:"status" validate:"required"`
}

// CareerHandler serves job postings and their applications. The public
// careers page lists open postings and submits applications; management is
// admin-only.
type CareerHandler struct {
	careers      *service.CareerService
	applications *service.ApplicationService
	logger       *zap.Logger
}

// NewCareerHandler creates a new CareerHandler.
func NewCareerHandler(careers *service.CareerService, applications *service.ApplicationService, logger *zap.Logger) *CareerHandler {
	return &CareerHandler{careers: careers, applications: applications, logger: logger}
}

// RegisterRoutes mounts the careers and job-application endpoints.
func (h *CareerHandler) RegisterRoutes(r chi.Router, auth, admin func(http.Handler) http.Handler) {
	r.Route("/api/routes/careers", func(r chi.Router) {
		r.Get("/", h.ListOpenJobs)
		r.Get("/{id}", h.GetJob)

		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Get("/all", h.ListAllJobs)
			r.Post("/", h.CreateJob)
			r.Put("/{id}", h.UpdateJob)
			r.Delete("/{id}", h.DeleteJob)
		})
	})

	r.Route("/api/routes/job-applications", func(r chi.Router) {
		r.Post("/", h.Apply)

		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Get("/", h.ListApplications)
			r.Get("/{id}", h.GetApplication)
			r.Put("/{id}/status", h.UpdateApplicationStatus)
			r.Delete("/{id}", h.DeleteApplication)
		})
	})
}

// ListOpenJobs returns the open postings shown on the public careers page.
func (h *CareerHandler) ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.careers.ListOpen(r.Context())
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to list postings")
		return
	}
	respondData(w, http.StatusOK, jobs)
}

// ListAllJobs returns every posting regardless of status, for the admin
// dashboard.
func (h *CareerHandler) ListAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.careers.List(r.Context(), r.URL.Query().Get("refresh") == "true")
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to list postings")
		return
	}
	respondData(w, http.StatusOK, jobs)
}

// GetJob returns one posting.
func (h *CareerHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.careers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch posting")
		return
	}
	respondData(w, http.StatusOK, job)
}

// CreateJob stores a new posting.
func (h *CareerHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := middleware.DecodeAndValidate(r, &job); err != nil {
		respondDecodeError(w, err)
		return
	}

	created, err := h.careers.CreateJob(r.Context(), &job)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to create posting")
		return
	}
	respondData(w, http.StatusCreated, created)
}

// UpdateJob applies a partial update to a posting.
func (h *CareerHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	fields, err := decodePartialFields(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(fields) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.careers.Update(r.Context(), id, fields); err != nil {
		respondServiceError(h.logger, w, err, "failed to update posting")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}

// DeleteJob removes a posting.
func (h *CareerHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.careers.Delete(r.Context(), id); err != nil {
		respondServiceError(h.logger, w, err, "failed to delete posting")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}

// Apply submits an application: a multipart form with a "data" JSON field
// and a "resume" file.
func (h *CareerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var app domain.JobApplication
	if ok, err := decodeFormJSON(r, "data", &app); err != nil || !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing or invalid data field")
		return
	}
	if app.JobID == "" || app.Name == "" || app.Email == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "jobId, name and email are required")
		return
	}

	resumes, closeFiles, err := openUploads(r, "resume")
	if err != nil || len(resumes) == 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "a resume file is required")
		return
	}
	defer closeFiles()

	created, err := h.applications.Apply(r.Context(), &app, resumes[0])
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to submit application")
		return
	}
	respondData(w, http.StatusCreated, created)
}

// ListApplications returns applications, optionally filtered by ?jobId=.
func (h *CareerHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	if jobID := r.URL.Query().Get("jobId"); jobID != "" {
		apps, err := h.applications.ListByJob(r.Context(), jobID)
		if err != nil {
			respondServiceError(h.logger, w, err, "failed to list applications")
			return
		}
		respondData(w, http.StatusOK, apps)
		return
	}

	apps, err := h.applications.List(r.Context(), r.URL.Query().Get("refresh") == "true")
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to list applications")
		return
	}
	respondData(w, http.StatusOK, apps)
}

// GetApplication returns one application.
func (h *CareerHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.applications.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch application")
		return
	}
	respondData(w, http.StatusOK, app)
}

// UpdateApplicationStatus moves an application through screening.
func (h *CareerHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateApplicationStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.applications.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondServiceError(h.logger, w, err, "failed to update application status")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

// DeleteApplication removes an application.
func (h *CareerHandler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.applications.Delete(r.Context(), id); err != nil {
		respondServiceError(h.logger, w, err, "failed to delete application")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"id": id})
}
