package service

import (
	"context"
	"fmt"

	"hallever/internal/domain"
	"hallever/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CareerStore adds the open-postings read to the shared store surface.
type CareerStore interface {
	Store[*domain.Job]
	ListOpen(ctx context.Context) ([]*domain.Job, error)
}

// CareerService manages job postings.
type CareerService struct {
	*Resource[*domain.Job]
	store CareerStore
}

// NewCareerService creates the careers service.
func NewCareerService(store CareerStore, logger *zap.Logger) *CareerService {
	return &CareerService{
		Resource: NewResource[*domain.Job](repository.CollCareers, store, logger),
		store:    store,
	}
}

// CreateJob validates the posting and stores it. Status defaults to open.
func (s *CareerService) CreateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if len(job.Skills) == 0 {
		return nil, fmt.Errorf("a posting needs at least one skill")
	}
	if len(job.Responsibilities) == 0 {
		return nil, fmt.Errorf("a posting needs at least one responsibility")
	}
	if !job.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, job.Type)
	}
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if !job.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, job.Status)
	}
	return s.Create(ctx, job)
}

// ListOpen returns postings accepting applications (the public careers page).
func (s *CareerService) ListOpen(ctx context.Context) ([]*domain.Job, error) {
	return s.store.ListOpen(ctx)
}

// ApplicationStore adds the per-posting read to the shared store surface.
type ApplicationStore interface {
	Store[*domain.JobApplication]
	ListByJob(ctx context.Context, jobID string) ([]*domain.JobApplication, error)
}

// ApplicationService manages job applications and their resume uploads.
type ApplicationService struct {
	*Resource[*domain.JobApplication]
	store   ApplicationStore
	careers *CareerService
	files   ImageStore
}

// NewApplicationService creates the job application service.
func NewApplicationService(store ApplicationStore, careers *CareerService, files ImageStore, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		Resource: NewResource[*domain.JobApplication](repository.CollJobApplications, store, logger),
		store:    store,
		careers:  careers,
		files:    files,
	}
}

// Apply stores an application for an open posting, uploading the resume
// first. Applications against closed or unknown postings are rejected before
// any upload happens.
func (s *ApplicationService) Apply(ctx context.Context, app *domain.JobApplication, resume Upload) (*domain.JobApplication, error) {
	job, err := s.careers.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusOpen {
		return nil, fmt.Errorf("posting %s is not accepting applications", job.ID)
	}

	resumeURL, err := s.files.UploadFile(ctx, resume.Reader, resume.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}
	app.ResumeURL = resumeURL
	app.Status = domain.ApplicationStatusPending

	return s.Create(ctx, app)
}

// UpdateStatus moves an application through screening.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.Update(ctx, id, bson.M{"status": status})
}

// ListByJob returns all applications for one posting.
func (s *ApplicationService) ListByJob(ctx context.Context, jobID string) ([]*domain.JobApplication, error) {
	return s.store.ListByJob(ctx, jobID)
}
