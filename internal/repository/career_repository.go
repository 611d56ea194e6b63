package repository

import (
	"context"

	"hallever/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CareerRepository stores job postings.
type CareerRepository struct {
	*Collection[*domain.Job]
}

// NewCareerRepository creates the careers repository.
func NewCareerRepository(db *mongo.Database) *CareerRepository {
	return &CareerRepository{
		Collection: NewCollection(db, CollCareers, func() *domain.Job { return &domain.Job{} }),
	}
}

// ListOpen reads postings that are accepting applications.
func (r *CareerRepository) ListOpen(ctx context.Context) ([]*domain.Job, error) {
	return r.Find(ctx, bson.M{"status": domain.JobStatusOpen})
}

// JobApplicationRepository stores submitted applications.
type JobApplicationRepository struct {
	*Collection[*domain.JobApplication]
}

// NewJobApplicationRepository creates the job applications repository.
func NewJobApplicationRepository(db *mongo.Database) *JobApplicationRepository {
	return &JobApplicationRepository{
		Collection: NewCollection(db, CollJobApplications, func() *domain.JobApplication { return &domain.JobApplication{} }),
	}
}

// ListByJob reads all applications for one posting, newest first.
func (r *JobApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.JobApplication, error) {
	return r.Find(ctx, bson.M{"jobId": jobID})
}
