package applications

import (
	"context"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes application persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an applications repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Submit inserts the application and bumps the job's applications counter in
// one transaction. The composite unique index rejects duplicate submissions.
func (r *Repository) Submit(ctx context.Context, application *models.JobApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).
			Where("id = ?", application.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error
	})
}

// FindByID loads an application with its job attached.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	var application models.JobApplication
	if err := r.db.WithContext(ctx).
		Preload("Job").
		First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// FindByJobAndApplicant loads the applicant's submission for one job.
func (r *Repository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*models.JobApplication, error) {
	var application models.JobApplication
	if err := r.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// ListByApplicant returns the applicant's submissions, newest first, with
// the jobs and their employers attached.
func (r *Repository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, p pagination.Params) ([]models.JobApplication, int64, error) {
	p = p.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("applicant_id = ?", applicantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.JobApplication
	if err := query.
		Preload("Job").
		Preload("Job.Employer").
		Order("applied_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// ListForEmployer returns applications scoped to the employer's jobs.
func (r *Repository) ListForEmployer(ctx context.Context, employerID uuid.UUID, filters EmployerFilters, p pagination.Params) ([]models.JobApplication, int64, error) {
	p = p.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("jobs.employer_id = ?", employerID)
	if filters.JobID != nil {
		query = query.Where("job_applications.job_id = ?", *filters.JobID)
	}
	if filters.Status != "" {
		query = query.Where("job_applications.status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.JobApplication
	if err := query.
		Preload("Job").
		Preload("Applicant").
		Order("job_applications.applied_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// ListByJob returns all submissions for one job, newest first.
func (r *Repository) ListByJob(ctx context.Context, jobID uuid.UUID, p pagination.Params) ([]models.JobApplication, int64, error) {
	p = p.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("job_id = ?", jobID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.JobApplication
	if err := query.
		Preload("Applicant").
		Order("applied_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// UpdateStatus overwrites the review state and stamps the change time.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus, changedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         status,
			"status_changed": changedAt,
		}).Error
}
