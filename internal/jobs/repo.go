package jobs

import (
	"context"
	"strings"

	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes job and saved-job persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a jobs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new posting.
func (r *Repository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID loads a posting with its employer attached.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).
		Preload("Employer").
		First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// IncrementViews bumps the view counter in a single atomic statement.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// List returns a filtered page of postings, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters, p pagination.Params) ([]models.Job, int64, error) {
	p = p.Normalize()
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Job{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListByEmployer returns postings owned by the employer, optionally narrowed
// to one status.
func (r *Repository) ListByEmployer(ctx context.Context, employerID uuid.UUID, status string, p pagination.Params) ([]models.Job, int64, error) {
	p = p.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("employer_id = ?", employerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Update applies the column map to a posting and returns the refreshed row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Job, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Job{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// UpdateStatus overwrites the lifecycle state of a posting.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.JobStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// Delete removes a posting along with its saved-job rows.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, "id = ?", id).Error
	})
}

// Save records the job on the user's saved list. Saving twice is a no-op.
func (r *Repository) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	saved := models.SavedJob{UserID: userID, JobID: jobID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&saved).Error
}

// Unsave removes the job from the user's saved list. Missing rows are fine.
func (r *Repository) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{}).Error
}

// IsSaved reports whether the user has the job on their saved list.
func (r *Repository) IsSaved(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

// ListSaved returns the user's saved jobs with the postings attached.
func (r *Repository) ListSaved(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.SavedJob, int64, error) {
	p = p.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.SavedJob{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var saved []models.SavedJob
	if err := query.
		Preload("Job").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&saved).Error; err != nil {
		return nil, 0, err
	}
	return saved, total, nil
}

// ListByCategory returns the live postings carrying a category name.
func (r *Repository) ListByCategory(ctx context.Context, category string, p pagination.Params) ([]models.Job, int64, error) {
	return r.List(ctx, ListFilters{
		Category: category,
		Status:   enums.JobStatusActive.String(),
	}, p)
}

// CountByCategory counts postings carrying the given category name.
func (r *Repository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("category = ?", category).
		Count(&count).Error
	return count, err
}

// EmployerStats aggregates posting and application counts for an employer.
func (r *Repository) EmployerStats(ctx context.Context, employerID uuid.UUID) (*EmployerStats, error) {
	stats := &EmployerStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Job{}).
		Where("employer_id = ?", employerID).
		Count(&stats.TotalJobs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Job{}).
		Where("employer_id = ? AND status = ?", employerID, enums.JobStatusActive).
		Count(&stats.ActiveJobs).Error; err != nil {
		return nil, err
	}

	applicationScope := func() *gorm.DB {
		return db.Model(&models.JobApplication{}).
			Joins("JOIN jobs ON jobs.id = job_applications.job_id").
			Where("jobs.employer_id = ?", employerID)
	}
	if err := applicationScope().Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}
	if err := applicationScope().
		Where("job_applications.status = ?", enums.ApplicationShortlisted).
		Count(&stats.Shortlisted).Error; err != nil {
		return nil, err
	}
	if err := applicationScope().
		Where("job_applications.status = ?", enums.ApplicationHired).
		Count(&stats.Hired).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *Repository) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.JobType != "" {
		query = query.Where("job_type = ?", filters.JobType)
	}
	if filters.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", filters.ExperienceLevel)
	}
	if filters.Gender != "" {
		query = query.Where("gender = ?", filters.Gender)
	}
	if term := strings.TrimSpace(filters.Search); term != "" {
		pattern := likePattern(term)
		query = query.Where("LOWER(position) LIKE ? OR LOWER(requirements) LIKE ?", pattern, pattern)
	}
	if filters.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", likePattern(filters.Location))
	}
	if filters.Salary != "" {
		query = query.Where("LOWER(salary) LIKE ?", likePattern(filters.Salary))
	}
	if filters.Age != "" {
		query = query.Where("LOWER(age) LIKE ?", likePattern(filters.Age))
	}
	return query
}

func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
