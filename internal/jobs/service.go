package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rehan-4778/JobHunt-BE/internal/authz"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	dbtypes "github.com/Rehan-4778/JobHunt-BE/pkg/db/types"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the jobs controller.
type Service interface {
	Create(ctx context.Context, employerID uuid.UUID, req CreateJobRequest) (*models.Job, error)
	List(ctx context.Context, actor authz.Actor, q ListQuery) (*ListResult[models.Job], error)
	MyJobs(ctx context.Context, employerID uuid.UUID, status string, p pagination.Params) (*ListResult[models.Job], error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateJobRequest) (*models.Job, error)
	UpdateStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateStatusRequest) (*models.Job, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Unsave(ctx context.Context, userID, jobID uuid.UUID) error
	SavedJobs(ctx context.Context, userID uuid.UUID, p pagination.Params) (*ListResult[models.SavedJob], error)
	Stats(ctx context.Context, employerID uuid.UUID) (*EmployerStats, error)
}

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters ListFilters, p pagination.Params) ([]models.Job, int64, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID, status string, p pagination.Params) ([]models.Job, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.JobStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Unsave(ctx context.Context, userID, jobID uuid.UUID) error
	ListSaved(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.SavedJob, int64, error)
	EmployerStats(ctx context.Context, employerID uuid.UUID) (*EmployerStats, error)
}

type employerFetcher interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	jobs        jobRepository
	employers   employerFetcher
	logg        *logger.Logger
	ownerGuard  authz.Guard[*models.Job]
	deleteGuard authz.Guard[*models.Job]
}

// ServiceParams bundles the dependencies required to build a jobs service.
type ServiceParams struct {
	JobRepo      jobRepository
	EmployerRepo employerFetcher
	Logger       *logger.Logger
}

// NewService constructs a jobs service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.JobRepo == nil {
		return nil, fmt.Errorf("job repository is required")
	}
	if params.EmployerRepo == nil {
		return nil, fmt.Errorf("employer repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	ownerOf := func(job *models.Job) uuid.UUID { return job.EmployerID }
	return &service{
		jobs:      params.JobRepo,
		employers: params.EmployerRepo,
		logg:      params.Logger,
		ownerGuard: authz.Guard[*models.Job]{
			Resource: "job",
			Fetch:    params.JobRepo.FindByID,
			OwnerOf:  ownerOf,
		},
		deleteGuard: authz.Guard[*models.Job]{
			Resource:      "job",
			Fetch:         params.JobRepo.FindByID,
			OwnerOf:       ownerOf,
			AdminOverride: true,
		},
	}, nil
}

func (s *service) Create(ctx context.Context, employerID uuid.UUID, req CreateJobRequest) (*models.Job, error) {
	if !req.JobType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job type")
	}
	if !req.ExperienceLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid experience level")
	}
	if !req.EducationLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid education level")
	}
	if !req.Gender.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
	}

	if _, err := s.employers.FindByID(ctx, employerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employer")
	}

	job := &models.Job{
		Position:            strings.TrimSpace(req.Position),
		Category:            req.Category,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		Location:            req.Location,
		EducationLevel:      req.EducationLevel,
		Salary:              req.Salary,
		Age:                 req.Age,
		Gender:              req.Gender,
		Requirements:        req.Requirements,
		Benefits:            req.Benefits,
		SkillsRequired:      NormalizeSkills(req.SkillsRequired),
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              enums.JobStatusActive,
		EmployerID:          employerID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create job")
	}
	return job, nil
}

func (s *service) List(ctx context.Context, actor authz.Actor, q ListQuery) (*ListResult[models.Job], error) {
	filters := q.Filters
	if actor.IsAdmin() {
		if filters.Status != "" {
			if _, err := enums.ParseJobStatus(filters.Status); err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
			}
		}
	} else {
		// public and non-admin listings only ever see live postings
		filters.Status = enums.JobStatusActive.String()
	}

	items, total, err := s.jobs.List(ctx, filters, q.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list jobs")
	}
	return &ListResult[models.Job]{Items: items, Meta: q.Page.MetaFor(total)}, nil
}

func (s *service) MyJobs(ctx context.Context, employerID uuid.UUID, status string, p pagination.Params) (*ListResult[models.Job], error) {
	if status != "" {
		if _, err := enums.ParseJobStatus(status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
	}
	items, total, err := s.jobs.ListByEmployer(ctx, employerID, status, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employer jobs")
	}
	return &ListResult[models.Job]{Items: items, Meta: p.MetaFor(total)}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	if err := s.jobs.IncrementViews(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment job views")
	}
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch job")
	}
	return job, nil
}

func (s *service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateJobRequest) (*models.Job, error) {
	if _, err := s.ownerGuard.Resolve(ctx, actor, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Position != nil {
		updates["position"] = strings.TrimSpace(*req.Position)
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.JobType != nil {
		if !req.JobType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job type")
		}
		updates["job_type"] = *req.JobType
	}
	if req.ExperienceLevel != nil {
		if !req.ExperienceLevel.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid experience level")
		}
		updates["experience_level"] = *req.ExperienceLevel
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.EducationLevel != nil {
		if !req.EducationLevel.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid education level")
		}
		updates["education_level"] = *req.EducationLevel
	}
	if req.Salary != nil {
		updates["salary"] = *req.Salary
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		if !req.Gender.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
		}
		updates["gender"] = *req.Gender
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.Benefits != nil {
		updates["benefits"] = *req.Benefits
	}
	if req.SkillsRequired != nil {
		updates["skills_required"] = NormalizeSkills(*req.SkillsRequired)
	}
	if req.ApplicationDeadline != nil {
		updates["application_deadline"] = *req.ApplicationDeadline
	}

	job, err := s.jobs.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update job")
	}
	return job, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateStatusRequest) (*models.Job, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if _, err := s.ownerGuard.Resolve(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.jobs.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update job status")
	}
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch job")
	}
	return job, nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if _, err := s.deleteGuard.Resolve(ctx, actor, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete job")
	}
	return nil
}

func (s *service) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch job")
	}
	if err := s.jobs.Save(ctx, userID, jobID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save job")
	}
	return nil
}

func (s *service) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	if err := s.jobs.Unsave(ctx, userID, jobID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unsave job")
	}
	return nil
}

func (s *service) SavedJobs(ctx context.Context, userID uuid.UUID, p pagination.Params) (*ListResult[models.SavedJob], error) {
	items, total, err := s.jobs.ListSaved(ctx, userID, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list saved jobs")
	}
	return &ListResult[models.SavedJob]{Items: items, Meta: p.MetaFor(total)}, nil
}

func (s *service) Stats(ctx context.Context, employerID uuid.UUID) (*EmployerStats, error) {
	stats, err := s.jobs.EmployerStats(ctx, employerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate employer stats")
	}
	return stats, nil
}

// NormalizeSkills splits a comma-separated skills string, trimming whitespace
// and dropping empty entries.
func NormalizeSkills(raw string) dbtypes.StringList {
	if strings.TrimSpace(raw) == "" {
		return dbtypes.StringList{}
	}
	parts := strings.Split(raw, ",")
	skills := make(dbtypes.StringList, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}
