package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/internal/notifications"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the applications controller.
type Service interface {
	Submit(ctx context.Context, applicantID, jobID uuid.UUID, req SubmitRequest) (*models.JobApplication, error)
	ListMine(ctx context.Context, applicantID uuid.UUID, p pagination.Params) (*ListResult, error)
	ListForEmployer(ctx context.Context, employerID uuid.UUID, q ListQuery) (*ListResult, error)
	ListForJob(ctx context.Context, employerID, jobID uuid.UUID, p pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, employerID, applicationID uuid.UUID, req UpdateStatusRequest) (*models.JobApplication, error)
	CheckStatus(ctx context.Context, applicantID, jobID uuid.UUID) (*StatusCheck, error)
}

type applicationRepository interface {
	Submit(ctx context.Context, application *models.JobApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*models.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, p pagination.Params) ([]models.JobApplication, int64, error)
	ListForEmployer(ctx context.Context, employerID uuid.UUID, filters EmployerFilters, p pagination.Params) ([]models.JobApplication, int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, p pagination.Params) ([]models.JobApplication, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ApplicationStatus, changedAt time.Time) error
}

type jobFetcher interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

type service struct {
	applications applicationRepository
	jobs         jobFetcher
	emitter      notifications.Emitter
	logg         *logger.Logger
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	ApplicationRepo applicationRepository
	JobRepo         jobFetcher
	Emitter         notifications.Emitter
	Logger          *logger.Logger
}

// NewService constructs an applications service.
func NewService(params ServiceParams) (Service, error) {
	if params.ApplicationRepo == nil {
		return nil, fmt.Errorf("application repository is required")
	}
	if params.JobRepo == nil {
		return nil, fmt.Errorf("job repository is required")
	}
	if params.Emitter == nil {
		return nil, fmt.Errorf("notification emitter is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		applications: params.ApplicationRepo,
		jobs:         params.JobRepo,
		emitter:      params.Emitter,
		logg:         params.Logger,
	}, nil
}

func (s *service) Submit(ctx context.Context, applicantID, jobID uuid.UUID, req SubmitRequest) (*models.JobApplication, error) {
	if req.CVURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "CV is required to apply")
	}
	if !req.Experience.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid experience value")
	}

	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch job")
	}

	application := &models.JobApplication{
		JobID:          jobID,
		ApplicantID:    applicantID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		CNIC:           req.CNIC,
		City:           req.City,
		Country:        req.Country,
		Address:        req.Address,
		Experience:     req.Experience,
		ExpectedSalary: req.ExpectedSalary,
		CVURL:          req.CVURL,
		Status:         enums.ApplicationPending,
	}
	if err := s.applications.Submit(ctx, application); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already applied to this job")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit application")
	}
	return application, nil
}

func (s *service) ListMine(ctx context.Context, applicantID uuid.UUID, p pagination.Params) (*ListResult, error) {
	items, total, err := s.applications.ListByApplicant(ctx, applicantID, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list applications")
	}
	return &ListResult{Items: items, Meta: p.MetaFor(total)}, nil
}

func (s *service) ListForEmployer(ctx context.Context, employerID uuid.UUID, q ListQuery) (*ListResult, error) {
	if q.Filters.Status != "" {
		if _, err := enums.ParseApplicationStatus(q.Filters.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
	}
	items, total, err := s.applications.ListForEmployer(ctx, employerID, q.Filters, q.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employer applications")
	}
	return &ListResult{Items: items, Meta: q.Page.MetaFor(total)}, nil
}

func (s *service) ListForJob(ctx context.Context, employerID, jobID uuid.UUID, p pagination.Params) (*ListResult, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch job")
	}
	if job.EmployerID != employerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to view applications for this job")
	}

	items, total, err := s.applications.ListByJob(ctx, jobID, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list job applications")
	}
	return &ListResult{Items: items, Meta: p.MetaFor(total)}, nil
}

func (s *service) UpdateStatus(ctx context.Context, employerID, applicationID uuid.UUID, req UpdateStatusRequest) (*models.JobApplication, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid application status")
	}

	application, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch application")
	}

	job := application.Job
	if job == nil {
		job, err = s.jobs.FindByID(ctx, application.JobID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch parent job")
		}
	}
	if job.EmployerID != employerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to update this application")
	}

	if application.Status == req.Status {
		return application, nil
	}

	changedAt := time.Now().UTC()
	if err := s.applications.UpdateStatus(ctx, applicationID, req.Status, changedAt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update application status")
	}
	application.Status = req.Status
	application.StatusChanged = &changedAt

	title, message := statusNotification(req.Status, job.Position)
	s.emitter.Emit(ctx, notifications.Event{
		UserID:  application.ApplicantID,
		Title:   title,
		Message: message,
		Type:    enums.NotificationTypeStatus,
		Data: map[string]any{
			"applicationId": application.ID.String(),
			"jobId":         job.ID.String(),
			"status":        req.Status.String(),
		},
	})
	return application, nil
}

func (s *service) CheckStatus(ctx context.Context, applicantID, jobID uuid.UUID) (*StatusCheck, error) {
	application, err := s.applications.FindByJobAndApplicant(ctx, jobID, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StatusCheck{HasApplied: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check application status")
	}
	return &StatusCheck{HasApplied: true, Application: application}, nil
}

func statusNotification(status enums.ApplicationStatus, position string) (string, string) {
	switch status {
	case enums.ApplicationReviewed:
		return "Application Reviewed", fmt.Sprintf("Your application for %s has been reviewed.", position)
	case enums.ApplicationShortlisted:
		return "Application Shortlisted", fmt.Sprintf("Congratulations! You have been shortlisted for %s.", position)
	case enums.ApplicationRejected:
		return "Application Update", fmt.Sprintf("Your application for %s was not selected.", position)
	case enums.ApplicationHired:
		return "Congratulations!", fmt.Sprintf("You have been hired for %s!", position)
	default:
		return "Application Update", fmt.Sprintf("Your application for %s moved to %s.", position, status)
	}
}
