package jobs

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/internal/authz"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	dbtypes "github.com/Rehan-4778/JobHunt-BE/pkg/db/types"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func TestNormalizeSkills(t *testing.T) {
	cases := []struct {
		raw  string
		want dbtypes.StringList
	}{
		{"Go, Postgres,  Redis", dbtypes.StringList{"Go", "Postgres", "Redis"}},
		{"Go,,  ,Redis,", dbtypes.StringList{"Go", "Redis"}},
		{"   ", dbtypes.StringList{}},
		{"", dbtypes.StringList{}},
		{"solo", dbtypes.StringList{"solo"}},
	}
	for _, tc := range cases {
		if got := NormalizeSkills(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("NormalizeSkills(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestListForcesActiveForNonAdmin(t *testing.T) {
	svc, repo := buildJobsService(t)
	anonymous := authz.Actor{}

	if _, err := svc.List(context.Background(), anonymous, ListQuery{
		Filters: ListFilters{Status: string(enums.JobStatusClosed)},
	}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastFilters.Status != enums.JobStatusActive.String() {
		t.Fatalf("expected forced Active status, got %q", repo.lastFilters.Status)
	}

	admin := authz.Actor{ID: uuid.New(), Role: enums.RoleAdmin}
	if _, err := svc.List(context.Background(), admin, ListQuery{
		Filters: ListFilters{Status: string(enums.JobStatusClosed)},
	}); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if repo.lastFilters.Status != enums.JobStatusClosed.String() {
		t.Fatalf("expected admin status preserved, got %q", repo.lastFilters.Status)
	}

	_, err := svc.List(context.Background(), admin, ListQuery{
		Filters: ListFilters{Status: "bogus"},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for bogus status, got %v", err)
	}
}

func validCreateRequest() CreateJobRequest {
	return CreateJobRequest{
		Position:            "Backend Engineer",
		Category:            "Engineering",
		JobType:             enums.JobTypeFullTime,
		ExperienceLevel:     enums.ExperienceMid,
		Location:            "Lahore",
		EducationLevel:      enums.EducationBachelors,
		Salary:              "100k PKR",
		Age:                 "22-40",
		Gender:              enums.GenderAny,
		Requirements:        "3+ years of Go",
		Benefits:            "Health insurance",
		SkillsRequired:      "Go, SQL",
		ApplicationDeadline: time.Now().UTC().Add(30 * 24 * time.Hour),
	}
}

func TestCreateDefaultsActiveAndKeepsPostingFields(t *testing.T) {
	svc, repo := buildJobsService(t)
	repo.employers.user = &models.User{ID: uuid.New(), Role: enums.RoleEmployer}

	req := validCreateRequest()
	job, err := svc.Create(context.Background(), repo.employers.user.ID, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Status != enums.JobStatusActive {
		t.Fatalf("expected Active default, got %q", job.Status)
	}
	if job.Requirements != req.Requirements || job.Benefits != req.Benefits {
		t.Fatalf("requirements/benefits dropped: %+v", job)
	}
	if job.Salary != req.Salary || job.Age != req.Age || job.Gender != req.Gender {
		t.Fatalf("salary/age/gender dropped: %+v", job)
	}
	if job.EmployerID != repo.employers.user.ID {
		t.Fatalf("expected employer attached, got %s", job.EmployerID)
	}
	if !reflect.DeepEqual(job.SkillsRequired, dbtypes.StringList{"Go", "SQL"}) {
		t.Fatalf("unexpected skills %v", job.SkillsRequired)
	}
}

func TestCreateRejectsInvalidJobType(t *testing.T) {
	svc, _ := buildJobsService(t)
	req := validCreateRequest()
	req.JobType = enums.JobType("Gig")
	_, err := svc.Create(context.Background(), uuid.New(), req)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateGuardOrdering(t *testing.T) {
	svc, repo := buildJobsService(t)
	owner := authz.Actor{ID: uuid.New(), Role: enums.RoleEmployer}
	job := &models.Job{ID: uuid.New(), EmployerID: owner.ID, Status: enums.JobStatusActive}
	repo.jobs[job.ID] = job

	stranger := authz.Actor{ID: uuid.New(), Role: enums.RoleEmployer}
	_, err := svc.Update(context.Background(), stranger, job.ID, UpdateJobRequest{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	_, err = svc.Update(context.Background(), stranger, uuid.New(), UpdateJobRequest{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found before forbidden, got %v", err)
	}

	position := "Renamed"
	if _, err := svc.Update(context.Background(), owner, job.ID, UpdateJobRequest{Position: &position}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if repo.lastUpdates["position"] != "Renamed" {
		t.Fatalf("expected position in update map, got %v", repo.lastUpdates)
	}
}

func TestDeleteAdminOverride(t *testing.T) {
	svc, repo := buildJobsService(t)
	job := &models.Job{ID: uuid.New(), EmployerID: uuid.New()}
	repo.jobs[job.ID] = job

	stranger := authz.Actor{ID: uuid.New(), Role: enums.RoleEmployer}
	if err := svc.Delete(context.Background(), stranger, job.ID); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	admin := authz.Actor{ID: uuid.New(), Role: enums.RoleAdmin}
	if err := svc.Delete(context.Background(), admin, job.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if repo.deleted != job.ID {
		t.Fatal("expected job deleted")
	}
}

func TestGetByIDCountsView(t *testing.T) {
	svc, repo := buildJobsService(t)
	job := &models.Job{ID: uuid.New(), EmployerID: uuid.New()}
	repo.jobs[job.ID] = job

	if _, err := svc.GetByID(context.Background(), job.ID); err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if repo.viewIncrements != 1 {
		t.Fatalf("expected one view increment, got %d", repo.viewIncrements)
	}
}

func TestSaveMissingJob(t *testing.T) {
	svc, _ := buildJobsService(t)
	err := svc.Save(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	svc, repo := buildJobsService(t)
	owner := authz.Actor{ID: uuid.New(), Role: enums.RoleEmployer}
	job := &models.Job{ID: uuid.New(), EmployerID: owner.ID}
	repo.jobs[job.ID] = job

	_, err := svc.UpdateStatus(context.Background(), owner, job.ID, UpdateStatusRequest{Status: "Archived"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), owner, job.ID, UpdateStatusRequest{Status: enums.JobStatusPaused}); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.lastStatus != enums.JobStatusPaused {
		t.Fatalf("expected status persisted, got %q", repo.lastStatus)
	}
}

type stubJobRepo struct {
	jobs      map[uuid.UUID]*models.Job
	employers *stubEmployerRepo

	lastFilters    ListFilters
	lastUpdates    map[string]any
	lastStatus     enums.JobStatus
	deleted        uuid.UUID
	viewIncrements int
}

type stubEmployerRepo struct {
	user *models.User
}

func (s *stubEmployerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func buildJobsService(t *testing.T) (Service, *stubJobRepo) {
	t.Helper()
	employers := &stubEmployerRepo{}
	repo := &stubJobRepo{jobs: map[uuid.UUID]*models.Job{}, employers: employers}
	svc, err := NewService(ServiceParams{
		JobRepo:      repo,
		EmployerRepo: employers,
		Logger:       logger.New(logger.Options{Level: zerolog.ErrorLevel}),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func (s *stubJobRepo) Create(_ context.Context, job *models.Job) error {
	job.ID = uuid.New()
	s.jobs[job.ID] = job
	return nil
}

func (s *stubJobRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	if job, ok := s.jobs[id]; ok {
		return job, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubJobRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	s.viewIncrements++
	return nil
}

func (s *stubJobRepo) List(_ context.Context, filters ListFilters, p pagination.Params) ([]models.Job, int64, error) {
	s.lastFilters = filters
	return nil, 0, nil
}

func (s *stubJobRepo) ListByEmployer(_ context.Context, employerID uuid.UUID, status string, p pagination.Params) ([]models.Job, int64, error) {
	return nil, 0, nil
}

func (s *stubJobRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) (*models.Job, error) {
	s.lastUpdates = updates
	return s.jobs[id], nil
}

func (s *stubJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.JobStatus) error {
	s.lastStatus = status
	return nil
}

func (s *stubJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	delete(s.jobs, id)
	return nil
}

func (s *stubJobRepo) Save(_ context.Context, userID, jobID uuid.UUID) error {
	return nil
}

func (s *stubJobRepo) Unsave(_ context.Context, userID, jobID uuid.UUID) error {
	return nil
}

func (s *stubJobRepo) ListSaved(_ context.Context, userID uuid.UUID, p pagination.Params) ([]models.SavedJob, int64, error) {
	return nil, 0, nil
}

func (s *stubJobRepo) EmployerStats(_ context.Context, employerID uuid.UUID) (*EmployerStats, error) {
	return &EmployerStats{}, nil
}
