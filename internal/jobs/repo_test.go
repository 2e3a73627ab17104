package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:jobs_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Job{}, &models.JobApplication{}, &models.SavedJob{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedJob(t *testing.T, repo *Repository, employerID uuid.UUID, mutate func(*models.Job)) *models.Job {
	t.Helper()
	job := &models.Job{
		Position:            "Backend Engineer",
		Category:            "Engineering",
		JobType:             enums.JobTypeFullTime,
		ExperienceLevel:     enums.ExperienceMid,
		Location:            "Lahore",
		EducationLevel:      enums.EducationBachelors,
		Salary:              "100k PKR",
		Age:                 "22-40",
		Gender:              enums.GenderAny,
		Requirements:        "3+ years building Go services",
		Benefits:            "Health insurance",
		ApplicationDeadline: time.Now().UTC().Add(30 * 24 * time.Hour),
		Status:              enums.JobStatusActive,
		EmployerID:          employerID,
	}
	if mutate != nil {
		mutate(job)
	}
	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func TestCreatePersistsPostingDetails(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	deadline := time.Now().UTC().Add(14 * 24 * time.Hour).Truncate(time.Second)

	job := seedJob(t, repo, uuid.New(), func(j *models.Job) {
		j.Requirements = "BSc CS, 5 years with distributed systems"
		j.Benefits = "Medical, annual bonus"
		j.Salary = "150k-200k PKR"
		j.Age = "25-45"
		j.Gender = enums.GenderFemale
		j.ExperienceLevel = enums.ExperienceSenior
		j.EducationLevel = enums.EducationMasters
		j.SkillsRequired = []string{"Go", "PostgreSQL"}
		j.ApplicationDeadline = deadline
	})

	reloaded, err := repo.FindByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("find job: %v", err)
	}
	if reloaded.Requirements != job.Requirements || reloaded.Benefits != job.Benefits {
		t.Fatalf("requirements/benefits lost: %+v", reloaded)
	}
	if reloaded.Salary != "150k-200k PKR" || reloaded.Age != "25-45" {
		t.Fatalf("salary/age lost: %q %q", reloaded.Salary, reloaded.Age)
	}
	if reloaded.Gender != enums.GenderFemale ||
		reloaded.ExperienceLevel != enums.ExperienceSenior ||
		reloaded.EducationLevel != enums.EducationMasters {
		t.Fatalf("enum fields lost: %+v", reloaded)
	}
	if len(reloaded.SkillsRequired) != 2 || reloaded.SkillsRequired[0] != "Go" {
		t.Fatalf("skills lost: %v", reloaded.SkillsRequired)
	}
	if !reloaded.ApplicationDeadline.Equal(deadline) {
		t.Fatalf("deadline lost: %v", reloaded.ApplicationDeadline)
	}
}

func TestIncrementViewsIsAtomicPerFetch(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	job := seedJob(t, repo, uuid.New(), nil)

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, job.ID); err != nil {
			t.Fatalf("increment views: %v", err)
		}
	}

	reloaded, err := repo.FindByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("find job: %v", err)
	}
	if reloaded.ViewsCount != 3 {
		t.Fatalf("expected 3 views, got %d", reloaded.ViewsCount)
	}
}

func TestListSubstringAndExactFilters(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	employerID := uuid.New()

	seedJob(t, repo, employerID, func(j *models.Job) {
		j.Position = "Senior Go Developer"
		j.Location = "Karachi, Pakistan"
		j.Salary = "50k-80k PKR"
	})
	seedJob(t, repo, employerID, func(j *models.Job) {
		j.Position = "Designer"
		j.Category = "Design"
		j.JobType = enums.JobTypeContract
		j.Location = "Islamabad"
	})

	byLocation, total, err := repo.List(ctx, ListFilters{Location: "KARACHI"}, pagination.Params{})
	if err != nil {
		t.Fatalf("list by location: %v", err)
	}
	if total != 1 || len(byLocation) != 1 || byLocation[0].Position != "Senior Go Developer" {
		t.Fatalf("expected substring location match, got %d rows", len(byLocation))
	}

	bySalary, _, err := repo.List(ctx, ListFilters{Salary: "80k"}, pagination.Params{})
	if err != nil {
		t.Fatalf("list by salary: %v", err)
	}
	if len(bySalary) != 1 {
		t.Fatalf("expected substring salary match, got %d rows", len(bySalary))
	}

	byType, _, err := repo.List(ctx, ListFilters{JobType: string(enums.JobTypeContract)}, pagination.Params{})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(byType) != 1 || byType[0].Category != "Design" {
		t.Fatalf("expected exact type match, got %d rows", len(byType))
	}

	// exact filters never fall back to substring behavior
	byPartialType, _, err := repo.List(ctx, ListFilters{JobType: "Contr"}, pagination.Params{})
	if err != nil {
		t.Fatalf("list by partial type: %v", err)
	}
	if len(byPartialType) != 0 {
		t.Fatalf("expected no rows for partial exact filter, got %d", len(byPartialType))
	}
}

func TestListPaginationNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	employerID := uuid.New()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		job := seedJob(t, repo, employerID, func(j *models.Job) {
			j.Position = fmt.Sprintf("Job %d", i)
		})
		createdAt := base.Add(time.Duration(i) * time.Minute)
		if err := db.Model(&models.Job{}).Where("id = ?", job.ID).
			UpdateColumn("created_at", createdAt).Error; err != nil {
			t.Fatalf("backdate job: %v", err)
		}
	}

	page1, total, err := repo.List(ctx, ListFilters{}, pagination.Params{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if total != 5 || len(page1) != 2 {
		t.Fatalf("expected 2 of 5 rows, got %d of %d", len(page1), total)
	}
	if page1[0].Position != "Job 4" {
		t.Fatalf("expected newest first, got %q", page1[0].Position)
	}

	meta := pagination.Params{Page: 3, Limit: 2}.MetaFor(total)
	if meta.HasMore {
		t.Fatal("expected last page to report no more rows")
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	job := seedJob(t, repo, uuid.New(), nil)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		if err := repo.Save(ctx, userID, job.ID); err != nil {
			t.Fatalf("save attempt %d: %v", i+1, err)
		}
	}

	saved, total, err := repo.ListSaved(ctx, userID, pagination.Params{})
	if err != nil {
		t.Fatalf("list saved: %v", err)
	}
	if total != 1 || len(saved) != 1 {
		t.Fatalf("expected one saved row, got %d", len(saved))
	}
	if saved[0].Job == nil || saved[0].Job.ID != job.ID {
		t.Fatal("expected posting attached to saved row")
	}

	if err := repo.Unsave(ctx, userID, job.ID); err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if err := repo.Unsave(ctx, userID, job.ID); err != nil {
		t.Fatalf("second unsave: %v", err)
	}
	if _, total, err = repo.ListSaved(ctx, userID, pagination.Params{}); err != nil || total != 0 {
		t.Fatalf("expected empty saved list, total=%d err=%v", total, err)
	}
}

func TestDeleteRemovesDependents(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	job := seedJob(t, repo, uuid.New(), nil)
	userID := uuid.New()

	if err := repo.Save(ctx, userID, job.ID); err != nil {
		t.Fatalf("save: %v", err)
	}
	application := &models.JobApplication{
		JobID:          job.ID,
		ApplicantID:    userID,
		FirstName:      "App",
		LastName:       "Licant",
		CNIC:           "35202-1234567-1",
		City:           "Lahore",
		Country:        "Pakistan",
		Address:        "12 Mall Road",
		Experience:     enums.ApplicantFresher,
		ExpectedSalary: "60k PKR",
		CVURL:          "https://example.com/cv.pdf",
		Status:         enums.ApplicationPending,
	}
	if err := db.Create(application).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}

	if err := repo.Delete(ctx, job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	var savedCount, applicationCount int64
	db.Model(&models.SavedJob{}).Where("job_id = ?", job.ID).Count(&savedCount)
	db.Model(&models.JobApplication{}).Where("job_id = ?", job.ID).Count(&applicationCount)
	if savedCount != 0 || applicationCount != 0 {
		t.Fatalf("expected dependents removed, saved=%d applications=%d", savedCount, applicationCount)
	}
}

func TestEmployerStatsAggregation(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	employerID := uuid.New()

	active := seedJob(t, repo, employerID, nil)
	seedJob(t, repo, employerID, func(j *models.Job) { j.Status = enums.JobStatusClosed })
	seedJob(t, repo, uuid.New(), nil) // another employer's job

	statuses := []enums.ApplicationStatus{
		enums.ApplicationPending,
		enums.ApplicationShortlisted,
		enums.ApplicationHired,
		enums.ApplicationHired,
	}
	for i, status := range statuses {
		application := &models.JobApplication{
			JobID:          active.ID,
			ApplicantID:    uuid.New(),
			FirstName:      fmt.Sprintf("Applicant%d", i),
			LastName:       "Test",
			CNIC:           fmt.Sprintf("35202-000000%d-1", i),
			City:           "Lahore",
			Country:        "Pakistan",
			Address:        "12 Mall Road",
			Experience:     enums.ApplicantFresher,
			ExpectedSalary: "60k PKR",
			CVURL:          "https://example.com/cv.pdf",
			Status:         status,
		}
		if err := db.Create(application).Error; err != nil {
			t.Fatalf("seed application: %v", err)
		}
	}

	stats, err := repo.EmployerStats(ctx, employerID)
	if err != nil {
		t.Fatalf("employer stats: %v", err)
	}
	if stats.TotalJobs != 2 || stats.ActiveJobs != 1 {
		t.Fatalf("unexpected job counts %+v", stats)
	}
	if stats.TotalApplications != 4 || stats.Shortlisted != 1 || stats.Hired != 2 {
		t.Fatalf("unexpected application counts %+v", stats)
	}
}

func TestCountByCategory(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	employerID := uuid.New()

	seedJob(t, repo, employerID, nil)
	seedJob(t, repo, employerID, func(j *models.Job) { j.Category = "Design" })

	count, err := repo.CountByCategory(ctx, "Engineering")
	if err != nil {
		t.Fatalf("count by category: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 job in category, got %d", count)
	}
}
