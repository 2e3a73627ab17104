package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/internal/applications"
	"github.com/Rehan-4778/JobHunt-BE/internal/auth"
	"github.com/Rehan-4778/JobHunt-BE/internal/authz"
	"github.com/Rehan-4778/JobHunt-BE/internal/categories"
	"github.com/Rehan-4778/JobHunt-BE/internal/jobs"
	"github.com/Rehan-4778/JobHunt-BE/internal/notifications"
	"github.com/Rehan-4778/JobHunt-BE/internal/users"
	pkgAuth "github.com/Rehan-4778/JobHunt-BE/pkg/auth"
	"github.com/Rehan-4778/JobHunt-BE/pkg/auth/session"
	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubAuthService) UpdateDetails(ctx context.Context, userID uuid.UUID, req auth.UpdateDetailsRequest) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubAuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, req auth.UpdatePasswordRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) ForgetPassword(ctx context.Context, req auth.ForgetPasswordRequest) error {
	panic("unimplemented")
}

func (stubAuthService) ResetPassword(ctx context.Context, rawToken string, req auth.ResetPasswordRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) PendingUsers(ctx context.Context) ([]*users.UserDTO, error) {
	return []*users.UserDTO{}, nil
}

func (stubAuthService) Approve(ctx context.Context, userID uuid.UUID, approved bool) (*users.UserDTO, error) {
	panic("unimplemented")
}

type stubJobService struct{}

func (stubJobService) Create(ctx context.Context, employerID uuid.UUID, req jobs.CreateJobRequest) (*models.Job, error) {
	panic("unimplemented")
}

func (stubJobService) List(ctx context.Context, actor authz.Actor, q jobs.ListQuery) (*jobs.ListResult[models.Job], error) {
	return &jobs.ListResult[models.Job]{Items: []models.Job{}}, nil
}

func (stubJobService) MyJobs(ctx context.Context, employerID uuid.UUID, status string, p pagination.Params) (*jobs.ListResult[models.Job], error) {
	return &jobs.ListResult[models.Job]{Items: []models.Job{}}, nil
}

func (stubJobService) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	panic("unimplemented")
}

func (stubJobService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req jobs.UpdateJobRequest) (*models.Job, error) {
	panic("unimplemented")
}

func (stubJobService) UpdateStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, req jobs.UpdateStatusRequest) (*models.Job, error) {
	panic("unimplemented")
}

func (stubJobService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	return nil
}

func (stubJobService) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	panic("unimplemented")
}

func (stubJobService) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	panic("unimplemented")
}

func (stubJobService) SavedJobs(ctx context.Context, userID uuid.UUID, p pagination.Params) (*jobs.ListResult[models.SavedJob], error) {
	return &jobs.ListResult[models.SavedJob]{Items: []models.SavedJob{}}, nil
}

func (stubJobService) Stats(ctx context.Context, employerID uuid.UUID) (*jobs.EmployerStats, error) {
	panic("unimplemented")
}

type stubApplicationService struct{}

func (stubApplicationService) Submit(ctx context.Context, applicantID, jobID uuid.UUID, req applications.SubmitRequest) (*models.JobApplication, error) {
	panic("unimplemented")
}

func (stubApplicationService) ListMine(ctx context.Context, applicantID uuid.UUID, p pagination.Params) (*applications.ListResult, error) {
	return &applications.ListResult{}, nil
}

func (stubApplicationService) ListForEmployer(ctx context.Context, employerID uuid.UUID, q applications.ListQuery) (*applications.ListResult, error) {
	return &applications.ListResult{}, nil
}

func (stubApplicationService) ListForJob(ctx context.Context, employerID, jobID uuid.UUID, p pagination.Params) (*applications.ListResult, error) {
	panic("unimplemented")
}

func (stubApplicationService) UpdateStatus(ctx context.Context, employerID, applicationID uuid.UUID, req applications.UpdateStatusRequest) (*models.JobApplication, error) {
	panic("unimplemented")
}

func (stubApplicationService) CheckStatus(ctx context.Context, applicantID, jobID uuid.UUID) (*applications.StatusCheck, error) {
	panic("unimplemented")
}

type stubCategoryService struct{}

func (stubCategoryService) Create(ctx context.Context, adminID uuid.UUID, req categories.CreateCategoryRequest) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCategoryService) List(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubCategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubCategoryService) Update(ctx context.Context, id uuid.UUID, req categories.UpdateCategoryRequest) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCategoryService) Toggle(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	panic("unimplemented")
}

func (stubCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCategoryService) Jobs(ctx context.Context, id uuid.UUID, p pagination.Params) (*categories.JobsResult, error) {
	panic("unimplemented")
}

type stubNotificationService struct{}

func (stubNotificationService) Emit(ctx context.Context, event notifications.Event) {}

func (stubNotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	return []models.Notification{}, nil
}

func (stubNotificationService) MarkRead(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Notification, error) {
	panic("unimplemented")
}

func (stubNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (stubNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubNotificationService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "jobhunt",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		Sessions:        stubSessionChecker{},
		MetricsGatherer: prometheus.NewRegistry(),

		AuthService:         stubAuthService{},
		JobService:          stubJobService{},
		ApplicationService:  stubApplicationService{},
		CategoryService:     stubCategoryService{},
		NotificationService: stubNotificationService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestPublicListingsNeedNoToken(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/api/v1/jobs", "/api/v1/categories", "/api/v1/categories/active"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/api/v1/auth/me", "/api/v1/notifications", "/api/v1/jobs/saved"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s got %d", path, resp.Code)
		}
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/pending-applications", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/auth/pending-applications", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestEmployerRoutesRejectJobSeekers(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/my/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for job seeker got %d", resp.Code)
	}

	employer := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/my/jobs", nil)
	employer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleEmployer))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, employer)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for employer got %d", resp.Code)
	}
}

func TestAdminCannotManageEmployerSurfaces(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.RoleAdmin)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/jobs/my/jobs"},
		{http.MethodGet, "/api/v1/jobs/stats"},
		{http.MethodGet, "/api/v1/applications"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for admin on %s %s got %d", tc.method, tc.path, resp.Code)
		}
	}

	// removing a posting is the one job mutation admins keep
	del := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/"+uuid.NewString(), nil)
	del.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, del)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete got %d", resp.Code)
	}
}

func TestJobSeekerRoutesRejectEmployers(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/saved", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleEmployer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employer got %d", resp.Code)
	}

	seeker := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/saved", nil)
	seeker.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, seeker)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for job seeker got %d", resp.Code)
	}
}

func TestAuthedUserFetchesOwnProfile(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for /auth/me got %d", resp.Code)
	}
}
