package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/internal/users"
	pkgAuth "github.com/Rehan-4778/JobHunt-BE/pkg/auth"
	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/security"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "jobhunt",
	ExpirationMinutes: 30,
}

func TestLoginSuccess(t *testing.T) {
	password := "user-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "seeker@example.com",
		PasswordHash: mustHashPassword(t, password),
		FirstName:    "Job",
		LastName:     "Seeker",
		Role:         enums.RoleUser,
		IsApproved:   true,
	}

	svc, deps := buildTestService(t, user)
	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Seeker@Example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.Token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.RoleUser {
		t.Fatalf("expected user role claim, got %s", claims.Role)
	}
	if len(deps.sessions.generated) != 1 || deps.sessions.generated[0] != claims.ID {
		t.Fatalf("expected session registered under jti %q", claims.ID)
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("unexpected user payload %+v", resp.User)
	}
}

func TestLoginUnknownEmailAndBadPasswordMatch(t *testing.T) {
	password := "right-password"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "known@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleUser,
		IsApproved:   true,
	}

	svc, deps := buildTestService(t, user)

	deps.users.err = gorm.ErrRecordNotFound
	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	deps.users.err = nil
	_, badPassErr := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})

	for _, err := range []error{unknownErr, badPassErr} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("unexpected message %q", typed.Message())
		}
	}
}

func TestLoginPendingApprovalDistinctMessage(t *testing.T) {
	password := "pending-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "pending@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleEmployer,
		IsApproved:   false,
	}

	svc, _ := buildTestService(t, user)
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if typed.Message() == invalidCredentialsMessage {
		t.Fatal("pending approval must not reuse the credentials message")
	}
}

func TestLoginAdminSkipsApprovalCheck(t *testing.T) {
	password := "admin-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleAdmin,
		IsApproved:   false,
	}

	svc, _ := buildTestService(t, user)
	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	}); err != nil {
		t.Fatalf("admin login: %v", err)
	}
}

func TestRegisterRequiresCVForJobSeekers(t *testing.T) {
	svc, _ := buildTestService(t, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "No",
		LastName:  "CV",
		Email:     "nocv@example.com",
		Password:  "password",
		Role:      enums.RoleUser,
	})

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	svc, deps := buildTestService(t, nil)
	deps.users.createErr = errors.New(`duplicate key value violates unique constraint "idx_users_email"`)

	cv := "https://storage.googleapis.com/bucket/jobhunt/cvs/x.pdf"
	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Dup",
		LastName:  "User",
		Email:     "dup@example.com",
		Password:  "password",
		Role:      enums.RoleUser,
		CVURL:     &cv,
	})

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterEmployerIssuesToken(t *testing.T) {
	svc, deps := buildTestService(t, nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Acme",
		LastName:  "Hiring",
		Email:     "ACME@Example.com",
		Password:  "password",
		Role:      enums.RoleEmployer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected access token")
	}
	if deps.users.created == nil {
		t.Fatal("expected user persisted")
	}
	if deps.users.created.Email != "acme@example.com" {
		t.Fatalf("expected normalized email, got %q", deps.users.created.Email)
	}
	if deps.users.created.IsApproved {
		t.Fatal("new accounts must start unapproved")
	}
}

func TestUpdatePasswordChecksCurrent(t *testing.T) {
	password := "old-password"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "change@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleUser,
		IsApproved:   true,
	}

	svc, deps := buildTestService(t, user)

	_, err := svc.UpdatePassword(context.Background(), user.ID, UpdatePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "new-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	resp, err := svc.UpdatePassword(context.Background(), user.ID, UpdatePasswordRequest{
		CurrentPassword: password,
		NewPassword:     "new-password",
	})
	if err != nil {
		t.Fatalf("update password: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected fresh token after password change")
	}
	if deps.users.passwordHash == "" {
		t.Fatal("expected new hash persisted")
	}
	if ok, _ := security.VerifyPassword("new-password", deps.users.passwordHash); !ok {
		t.Fatal("persisted hash does not match the new password")
	}
}

func TestForgetPasswordUnknownEmail(t *testing.T) {
	svc, deps := buildTestService(t, nil)
	deps.users.err = gorm.ErrRecordNotFound

	err := svc.ForgetPassword(context.Background(), ForgetPasswordRequest{Email: "ghost@example.com"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestForgetPasswordRollsBackOnSendFailure(t *testing.T) {
	user := &models.User{
		ID:         uuid.New(),
		Email:      "reset@example.com",
		Role:       enums.RoleUser,
		IsApproved: true,
	}
	svc, deps := buildTestService(t, user)
	deps.mailer.err = errors.New("smtp down")

	err := svc.ForgetPassword(context.Background(), ForgetPasswordRequest{Email: user.Email})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if deps.users.resetTokenHash != "" {
		t.Fatal("expected reset token cleared after send failure")
	}
}

func TestForgetPasswordStoresHashedToken(t *testing.T) {
	user := &models.User{
		ID:         uuid.New(),
		Email:      "reset@example.com",
		Role:       enums.RoleUser,
		IsApproved: true,
	}
	svc, deps := buildTestService(t, user)

	if err := svc.ForgetPassword(context.Background(), ForgetPasswordRequest{Email: user.Email}); err != nil {
		t.Fatalf("forget password: %v", err)
	}
	if deps.mailer.to != user.Email {
		t.Fatalf("expected mail to %q, got %q", user.Email, deps.mailer.to)
	}
	if deps.users.resetTokenHash == "" {
		t.Fatal("expected hashed token stored")
	}
	// the mail body carries the raw token, never the stored digest
	if deps.mailer.body == "" || containsDigest(deps.mailer.body, deps.users.resetTokenHash) {
		t.Fatal("mail body must carry the raw token only")
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc, deps := buildTestService(t, nil)
	deps.users.err = gorm.ErrRecordNotFound

	_, err := svc.ResetPassword(context.Background(), "bogus", ResetPasswordRequest{Password: "new-password"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResetPasswordConsumesToken(t *testing.T) {
	user := &models.User{
		ID:         uuid.New(),
		Email:      "reset@example.com",
		Role:       enums.RoleUser,
		IsApproved: true,
	}
	svc, deps := buildTestService(t, user)
	deps.users.resetTokenHash = security.HashResetToken("raw-token")

	resp, err := svc.ResetPassword(context.Background(), "raw-token", ResetPasswordRequest{Password: "new-password"})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected fresh token")
	}
	if deps.users.resetTokenHash != "" {
		t.Fatal("expected reset token cleared after use")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, deps := buildTestService(t, nil)
	if err := svc.Logout(context.Background(), "jti-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(deps.sessions.revoked) != 1 || deps.sessions.revoked[0] != "jti-123" {
		t.Fatalf("expected session revoked, got %v", deps.sessions.revoked)
	}
}

func TestApproveUnknownUser(t *testing.T) {
	svc, deps := buildTestService(t, nil)
	deps.users.err = gorm.ErrRecordNotFound

	_, err := svc.Approve(context.Background(), uuid.New(), true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

type testDeps struct {
	users    *stubUserRepo
	sessions *stubSessionManager
	mailer   *stubMailer
}

func buildTestService(t *testing.T, user *models.User) (Service, *testDeps) {
	t.Helper()
	deps := &testDeps{
		users:    &stubUserRepo{user: user},
		sessions: &stubSessionManager{},
		mailer:   &stubMailer{},
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       deps.users,
		SessionManager: deps.sessions,
		Mailer:         deps.mailer,
		Logger:         logger.New(logger.Options{Level: zerolog.ErrorLevel}),
		JWTConfig:      testJWTConfig,
		ResetConfig:    config.ResetConfig{TokenTTL: 10 * time.Minute},
		PublicURL:      "http://localhost:5000",
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, deps
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func containsDigest(body, digest string) bool {
	return digest != "" && len(body) > 0 && strings.Contains(body, digest)
}

type stubUserRepo struct {
	user *models.User
	err  error

	created        *models.User
	createErr      error
	passwordHash   string
	resetTokenHash string
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateUserDTO) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.passwordHash = hash
	return nil
}

func (s *stubUserRepo) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error {
	s.resetTokenHash = tokenHash
	return nil
}

func (s *stubUserRepo) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	s.resetTokenHash = ""
	return nil
}

func (s *stubUserRepo) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.resetTokenHash == "" || s.resetTokenHash != tokenHash {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	if s.user != nil && s.user.ID == id {
		s.user.IsApproved = approved
	}
	return nil
}

func (s *stubUserRepo) ListPending(ctx context.Context) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil {
		return nil, nil
	}
	return []models.User{*s.user}, nil
}

type stubSessionManager struct {
	generated []string
	revoked   []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID, userID string) error {
	s.generated = append(s.generated, accessID)
	return nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (s *stubMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.to = to
	s.subject = subject
	s.body = htmlBody
	return nil
}
