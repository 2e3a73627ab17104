package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/internal/users"
	pkgAuth "github.com/Rehan-4778/JobHunt-BE/pkg/auth"
	"github.com/Rehan-4778/JobHunt-BE/pkg/auth/session"
	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/security"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	pendingApprovalMessage    = "Your application is pending approval from admin. Please wait for approval."
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	UpdateDetails(ctx context.Context, userID uuid.UUID, req UpdateDetailsRequest) (*users.UserDTO, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, req UpdatePasswordRequest) (*AuthResponse, error)
	ForgetPassword(ctx context.Context, req ForgetPasswordRequest) error
	ResetPassword(ctx context.Context, rawToken string, req ResetPasswordRequest) (*AuthResponse, error)
	Logout(ctx context.Context, accessID string) error
	PendingUsers(ctx context.Context) ([]*users.UserDTO, error)
	Approve(ctx context.Context, userID uuid.UUID, approved bool) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateUserDTO) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) error
	ListPending(ctx context.Context) ([]models.User, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID, userID string) error
	Revoke(ctx context.Context, accessID string) error
}

type mailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type service struct {
	users       userRepository
	session     sessionManager
	mailer      mailSender
	logg        *logger.Logger
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	resetCfg    config.ResetConfig
	publicURL   string
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	Mailer         mailSender
	Logger         *logger.Logger
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	ResetConfig    config.ResetConfig
	PublicURL      string
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		mailer:      params.Mailer,
		logg:        params.Logger,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		resetCfg:    params.ResetConfig,
		publicURL:   strings.TrimRight(params.PublicURL, "/"),
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if req.Role != enums.RoleUser && req.Role != enums.RoleEmployer {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be user or employer")
	}
	if req.Role == enums.RoleUser && (req.CVURL == nil || *req.CVURL == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "CV is required for job seekers")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		MobileNo:     req.MobileNo,
		Address:      req.Address,
		City:         req.City,
		Company:      req.Company,
		PasswordHash: passwordHash,
		Role:         req.Role,
		CVURL:        req.CVURL,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.issueSession(ctx, user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if user.Role != enums.RoleAdmin && !user.IsApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, pendingApprovalMessage)
	}

	return s.issueSession(ctx, user)
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateDetails(ctx context.Context, userID uuid.UUID, req UpdateDetailsRequest) (*users.UserDTO, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	dto := users.UpdateUserDTO{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		MobileNo:  req.MobileNo,
		Address:   req.Address,
		City:      req.City,
		Company:   req.Company,
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		dto.Email = &email
	}

	user, err := s.users.UpdateProfile(ctx, userID, dto)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user details")
	}
	return users.FromModel(user), nil
}

func (s *service) UpdatePassword(ctx context.Context, userID uuid.UUID, req UpdatePasswordRequest) (*AuthResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "password is incorrect")
	}

	if err := s.replacePassword(ctx, user, req.NewPassword); err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *service) ForgetPassword(ctx context.Context, req ForgetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "there is no user with that email")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}

	expire := time.Now().UTC().Add(s.resetCfg.TokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, security.HashResetToken(token), expire); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}

	resetURL := fmt.Sprintf("%s/redirect/reset-password/%s", s.publicURL, token)
	body := fmt.Sprintf(`<p>You requested a password reset.</p>
<p>Tap the link below to open the app and reset your password:</p>
<a href=%q>Reset Password</a>`, resetURL)

	if sendErr := s.mailer.Send(ctx, user.Email, "Reset Password", body); sendErr != nil {
		combined := sendErr
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			combined = multierr.Combine(sendErr, clearErr)
		}
		s.logg.Error(ctx, "reset email delivery failed", combined)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, sendErr, "email could not be sent")
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, rawToken string, req ResetPasswordRequest) (*AuthResponse, error) {
	user, err := s.users.FindByResetToken(ctx, security.HashResetToken(rawToken), time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reset token")
	}

	if err := s.replacePassword(ctx, user, req.Password); err != nil {
		return nil, err
	}
	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear reset token")
	}
	return s.issueSession(ctx, user)
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) PendingUsers(ctx context.Context) ([]*users.UserDTO, error) {
	pending, err := s.users.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pending users")
	}
	out := make([]*users.UserDTO, 0, len(pending))
	for i := range pending {
		out = append(out, users.FromModel(&pending[i]))
	}
	return out, nil
}

func (s *service) Approve(ctx context.Context, userID uuid.UUID, approved bool) (*users.UserDTO, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.SetApproval(ctx, userID, approved); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set approval")
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.FromModel(user), nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please provide an email and password")
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) issueSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.session.Generate(ctx, accessID, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "register session")
	}
	return &AuthResponse{
		Token: token,
		User:  users.FromModel(user),
	}, nil
}

func (s *service) replacePassword(ctx context.Context, user *models.User, password string) error {
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	user.PasswordHash = hash
	return nil
}

func (s *service) findUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
