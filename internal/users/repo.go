package users

import (
	"context"
	"strings"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields from the DTO to the user row and
// returns the refreshed model.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*models.User, error) {
	updates := map[string]any{}
	if dto.FirstName != nil {
		updates["first_name"] = *dto.FirstName
	}
	if dto.LastName != nil {
		updates["last_name"] = *dto.LastName
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.MobileNo != nil {
		updates["mobile_no"] = *dto.MobileNo
	}
	if dto.Address != nil {
		updates["address"] = *dto.Address
	}
	if dto.City != nil {
		updates["city"] = *dto.City
	}
	if dto.Company != nil {
		updates["company"] = *dto.Company
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// UpdatePasswordHash overwrites the stored credential hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}

// SetCVURL stores the uploaded resume location on the user.
func (r *Repository) SetCVURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("cv_url", url).Error
}

// SetResetToken stores the hashed reset token and its expiry.
func (r *Repository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expire time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_password_token":  tokenHash,
			"reset_password_expire": expire,
		}).Error
}

// ClearResetToken removes any pending reset token from the user row.
func (r *Repository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		}).Error
}

// FindByResetToken loads the user holding an unexpired reset token hash.
func (r *Repository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", tokenHash, now).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetApproval overwrites the approval flag on an account.
func (r *Repository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("is_approved", approved).Error
}

// ListPending returns accounts still waiting on admin approval.
func (r *Repository) ListPending(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole returns users filtered by role with optional name/email search,
// newest first.
func (r *Repository) ListByRole(ctx context.Context, role enums.Role, search string, p pagination.Params) ([]models.User, int64, error) {
	p = p.Normalize()

	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
