package notifications

import (
	"context"

	"github.com/Rehan-4778/JobHunt-BE/internal/repo"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// listCap bounds how many inbox entries a single listing returns.
const listCap = 50

// Repository exposes notification persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a notifications repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts an inbox entry.
func (r *Repository) Create(ctx context.Context, notification *models.Notification) error {
	return r.DB(ctx).Create(notification).Error
}

// FindByID loads a single inbox entry.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := r.DB(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListForUser returns the user's newest entries, capped.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(listCap).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips a single entry to read.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true).Error
}

// MarkAllRead flips every unread entry for the user.
func (r *Repository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		UpdateColumn("is_read", true).Error
}

// UnreadCount returns how many entries the user has not read.
func (r *Repository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// Delete removes a single entry.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Notification{}, "id = ?", id).Error
}
