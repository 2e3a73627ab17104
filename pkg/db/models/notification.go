package models

import (
	"time"

	dbtypes "github.com/Rehan-4778/JobHunt-BE/pkg/db/types"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a per-user inbox entry. Data carries a free-form payload
// such as the related job or application id.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index:idx_notifications_user_created;index:idx_notifications_user_read" json:"userId"`
	Title     string                 `gorm:"not null" json:"title"`
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Type      enums.NotificationType `gorm:"type:text;not null;default:'general'" json:"type"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read" json:"isRead"`
	Data      dbtypes.JSONMap        `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime;index:idx_notifications_user_created" json:"createdAt"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
