package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is an admin-managed job category. Jobs reference it by name.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true;index" json:"isActive"`
	CreatedByID uuid.UUID `gorm:"column:created_by_id;type:uuid;not null" json:"createdById"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	// JobCount is populated by aggregate queries, never persisted.
	JobCount int64 `gorm:"-" json:"jobCount,omitempty"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
