package models

import (
	"time"

	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the canonical identity entity.
type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName           string     `gorm:"column:first_name;not null" json:"firstName"`
	LastName            string     `gorm:"column:last_name;not null" json:"lastName"`
	Email               string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	MobileNo            *string    `gorm:"column:mobile_no" json:"mobileNo,omitempty"`
	Address             *string    `gorm:"column:address" json:"address,omitempty"`
	City                *string    `gorm:"column:city" json:"city,omitempty"`
	Company             *string    `gorm:"column:company" json:"company,omitempty"`
	PasswordHash        string     `gorm:"column:password_hash;not null" json:"-"`
	Role                enums.Role `gorm:"type:text;not null;index" json:"role"`
	CVURL               *string    `gorm:"column:cv_url" json:"cvUrl,omitempty"`
	IsApproved          bool       `gorm:"column:is_approved;not null;default:false;index" json:"isApproved"`
	ResetPasswordToken  *string    `gorm:"column:reset_password_token" json:"-"`
	ResetPasswordExpire *time.Time `gorm:"column:reset_password_expire" json:"-"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
