package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedJob is the join row backing a user's saved-jobs list.
type SavedJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job" json:"userId"`
	JobID     uuid.UUID `gorm:"column:job_id;type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job;index" json:"jobId"`
	Job       *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (s *SavedJob) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
