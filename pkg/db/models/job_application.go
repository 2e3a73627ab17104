package models

import (
	"time"

	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobApplication links an applicant to a job and carries the profile
// snapshot the applicant supplied on the form. The composite unique index
// enforces one application per applicant per job.
type JobApplication struct {
	ID             uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	JobID          uuid.UUID                 `gorm:"column:job_id;type:uuid;not null;uniqueIndex:idx_applications_job_applicant;index" json:"jobId"`
	Job            *Job                      `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID    uuid.UUID                 `gorm:"column:applicant_id;type:uuid;not null;uniqueIndex:idx_applications_job_applicant;index" json:"applicantId"`
	Applicant      *User                     `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	FirstName      string                    `gorm:"column:first_name;not null" json:"firstName"`
	LastName       string                    `gorm:"column:last_name;not null" json:"lastName"`
	CNIC           string                    `gorm:"column:cnic;not null" json:"cnic"`
	City           string                    `gorm:"not null" json:"city"`
	Country        string                    `gorm:"not null" json:"country"`
	Address        string                    `gorm:"not null" json:"address"`
	Experience     enums.ApplicantExperience `gorm:"type:text;not null" json:"experience"`
	ExpectedSalary string                    `gorm:"column:expected_salary;not null" json:"expectedSalary"`
	CVURL          string                    `gorm:"column:cv_url;not null" json:"cvUrl"`
	Status         enums.ApplicationStatus   `gorm:"type:text;not null;default:'pending';index" json:"status"`
	AppliedAt      time.Time                 `gorm:"column:applied_at;autoCreateTime" json:"appliedAt"`
	StatusChanged  *time.Time                `gorm:"column:status_changed" json:"statusChanged,omitempty"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (a *JobApplication) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
