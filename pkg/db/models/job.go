package models

import (
	"time"

	dbtypes "github.com/Rehan-4778/JobHunt-BE/pkg/db/types"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is a posting owned by an employer. Category is denormalized onto the
// row as a name string, so category renames never cascade to existing jobs.
// Salary and Age are free-text range strings matched by substring filters.
type Job struct {
	ID                  uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Position            string                `gorm:"not null" json:"position"`
	Category            string                `gorm:"not null;index" json:"category"`
	JobType             enums.JobType         `gorm:"column:job_type;type:text;not null" json:"jobType"`
	ExperienceLevel     enums.ExperienceLevel `gorm:"column:experience_level;type:text;not null" json:"experienceLevel"`
	Location            string                `gorm:"not null;index" json:"location"`
	EducationLevel      enums.EducationLevel  `gorm:"column:education_level;type:text;not null" json:"educationLevel"`
	Salary              string                `gorm:"not null" json:"salary"`
	Age                 string                `gorm:"not null" json:"age"`
	Gender              enums.Gender          `gorm:"type:text;not null" json:"gender"`
	Requirements        string                `gorm:"type:text;not null" json:"requirements"`
	Benefits            string                `gorm:"type:text;not null" json:"benefits"`
	SkillsRequired      dbtypes.StringList    `gorm:"column:skills_required;type:jsonb" json:"skillsRequired"`
	ApplicationDeadline time.Time             `gorm:"column:application_deadline;not null" json:"applicationDeadline"`
	Status              enums.JobStatus       `gorm:"type:text;not null;default:'Active';index" json:"status"`
	EmployerID          uuid.UUID             `gorm:"column:employer_id;type:uuid;not null;index" json:"employerId"`
	Employer            *User                 `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	ApplicationsCount   int64                 `gorm:"column:applications_count;not null;default:0" json:"applicationsCount"`
	ViewsCount          int64                 `gorm:"column:views_count;not null;default:0" json:"viewsCount"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
