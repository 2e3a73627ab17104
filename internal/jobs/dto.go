package jobs

import (
	"time"

	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/Rehan-4778/JobHunt-BE/pkg/types"
)

// CreateJobRequest carries the employer's posting fields. SkillsRequired
// arrives as a comma-separated string and is normalized server-side.
type CreateJobRequest struct {
	Position            string                `json:"position" validate:"required"`
	Category            string                `json:"category" validate:"required"`
	JobType             enums.JobType         `json:"jobType" validate:"required"`
	ExperienceLevel     enums.ExperienceLevel `json:"experienceLevel" validate:"required"`
	Location            string                `json:"location" validate:"required"`
	EducationLevel      enums.EducationLevel  `json:"educationLevel" validate:"required"`
	Salary              string                `json:"salary" validate:"required"`
	Age                 string                `json:"age" validate:"required"`
	Gender              enums.Gender          `json:"gender" validate:"required"`
	Requirements        string                `json:"requirements" validate:"required"`
	Benefits            string                `json:"benefits" validate:"required"`
	SkillsRequired      string                `json:"skillsRequired,omitempty"`
	ApplicationDeadline time.Time             `json:"applicationDeadline" validate:"required"`
}

// UpdateJobRequest applies partial changes to an owned posting.
type UpdateJobRequest struct {
	Position            *string                `json:"position,omitempty"`
	Category            *string                `json:"category,omitempty"`
	JobType             *enums.JobType         `json:"jobType,omitempty"`
	ExperienceLevel     *enums.ExperienceLevel `json:"experienceLevel,omitempty"`
	Location            *string                `json:"location,omitempty"`
	EducationLevel      *enums.EducationLevel  `json:"educationLevel,omitempty"`
	Salary              *string                `json:"salary,omitempty"`
	Age                 *string                `json:"age,omitempty"`
	Gender              *enums.Gender          `json:"gender,omitempty"`
	Requirements        *string                `json:"requirements,omitempty"`
	Benefits            *string                `json:"benefits,omitempty"`
	SkillsRequired      *string                `json:"skillsRequired,omitempty"`
	ApplicationDeadline *time.Time             `json:"applicationDeadline,omitempty"`
}

// ListFilters narrows public and admin job listings. Category, JobType,
// ExperienceLevel and Gender match exactly; Location, Salary and Age are
// case-insensitive substring filters.
type ListFilters struct {
	Search          string
	Category        string
	JobType         string
	ExperienceLevel string
	Gender          string
	Location        string
	Salary          string
	Age             string
	Status          string
}

// UpdateStatusRequest overwrites the posting lifecycle state.
type UpdateStatusRequest struct {
	Status enums.JobStatus `json:"status" validate:"required"`
}

// ListResult pairs a page of jobs with its pagination metadata.
type ListResult[T any] struct {
	Items []T            `json:"items"`
	Meta  types.PageMeta `json:"meta"`
}

// EmployerStats aggregates an employer's posting and pipeline counts.
type EmployerStats struct {
	TotalJobs         int64 `json:"totalJobs"`
	ActiveJobs        int64 `json:"activeJobs"`
	TotalApplications int64 `json:"totalApplications"`
	Shortlisted       int64 `json:"shortlisted"`
	Hired             int64 `json:"hired"`
}

// ListQuery bundles filters and pagination for listing calls.
type ListQuery struct {
	Filters ListFilters
	Page    pagination.Params
}
