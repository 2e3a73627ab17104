package applications

import (
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/Rehan-4778/JobHunt-BE/pkg/types"
	"github.com/google/uuid"
)

// SubmitRequest carries the applicant's profile snapshot from the form.
// CVURL is populated by the controller after the CV upload (or from the
// applicant's stored CV).
type SubmitRequest struct {
	FirstName      string                    `json:"firstName" validate:"required"`
	LastName       string                    `json:"lastName" validate:"required"`
	CNIC           string                    `json:"cnic" validate:"required"`
	City           string                    `json:"city" validate:"required"`
	Country        string                    `json:"country" validate:"required"`
	Address        string                    `json:"address" validate:"required"`
	Experience     enums.ApplicantExperience `json:"experience" validate:"required"`
	ExpectedSalary string                    `json:"expectedSalary" validate:"required"`
	CVURL          string                    `json:"-"`
}

// EmployerFilters narrows an employer's application listings.
type EmployerFilters struct {
	JobID  *uuid.UUID
	Status string
}

// UpdateStatusRequest moves an application through the review pipeline.
type UpdateStatusRequest struct {
	Status enums.ApplicationStatus `json:"status" validate:"required"`
}

// StatusCheck reports whether the applicant already applied to a job.
type StatusCheck struct {
	HasApplied  bool                   `json:"hasApplied"`
	Application *models.JobApplication `json:"application,omitempty"`
}

// ListResult pairs a page of applications with pagination metadata.
type ListResult struct {
	Items []models.JobApplication `json:"items"`
	Meta  types.PageMeta          `json:"meta"`
}

// ListQuery bundles employer filters and pagination.
type ListQuery struct {
	Filters EmployerFilters
	Page    pagination.Params
}
