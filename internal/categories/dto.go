package categories

import (
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/types"
)

// CreateCategoryRequest carries the admin's new-category fields.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// UpdateCategoryRequest applies partial changes to a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// JobsResult pairs a category's live postings with pagination metadata.
type JobsResult struct {
	Category *models.Category `json:"category"`
	Items    []models.Job     `json:"items"`
	Meta     types.PageMeta   `json:"meta"`
}
