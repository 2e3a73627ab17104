package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rehan-4778/JobHunt-BE/pkg/db"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the categories controller.
type Service interface {
	Create(ctx context.Context, adminID uuid.UUID, req CreateCategoryRequest) (*models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*models.Category, error)
	Toggle(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Jobs(ctx context.Context, id uuid.UUID, p pagination.Params) (*JobsResult, error)
}

type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Category, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobCatalog interface {
	CountByCategory(ctx context.Context, category string) (int64, error)
	ListByCategory(ctx context.Context, category string, p pagination.Params) ([]models.Job, int64, error)
}

type service struct {
	categories categoryRepository
	jobs       jobCatalog
	logg       *logger.Logger
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	CategoryRepo categoryRepository
	JobCatalog   jobCatalog
	Logger       *logger.Logger
}

// NewService constructs a categories service.
func NewService(params ServiceParams) (Service, error) {
	if params.CategoryRepo == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	if params.JobCatalog == nil {
		return nil, fmt.Errorf("job catalog is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		categories: params.CategoryRepo,
		jobs:       params.JobCatalog,
		logg:       params.Logger,
	}, nil
}

func (s *service) Create(ctx context.Context, adminID uuid.UUID, req CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
		CreatedByID: adminID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return category, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.jobs.CountByCategory(ctx, category.Name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count category jobs")
	}
	category.JobCount = count
	return category, nil
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return s.withJobCounts(ctx, categories)
}

func (s *service) ListActive(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list active categories")
	}
	return s.withJobCounts(ctx, categories)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
		}
		if name != category.Name {
			updates["name"] = name
		}
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}

	updated, err := s.categories.Update(ctx, id, updates)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}
	return updated, nil
}

func (s *service) Toggle(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.categories.SetActive(ctx, id, !category.IsActive); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle category")
	}
	category.IsActive = !category.IsActive
	return category, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.jobs.CountByCategory(ctx, category.Name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count category jobs")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cannot delete category with %d associated jobs", count))
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	return nil
}

func (s *service) Jobs(ctx context.Context, id uuid.UUID, p pagination.Params) (*JobsResult, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	items, total, err := s.jobs.ListByCategory(ctx, category.Name, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list category jobs")
	}
	return &JobsResult{Category: category, Items: items, Meta: p.MetaFor(total)}, nil
}

func (s *service) withJobCounts(ctx context.Context, categories []models.Category) ([]models.Category, error) {
	for i := range categories {
		count, err := s.jobs.CountByCategory(ctx, categories[i].Name)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count category jobs")
		}
		categories[i].JobCount = count
	}
	return categories, nil
}

func (s *service) findCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetch category")
	}
	return category, nil
}
