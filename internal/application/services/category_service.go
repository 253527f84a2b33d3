package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

// CategoryService handles category management operations
type CategoryService struct {
	categoryRepo ports.CategoryRepository
	logger       *logger.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo ports.CategoryRepository, logger *logger.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

var _ ports.CategoryService = (*CategoryService)(nil)

// CreateCategory creates a new category. Names are not required to be
// unique.
func (s *CategoryService) CreateCategory(ctx context.Context, req ports.CreateCategoryRequest) (*entities.Category, error) {
	category := &entities.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       entities.ColorPrimary,
	}
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.Info("Category created", "category_id", category.ID, "name", category.Name)

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*entities.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// UpdateCategory updates a category's fields
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req ports.UpdateCategoryRequest) (*entities.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.logger.Info("Category updated", "category_id", category.ID, "name", category.Name)

	return category, nil
}

// DeleteCategory removes a category. Referencing tasks keep living with
// their category reference set to null by the store.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Category deleted", "category_id", id)

	return nil
}

// ListCategories retrieves all categories ordered by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}
