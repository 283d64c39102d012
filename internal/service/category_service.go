package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/repository"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

// CategoryUpdateInput carries optional category fields.
type CategoryUpdateInput struct {
	Name        *string
	Description *string
	Kind        *domain.CategoryKind
}

// CategoryService coordinates category workflows.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category, rejecting duplicate names case-insensitively.
func (s *CategoryService) Create(ctx context.Context, name, description string, kind domain.CategoryKind) (*domain.Category, error) {
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("category already exists", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	category := &domain.Category{
		Name:        strings.TrimSpace(name),
		Description: description,
		Kind:        kind,
		Active:      true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// GetByID fetches one category.
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Update applies optional field changes.
func (s *CategoryService) Update(ctx context.Context, id int64, input CategoryUpdateInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Kind != nil {
		category.Kind = *input.Kind
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Deactivate soft-deletes the category.
func (s *CategoryService) Deactivate(ctx context.Context, id int64) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	category.Active = false
	return s.categories.Update(ctx, category)
}
