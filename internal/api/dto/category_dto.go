package dto

import "github.com/spec-kit/finance-tracker/internal/domain"

// CreateCategoryRequest payload for new categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

// UpdateCategoryRequest payload for category changes.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
}

// CategoryResponse is the public category representation.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Active      bool   `json:"active"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Kind:        string(category.Kind),
		Active:      category.Active,
	}
}
