package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/finance-tracker/internal/api/dto"
	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/service"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

// CategoriesHandler exposes category endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categoryService}
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	kind, err := parseCategoryKind(req.Kind)
	if err != nil {
		return err
	}

	category, err := h.categories.Create(c.Context(), req.Name, req.Description, kind)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, dto.NewCategoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /api/categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.categories.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// Update handles PUT /api/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.CategoryUpdateInput{Name: req.Name, Description: req.Description}
	if req.Kind != nil {
		kind, err := parseCategoryKind(*req.Kind)
		if err != nil {
			return err
		}
		input.Kind = &kind
	}

	category, err := h.categories.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// Deactivate handles DELETE /api/categories/:id.
func (h *CategoriesHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categories.Deactivate(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseCategoryKind(value string) (domain.CategoryKind, error) {
	if strings.TrimSpace(value) == "" {
		return domain.CategoryKindBoth, nil
	}
	kind, err := domain.ParseCategoryKind(value)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error(), nil)
	}
	return kind, nil
}
