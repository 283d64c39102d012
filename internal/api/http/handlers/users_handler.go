package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/finance-tracker/internal/api/dto"
	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/service"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

// UsersHandler exposes account endpoints, including the ADMIN-only surface.
type UsersHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{users: userService, auth: authService}
}

// Register handles POST /api/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// List handles GET /api/users (ADMIN).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.Context(), id, service.UserUpdateInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdatePassword handles PUT /api/users/:id/password.
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password and new_password required", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Deactivate handles DELETE /api/users/:id (ADMIN).
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Deactivate(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// UpdatePlan handles PUT /api/users/:id/plan?plan= (ADMIN).
func (h *UsersHandler) UpdatePlan(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	plan, err := domain.ParseUserPlan(c.Query("plan"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := h.users.ChangePlan(c.Context(), id, plan)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateRole handles PUT /api/users/:id/role?role= (ADMIN).
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	role, err := domain.ParseUserRole(c.Query("role"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := h.users.ChangeRole(c.Context(), id, role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Statistics handles GET /api/users/statistics (ADMIN).
func (h *UsersHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.users.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserStatisticsResponse{
		TotalUsers:       stats.TotalUsers,
		TotalActive:      stats.TotalActive,
		TotalInactive:    stats.TotalInactive,
		TotalFree:        stats.TotalFree,
		TotalPro:         stats.TotalPro,
		TotalMasterSaver: stats.TotalMasterSaver,
	}})
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}
