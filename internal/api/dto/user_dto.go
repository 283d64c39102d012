package dto

import (
	"time"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

// RegisterUserRequest payload for new accounts.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest payload for profile changes.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdatePasswordRequest payload for password changes.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload for requesting a reset token.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for confirming a reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public account representation.
type UserResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Plan   string `json:"plan"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// UserStatisticsResponse is the admin aggregate view.
type UserStatisticsResponse struct {
	TotalUsers       int64 `json:"total_users"`
	TotalActive      int64 `json:"total_active"`
	TotalInactive    int64 `json:"total_inactive"`
	TotalFree        int64 `json:"total_free"`
	TotalPro         int64 `json:"total_pro"`
	TotalMasterSaver int64 `json:"total_master_saver"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Plan:   string(user.Plan),
		Role:   string(user.Role),
		Active: user.Active,
	}
}
