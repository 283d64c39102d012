package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

func appWithPrincipal(principal *Principal, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	})
	app.Get("/", guard, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func guardStatus(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAuthenticated(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized,
		guardStatus(t, appWithPrincipal(nil, RequireAuthenticated())))
	assert.Equal(t, http.StatusOK,
		guardStatus(t, appWithPrincipal(&Principal{Email: "ana@example.com", Role: domain.RoleUser}, RequireAuthenticated())))
}

func TestRequireRoleExactTier(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		required  domain.UserRole
		want      int
	}{
		{name: "anonymous", principal: nil, required: domain.RoleAdmin, want: http.StatusUnauthorized},
		{name: "matching tier", principal: &Principal{Role: domain.RoleAdmin}, required: domain.RoleAdmin, want: http.StatusOK},
		{name: "lower tier", principal: &Principal{Role: domain.RoleUser}, required: domain.RoleAdmin, want: http.StatusForbidden},
		{name: "no hierarchy: admin is not user", principal: &Principal{Role: domain.RoleAdmin}, required: domain.RoleUser, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guardStatus(t, appWithPrincipal(tt.principal, RequireRole(tt.required))))
		})
	}
}
