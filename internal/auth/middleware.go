package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/repository"
)

const principalKey = "auth_principal"

// Principal is the authenticated identity for one request. It lives only in
// the request's Locals and is never persisted.
type Principal struct {
	Email string
	Role  domain.UserRole
}

// AuthMiddleware derives a Principal from a bearer token on every request.
// It is intentionally lenient: a missing header, a malformed credential or a
// failed signature all leave the request anonymous instead of rejecting it,
// because some routes are public. Route guards enforce the requirement.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle establishes request identity when possible and always continues.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return c.Next()
	}

	if _, ok := PrincipalFromContext(c); ok {
		return c.Next()
	}

	// Corroborate the subject against the store: a token for a deleted
	// account must not establish identity.
	user, err := m.users.GetByEmail(c.Context(), claims.Subject)
	if err != nil {
		return c.Next()
	}
	if !m.tokens.SubjectMatches(claims, user.Email) {
		return c.Next()
	}

	// Role precedence: token claim, then stored role, then USER.
	role := domain.UserRole(claims.Role)
	if role == "" {
		role = user.Role
	}
	if role == "" {
		role = domain.RoleUser
	}

	c.Locals(principalKey, &Principal{Email: user.Email, Role: role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
