package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

// stubUserRepo serves users keyed by lowercase email, mirroring the
// case-insensitive lookup of the Postgres implementation.
type stubUserRepo struct {
	byEmail map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	repo := &stubUserRepo{byEmail: make(map[string]*domain.User)}
	for _, u := range users {
		repo.byEmail[strings.ToLower(u.Email)] = u
	}
	return repo
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (r *stubUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) List(ctx context.Context) ([]domain.User, error) { return nil, nil }
func (r *stubUserRepo) CountAll(ctx context.Context) (int64, error)     { return 0, nil }
func (r *stubUserRepo) CountByActive(ctx context.Context, active bool) (int64, error) {
	return 0, nil
}
func (r *stubUserRepo) CountByPlan(ctx context.Context, plan domain.UserPlan) (int64, error) {
	return 0, nil
}

// newGateApp builds a fiber app with the gate on every route plus one open
// route that reports the derived identity and one admin-only route.
func newGateApp(tm *TokenManager, repo *stubUserRepo) *fiber.App {
	app := fiber.New()
	gate := NewAuthMiddleware(tm, repo)
	app.Use(gate.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"email": principal.Email, "role": string(principal.Role)})
	})
	app.Get("/admin", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/me", RequireAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGateLeavesRequestAnonymous(t *testing.T) {
	tm := NewTokenManager("secret", 240)
	user := testUser()
	app := newGateApp(tm, newStubUserRepo(user))

	validToken, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	otherIssuer := NewTokenManager("other-secret", 240)
	forgedToken, _, err := otherIssuer.GenerateToken(user)
	require.NoError(t, err)

	expiredIssuer := &TokenManager{secret: []byte("secret"), ttl: -time.Hour}
	expiredToken, _, err := expiredIssuer.GenerateToken(user)
	require.NoError(t, err)

	unknownToken, _, err := tm.GenerateToken(&domain.User{ID: 99, Email: "ghost@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic " + validToken},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "forged signature", header: "Bearer " + forgedToken},
		{name: "expired token", header: "Bearer " + expiredToken},
		{name: "unknown subject", header: "Bearer " + unknownToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, "/whoami", tt.header)
			assert.Equal(t, http.StatusOK, resp.StatusCode, "the gate never rejects")

			resp = doRequest(t, app, "/me", tt.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestGateEstablishesPrincipal(t *testing.T) {
	tm := NewTokenManager("secret", 240)
	user := testUser()
	app := newGateApp(tm, newStubUserRepo(user))

	token, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateRolePrecedence(t *testing.T) {
	tm := NewTokenManager("secret", 240)

	t.Run("token claim wins over stored role", func(t *testing.T) {
		stored := testUser()
		stored.Role = domain.RoleUser
		tokenUser := *stored
		tokenUser.Role = domain.RoleAdmin
		token, _, err := tm.GenerateToken(&tokenUser)
		require.NoError(t, err)

		app := newGateApp(tm, newStubUserRepo(stored))
		resp := doRequest(t, app, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stored role fills a missing claim", func(t *testing.T) {
		stored := testUser()
		stored.Role = domain.RoleAdmin
		tokenUser := *stored
		tokenUser.Role = ""
		token, _, err := tm.GenerateToken(&tokenUser)
		require.NoError(t, err)

		app := newGateApp(tm, newStubUserRepo(stored))
		resp := doRequest(t, app, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		stored := testUser()
		token, _, err := tm.GenerateToken(stored)
		require.NoError(t, err)

		app := newGateApp(tm, newStubUserRepo(stored))
		resp := doRequest(t, app, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGateMatchesSubjectCaseInsensitively(t *testing.T) {
	tm := NewTokenManager("secret", 240)
	stored := testUser()
	stored.Email = "Ana@Example.com"

	tokenUser := *stored
	tokenUser.Email = "ana@example.com"
	token, _, err := tm.GenerateToken(&tokenUser)
	require.NoError(t, err)

	app := newGateApp(tm, newStubUserRepo(stored))
	resp := doRequest(t, app, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
