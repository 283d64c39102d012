package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/finance-tracker/internal/config"
	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/repository"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

type fakeResetRepo struct {
	nextID  int64
	byToken map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{nextID: 1, byToken: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	token.ID = r.nextID
	r.nextID++
	token.CreatedAt = time.Now()
	stored := *token
	r.byToken[token.Token] = &stored
	return nil
}

func (r *fakeResetRepo) GetByToken(ctx context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	if token, ok := r.byToken[tokenStr]; ok {
		copied := *token
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) MarkUsed(ctx context.Context, id int64) error {
	now := time.Now()
	for _, token := range r.byToken {
		if token.ID == id {
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeResetRepo) {
	userRepo := &fakeUserRepo{users: make(map[int64]*domain.User)}
	resetRepo := newFakeResetRepo()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   240,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              bcrypt.MinCost,
	}}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
	})
	return svc, userRepo, resetRepo
}

func TestRegisterDefaults(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, domain.PlanFree, user.Plan)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other", "ana@example.com", "hunter22")
	require.EqualError(t, err, "email already registered")
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLogin(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	registered, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		user, token, expiresAt, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.True(t, svc.TokenManager().SubjectMatches(claims, "ana@example.com"))
		assert.Equal(t, string(domain.RoleUser), claims.Role)
		assert.Equal(t, string(domain.PlanFree), claims.Plan)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "ana@example.com", "wrong")
		require.EqualError(t, err, "invalid credentials")
		assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "hunter22")
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("deactivated account", func(t *testing.T) {
		stored := userRepo.users[registered.ID]
		stored.Active = false
		defer func() { stored.Active = true }()

		_, _, _, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
		require.EqualError(t, err, "user deactivated")
		assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
	})
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass99")
	require.EqualError(t, err, "invalid credentials")
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)

	err = svc.ChangePassword(context.Background(), user.ID, "hunter22", "newpass99")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "ana@example.com", "newpass99")
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token.Token, "reset-pass"))

	_, _, _, err = svc.Login(context.Background(), "ana@example.com", "reset-pass")
	require.NoError(t, err)

	// Single use: a second confirm with the same token fails.
	err = svc.ConfirmPasswordReset(context.Background(), token.Token, "another-pass")
	require.EqualError(t, err, "token expired or used")
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
}

func TestConfirmPasswordResetExpiredToken(t *testing.T) {
	svc, _, resetRepo := newAuthFixture()

	user, err := svc.Register(context.Background(), "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	expired := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, resetRepo.Create(context.Background(), expired))

	err = svc.ConfirmPasswordReset(context.Background(), "stale", "whatever")
	assert.EqualError(t, err, "token expired or used")
}
