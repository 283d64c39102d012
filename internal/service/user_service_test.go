package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/finance-tracker/internal/domain"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

func newUserFixture() (*UserService, *fakeUserRepo) {
	userRepo := &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Name: "Ana", Email: "ana@example.com", Active: true},
		2: {ID: 2, Name: "Bo", Email: "bo@example.com", Active: true},
	}}
	return NewUserService(userRepo, nil, nil), userRepo
}

func TestUserUpdateEmailConflict(t *testing.T) {
	svc, _ := newUserFixture()

	taken := "bo@example.com"
	_, err := svc.Update(context.Background(), 1, UserUpdateInput{Email: &taken})

	require.EqualError(t, err, "email already in use")
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUserUpdateEmail(t *testing.T) {
	svc, userRepo := newUserFixture()

	fresh := "ana.new@example.com"
	user, err := svc.Update(context.Background(), 1, UserUpdateInput{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, user.Email)
	assert.Equal(t, fresh, userRepo.users[1].Email)

	// Re-submitting the own address in a different case is not a conflict.
	same := "ANA.NEW@example.com"
	_, err = svc.Update(context.Background(), 1, UserUpdateInput{Email: &same})
	assert.NoError(t, err)
}

func TestUserDeactivate(t *testing.T) {
	svc, userRepo := newUserFixture()

	require.NoError(t, svc.Deactivate(context.Background(), 2))
	assert.False(t, userRepo.users[2].Active)
}
