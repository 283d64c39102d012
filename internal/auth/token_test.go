package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     7,
		Name:   "Ana",
		Email:  "ana@example.com",
		Plan:   domain.PlanPro,
		Role:   domain.RoleUser,
		Active: true,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 240)

	tokenStr, expiresAt, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(240*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, string(domain.RoleUser), claims.Role)
	assert.Equal(t, string(domain.PlanPro), claims.Plan)
	assert.False(t, tm.IsExpired(claims))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 240)
	verifier := NewTokenManager("secret-b", 240)

	tokenStr, _, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSigningMethod(t *testing.T) {
	tm := NewTokenManager("secret", 240)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ana@example.com"},
	})
	tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseTokenAcceptsExpiredToken(t *testing.T) {
	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Hour}

	tokenStr, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	// Decoding still works past expiry; only SubjectMatches treats the
	// token as invalid.
	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.True(t, tm.IsExpired(claims))
	assert.False(t, tm.SubjectMatches(claims, "ana@example.com"))
}

func TestSubjectMatches(t *testing.T) {
	tm := NewTokenManager("secret", 240)

	tokenStr, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "exact match", email: "ana@example.com", want: true},
		{name: "case insensitive", email: "ANA@Example.COM", want: true},
		{name: "different address", email: "other@example.com", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tm.SubjectMatches(claims, tt.email))
		})
	}
}

func TestIsExpiredWithoutExpiryClaim(t *testing.T) {
	tm := NewTokenManager("secret", 240)

	assert.True(t, tm.IsExpired(&Claims{}))
}
