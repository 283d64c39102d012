package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens. Validity is fully
// stateless: nothing is stored server side, so a token stays usable until
// its embedded expiry passes.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 240
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload. The subject is the account email.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
	Plan   string `json:"plan,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		Plan:   string(user.Plan),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken verifies the signature and structure and returns the claims.
// Expiry is deliberately not checked here; SubjectMatches owns that, so an
// expired token still decodes.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// IsExpired reports whether the embedded expiry is at or before now.
func (tm *TokenManager) IsExpired(claims *Claims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(time.Now())
}

// SubjectMatches is the sole "is this token currently valid for this
// principal" predicate: the subject must equal the expected email
// case-insensitively and the token must not be expired.
func (tm *TokenManager) SubjectMatches(claims *Claims, expectedEmail string) bool {
	return strings.EqualFold(claims.Subject, expectedEmail) && !tm.IsExpired(claims)
}
