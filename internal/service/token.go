package service

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService mints and validates bearer session tokens. Tokens are
// stateless HS256 JWTs; invalidation happens through the user's token
// version, so the service itself holds no per-token state.
type TokenService struct {
	secretKey string
	ttl       time.Duration
}

func NewTokenService(secretKey string, ttl time.Duration) (*TokenService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("token service: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &TokenService{secretKey: secretKey, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a session token for the user. The second return value is
// the lifetime in seconds, for the expires_in response field.
func (s *TokenService) Issue(user *model.User) (string, int, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"email":         user.Email,
		"role":          string(user.Role),
		"token_version": user.TokenVersion,
		"iat":           now.Unix(),
		"exp":           now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int(s.ttl.Seconds()), nil
}

// SessionClaims is the decoded, type-checked content of a session token.
type SessionClaims struct {
	UserID       uint
	Email        string
	Role         model.Role
	TokenVersion int
}

// Validate checks signature and expiry and returns the typed claims.
// Every failure collapses to ErrUnauthenticated; the caller has no use for
// the distinction and the client must not learn it.
func (s *TokenService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	version, ok := claims["token_version"].(float64)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)

	role := model.Role(roleStr)
	if !role.Valid() {
		return nil, apperrors.ErrUnauthenticated
	}

	return &SessionClaims{
		UserID:       uint(userID),
		Email:        email,
		Role:         role,
		TokenVersion: int(version),
	}, nil
}
