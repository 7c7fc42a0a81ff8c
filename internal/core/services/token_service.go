package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/middleware"
)

type tokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a JWT token service.
func NewTokenService(secret string, expiry time.Duration, issuer string) portssvc.TokenSvc {
	return &tokenService{secret: secret, expiry: expiry, issuer: issuer}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

// IssueToken signs an HS256 access token carrying the user's ID and role.
func (s *tokenService) IssueToken(user domain.User) (string, error) {
	now := time.Now().UTC()
	claims := middleware.AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
