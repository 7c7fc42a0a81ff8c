package services

import (
	"context"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/praxisbill/lpm_backend/internal/dto"
)

// UserSvcFacade exposes user lookup and registration.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// TokenSvc issues access tokens for authenticated users.
type TokenSvc interface {
	IssueToken(user domain.User) (string, error)
}
