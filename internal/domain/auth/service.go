package auth

import (
	"context"

	"github.com/datavista/hris-backend-go/internal/domain/user"
)

type AuthService interface {
	// Register creates a user and issues a token for it
	Register(ctx context.Context, req RegisterRequest) (AuthPayload, error)

	// Login fails with ErrInvalidCredentials for unknown emails and wrong passwords alike
	Login(ctx context.Context, req LoginRequest) (AuthPayload, error)

	// Me returns the caller's user, or nil when the account no longer exists
	Me(ctx context.Context) (*user.User, error)
}
