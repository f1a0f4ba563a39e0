package user

import (
	"context"
)

type UserRepository interface {
	// GetByID returns ErrUserNotFound when no row matches
	GetByID(ctx context.Context, id int64) (User, error)
	// GetByEmail returns ErrUserNotFound when no row matches
	GetByEmail(ctx context.Context, email string) (User, error)
	// Create returns ErrUserEmailExists when the email is taken
	Create(ctx context.Context, newUser User) (User, error)
}
