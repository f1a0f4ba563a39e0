package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/datavista/hris-backend-go/internal/pkg/jwt"
	"github.com/datavista/hris-backend-go/internal/pkg/password"
)

type AuthServiceImpl struct {
	db database.Transactor
	user.UserRepository
	jwt.Service
}

func NewAuthService(db database.Transactor, userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthPayload, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthPayload{}, err
	}

	_, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return auth.AuthPayload{}, auth.ErrEmailAlreadyExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.AuthPayload{}, fmt.Errorf("failed to check email: %w", err)
	}

	digest, err := password.Hash(req.Password)
	if err != nil {
		return auth.AuthPayload{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = a.db.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = a.UserRepository.Create(ctx, user.User{
			Email:          req.Email,
			PasswordDigest: digest,
			Role:           req.RoleOrDefault(),
		})
		if errors.Is(err, user.ErrUserEmailExists) {
			// lost a race with a concurrent register
			return auth.ErrEmailAlreadyExists
		}
		return err
	})
	if err != nil {
		return auth.AuthPayload{}, err
	}

	return a.issue(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthPayload, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthPayload{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			password.Burn(req.Password)
			return auth.AuthPayload{}, auth.ErrInvalidCredentials
		}
		return auth.AuthPayload{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !password.Verify(req.Password, userData.PasswordDigest) {
		return auth.AuthPayload{}, auth.ErrInvalidCredentials
	}

	return a.issue(userData)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (*user.User, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	userData, err := a.UserRepository.GetByID(ctx, identity.SubjectID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &userData, nil
}

func (a *AuthServiceImpl) issue(u user.User) (auth.AuthPayload, error) {
	token, expiresAt, err := a.Service.IssueToken(u.ID, u.Role)
	if err != nil {
		slog.Error("IssueToken error", "user_id", u.ID, "error", err)
		return auth.AuthPayload{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AuthPayload{Token: token, ExpiresAt: expiresAt, User: u}, nil
}
