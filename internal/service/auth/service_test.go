package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/jwt"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
	"github.com/datavista/hris-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestAuthService() (auth.AuthService, jwt.Service) {
	store := memory.NewStore()
	jwtService := jwt.NewJWTService(testSecret, time.Hour)
	return NewAuthService(store, store.Users(), jwtService), jwtService
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestAuthService()
	admin := user.RoleAdmin

	registered, err := svc.Register(ctx, auth.RegisterRequest{Email: "boss@example.com", Password: "supersecret", Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, registered.User.Role)
	assert.NotEqual(t, "supersecret", registered.User.PasswordDigest)

	loggedIn, err := svc.Login(ctx, auth.LoginRequest{Email: "boss@example.com", Password: "supersecret"})
	require.NoError(t, err)

	claims := jwtService.VerifyToken(loggedIn.Token)
	require.NotNil(t, claims)
	assert.Equal(t, registered.User.ID, claims.SubjectID)
	assert.Equal(t, user.RoleAdmin, claims.Role)
}

func TestAuthService_RegisterDefaultsToEmployee(t *testing.T) {
	svc, _ := newTestAuthService()

	payload, err := svc.Register(context.Background(), auth.RegisterRequest{Email: "new@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, payload.User.Role)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Register(ctx, auth.RegisterRequest{Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, auth.RegisterRequest{Email: "dup@example.com", Password: "password2"})
	assert.True(t, errors.Is(err, auth.ErrEmailAlreadyExists))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), auth.RegisterRequest{Email: "not-an-email", Password: "short"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestAuthService_LoginDoesNotRevealAccounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()
	_, err := svc.Register(ctx, auth.RegisterRequest{Email: "known@example.com", Password: "password1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, auth.LoginRequest{Email: "known@example.com", Password: "password2"})
	_, unknownEmail := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "password1"})

	assert.True(t, errors.Is(wrongPassword, auth.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownEmail, auth.ErrInvalidCredentials))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Me(ctx)
	assert.True(t, errors.Is(err, auth.ErrUnauthenticated))

	payload, err := svc.Register(ctx, auth.RegisterRequest{Email: "me@example.com", Password: "password1"})
	require.NoError(t, err)

	me, err := svc.Me(auth.WithIdentity(ctx, auth.Identity{SubjectID: payload.User.ID, Role: payload.User.Role}))
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "me@example.com", me.Email)

	gone, err := svc.Me(auth.WithIdentity(ctx, auth.Identity{SubjectID: 999, Role: user.RoleEmployee}))
	require.NoError(t, err)
	assert.Nil(t, gone)
}
