package auth

import (
	"context"
	"strings"

	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/jwt"
)

// Identity is who a request acts as. The zero value is anonymous.
type Identity struct {
	SubjectID int64
	Role      user.Role
}

func (i Identity) IsAuthenticated() bool {
	return i.SubjectID > 0
}

func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Role == user.RoleAdmin
}

// Can reports whether the identity is authenticated and its role grants p.
func (i Identity) Can(p user.Permission) bool {
	return i.IsAuthenticated() && i.Role.Can(p)
}

type TokenVerifier interface {
	VerifyToken(tokenString string) *jwt.Claims
}

// ResolveIdentity turns an Authorization header value into an Identity.
// Missing, malformed and expired tokens all resolve to the anonymous identity.
func ResolveIdentity(verifier TokenVerifier, authorizationHeader string) Identity {
	token := strings.TrimSpace(authorizationHeader)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return Identity{}
	}

	claims := verifier.VerifyToken(token)
	if claims == nil {
		return Identity{}
	}
	return Identity{SubjectID: claims.SubjectID, Role: claims.Role}
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(identityKey{}).(Identity)
	return identity
}

// RequireAuthenticated fails with ErrUnauthenticated for anonymous callers.
func RequireAuthenticated(ctx context.Context) (Identity, error) {
	identity := IdentityFromContext(ctx)
	if !identity.IsAuthenticated() {
		return Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

// RequireAdministrator fails with ErrUnauthenticated for anonymous callers
// and ErrForbidden for non-administrators.
func RequireAdministrator(ctx context.Context) (Identity, error) {
	identity, err := RequireAuthenticated(ctx)
	if err != nil {
		return Identity{}, err
	}
	if identity.Role != user.RoleAdmin {
		return Identity{}, ErrForbidden
	}
	return identity, nil
}
