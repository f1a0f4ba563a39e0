package jwt

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// DefaultExpiration is the token lifetime when none is configured.
const DefaultExpiration = 7 * 24 * time.Hour

// Claims is the decoded payload of an access token.
type Claims struct {
	SubjectID int64
	Role      user.Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Service interface {
	IssueToken(subjectID int64, role user.Role) (token string, expiresAt time.Time, err error)
	// VerifyToken returns nil for any malformed, tampered or expired token.
	VerifyToken(tokenString string) *Claims
}

type JWTService struct {
	tokenAuth  *jwtauth.JWTAuth
	expiration time.Duration
	now        func() time.Time
}

func NewJWTService(secretKey string, expiration time.Duration) Service {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &JWTService{
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		expiration: expiration,
		now:        time.Now,
	}
}

func (j *JWTService) IssueToken(subjectID int64, role user.Role) (string, time.Time, error) {
	issuedAt := j.now().UTC()
	expiresAt := issuedAt.Add(j.expiration)

	claims := map[string]interface{}{
		"sub":        strconv.FormatInt(subjectID, 10),
		"subject_id": subjectID,
		"role":       string(role),
		"jti":        uuid.NewString(),
	}
	jwtauth.SetIssuedAt(claims, issuedAt)
	jwtauth.SetExpiry(claims, expiresAt)

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (j *JWTService) VerifyToken(tokenString string) (claims *Claims) {
	defer func() {
		if recover() != nil {
			claims = nil
		}
	}()

	if tokenString == "" {
		return nil
	}
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil || token == nil {
		return nil
	}

	subjectID, ok := subjectFromToken(token)
	if !ok {
		return nil
	}

	roleVal, ok := token.Get("role")
	if !ok {
		return nil
	}
	roleStr, ok := roleVal.(string)
	if !ok {
		return nil
	}
	role := user.Role(roleStr)
	if !role.IsValid() {
		return nil
	}

	return &Claims{
		SubjectID: subjectID,
		Role:      role,
		TokenID:   token.JwtID(),
		IssuedAt:  token.IssuedAt(),
		ExpiresAt: token.Expiration(),
	}
}

func subjectFromToken(token jwt.Token) (int64, bool) {
	if v, ok := token.Get("subject_id"); ok {
		switch n := v.(type) {
		case float64:
			if n == float64(int64(n)) && n > 0 {
				return int64(n), true
			}
		case int64:
			return n, n > 0
		case int:
			return int64(n), n > 0
		case json.Number:
			if id, err := n.Int64(); err == nil && id > 0 {
				return id, true
			}
		}
	}
	id, err := strconv.ParseInt(token.Subject(), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
