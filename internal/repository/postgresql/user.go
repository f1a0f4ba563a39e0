package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var userColumns = []string{"id", "email", "password_digest", "role", "created_at"}

type userRepositoryImpl struct {
	db database.Pool
}

func NewUserRepository(db database.Pool) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("building select query: %w", err)
	}
	return r.get(ctx, query, args...)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("building select query: %w", err)
	}
	return r.get(ctx, query, args...)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	query, args, err := squirrel.Insert("users").
		Columns("email", "password_digest", "role").
		Values(newUser.Email, newUser.PasswordDigest, newUser.Role).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("building insert query: %w", err)
	}

	var created user.User
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &created, query, args...); err != nil {
		if isUniqueViolation(err, "email") {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return created, nil
}

func (r *userRepositoryImpl) get(ctx context.Context, query string, args ...interface{}) (user.User, error) {
	var found user.User
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &found, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("scanning user: %w", err)
	}
	return found, nil
}
