package memory

import (
	"context"

	"github.com/datavista/hris-backend-go/internal/domain/user"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	data, unlock := r.store.read(ctx)
	defer unlock()

	u, ok := data.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	data, unlock := r.store.read(ctx)
	defer unlock()

	for _, u := range data.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	data, unlock := r.store.write(ctx)
	defer unlock()

	for _, u := range data.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}

	data.nextUserID++
	newUser.ID = data.nextUserID
	newUser.CreatedAt = r.store.now()
	data.users[newUser.ID] = newUser
	return newUser, nil
}
