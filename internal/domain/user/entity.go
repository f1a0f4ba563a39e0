package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access, including salary and attendance
	RoleEmployee Role = "EMPLOYEE" // Can edit own profile
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID             int64     `db:"id"`
	Email          string    `db:"email"`
	PasswordDigest string    `db:"password_digest"`
	Role           Role      `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
