package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         int64            `db:"id"`
	UserID     *int64           `db:"user_id"`
	Name       string           `db:"name"`
	Email      string           `db:"email"`
	Age        int              `db:"age"`
	Class      string           `db:"class"`
	Subjects   []string         `db:"subjects"`
	Department *string          `db:"department"`
	Position   string           `db:"position"`
	Avatar     string           `db:"avatar"`
	Phone      *string          `db:"phone"`
	Address    *string          `db:"address"`
	JoinDate   time.Time        `db:"join_date"`
	Salary     *decimal.Decimal `db:"salary"`
	Flagged    bool             `db:"flagged"`
	CreatedAt  time.Time        `db:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at"`
}

// IsLinkedTo checks if the profile belongs to the given user
func (e *Employee) IsLinkedTo(userID int64) bool {
	return e.UserID != nil && *e.UserID == userID
}
