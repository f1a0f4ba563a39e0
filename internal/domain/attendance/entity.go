package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusLeave   Status = "LEAVE"
)

var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusLeave}

func (s Status) IsValid() bool {
	for _, allowed := range Statuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Record is one employee's attendance for one calendar day.
type Record struct {
	ID         int64      `db:"id"`
	EmployeeID int64      `db:"employee_id"`
	Date       time.Time  `db:"date"`
	Status     Status     `db:"status"`
	CheckIn    *time.Time `db:"check_in"`
	CheckOut   *time.Time `db:"check_out"`
	Notes      *string    `db:"notes"`
	CreatedAt  time.Time  `db:"created_at"`
}
