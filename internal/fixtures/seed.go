package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/datavista/hris-backend-go/internal/pkg/password"
)

var ErrAlreadySeeded = errors.New("demo data already present")

// Repositories is the storage the seeder writes through.
type Repositories struct {
	Transactor database.Transactor
	Users      user.UserRepository
	Employees  employee.EmployeeRepository
	Tasks      task.TaskRepository
	Attendance attendance.AttendanceRepository
}

// SeededDataIDs holds the ids created by Seed
type SeededDataIDs struct {
	AdminUserID    int64
	EmployeeUserID int64
	// EmployeeIDs by employee email
	EmployeeIDs     map[string]int64
	TaskCount       int
	AttendanceCount int
}

// Seed writes the demo dataset in one transaction. It fails with
// ErrAlreadySeeded when the admin account exists.
func Seed(ctx context.Context, repos Repositories) (SeededDataIDs, error) {
	if _, err := repos.Users.GetByEmail(ctx, AdminUser.Email); err == nil {
		return SeededDataIDs{}, ErrAlreadySeeded
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return SeededDataIDs{}, fmt.Errorf("failed to check existing data: %w", err)
	}

	ids := SeededDataIDs{EmployeeIDs: make(map[string]int64)}
	err := repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		admin, err := createUser(ctx, repos.Users, AdminUser)
		if err != nil {
			return err
		}
		ids.AdminUserID = admin.ID

		member, err := createUser(ctx, repos.Users, EmployeeUser)
		if err != nil {
			return err
		}
		ids.EmployeeUserID = member.ID

		for _, demo := range DemoEmployees() {
			e := employee.Employee{
				Name:       demo.Name,
				Email:      demo.Email,
				Age:        demo.Age,
				Class:      demo.Class,
				Subjects:   demo.Subjects,
				Department: strPtr(demo.Department),
				Position:   demo.Position,
				Avatar:     demo.Avatar,
				Phone:      strPtr(demo.Phone),
				Address:    strPtr(demo.Address),
				JoinDate:   time.Now().UTC().Truncate(24 * time.Hour),
				Salary:     &demo.Salary,
				Flagged:    demo.Flagged,
			}
			if demo.LinkedToEmployeeUser {
				e.UserID = &member.ID
			}
			created, err := repos.Employees.Create(ctx, e)
			if err != nil {
				return fmt.Errorf("failed to create employee %s: %w", demo.Email, err)
			}
			ids.EmployeeIDs[demo.Email] = created.ID

			for _, t := range demo.Tasks {
				t.EmployeeID = created.ID
				if _, err := repos.Tasks.Create(ctx, t); err != nil {
					return fmt.Errorf("failed to create task %q: %w", t.Title, err)
				}
				ids.TaskCount++
			}
			for _, rec := range demo.Attendance {
				rec.EmployeeID = created.ID
				if _, err := repos.Attendance.Upsert(ctx, rec); err != nil {
					return fmt.Errorf("failed to record attendance for %s: %w", demo.Email, err)
				}
				ids.AttendanceCount++
			}
		}
		return nil
	})
	if err != nil {
		return SeededDataIDs{}, err
	}

	slog.Info("Demo data seeded",
		"employees", len(ids.EmployeeIDs),
		"tasks", ids.TaskCount,
		"attendance", ids.AttendanceCount,
	)
	return ids, nil
}

func createUser(ctx context.Context, repo user.UserRepository, demo DemoUser) (user.User, error) {
	digest, err := password.Hash(demo.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	created, err := repo.Create(ctx, user.User{Email: demo.Email, PasswordDigest: digest, Role: demo.Role})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user %s: %w", demo.Email, err)
	}
	return created, nil
}
