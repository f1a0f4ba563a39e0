package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addEmployee(t *testing.T, s *Store, name, email string, salary *decimal.Decimal) employee.Employee {
	t.Helper()
	e, err := s.Employees().Create(context.Background(), employee.Employee{
		Name:     name,
		Email:    email,
		Class:    "A",
		Position: "Engineer",
		Salary:   salary,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository_Constraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	addEmployee(t, s, "Ada", "ada@example.com", nil)

	_, err := s.Employees().Create(ctx, employee.Employee{Name: "Copy", Email: "ada@example.com"})
	assert.True(t, errors.Is(err, employee.ErrEmailExists))

	missingUser := int64(42)
	_, err = s.Employees().Create(ctx, employee.Employee{Name: "Bob", Email: "bob@example.com", UserID: &missingUser})
	assert.True(t, errors.Is(err, employee.ErrLinkedUserNotFound))

	u, err := s.Users().Create(ctx, user.User{Email: "bob@example.com", Role: user.RoleEmployee})
	require.NoError(t, err)
	_, err = s.Employees().Create(ctx, employee.Employee{Name: "Bob", Email: "bob@example.com", UserID: &u.ID})
	require.NoError(t, err)
	_, err = s.Employees().Create(ctx, employee.Employee{Name: "Bob2", Email: "bob2@example.com", UserID: &u.ID})
	assert.True(t, errors.Is(err, employee.ErrUserAlreadyLinked))
}

func TestEmployeeRepository_SortsNullSalaryLikePostgres(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	low := decimal.NewFromInt(100)
	high := decimal.NewFromInt(900)
	none := addEmployee(t, s, "None", "none@example.com", nil)
	cheap := addEmployee(t, s, "Cheap", "cheap@example.com", &low)
	dear := addEmployee(t, s, "Dear", "dear@example.com", &high)

	ids := func(list []employee.Employee) []int64 {
		out := make([]int64, len(list))
		for i, e := range list {
			out[i] = e.ID
		}
		return out
	}

	asc, err := s.Employees().List(ctx, employee.EmployeeCriteria{
		Sort: employee.EmployeeSort{Field: employee.SortFieldSalary, Order: employee.SortAsc},
		Page: pagination.Page{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{cheap.ID, dear.ID, none.ID}, ids(asc))

	desc, err := s.Employees().List(ctx, employee.EmployeeCriteria{
		Sort: employee.EmployeeSort{Field: employee.SortFieldSalary, Order: employee.SortDesc},
		Page: pagination.Page{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{none.ID, dear.ID, cheap.ID}, ids(desc))
}

func TestEmployeeRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := addEmployee(t, s, "Ada", "ada@example.com", nil)
	other := addEmployee(t, s, "Alan", "alan@example.com", nil)

	_, err := s.Tasks().Create(ctx, task.Task{Title: "a", Priority: task.PriorityLow, EmployeeID: e.ID})
	require.NoError(t, err)
	kept, err := s.Tasks().Create(ctx, task.Task{Title: "b", Priority: task.PriorityLow, EmployeeID: other.ID})
	require.NoError(t, err)
	_, err = s.Attendance().Upsert(ctx, attendance.Record{EmployeeID: e.ID, Date: time.Now(), Status: attendance.StatusPresent})
	require.NoError(t, err)

	require.NoError(t, s.Employees().Delete(ctx, e.ID))

	tasks, err := s.Tasks().ListByEmployeeID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	records, err := s.Attendance().List(ctx, attendance.AttendanceCriteria{EmployeeID: e.ID})
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = s.Tasks().GetByID(ctx, kept.ID)
	assert.NoError(t, err)
	assert.True(t, errors.Is(s.Employees().Delete(ctx, e.ID), employee.ErrEmployeeNotFound))
}

func TestAttendanceRepository_UpsertKeepsOneRowPerDay(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := addEmployee(t, s, "Ada", "ada@example.com", nil)
	morning := time.Date(2024, 11, 25, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 11, 25, 18, 0, 0, 0, time.UTC)

	first, err := s.Attendance().Upsert(ctx, attendance.Record{EmployeeID: e.ID, Date: morning, Status: attendance.StatusPresent})
	require.NoError(t, err)
	second, err := s.Attendance().Upsert(ctx, attendance.Record{EmployeeID: e.ID, Date: evening, Status: attendance.StatusLate})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	records, err := s.Attendance().List(ctx, attendance.AttendanceCriteria{EmployeeID: e.ID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusLate, records[0].Status)

	_, err = s.Attendance().Upsert(ctx, attendance.Record{EmployeeID: 999, Date: morning, Status: attendance.StatusAbsent})
	assert.True(t, errors.Is(err, attendance.ErrEmployeeNotFound))
}

func TestStore_WithinTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.Users().Create(ctx, user.User{Email: "a@example.com", Role: user.RoleAdmin})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Users().GetByEmail(ctx, "a@example.com")
	assert.True(t, errors.Is(err, user.ErrUserNotFound))

	err = s.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.Users().Create(ctx, user.User{Email: "a@example.com", Role: user.RoleAdmin})
		return err
	})
	require.NoError(t, err)
	_, err = s.Users().GetByEmail(ctx, "a@example.com")
	assert.NoError(t, err)
}

func TestStore_UncommittedWritesStayInsideTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.Users().Create(txCtx, user.User{Email: "a@example.com", Role: user.RoleAdmin})
		require.NoError(t, err)

		_, err = s.Users().GetByEmail(txCtx, "a@example.com")
		assert.NoError(t, err)

		_, err = s.Users().GetByEmail(ctx, "a@example.com")
		assert.True(t, errors.Is(err, user.ErrUserNotFound))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
		e, err := s.Employees().Create(txCtx, employee.Employee{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)

		_, err = s.Employees().GetByID(ctx, e.ID)
		assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
		total, err := s.Employees().Count(ctx, employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
		return nil
	})
	require.NoError(t, err)

	total, err := s.Employees().Count(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTaskRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := addEmployee(t, s, "Ada", "ada@example.com", nil)
	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Tasks().Create(ctx, task.Task{Title: title, Priority: task.PriorityMedium, EmployeeID: e.ID})
		require.NoError(t, err)
	}

	tasks, err := s.Tasks().List(ctx, task.TaskCriteria{EmployeeID: &e.ID, Page: pagination.Page{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)

	_, err = s.Tasks().Create(ctx, task.Task{Title: "orphan", EmployeeID: 999})
	assert.True(t, errors.Is(err, task.ErrEmployeeNotFound))
}
