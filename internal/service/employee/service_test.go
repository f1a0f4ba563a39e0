package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/fixtures"
	"github.com/datavista/hris-backend-go/internal/pkg/optional"
	"github.com/datavista/hris-backend-go/internal/pkg/pagination"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
	"github.com/datavista/hris-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store *memory.Store
	svc   employee.EmployeeService
	ids   fixtures.SeededDataIDs
	admin context.Context
	staff context.Context
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	ids, err := fixtures.Seed(context.Background(), fixtures.Repositories{
		Transactor: store,
		Users:      store.Users(),
		Employees:  store.Employees(),
		Tasks:      store.Tasks(),
		Attendance: store.Attendance(),
	})
	require.NoError(t, err)

	return testEnv{
		store: store,
		svc:   NewEmployeeService(store, store.Employees(), store.Tasks(), store.Attendance()),
		ids:   ids,
		admin: auth.WithIdentity(context.Background(), auth.Identity{SubjectID: ids.AdminUserID, Role: user.RoleAdmin}),
		staff: auth.WithIdentity(context.Background(), auth.Identity{
			SubjectID: ids.EmployeeUserID,
			Role:      user.RoleEmployee,
		}),
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func names(list []employee.Employee) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name
	}
	return out
}

func TestEmployeeService_ListRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.List(context.Background(), employee.ListEmployeesRequest{})
	assert.True(t, errors.Is(err, auth.ErrUnauthenticated))
}

func TestEmployeeService_ListFilters(t *testing.T) {
	env := newTestEnv(t)

	t.Run("department is exact", func(t *testing.T) {
		conn, err := env.svc.List(env.staff, employee.ListEmployeesRequest{
			Filter: employee.EmployeeFilter{Department: strPtr("Engineering")},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Sarah Johnson", "Alex Thompson"}, names(conn.Edges))
		assert.Equal(t, int64(2), conn.TotalCount)
	})

	t.Run("name is a case-insensitive substring", func(t *testing.T) {
		conn, err := env.svc.List(env.staff, employee.ListEmployeesRequest{
			Filter: employee.EmployeeFilter{Name: strPtr("sar")},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sarah Johnson"}, names(conn.Edges))
	})

	t.Run("blank filters are ignored", func(t *testing.T) {
		conn, err := env.svc.List(env.staff, employee.ListEmployeesRequest{
			Filter: employee.EmployeeFilter{Position: strPtr("  ")},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(6), conn.TotalCount)
	})
}

func TestEmployeeService_ListPagination(t *testing.T) {
	env := newTestEnv(t)

	var seen []int64
	for offset := 0; offset < 6; offset += 2 {
		conn, err := env.svc.List(env.admin, employee.ListEmployeesRequest{Limit: intPtr(2), Offset: intPtr(offset)})
		require.NoError(t, err)
		require.Len(t, conn.Edges, 2)
		assert.Equal(t, int64(6), conn.TotalCount)
		assert.Equal(t, offset+2 < 6, conn.HasNextPage)
		for _, e := range conn.Edges {
			seen = append(seen, e.ID)
		}
	}

	all, err := env.svc.List(env.admin, employee.ListEmployeesRequest{Limit: intPtr(100)})
	require.NoError(t, err)
	want := make([]int64, len(all.Edges))
	for i, e := range all.Edges {
		want[i] = e.ID
	}
	assert.Equal(t, want, seen)
	assert.IsIncreasing(t, seen)
}

func TestEmployeeService_ListSortValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.List(env.admin, employee.ListEmployeesRequest{
		Sort: &employee.SortInput{Field: "password_digest", Order: "asc"},
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "sort.field", verrs[0].Field)

	conn, err := env.svc.List(env.admin, employee.ListEmployeesRequest{
		Sort: &employee.SortInput{Field: "age", Order: "DESC"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Michael Chen", conn.Edges[0].Name)
}

func TestEmployeeService_Create(t *testing.T) {
	env := newTestEnv(t)
	req := employee.CreateEmployeeRequest{
		Name:     "Grace Hopper",
		Email:    "grace@datavista.com",
		Age:      40,
		Class:    "Principal",
		Position: "Architect",
	}

	_, err := env.svc.Create(env.staff, req)
	assert.True(t, errors.Is(err, auth.ErrForbidden))

	created, err := env.svc.Create(env.admin, req)
	require.NoError(t, err)
	assert.False(t, created.JoinDate.IsZero())
	assert.False(t, created.Flagged)

	_, err = env.svc.Create(env.admin, req)
	assert.True(t, errors.Is(err, employee.ErrEmailExists))
}

func TestEmployeeService_UpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	sarah := env.ids.EmployeeIDs["sarah.johnson@datavista.com"]
	michael := env.ids.EmployeeIDs["michael.chen@datavista.com"]

	t.Run("Should forbid editing someone else", func(t *testing.T) {
		_, err := env.svc.Update(env.staff, employee.UpdateEmployeeRequest{ID: michael, Name: optional.Of("Mike")})
		assert.True(t, errors.Is(err, employee.ErrNotOwner))
	})

	t.Run("Should forbid a missing id for non-administrators", func(t *testing.T) {
		_, err := env.svc.Update(env.staff, employee.UpdateEmployeeRequest{ID: 9999, Name: optional.Of("X")})
		assert.True(t, errors.Is(err, employee.ErrNotOwner))

		_, err = env.svc.Update(env.admin, employee.UpdateEmployeeRequest{ID: 9999, Name: optional.Of("X")})
		assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
	})

	t.Run("Should let the linked user edit but ignore salary", func(t *testing.T) {
		before, err := env.svc.Get(env.staff, sarah)
		require.NoError(t, err)

		updated, err := env.svc.Update(env.staff, employee.UpdateEmployeeRequest{
			ID:     sarah,
			Phone:  optional.Of("+1-555-9999"),
			Salary: optional.Of(decimal.NewFromInt(1_000_000)),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Phone)
		assert.Equal(t, "+1-555-9999", *updated.Phone)
		assert.True(t, before.Salary.Equal(*updated.Salary))
	})

	t.Run("Should treat age zero as a real update", func(t *testing.T) {
		updated, err := env.svc.Update(env.admin, employee.UpdateEmployeeRequest{ID: michael, Age: optional.Of(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Age)
	})

	t.Run("Should clear nullable fields", func(t *testing.T) {
		updated, err := env.svc.Update(env.admin, employee.UpdateEmployeeRequest{
			ID:    michael,
			Clear: []string{employee.FieldDepartment, employee.FieldSalary},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Department)
		assert.Nil(t, updated.Salary)
		assert.NotNil(t, updated.Phone)
	})

	t.Run("Should reject clearing a required field", func(t *testing.T) {
		_, err := env.svc.Update(env.admin, employee.UpdateEmployeeRequest{ID: michael, Clear: []string{"name"}})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})
}

func TestEmployeeService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	sarah := env.ids.EmployeeIDs["sarah.johnson@datavista.com"]

	_, err := env.svc.Delete(env.staff, sarah)
	assert.True(t, errors.Is(err, auth.ErrForbidden))

	result, err := env.svc.Delete(env.admin, sarah)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", result.Employee.Name)
	assert.Len(t, result.Tasks, 3)
	assert.Len(t, result.Attendance, 3)

	tasks, err := env.store.Tasks().List(context.Background(), task.TaskCriteria{EmployeeID: &sarah, Page: pageOf(50)})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	records, err := env.store.Attendance().List(context.Background(), attendance.AttendanceCriteria{EmployeeID: sarah})
	require.NoError(t, err)
	assert.Empty(t, records)

	found, err := env.svc.Get(env.admin, sarah)
	require.NoError(t, err)
	assert.Nil(t, found)

	_, err = env.svc.Delete(env.admin, sarah)
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func TestEmployeeService_SetFlagged(t *testing.T) {
	env := newTestEnv(t)
	alex := env.ids.EmployeeIDs["alex.thompson@datavista.com"]

	_, err := env.svc.SetFlagged(env.staff, alex, true)
	assert.True(t, errors.Is(err, auth.ErrForbidden))

	flagged, err := env.svc.SetFlagged(env.admin, alex, true)
	require.NoError(t, err)
	assert.True(t, flagged.Flagged)

	_, err = env.svc.SetFlagged(env.admin, 9999, true)
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func pageOf(limit int) pagination.Page {
	return pagination.Page{Limit: limit}
}
