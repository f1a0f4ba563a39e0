package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/datavista/hris-backend-go/internal/pkg/optional"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type EmployeeServiceImpl struct {
	db             database.Transactor
	employeeRepo   employee.EmployeeRepository
	taskRepo       task.TaskRepository
	attendanceRepo attendance.AttendanceRepository
	now            func() time.Time
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	taskRepo task.TaskRepository,
	attendanceRepo attendance.AttendanceRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		taskRepo:       taskRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeesRequest) (employee.EmployeeConnection, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return employee.EmployeeConnection{}, err
	}

	criteria, err := req.Criteria()
	if err != nil {
		return employee.EmployeeConnection{}, err
	}

	var (
		edges []employee.Employee
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		edges, err = s.employeeRepo.List(gctx, criteria)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.employeeRepo.Count(gctx, criteria.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("List employees error", "error", err)
		return employee.EmployeeConnection{}, fmt.Errorf("failed to list employees: %w", err)
	}

	return employee.EmployeeConnection{
		Edges:       edges,
		TotalCount:  total,
		HasNextPage: criteria.Page.HasNextPage(total),
	}, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id int64) (*employee.Employee, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	return s.lookup(s.employeeRepo.GetByID(ctx, id))
}

// GetByUserID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByUserID(ctx context.Context, userID int64) (*employee.Employee, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	return s.lookup(s.employeeRepo.GetByUserID(ctx, userID))
}

func (s *EmployeeServiceImpl) lookup(found employee.Employee, err error) (*employee.Employee, error) {
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &found, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if _, err := auth.RequireAdministrator(ctx); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	var created employee.Employee
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(ctx, req.ToEmployee(s.now()))
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID)
	return created, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	req.ApplyClear()

	var updated employee.Employee
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) && !identity.Can(user.PermissionEmployeeEditAny) {
				return employee.ErrNotOwner
			}
			return err
		}

		if !identity.Can(user.PermissionEmployeeEditAny) {
			if !identity.Can(user.PermissionEditOwnProfile) || !current.IsLinkedTo(identity.SubjectID) {
				return employee.ErrNotOwner
			}
		}
		if !identity.Can(user.PermissionEmployeeEditSalary) {
			req.Salary = optional.Value[decimal.Decimal]{}
		}

		if !req.HasChanges() {
			updated = current
			return nil
		}
		updated, err = s.employeeRepo.Update(ctx, req)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return updated, nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id int64) (employee.DeleteEmployeeResult, error) {
	if _, err := auth.RequireAdministrator(ctx); err != nil {
		return employee.DeleteEmployeeResult{}, err
	}

	var result employee.DeleteEmployeeResult
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		tasks, err := s.taskRepo.ListByEmployeeID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to snapshot tasks: %w", err)
		}
		records, err := s.attendanceRepo.List(ctx, attendance.AttendanceCriteria{EmployeeID: id})
		if err != nil {
			return fmt.Errorf("failed to snapshot attendance: %w", err)
		}
		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			return err
		}
		result = employee.DeleteEmployeeResult{Employee: current, Tasks: tasks, Attendance: records}
		return nil
	})
	if err != nil {
		return employee.DeleteEmployeeResult{}, err
	}

	slog.Info("Employee deleted", "employee_id", id, "tasks", len(result.Tasks), "attendance", len(result.Attendance))
	return result, nil
}

// SetFlagged implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetFlagged(ctx context.Context, id int64, flagged bool) (employee.Employee, error) {
	if _, err := auth.RequireAdministrator(ctx); err != nil {
		return employee.Employee{}, err
	}

	var updated employee.Employee
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.employeeRepo.SetFlagged(ctx, id, flagged)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return updated, nil
}
