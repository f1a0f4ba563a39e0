package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
)

type TaskServiceImpl struct {
	db                database.Transactor
	taskRepo          task.TaskRepository
	employeeRepo      employee.EmployeeRepository
	ownershipEnforced bool
}

// NewTaskService builds the task service. With ownershipEnforced false any
// authenticated user may manage any task.
func NewTaskService(
	db database.Transactor,
	taskRepo task.TaskRepository,
	employeeRepo employee.EmployeeRepository,
	ownershipEnforced bool,
) task.TaskService {
	return &TaskServiceImpl{
		db:                db,
		taskRepo:          taskRepo,
		employeeRepo:      employeeRepo,
		ownershipEnforced: ownershipEnforced,
	}
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, req task.ListTasksRequest) ([]task.Task, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}

	criteria, err := req.Criteria()
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, id int64) (*task.Task, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}

	found, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &found, nil
}

// ListByEmployee implements task.TaskService.
func (s *TaskServiceImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]task.Task, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee tasks: %w", err)
	}
	return tasks, nil
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest) (task.Task, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return task.Task{}, err
	}
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	var created task.Task
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.authorize(ctx, identity, req.EmployeeID); err != nil {
			return err
		}
		var err error
		created, err = s.taskRepo.Create(ctx, req.ToTask())
		return err
	})
	if err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// Update implements task.TaskService.
func (s *TaskServiceImpl) Update(ctx context.Context, req task.UpdateTaskRequest) (task.Task, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return task.Task{}, err
	}
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}
	req.ApplyClear()

	var updated task.Task
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.taskRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, identity, current.EmployeeID); err != nil {
			return err
		}
		updated, err = s.taskRepo.Update(ctx, req)
		return err
	})
	if err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// Delete implements task.TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, id int64) (task.Task, error) {
	identity, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return task.Task{}, err
	}

	var deleted task.Task
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.taskRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, identity, current.EmployeeID); err != nil {
			return err
		}
		if err := s.taskRepo.Delete(ctx, id); err != nil {
			return err
		}
		deleted = current
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}
	return deleted, nil
}

// authorize checks that the caller may manage tasks of employeeID.
func (s *TaskServiceImpl) authorize(ctx context.Context, identity auth.Identity, employeeID int64) error {
	if !s.ownershipEnforced || identity.Can(user.PermissionTaskManageAny) {
		return nil
	}
	if !identity.Can(user.PermissionTaskManageOwn) {
		return task.ErrNotTaskOwner
	}

	owner, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return task.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get task employee: %w", err)
	}
	if !owner.IsLinkedTo(identity.SubjectID) {
		return task.ErrNotTaskOwner
	}
	return nil
}
