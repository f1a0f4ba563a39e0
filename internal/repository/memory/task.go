package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/pkg/pagination"
)

type taskRepository struct {
	store *Store
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (task.Task, error) {
	data, unlock := r.store.read(ctx)
	defer unlock()

	t, ok := data.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (r *taskRepository) List(ctx context.Context, criteria task.TaskCriteria) ([]task.Task, error) {
	data, unlock := r.store.read(ctx)
	tasks := []task.Task{}
	for _, t := range data.tasks {
		if criteria.EmployeeID == nil || t.EmployeeID == *criteria.EmployeeID {
			tasks = append(tasks, t)
		}
	}
	unlock()

	slices.SortFunc(tasks, newestTaskFirst)
	return pagination.Window(tasks, criteria.Page), nil
}

func (r *taskRepository) ListByEmployeeID(ctx context.Context, employeeID int64) ([]task.Task, error) {
	data, unlock := r.store.read(ctx)
	tasks := []task.Task{}
	for _, t := range data.tasks {
		if t.EmployeeID == employeeID {
			tasks = append(tasks, t)
		}
	}
	unlock()

	slices.SortFunc(tasks, newestTaskFirst)
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	data, unlock := r.store.write(ctx)
	defer unlock()

	if _, ok := data.employees[newTask.EmployeeID]; !ok {
		return task.Task{}, task.ErrEmployeeNotFound
	}

	data.nextTaskID++
	now := r.store.now()
	newTask.ID = data.nextTaskID
	newTask.CreatedAt = now
	newTask.UpdatedAt = now
	data.tasks[newTask.ID] = newTask
	return newTask, nil
}

func (r *taskRepository) Update(ctx context.Context, req task.UpdateTaskRequest) (task.Task, error) {
	data, unlock := r.store.write(ctx)
	defer unlock()

	t, ok := data.tasks[req.ID]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	req.ApplyTo(&t)
	t.UpdatedAt = r.store.now()
	data.tasks[req.ID] = t
	return t, nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	data, unlock := r.store.write(ctx)
	defer unlock()

	if _, ok := data.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(data.tasks, id)
	return nil
}

func newestTaskFirst(a, b task.Task) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}
