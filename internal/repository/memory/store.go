// Package memory is a process-local storage driver implementing every
// repository interface. It backs STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/employee"
	"github.com/datavista/hris-backend-go/internal/domain/task"
	"github.com/datavista/hris-backend-go/internal/domain/user"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
)

type state struct {
	users     map[int64]user.User
	employees map[int64]employee.Employee
	tasks     map[int64]task.Task
	records   map[int64]attendance.Record

	nextUserID       int64
	nextEmployeeID   int64
	nextTaskID       int64
	nextAttendanceID int64
}

func newState() state {
	return state{
		users:     make(map[int64]user.User),
		employees: make(map[int64]employee.Employee),
		tasks:     make(map[int64]task.Task),
		records:   make(map[int64]attendance.Record),
	}
}

func (s state) clone() state {
	c := s
	c.users = make(map[int64]user.User, len(s.users))
	for k, v := range s.users {
		c.users[k] = v
	}
	c.employees = make(map[int64]employee.Employee, len(s.employees))
	for k, v := range s.employees {
		c.employees[k] = copyEmployee(v)
	}
	c.tasks = make(map[int64]task.Task, len(s.tasks))
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	c.records = make(map[int64]attendance.Record, len(s.records))
	for k, v := range s.records {
		c.records[k] = v
	}
	return c
}

// Store holds the committed tables behind mu. A transaction works on a
// private copy and publishes it on commit, so readers outside it never see
// uncommitted writes. Transactions and writes outside a transaction are
// serialized by txMu.
type Store struct {
	mu   sync.RWMutex
	data state

	txMu sync.Mutex
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type txKey struct{}

// tx is the working copy of one open transaction.
type tx struct {
	mu   sync.RWMutex
	data state
}

var _ database.Transactor = (*Store)(nil)

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	current := &tx{data: s.data.clone()}
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, current)); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = current.data
	s.mu.Unlock()
	return nil
}

// read returns the tables visible to ctx, locked for reading.
func (s *Store) read(ctx context.Context) (*state, func()) {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		t.mu.RLock()
		return &t.data, t.mu.RUnlock
	}
	s.mu.RLock()
	return &s.data, s.mu.RUnlock
}

// write returns the tables ctx may modify, locked for writing. Outside a
// transaction the write lands on the committed tables directly.
func (s *Store) write(ctx context.Context) (*state, func()) {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		t.mu.Lock()
		return &t.data, t.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return &s.data, func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) Users() user.UserRepository {
	return &userRepository{store: s}
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{store: s}
}

func (s *Store) Tasks() task.TaskRepository {
	return &taskRepository{store: s}
}

func (s *Store) Attendance() attendance.AttendanceRepository {
	return &attendanceRepository{store: s}
}

func copyEmployee(e employee.Employee) employee.Employee {
	if e.Subjects != nil {
		e.Subjects = append([]string(nil), e.Subjects...)
	}
	return e
}
