package attendance

import (
	"context"
	"fmt"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/domain/auth"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db             database.Transactor
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceService(db database.Transactor, attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
	}
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.Record, error) {
	if _, err := auth.RequireAdministrator(ctx); err != nil {
		return attendance.Record{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var saved attendance.Record
	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.attendanceRepo.Upsert(ctx, req.ToRecord())
		return err
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return saved, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.Record, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}

	criteria, err := req.Criteria()
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// Recent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Recent(ctx context.Context, employeeID int64, limit int) ([]attendance.Record, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > attendance.RecentLimit {
		limit = attendance.RecentLimit
	}

	records, err := s.attendanceRepo.List(ctx, attendance.AttendanceCriteria{EmployeeID: employeeID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance: %w", err)
	}
	return records, nil
}
