package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var attendanceColumns = []string{
	"id", "employee_id", "date", "status", "check_in", "check_out", "notes", "created_at",
}

type attendanceRepositoryImpl struct {
	db database.Pool
}

func NewAttendanceRepository(db database.Pool) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func buildAttendanceUpsertQuery(record attendance.Record) (string, []interface{}, error) {
	return squirrel.Insert("attendance_records").
		Columns("employee_id", "date", "status", "check_in", "check_out", "notes").
		Values(record.EmployeeID, record.Date, record.Status, record.CheckIn, record.CheckOut, record.Notes).
		Suffix(`ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			notes = EXCLUDED.notes
		RETURNING ` + strings.Join(attendanceColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildAttendanceListQuery(criteria attendance.AttendanceCriteria) (string, []interface{}, error) {
	conditions := squirrel.And{squirrel.Eq{"employee_id": criteria.EmployeeID}}
	if criteria.From != nil {
		conditions = append(conditions, squirrel.GtOrEq{"date": *criteria.From})
	}
	if criteria.To != nil {
		conditions = append(conditions, squirrel.LtOrEq{"date": *criteria.To})
	}

	qb := squirrel.Select(attendanceColumns...).
		From("attendance_records").
		Where(conditions).
		OrderBy("date DESC")
	if criteria.Limit > 0 {
		qb = qb.Limit(uint64(criteria.Limit))
	}
	return qb.PlaceholderFormat(squirrel.Dollar).ToSql()
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	query, args, err := buildAttendanceUpsertQuery(record)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("building upsert query: %w", err)
	}

	var saved attendance.Record
	if err := pgxscan.Get(ctx, GetQuerier(ctx, r.db), &saved, query, args...); err != nil {
		if isForeignKeyViolation(err, "employee_id") {
			return attendance.Record{}, attendance.ErrEmployeeNotFound
		}
		return attendance.Record{}, fmt.Errorf("upserting attendance: %w", err)
	}
	return saved, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, criteria attendance.AttendanceCriteria) ([]attendance.Record, error) {
	query, args, err := buildAttendanceListQuery(criteria)
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	records := []attendance.Record{}
	if err := pgxscan.Select(ctx, GetQuerier(ctx, r.db), &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
