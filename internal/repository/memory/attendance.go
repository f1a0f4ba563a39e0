package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/datavista/hris-backend-go/internal/domain/attendance"
	"github.com/datavista/hris-backend-go/internal/pkg/validator"
)

type attendanceRepository struct {
	store *Store
}

// Upsert replaces the record for the same employee and calendar day, keeping its id.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	data, unlock := r.store.write(ctx)
	defer unlock()

	if _, ok := data.employees[record.EmployeeID]; !ok {
		return attendance.Record{}, attendance.ErrEmployeeNotFound
	}

	record.Date = validator.TruncateToDate(record.Date)
	for id, existing := range data.records {
		if existing.EmployeeID == record.EmployeeID && existing.Date.Equal(record.Date) {
			record.ID = id
			record.CreatedAt = existing.CreatedAt
			data.records[id] = record
			return record, nil
		}
	}

	data.nextAttendanceID++
	record.ID = data.nextAttendanceID
	record.CreatedAt = r.store.now()
	data.records[record.ID] = record
	return record, nil
}

func (r *attendanceRepository) List(ctx context.Context, criteria attendance.AttendanceCriteria) ([]attendance.Record, error) {
	data, unlock := r.store.read(ctx)
	records := []attendance.Record{}
	for _, rec := range data.records {
		if criteria.Matches(rec) {
			records = append(records, rec)
		}
	}
	unlock()

	slices.SortFunc(records, func(a, b attendance.Record) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if criteria.Limit > 0 && len(records) > criteria.Limit {
		records = records[:criteria.Limit]
	}
	return records, nil
}
