package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The attendances table carries a unique (employee_id, date) constraint:
// idempotency for the double-submission race lives at the persistence
// boundary, not in the pure rule functions.
type AttendanceRepository interface {
	// Create inserts the first record of the employee's day.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// working day, or nil when the day has no record yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListByPeriod retrieves an employee's records for a (month, year)
	// window. The payroll aggregator and the monthly report both read from
	// this single query so every deduction source sees the same window.
	ListByPeriod(ctx context.Context, employeeID string, month, year int) ([]Attendance, error)

	// ListEmployeeIDsWithoutRecord returns active employees with no record
	// on the given working day. Used by the mark-absent job.
	ListEmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error)
}
