package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
)

const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.check_in, a.check_out, a.overtime_start, a.overtime_end,
	a.status, a.approval_status, a.is_late, a.late_minutes,
	a.overtime_minutes, a.overtime_reason, a.is_overtime_approved,
	a.is_sunday_work, a.is_sunday_work_approved,
	a.approved_by, a.approved_at, a.rejection_reason, a.notes,
	a.check_in_latitude, a.check_in_longitude, a.check_in_proof_url,
	a.check_out_latitude, a.check_out_longitude, a.check_out_proof_url,
	a.overtime_start_proof_url, a.overtime_end_proof_url,
	a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row, att *attendance.Attendance, withEmployee bool) error {
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.Date,
		&att.CheckIn, &att.CheckOut, &att.OvertimeStart, &att.OvertimeEnd,
		&att.Status, &att.ApprovalStatus, &att.IsLate, &att.LateMinutes,
		&att.OvertimeMinutes, &att.OvertimeReason, &att.IsOvertimeApproved,
		&att.IsSundayWork, &att.IsSundayWorkApproved,
		&att.ApprovedBy, &att.ApprovedAt, &att.RejectionReason, &att.Notes,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInProofURL,
		&att.CheckOutLatitude, &att.CheckOutLongitude, &att.CheckOutProofURL,
		&att.OvertimeStartProofURL, &att.OvertimeEndProofURL,
		&att.CreatedAt, &att.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &att.EmployeeName, &att.EmployeeCode)
	}
	return row.Scan(dest...)
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, check_out, overtime_start, overtime_end,
			status, approval_status, is_late, late_minutes,
			overtime_minutes, overtime_reason, is_overtime_approved,
			is_sunday_work, is_sunday_work_approved,
			approved_by, approved_at, rejection_reason, notes,
			check_in_latitude, check_in_longitude, check_in_proof_url,
			check_out_latitude, check_out_longitude, check_out_proof_url,
			overtime_start_proof_url, overtime_end_proof_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.OvertimeStart,
		newAttendance.OvertimeEnd,
		newAttendance.Status,
		newAttendance.ApprovalStatus,
		newAttendance.IsLate,
		newAttendance.LateMinutes,
		newAttendance.OvertimeMinutes,
		newAttendance.OvertimeReason,
		newAttendance.IsOvertimeApproved,
		newAttendance.IsSundayWork,
		newAttendance.IsSundayWorkApproved,
		newAttendance.ApprovedBy,
		newAttendance.ApprovedAt,
		newAttendance.RejectionReason,
		newAttendance.Notes,
		newAttendance.CheckInLatitude,
		newAttendance.CheckInLongitude,
		newAttendance.CheckInProofURL,
		newAttendance.CheckOutLatitude,
		newAttendance.CheckOutLongitude,
		newAttendance.CheckOutProofURL,
		newAttendance.OvertimeStartProofURL,
		newAttendance.OvertimeEndProofURL,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// unique (employee_id, date) lost the double-submission race
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name, e.employee_code
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, id), &att, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), &att, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			check_in = $2, check_out = $3, overtime_start = $4, overtime_end = $5,
			status = $6, approval_status = $7, is_late = $8, late_minutes = $9,
			overtime_minutes = $10, overtime_reason = $11, is_overtime_approved = $12,
			is_sunday_work = $13, is_sunday_work_approved = $14,
			approved_by = $15, approved_at = $16, rejection_reason = $17, notes = $18,
			check_in_latitude = $19, check_in_longitude = $20, check_in_proof_url = $21,
			check_out_latitude = $22, check_out_longitude = $23, check_out_proof_url = $24,
			overtime_start_proof_url = $25, overtime_end_proof_url = $26,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.CheckIn, att.CheckOut, att.OvertimeStart, att.OvertimeEnd,
		att.Status, att.ApprovalStatus, att.IsLate, att.LateMinutes,
		att.OvertimeMinutes, att.OvertimeReason, att.IsOvertimeApproved,
		att.IsSundayWork, att.IsSundayWorkApproved,
		att.ApprovedBy, att.ApprovedAt, att.RejectionReason, att.Notes,
		att.CheckInLatitude, att.CheckInLongitude, att.CheckInProofURL,
		att.CheckOutLatitude, att.CheckOutLongitude, att.CheckOutProofURL,
		att.OvertimeStartProofURL, att.OvertimeEndProofURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.EmployeeID != nil {
		addCondition("a.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.DateFrom != nil {
		addCondition("a.date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("a.date <= $%d", *filter.DateTo)
	}
	if filter.Status != nil {
		addCondition("a.status = $%d", *filter.Status)
	}
	if filter.NeedApproval {
		conditions = append(conditions, "a.approval_status = 'PENDING' AND (a.overtime_minutes > 0 OR a.is_sunday_work)")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendances a %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name, e.employee_code
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.date DESC, e.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var results []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		results = append(results, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return results, total, nil
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		WHERE a.employee_id = $1
		  AND EXTRACT(MONTH FROM a.date) = $2
		  AND EXTRACT(YEAR FROM a.date) = $3
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, employeeID, filter.Month, filter.Year).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count my attendances: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND EXTRACT(MONTH FROM a.date) = $2
		  AND EXTRACT(YEAR FROM a.date) = $3
		ORDER BY a.date DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := q.Query(ctx, query, employeeID, filter.Month, filter.Year, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list my attendances: %w", err)
	}
	defer rows.Close()

	var results []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, false); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		results = append(results, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return results, total, nil
}

// ListByPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByPeriod(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND EXTRACT(MONTH FROM a.date) = $2
		  AND EXTRACT(YEAR FROM a.date) = $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by period: %w", err)
	}
	defer rows.Close()

	var results []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, false); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		results = append(results, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return results, nil
}

// ListEmployeeIDsWithoutRecord implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT e.id
		FROM employees e
		WHERE e.is_active = true
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $1
		  )
		ORDER BY e.employee_code ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees without record: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee ids: %w", err)
	}

	return ids, nil
}
