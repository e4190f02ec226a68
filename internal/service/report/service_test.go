package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error {
	return nil
}

type fakeAttendanceRepo struct {
	byEmployee map[string][]attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByPeriod(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	return f.byEmployee[employeeID], nil
}

func (f *fakeAttendanceRepo) ListEmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	return nil, nil
}

func testRepos() (*fakeAttendanceRepo, *fakeEmployeeRepo) {
	employees := []employee.Employee{
		{ID: "emp-1", EmployeeCode: "2024-0001", FullName: "Budi Santoso", Position: "Operator", IsActive: true},
		{ID: "emp-2", EmployeeCode: "2024-0002", FullName: "Siti Rahayu", Position: "Supervisor", IsActive: true},
	}

	records := map[string][]attendance.Attendance{
		"emp-1": {
			{Status: attendance.StatusPresent},
			{Status: attendance.StatusLate, LateMinutes: 20},
			{Status: attendance.StatusAbsent},
			{
				Status:          attendance.StatusPresent,
				OvertimeMinutes: 90,
				ApprovalStatus:  attendance.ApprovalPending,
			},
			{
				Status:               attendance.StatusPresent,
				OvertimeMinutes:      60,
				IsOvertimeApproved:   true,
				IsSundayWork:         true,
				IsSundayWorkApproved: true,
				ApprovalStatus:       attendance.ApprovalApproved,
			},
		},
		"emp-2": {
			{Status: attendance.StatusPresent},
		},
	}

	return &fakeAttendanceRepo{byEmployee: records}, &fakeEmployeeRepo{employees: employees}
}

func TestMonthlyAttendanceAggregation(t *testing.T) {
	attRepo, empRepo := testRepos()
	svc := NewReportService(attRepo, empRepo)

	monthly, err := svc.MonthlyAttendance(context.Background(), 7, 2026)
	require.NoError(t, err)

	require.Len(t, monthly.Summaries, 2)
	first := monthly.Summaries[0]
	assert.Equal(t, "2024-0001", first.EmployeeCode)
	assert.Equal(t, 4, first.PresentDays)
	assert.Equal(t, 1, first.LateDays)
	assert.Equal(t, 1, first.AbsentDays)
	assert.Equal(t, 20, first.TotalLateMinutes)
	assert.Equal(t, 60, first.TotalOvertimeMinutes, "pending overtime minutes do not count")
	assert.Equal(t, 1, first.SundayWorkDays)
	assert.Equal(t, 1, first.PendingApprovals)

	second := monthly.Summaries[1]
	assert.Equal(t, 1, second.PresentDays)
	assert.Zero(t, second.LateDays)
	assert.Zero(t, second.PendingApprovals)
}

func TestMonthlyAttendanceRejectsBadPeriod(t *testing.T) {
	attRepo, empRepo := testRepos()
	svc := NewReportService(attRepo, empRepo)

	_, err := svc.MonthlyAttendance(context.Background(), 13, 2026)
	assert.Error(t, err)

	_, err = svc.MonthlyAttendance(context.Background(), 0, 2026)
	assert.Error(t, err)
}

func TestExportMonthlyAttendanceXLSX(t *testing.T) {
	attRepo, empRepo := testRepos()
	svc := NewReportService(attRepo, empRepo)

	data, filename, err := svc.ExportMonthlyAttendanceXLSX(context.Background(), 7, 2026)
	require.NoError(t, err)
	assert.Equal(t, "attendance_2026_07.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per employee")
	assert.Equal(t, "Employee Code", rows[0][0])
	assert.Equal(t, "2024-0001", rows[1][0])
	assert.Equal(t, "Siti Rahayu", rows[2][1])
}
