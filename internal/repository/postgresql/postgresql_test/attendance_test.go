package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/repository/postgresql"
)

func seedEmployee(t *testing.T, repo employee.EmployeeRepository, code string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     "Budi Santoso",
		Position:     "Operator Produksi",
		BaseSalary:   4_500_000,
		HireDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	})
	require.NoError(t, err)
	return emp
}

func TestAttendanceCreateAndGetByEmployeeAndDate(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "attendances", "employees")

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	emp := seedEmployee(t, employeeRepo, "2024-0001")

	day := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(8 * time.Hour)

	created, err := attendanceRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID:     emp.ID,
		Date:           day,
		CheckIn:        &checkIn,
		Status:         attendance.StatusPresent,
		ApprovalStatus: attendance.ApprovalPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := attendanceRepo.GetByEmployeeAndDate(context.Background(), emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.CheckIn)
	assert.True(t, found.CheckIn.Equal(checkIn))

	missing, err := attendanceRepo.GetByEmployeeAndDate(context.Background(), emp.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceUniquePerEmployeeAndDate(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "attendances", "employees")

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	emp := seedEmployee(t, employeeRepo, "2024-0002")

	day := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(8 * time.Hour)
	record := attendance.Attendance{
		EmployeeID:     emp.ID,
		Date:           day,
		CheckIn:        &checkIn,
		Status:         attendance.StatusPresent,
		ApprovalStatus: attendance.ApprovalPending,
	}

	_, err := attendanceRepo.Create(context.Background(), record)
	require.NoError(t, err)

	// Second insert for the same (employee, date) loses the race on the
	// unique index.
	_, err = attendanceRepo.Create(context.Background(), record)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceUpdate(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db, "attendances", "employees")

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	emp := seedEmployee(t, employeeRepo, "2024-0003")

	day := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(8 * time.Hour)

	created, err := attendanceRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID:     emp.ID,
		Date:           day,
		CheckIn:        &checkIn,
		Status:         attendance.StatusPresent,
		ApprovalStatus: attendance.ApprovalPending,
	})
	require.NoError(t, err)

	checkOut := day.Add(17 * time.Hour)
	created.CheckOut = &checkOut
	require.NoError(t, attendanceRepo.Update(context.Background(), created))

	stored, err := attendanceRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CheckOut)
	assert.True(t, stored.CheckOut.Equal(checkOut))
}
