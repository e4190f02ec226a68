package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/notification"
	"github.com/karyaprima/hrops-backend-go/internal/domain/payroll"
	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

type AttendanceJobs struct {
	attendanceRepo  attendance.AttendanceRepository
	userRepo        user.UserRepository
	payrollSvc      payroll.PayrollService
	notificationSvc notification.Service
	engine          *rules.Engine
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	payrollSvc payroll.PayrollService,
	notificationSvc notification.Service,
	engine *rules.Engine,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:  attendanceRepo,
		userRepo:        userRepo,
		payrollSvc:      payrollSvc,
		notificationSvc: notificationSvc,
		engine:          engine,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
	scheduler.AddJob("generate_monthly_payroll", 1*time.Hour, j.GenerateMonthlyPayroll)
}

// MarkAbsentEmployees writes an ABSENT record for every active employee with
// no attendance on the previous working day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	loc := j.engine.Location()
	now := time.Now().In(loc)

	// Only run in the first hour after midnight local time.
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, loc)

	return j.markAbsentForDay(ctx, day)
}

// markAbsentForDay marks every active employee without a record on day as
// absent. Sundays and holidays are skipped: absence only exists where regular
// hours do.
func (j *AttendanceJobs) markAbsentForDay(ctx context.Context, day time.Time) error {
	workday := j.engine.ClassifyWorkday(day)
	if workday == rules.Sunday || workday == rules.Holiday {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job", "date", day.Format("2006-01-02"))

	employeeIDs, err := j.attendanceRepo.ListEmployeeIDsWithoutRecord(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list employees without record: %w", err)
	}

	marked := 0
	for _, employeeID := range employeeIDs {
		record := attendance.Attendance{
			EmployeeID:     employeeID,
			Date:           day,
			Status:         attendance.StatusAbsent,
			ApprovalStatus: attendance.ApprovalPending,
		}
		if _, err := j.attendanceRepo.Create(ctx, record); err != nil {
			slog.Error("Cron: Failed to mark employee absent",
				"employee_id", employeeID, "error", err)
			continue
		}
		marked++

		if j.notificationSvc != nil {
			if owner, err := j.userRepo.GetByEmployeeID(ctx, employeeID); err == nil {
				_ = j.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
					RecipientID: owner.ID,
					Type:        notification.TypeMarkedAbsent,
					Title:       "Marked absent",
					Message:     fmt.Sprintf("You were marked absent for %s", day.Format("2006-01-02")),
					Data:        map[string]interface{}{"date": day.Format("2006-01-02")},
				})
			}
		}
	}

	slog.Info("Cron: Marked absent employees", "count", marked)
	return nil
}

// GenerateMonthlyPayroll builds pay slips for the previous month on the first
// day of each month. Generation is idempotent, so rerunning within the hour
// window is harmless.
func (j *AttendanceJobs) GenerateMonthlyPayroll(ctx context.Context) error {
	loc := j.engine.Location()
	now := time.Now().In(loc)

	if now.Day() != 1 || now.Hour() != 2 {
		return nil
	}

	previous := now.AddDate(0, -1, 0)
	month := int(previous.Month())
	year := previous.Year()

	slog.Info("Cron: Starting monthly payroll generation", "month", month, "year", year)

	generated, err := j.payrollSvc.GenerateForPeriod(ctx, month, year)
	if err != nil {
		return fmt.Errorf("failed to generate payroll for %02d/%d: %w", month, year, err)
	}

	slog.Info("Cron: Monthly payroll generated", "count", len(generated))
	return nil
}
