package report

import (
	"github.com/karyaprima/hrops-backend-go/internal/pkg/validator"
)

type MonthlyReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

// EmployeeSummary aggregates one employee's attendance over a period.
type EmployeeSummary struct {
	EmployeeID           string `json:"employee_id"`
	EmployeeCode         string `json:"employee_code"`
	EmployeeName         string `json:"employee_name"`
	Position             string `json:"position"`
	PresentDays          int    `json:"present_days"`
	LateDays             int    `json:"late_days"`
	AbsentDays           int    `json:"absent_days"`
	TotalLateMinutes     int    `json:"total_late_minutes"`
	TotalOvertimeMinutes int    `json:"total_overtime_minutes"`
	SundayWorkDays       int    `json:"sunday_work_days"`
	PendingApprovals     int    `json:"pending_approvals"`
}

// MonthlyReport is the full report for one period.
type MonthlyReport struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Summaries []EmployeeSummary `json:"summaries"`
}
