package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
	}
}

// MonthlyAttendance implements report.ReportService.
func (r *ReportServiceImpl) MonthlyAttendance(ctx context.Context, month, year int) (*report.MonthlyReport, error) {
	req := report.MonthlyReportRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := r.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	summaries := make([]report.EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		records, err := r.AttendanceRepository.ListByPeriod(ctx, emp.ID, month, year)
		if err != nil {
			return nil, fmt.Errorf("failed to load attendance for %s: %w", emp.EmployeeCode, err)
		}

		summary := report.EmployeeSummary{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.EmployeeCode,
			EmployeeName: emp.FullName,
			Position:     emp.Position,
		}

		for _, rec := range records {
			switch rec.Status {
			case attendance.StatusAbsent:
				summary.AbsentDays++
			case attendance.StatusLate:
				summary.PresentDays++
				summary.LateDays++
			default:
				summary.PresentDays++
			}
			summary.TotalLateMinutes += rec.LateMinutes
			if rec.OvertimeMinutes > 0 && rec.IsOvertimeApproved {
				summary.TotalOvertimeMinutes += rec.OvertimeMinutes
			}
			if rec.IsSundayWork {
				summary.SundayWorkDays++
			}
			if rec.NeedsApproval() {
				summary.PendingApprovals++
			}
		}

		summaries = append(summaries, summary)
	}

	return &report.MonthlyReport{
		Month:     month,
		Year:      year,
		Summaries: summaries,
	}, nil
}

var exportHeaders = []string{
	"Employee Code", "Name", "Position",
	"Present Days", "Late Days", "Absent Days",
	"Late Minutes", "Overtime Minutes", "Sunday Work Days", "Pending Approvals",
}

// ExportMonthlyAttendanceXLSX implements report.ReportService.
func (r *ReportServiceImpl) ExportMonthlyAttendanceXLSX(ctx context.Context, month, year int) ([]byte, string, error) {
	monthly, err := r.MonthlyAttendance(ctx, month, year)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, s := range monthly.Summaries {
		values := []interface{}{
			s.EmployeeCode, s.EmployeeName, s.Position,
			s.PresentDays, s.LateDays, s.AbsentDays,
			s.TotalLateMinutes, s.TotalOvertimeMinutes, s.SundayWorkDays, s.PendingApprovals,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	filename := fmt.Sprintf("attendance_%04d_%02d.xlsx", year, month)
	return buf.Bytes(), filename, nil
}
