package report

import "context"

type ReportService interface {
	MonthlyAttendance(ctx context.Context, month, year int) (*MonthlyReport, error)
	// ExportMonthlyAttendanceXLSX renders the monthly report as a spreadsheet
	// and returns the file bytes plus a suggested filename.
	ExportMonthlyAttendanceXLSX(ctx context.Context, month, year int) ([]byte, string, error)
}
