package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/karyaprima/hrops-backend-go/internal/domain/report"
	"github.com/karyaprima/hrops-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyAttendance(w http.ResponseWriter, r *http.Request)
	ExportMonthlyAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportPeriod(r *http.Request) (int, int) {
	now := time.Now()
	return getIntQueryParam(r, "month", int(now.Month())), getIntQueryParam(r, "year", now.Year())
}

// MonthlyAttendance implements ReportHandler.
func (h *reportHandlerImpl) MonthlyAttendance(w http.ResponseWriter, r *http.Request) {
	month, year := reportPeriod(r)

	req := report.MonthlyReportRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.MonthlyAttendance(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyAttendance implements ReportHandler.
func (h *reportHandlerImpl) ExportMonthlyAttendance(w http.ResponseWriter, r *http.Request) {
	month, year := reportPeriod(r)

	req := report.MonthlyReportRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	data, filename, err := h.reportService.ExportMonthlyAttendanceXLSX(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
