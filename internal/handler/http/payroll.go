package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/karyaprima/hrops-backend-go/internal/domain/payroll"
	"github.com/karyaprima/hrops-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyPayroll(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	CreateAdvance(w http.ResponseWriter, r *http.Request)
	DeleteAdvance(w http.ResponseWriter, r *http.Request)
	ListAdvances(w http.ResponseWriter, r *http.Request)
	CreateSoftLoan(w http.ResponseWriter, r *http.Request)
	ListSoftLoans(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	slips, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]payroll.PayrollResponse, 0, len(slips))
	for i := range slips {
		results = append(results, payroll.ToResponse(&slips[i]))
	}
	response.Created(w, "Payroll generated", results)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	filter := payroll.PayrollFilter{
		Month:      getIntQueryParam(r, "month", int(now.Month())),
		Year:       getIntQueryParam(r, "year", now.Year()),
		EmployeeID: r.URL.Query().Get("employee_id"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}

	slips, total, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]payroll.PayrollResponse, 0, len(slips))
	for i := range slips {
		results = append(results, payroll.ToResponse(&slips[i]))
	}
	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: int64(total),
		TotalPages: totalPages(int64(total), filter.Limit),
	})
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll id is required", nil)
		return
	}

	slip, err := h.payrollService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToResponse(slip))
}

// GetMyPayroll implements PayrollHandler.
func (h *payrollHandlerImpl) GetMyPayroll(w http.ResponseWriter, r *http.Request) {
	_, claims, _ := jwtauth.FromContext(r.Context())
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		response.Forbidden(w, "No employee record linked to this account")
		return
	}

	slips, err := h.payrollService.GetMyPayroll(r.Context(), employeeID, getIntQueryParam(r, "limit", 12))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]payroll.PayrollResponse, 0, len(slips))
	for i := range slips {
		results = append(results, payroll.ToResponse(&slips[i]))
	}
	response.Success(w, results)
}

// Finalize implements PayrollHandler.
func (h *payrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll id is required", nil)
		return
	}

	if err := h.payrollService.Finalize(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll finalized", nil)
}

// GetSettings implements PayrollHandler.
func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.payrollService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToSettingsResponse(settings))
}

// UpdateSettings implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	settings, err := h.payrollService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll settings updated", payroll.ToSettingsResponse(settings))
}

// CreateAdvance implements PayrollHandler.
func (h *payrollHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	advance, err := h.payrollService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance recorded", payroll.ToAdvanceResponse(advance))
}

// DeleteAdvance implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteAdvance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Advance id is required", nil)
		return
	}

	if err := h.payrollService.DeleteAdvance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance deleted", nil)
}

// ListAdvances implements PayrollHandler.
func (h *payrollHandlerImpl) ListAdvances(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := getIntQueryParam(r, "month", int(now.Month()))
	year := getIntQueryParam(r, "year", now.Year())

	advances, err := h.payrollService.ListAdvances(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]payroll.AdvanceResponse, 0, len(advances))
	for i := range advances {
		results = append(results, payroll.ToAdvanceResponse(&advances[i]))
	}
	response.Success(w, results)
}

// CreateSoftLoan implements PayrollHandler.
func (h *payrollHandlerImpl) CreateSoftLoan(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSoftLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	loan, err := h.payrollService.CreateSoftLoan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Soft loan recorded", payroll.ToSoftLoanResponse(loan))
}

// ListSoftLoans implements PayrollHandler.
func (h *payrollHandlerImpl) ListSoftLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.payrollService.ListSoftLoans(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]payroll.SoftLoanResponse, 0, len(loans))
	for i := range loans {
		results = append(results, payroll.ToSoftLoanResponse(&loans[i]))
	}
	response.Success(w, results)
}
