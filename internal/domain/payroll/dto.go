package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karyaprima/hrops-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *GenerateRequest) Validate() error {
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

type UpdateSettingsRequest struct {
	LateDeductionPerMinute decimal.Decimal `json:"late_deduction_per_minute"`
	OvertimePayPerMinute   decimal.Decimal `json:"overtime_pay_per_minute"`
	AbsenceDeductionPerDay decimal.Decimal `json:"absence_deduction_per_day"`
	BPJSHealthAmount       int64           `json:"bpjs_health_amount"`
	BPJSEmploymentAmount   int64           `json:"bpjs_employment_amount"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if r.LateDeductionPerMinute.IsNegative() {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "late_deduction_per_minute",
			Message: "rate must not be negative",
		})
	}
	if r.OvertimePayPerMinute.IsNegative() {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "overtime_pay_per_minute",
			Message: "rate must not be negative",
		})
	}
	if r.AbsenceDeductionPerDay.IsNegative() {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "absence_deduction_per_day",
			Message: "rate must not be negative",
		})
	}
	if r.BPJSHealthAmount < 0 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "bpjs_health_amount",
			Message: "amount must not be negative",
		})
	}
	if r.BPJSEmploymentAmount < 0 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "bpjs_employment_amount",
			Message: "amount must not be negative",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

type CreateAdvanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Amount     int64   `json:"amount"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Amount <= 0 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}
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

type CreateSoftLoanRequest struct {
	EmployeeID         string `json:"employee_id"`
	TotalAmount        int64  `json:"total_amount"`
	MonthlyInstallment int64  `json:"monthly_installment"`
	StartMonth         int    `json:"start_month"`
	StartYear          int    `json:"start_year"`
}

func (r *CreateSoftLoanRequest) Validate() error {
	var validationErrors validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.TotalAmount <= 0 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "total_amount",
			Message: "total_amount must be greater than zero",
		})
	}
	if r.MonthlyInstallment <= 0 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "monthly_installment",
			Message: "monthly_installment must be greater than zero",
		})
	}
	if r.MonthlyInstallment > r.TotalAmount {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "monthly_installment",
			Message: "monthly_installment must not exceed total_amount",
		})
	}
	if r.StartMonth < 1 || r.StartMonth > 12 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "start_month",
			Message: "start_month must be between 1 and 12",
		})
	}
	if r.StartYear < 2000 || r.StartYear > 2100 {
		validationErrors = append(validationErrors, validator.ValidationError{
			Field:   "start_year",
			Message: "start_year is out of range",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

type PayrollFilter struct {
	Month      int
	Year       int
	EmployeeID string
	Page       int
	Limit      int
}

type PayrollItemResponse struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

type PayrollResponse struct {
	ID             string                `json:"id"`
	EmployeeID     string                `json:"employee_id"`
	EmployeeName   *string               `json:"employee_name,omitempty"`
	EmployeeCode   *string               `json:"employee_code,omitempty"`
	PeriodMonth    int                   `json:"period_month"`
	PeriodYear     int                   `json:"period_year"`
	BaseSalary     int64                 `json:"base_salary"`
	Allowances     []PayrollItemResponse `json:"allowances"`
	OvertimeAmount int64                 `json:"overtime_amount"`
	Deductions     []PayrollItemResponse `json:"deductions"`
	NetSalary      int64                 `json:"net_salary"`
	Status         string                `json:"status"`
	GeneratedAt    string                `json:"generated_at"`
}

// ToResponse flattens a record for the HTTP layer.
func ToResponse(p *Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		EmployeeName:   p.EmployeeName,
		EmployeeCode:   p.EmployeeCode,
		PeriodMonth:    p.PeriodMonth,
		PeriodYear:     p.PeriodYear,
		BaseSalary:     p.BaseSalary,
		OvertimeAmount: p.OvertimeAmount,
		NetSalary:      p.NetSalary,
		Status:         p.Status,
		GeneratedAt:    p.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Allowances:     make([]PayrollItemResponse, 0, len(p.Allowances)),
		Deductions:     make([]PayrollItemResponse, 0, len(p.Deductions)),
	}
	for _, a := range p.Allowances {
		resp.Allowances = append(resp.Allowances, PayrollItemResponse{Type: string(a.Type), Amount: a.Amount})
	}
	for _, d := range p.Deductions {
		resp.Deductions = append(resp.Deductions, PayrollItemResponse{Type: string(d.Type), Amount: d.Amount})
	}
	return resp
}

type SettingsResponse struct {
	LateDeductionPerMinute decimal.Decimal `json:"late_deduction_per_minute"`
	OvertimePayPerMinute   decimal.Decimal `json:"overtime_pay_per_minute"`
	AbsenceDeductionPerDay decimal.Decimal `json:"absence_deduction_per_day"`
	BPJSHealthAmount       int64           `json:"bpjs_health_amount"`
	BPJSEmploymentAmount   int64           `json:"bpjs_employment_amount"`
	UpdatedAt              string          `json:"updated_at"`
}

func ToSettingsResponse(s *Settings) SettingsResponse {
	return SettingsResponse{
		LateDeductionPerMinute: s.LateDeductionPerMinute,
		OvertimePayPerMinute:   s.OvertimePayPerMinute,
		AbsenceDeductionPerDay: s.AbsenceDeductionPerDay,
		BPJSHealthAmount:       s.BPJSHealthAmount,
		BPJSEmploymentAmount:   s.BPJSEmploymentAmount,
		UpdatedAt:              s.UpdatedAt.Format(time.RFC3339),
	}
}

type AdvanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Amount     int64   `json:"amount"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Reason     *string `json:"reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func ToAdvanceResponse(a *Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Amount:     a.Amount,
		Month:      a.Month,
		Year:       a.Year,
		Reason:     a.Reason,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

type SoftLoanResponse struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	TotalAmount        int64  `json:"total_amount"`
	MonthlyInstallment int64  `json:"monthly_installment"`
	RemainingAmount    int64  `json:"remaining_amount"`
	StartMonth         int    `json:"start_month"`
	StartYear          int    `json:"start_year"`
	IsSettled          bool   `json:"is_settled"`
	CreatedAt          string `json:"created_at"`
}

func ToSoftLoanResponse(l *SoftLoan) SoftLoanResponse {
	return SoftLoanResponse{
		ID:                 l.ID,
		EmployeeID:         l.EmployeeID,
		TotalAmount:        l.TotalAmount,
		MonthlyInstallment: l.MonthlyInstallment,
		RemainingAmount:    l.RemainingAmount,
		StartMonth:         l.StartMonth,
		StartYear:          l.StartYear,
		IsSettled:          l.IsSettled,
		CreatedAt:          l.CreatedAt.Format(time.RFC3339),
	}
}
