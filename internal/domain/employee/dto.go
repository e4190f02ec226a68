package employee

import (
	"time"

	"github.com/karyaprima/hrops-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	NIK          *string `json:"nik,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Position     string  `json:"position"`
	BaseSalary   int64   `json:"base_salary"`

	PositionAllowance  int64 `json:"position_allowance"`
	MealAllowance      int64 `json:"meal_allowance"`
	TransportAllowance int64 `json:"transport_allowance"`

	HireDate string `json:"hire_date"` // "2006-01-02"

	// Login account provisioned together with the employee record.
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee code must match NNNN-NNNN",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full name is required",
		})
	}
	if r.NIK != nil && !validator.IsValidNIK(*r.NIK) {
		errs = append(errs, validator.ValidationError{
			Field:   "nik",
			Message: "NIK must be 16 digits",
		})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}
	if r.BaseSalary <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base salary must be greater than zero",
		})
	}
	if r.PositionAllowance < 0 || r.MealAllowance < 0 || r.TransportAllowance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowances",
			Message: "allowances must not be negative",
		})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire date must be YYYY-MM-DD",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "valid email is required",
		})
	}
	if !validator.MinRunes(r.Password, 8) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if !validator.IsInSlice(r.Role, []string{"admin", "manager", "foreman", "employee"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, manager, foreman, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string  `json:"-"`
	FullName   string  `json:"full_name"`
	NIK        *string `json:"nik,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   string  `json:"position"`
	BaseSalary int64   `json:"base_salary"`

	PositionAllowance  int64 `json:"position_allowance"`
	MealAllowance      int64 `json:"meal_allowance"`
	TransportAllowance int64 `json:"transport_allowance"`

	IsActive bool `json:"is_active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full name is required",
		})
	}
	if r.NIK != nil && !validator.IsValidNIK(*r.NIK) {
		errs = append(errs, validator.ValidationError{
			Field:   "nik",
			Message: "NIK must be 16 digits",
		})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}
	if r.BaseSalary <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base salary must be greater than zero",
		})
	}
	if r.PositionAllowance < 0 || r.MealAllowance < 0 || r.TransportAllowance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowances",
			Message: "allowances must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	NIK          *string `json:"nik,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Position     string  `json:"position"`
	BaseSalary   int64   `json:"base_salary"`

	PositionAllowance  int64 `json:"position_allowance"`
	MealAllowance      int64 `json:"meal_allowance"`
	TransportAllowance int64 `json:"transport_allowance"`

	HireDate string `json:"hire_date"`
	IsActive bool   `json:"is_active"`
}

func ToResponse(e *Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		EmployeeCode:       e.EmployeeCode,
		FullName:           e.FullName,
		NIK:                e.NIK,
		Phone:              e.Phone,
		Position:           e.Position,
		BaseSalary:         e.BaseSalary,
		PositionAllowance:  e.PositionAllowance,
		MealAllowance:      e.MealAllowance,
		TransportAllowance: e.TransportAllowance,
		HireDate:           e.HireDate.Format(time.DateOnly),
		IsActive:           e.IsActive,
	}
}
