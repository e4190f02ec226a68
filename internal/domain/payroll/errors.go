package payroll

import "errors"

var (
	ErrPayrollNotFound        = errors.New("payroll record not found")
	ErrPayrollAlreadyExists   = errors.New("payroll for this period already generated")
	ErrPayrollAlreadyFinal    = errors.New("payroll record is already finalized")
	ErrSettingsNotFound       = errors.New("payroll settings not found")
	ErrAdvanceNotFound        = errors.New("salary advance not found")
	ErrAdvanceExceedsSalary   = errors.New("advance amount exceeds employee base salary")
	ErrSoftLoanNotFound       = errors.New("soft loan not found")
	ErrSoftLoanAlreadySettled = errors.New("soft loan is already settled")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
)
