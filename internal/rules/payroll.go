package rules

// Payroll amounts are int64 rupiah (the smallest currency unit). The
// aggregator is plain arithmetic: it never clamps, so an employee whose
// deductions exceed earnings surfaces a negative net instead of a silent
// zero.

type AllowanceType string

const (
	AllowancePosition  AllowanceType = "POSITION"
	AllowanceMeal      AllowanceType = "MEAL"
	AllowanceTransport AllowanceType = "TRANSPORT"
	AllowanceShift     AllowanceType = "SHIFT"
	AllowanceOther     AllowanceType = "OTHER"
)

type DeductionType string

const (
	DeductionLate           DeductionType = "LATE"
	DeductionAbsence        DeductionType = "ABSENCE"
	DeductionBPJSHealth     DeductionType = "BPJS_HEALTH"
	DeductionBPJSEmployment DeductionType = "BPJS_EMPLOYMENT"
	DeductionAdvance        DeductionType = "ADVANCE"
	DeductionSoftLoan       DeductionType = "SOFT_LOAN_INSTALLMENT"
	DeductionOther          DeductionType = "OTHER"
)

// Allowance is one named, itemized earning component.
type Allowance struct {
	Type   AllowanceType `json:"type"`
	Amount int64         `json:"amount"`
}

// Deduction is one named, itemized deduction component.
type Deduction struct {
	Type   DeductionType `json:"type"`
	Amount int64         `json:"amount"`
}

// TotalAllowances sums the itemized allowances.
func TotalAllowances(allowances []Allowance) int64 {
	var total int64
	for _, a := range allowances {
		total += a.Amount
	}
	return total
}

// TotalDeductions sums the itemized deductions.
func TotalDeductions(deductions []Deduction) int64 {
	var total int64
	for _, d := range deductions {
		total += d.Amount
	}
	return total
}

// NetSalary aggregates one pay period:
//
//	net = base + sum(allowances) + overtime - sum(deductions)
func NetSalary(base int64, allowances []Allowance, overtimeAmount int64, deductions []Deduction) int64 {
	return base + TotalAllowances(allowances) + overtimeAmount - TotalDeductions(deductions)
}
