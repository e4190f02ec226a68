package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

// Payroll record status.
const (
	StatusDraft = "DRAFT"
	StatusFinal = "FINAL"
	StatusPaid  = "PAID"
)

// Payroll is one generated pay slip for an (employee, month, year) period.
// All amounts are int64 rupiah; NetSalary may be negative and is stored
// as computed.
type Payroll struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	BaseSalary     int64
	Allowances     []rules.Allowance
	OvertimeAmount int64
	Deductions     []rules.Deduction
	NetSalary      int64

	Status      string
	GeneratedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
}

// Settings holds the per-minute monetary rates payroll generation applies to
// the attendance aggregates. Rates are decimals; the product is rounded down
// to whole rupiah at aggregation time.
type Settings struct {
	ID                     string
	LateDeductionPerMinute decimal.Decimal
	OvertimePayPerMinute   decimal.Decimal
	AbsenceDeductionPerDay decimal.Decimal
	BPJSHealthAmount       int64
	BPJSEmploymentAmount   int64
	UpdatedAt              time.Time
}

// DefaultSettings returns the fallback used before an admin has saved any.
func DefaultSettings() Settings {
	return Settings{
		LateDeductionPerMinute: decimal.Zero,
		OvertimePayPerMinute:   decimal.Zero,
		AbsenceDeductionPerDay: decimal.Zero,
	}
}

// Advance is a salary advance paid out mid-period and withheld from the pay
// slip of the same (month, year) window.
type Advance struct {
	ID         string
	EmployeeID string
	Amount     int64
	Month      int
	Year       int
	Reason     *string
	CreatedAt  time.Time
}

// SoftLoan is an interest-free company loan repaid in monthly installments.
// Each period deducts one installment until the remaining balance is zero.
type SoftLoan struct {
	ID                 string
	EmployeeID         string
	TotalAmount        int64
	MonthlyInstallment int64
	RemainingAmount    int64
	StartMonth         int
	StartYear          int
	IsSettled          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InstallmentDue returns the deduction this period takes from the loan: the
// monthly installment, capped by what is still owed.
func (l *SoftLoan) InstallmentDue() int64 {
	if l.IsSettled || l.RemainingAmount <= 0 {
		return 0
	}
	if l.RemainingAmount < l.MonthlyInstallment {
		return l.RemainingAmount
	}
	return l.MonthlyInstallment
}
