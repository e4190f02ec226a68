package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/domain/payroll"
	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:                 "emp-1",
		EmployeeCode:       "2024-0001",
		FullName:           "Budi Santoso",
		Position:           "Operator",
		BaseSalary:         5_000_000,
		PositionAllowance:  500_000,
		MealAllowance:      300_000,
		TransportAllowance: 200_000,
		IsActive:           true,
	}
}

func testSettings() payroll.Settings {
	return payroll.Settings{
		LateDeductionPerMinute: decimal.NewFromInt(1000),
		OvertimePayPerMinute:   decimal.NewFromInt(500),
		AbsenceDeductionPerDay: decimal.NewFromInt(150_000),
		BPJSHealthAmount:       50_000,
		BPJSEmploymentAmount:   30_000,
	}
}

func deductionAmount(slip payroll.Payroll, typ rules.DeductionType) (int64, bool) {
	for _, d := range slip.Deductions {
		if d.Type == typ {
			return d.Amount, true
		}
	}
	return 0, false
}

func TestBuildSlipAggregatesAttendance(t *testing.T) {
	records := []attendance.Attendance{
		{Status: attendance.StatusLate, LateMinutes: 15},
		{Status: attendance.StatusPresent, OvertimeMinutes: 60, IsOvertimeApproved: true},
		{Status: attendance.StatusAbsent},
	}

	slip := buildSlip(testEmployee(), records, testSettings(), nil, nil, 7, 2026, time.Now())

	assert.Equal(t, int64(5_000_000), slip.BaseSalary)
	assert.Equal(t, 7, slip.PeriodMonth)
	assert.Equal(t, 2026, slip.PeriodYear)
	assert.Equal(t, payroll.StatusDraft, slip.Status)

	// 60 approved overtime minutes at 500/minute.
	assert.Equal(t, int64(30_000), slip.OvertimeAmount)

	late, ok := deductionAmount(slip, rules.DeductionLate)
	require.True(t, ok)
	assert.Equal(t, int64(15_000), late)

	absence, ok := deductionAmount(slip, rules.DeductionAbsence)
	require.True(t, ok)
	assert.Equal(t, int64(150_000), absence)

	health, ok := deductionAmount(slip, rules.DeductionBPJSHealth)
	require.True(t, ok)
	assert.Equal(t, int64(50_000), health)

	employment, ok := deductionAmount(slip, rules.DeductionBPJSEmployment)
	require.True(t, ok)
	assert.Equal(t, int64(30_000), employment)

	assert.Len(t, slip.Allowances, 3)
	assert.Equal(t,
		rules.NetSalary(slip.BaseSalary, slip.Allowances, slip.OvertimeAmount, slip.Deductions),
		slip.NetSalary)
}

func TestBuildSlipOnlyApprovedOvertimeEarns(t *testing.T) {
	records := []attendance.Attendance{
		{Status: attendance.StatusPresent, OvertimeMinutes: 90, IsOvertimeApproved: false},
		{Status: attendance.StatusPresent, OvertimeMinutes: 45, IsOvertimeApproved: true, IsSundayWork: true, IsSundayWorkApproved: false},
		{Status: attendance.StatusPresent, OvertimeMinutes: 30, IsOvertimeApproved: true},
	}

	slip := buildSlip(testEmployee(), records, testSettings(), nil, nil, 7, 2026, time.Now())

	// Only the 30 fully approved minutes count.
	assert.Equal(t, int64(15_000), slip.OvertimeAmount)
}

func TestBuildSlipWithholdsAdvances(t *testing.T) {
	advances := []payroll.Advance{
		{EmployeeID: "emp-1", Amount: 400_000, Month: 7, Year: 2026},
		{EmployeeID: "emp-1", Amount: 100_000, Month: 7, Year: 2026},
	}

	slip := buildSlip(testEmployee(), nil, payroll.DefaultSettings(), advances, nil, 7, 2026, time.Now())

	var total int64
	for _, d := range slip.Deductions {
		if d.Type == rules.DeductionAdvance {
			total += d.Amount
		}
	}
	assert.Equal(t, int64(500_000), total)
}

func TestBuildSlipSoftLoanInstallment(t *testing.T) {
	loan := &payroll.SoftLoan{
		EmployeeID:         "emp-1",
		TotalAmount:        1_000_000,
		MonthlyInstallment: 400_000,
		RemainingAmount:    600_000,
		StartMonth:         5,
		StartYear:          2026,
	}

	slip := buildSlip(testEmployee(), nil, payroll.DefaultSettings(), nil, []*payroll.SoftLoan{loan}, 7, 2026, time.Now())

	due, ok := deductionAmount(slip, rules.DeductionSoftLoan)
	require.True(t, ok)
	assert.Equal(t, int64(400_000), due)
	// Drafts never move the loan balance; that happens at finalization.
	assert.Equal(t, int64(600_000), loan.RemainingAmount)
	assert.False(t, loan.IsSettled)
}

func TestBuildSlipSoftLoanFinalInstallmentCapped(t *testing.T) {
	loan := &payroll.SoftLoan{
		EmployeeID:         "emp-1",
		TotalAmount:        1_000_000,
		MonthlyInstallment: 400_000,
		RemainingAmount:    250_000,
		StartMonth:         5,
		StartYear:          2026,
	}

	slip := buildSlip(testEmployee(), nil, payroll.DefaultSettings(), nil, []*payroll.SoftLoan{loan}, 7, 2026, time.Now())

	due, ok := deductionAmount(slip, rules.DeductionSoftLoan)
	require.True(t, ok)
	assert.Equal(t, int64(250_000), due, "final installment is capped at the remaining balance")
	assert.Equal(t, int64(250_000), loan.RemainingAmount)
	assert.False(t, loan.IsSettled)
}

func TestBuildSlipNegativeNetNotClamped(t *testing.T) {
	emp := testEmployee()
	emp.BaseSalary = 1_000_000
	emp.PositionAllowance = 0
	emp.MealAllowance = 0
	emp.TransportAllowance = 0

	advances := []payroll.Advance{{EmployeeID: emp.ID, Amount: 1_500_000, Month: 7, Year: 2026}}

	slip := buildSlip(emp, nil, payroll.DefaultSettings(), advances, nil, 7, 2026, time.Now())

	assert.Equal(t, int64(-500_000), slip.NetSalary)
}

func TestBuildSlipZeroRatesSkipRateDeductions(t *testing.T) {
	records := []attendance.Attendance{
		{Status: attendance.StatusLate, LateMinutes: 30},
		{Status: attendance.StatusAbsent},
	}

	slip := buildSlip(testEmployee(), records, payroll.DefaultSettings(), nil, nil, 7, 2026, time.Now())

	// Zero rates produce zero-amount deductions; they are still itemized for
	// the minutes and days but contribute nothing to net.
	assert.Equal(t, int64(0), slip.OvertimeAmount)
	assert.Equal(t,
		rules.NetSalary(slip.BaseSalary, slip.Allowances, 0, slip.Deductions),
		slip.NetSalary)
}

func TestRupiahFloorsFractions(t *testing.T) {
	rate := decimal.RequireFromString("333.33")
	assert.Equal(t, int64(999), rupiah(rate.Mul(decimal.NewFromInt(3))))
	assert.Equal(t, int64(0), rupiah(decimal.RequireFromString("0.99")))
}
