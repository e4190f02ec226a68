package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetSalary(t *testing.T) {
	base := int64(5_000_000)
	allowances := []Allowance{{Type: AllowancePosition, Amount: 500_000}}
	overtime := int64(200_000)
	deductions := []Deduction{
		{Type: DeductionLate, Amount: 100_000},
		{Type: DeductionBPJSHealth, Amount: 50_000},
	}

	assert.Equal(t, int64(5_550_000), NetSalary(base, allowances, overtime, deductions))
}

// Changing any single input moves net by exactly that delta: no hidden
// clamping or rounding anywhere in the aggregation.
func TestNetSalaryLinearity(t *testing.T) {
	base := int64(5_000_000)
	allowances := []Allowance{{Type: AllowanceMeal, Amount: 300_000}}
	overtime := int64(150_000)
	deductions := []Deduction{{Type: DeductionAdvance, Amount: 400_000}}

	net := NetSalary(base, allowances, overtime, deductions)

	assert.Equal(t, net+1000, NetSalary(base+1000, allowances, overtime, deductions))
	assert.Equal(t, net+1000, NetSalary(base, allowances, overtime+1000, deductions))

	moreAllowance := []Allowance{{Type: AllowanceMeal, Amount: 301_000}}
	assert.Equal(t, net+1000, NetSalary(base, moreAllowance, overtime, deductions))

	moreDeduction := []Deduction{{Type: DeductionAdvance, Amount: 401_000}}
	assert.Equal(t, net-1000, NetSalary(base, allowances, overtime, moreDeduction))
}

func TestNetSalaryNegativeNotClamped(t *testing.T) {
	deductions := []Deduction{
		{Type: DeductionAbsence, Amount: 2_000_000},
		{Type: DeductionSoftLoan, Amount: 1_500_000},
	}
	net := NetSalary(3_000_000, nil, 0, deductions)
	assert.Equal(t, int64(-500_000), net, "negative net is surfaced, not clamped")
}

func TestNetSalaryEmptyItemizations(t *testing.T) {
	assert.Equal(t, int64(4_200_000), NetSalary(4_200_000, nil, 0, nil))
	assert.Equal(t, int64(0), TotalAllowances(nil))
	assert.Equal(t, int64(0), TotalDeductions([]Deduction{}))
}

func TestTotals(t *testing.T) {
	allowances := []Allowance{
		{Type: AllowancePosition, Amount: 500_000},
		{Type: AllowanceTransport, Amount: 250_000},
		{Type: AllowanceShift, Amount: 100_000},
	}
	deductions := []Deduction{
		{Type: DeductionBPJSHealth, Amount: 50_000},
		{Type: DeductionBPJSEmployment, Amount: 30_000},
	}
	assert.Equal(t, int64(850_000), TotalAllowances(allowances))
	assert.Equal(t, int64(80_000), TotalDeductions(deductions))
}
