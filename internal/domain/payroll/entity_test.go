package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftLoanInstallmentDue(t *testing.T) {
	loan := SoftLoan{
		TotalAmount:        1_200_000,
		MonthlyInstallment: 200_000,
		RemainingAmount:    600_000,
	}
	assert.Equal(t, int64(200_000), loan.InstallmentDue())
}

func TestSoftLoanInstallmentDueCappedByRemaining(t *testing.T) {
	loan := SoftLoan{
		TotalAmount:        1_200_000,
		MonthlyInstallment: 200_000,
		RemainingAmount:    150_000,
	}
	assert.Equal(t, int64(150_000), loan.InstallmentDue())
}

func TestSoftLoanInstallmentDueSettled(t *testing.T) {
	settled := SoftLoan{
		MonthlyInstallment: 200_000,
		RemainingAmount:    200_000,
		IsSettled:          true,
	}
	assert.Zero(t, settled.InstallmentDue())

	paid := SoftLoan{
		MonthlyInstallment: 200_000,
		RemainingAmount:    0,
	}
	assert.Zero(t, paid.InstallmentDue())
}
