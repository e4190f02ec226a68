package payroll

import "context"

type PayrollRepository interface {
	Create(ctx context.Context, record *Payroll) error
	GetByID(ctx context.Context, id string) (*Payroll, error)
	// GetByEmployeeAndPeriod returns nil, nil when no record exists for the
	// period. Generation relies on this to stay idempotent.
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*Payroll, error)
	// Update rewrites a draft slip in place. Regeneration replaces drafts
	// this way; finalized slips never reach it.
	Update(ctx context.Context, record *Payroll) error
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Payroll, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when nothing has been saved yet.
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, settings *Settings) error
}

type AdvanceRepository interface {
	Create(ctx context.Context, advance *Advance) error
	GetByID(ctx context.Context, id string) (*Advance, error)
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) ([]Advance, error)
	ListByPeriod(ctx context.Context, month, year int) ([]Advance, error)
	Delete(ctx context.Context, id string) error
}

type SoftLoanRepository interface {
	Create(ctx context.Context, loan *SoftLoan) error
	GetByID(ctx context.Context, id string) (*SoftLoan, error)
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]SoftLoan, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SoftLoan, error)
	// Update persists the remaining balance and settled flag after an
	// installment is withheld.
	Update(ctx context.Context, loan *SoftLoan) error
}
