package payroll

import "context"

type PayrollService interface {
	// Generate builds one pay slip per active employee for the period.
	// Existing drafts are replaced; finalized slips are left alone.
	Generate(ctx context.Context, req GenerateRequest) ([]Payroll, error)
	// GenerateForPeriod is Generate without the admin claims requirement.
	// The monthly cron job calls it directly.
	GenerateForPeriod(ctx context.Context, month, year int) ([]Payroll, error)
	Get(ctx context.Context, id string) (*Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int, error)
	GetMyPayroll(ctx context.Context, employeeID string, limit int) ([]Payroll, error)
	Finalize(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error)

	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (*Advance, error)
	DeleteAdvance(ctx context.Context, id string) error
	ListAdvances(ctx context.Context, month, year int) ([]Advance, error)

	CreateSoftLoan(ctx context.Context, req CreateSoftLoanRequest) (*SoftLoan, error)
	ListSoftLoans(ctx context.Context, employeeID string) ([]SoftLoan, error)
}
