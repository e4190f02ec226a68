package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/domain/payroll"
)

type fakePayrollRepo struct {
	existing map[string]*payroll.Payroll
	created  []payroll.Payroll
	updated  []payroll.Payroll
}

func periodKey(employeeID string, month, year int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01") + "/" + employeeID
}

func (f *fakePayrollRepo) Create(_ context.Context, record *payroll.Payroll) error {
	record.ID = "pay-created"
	f.created = append(f.created, *record)
	return nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (*payroll.Payroll, error) {
	for _, rec := range f.existing {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	return f.existing[periodKey(employeeID, month, year)], nil
}

func (f *fakePayrollRepo) Update(_ context.Context, record *payroll.Payroll) error {
	f.updated = append(f.updated, *record)
	return nil
}

func (f *fakePayrollRepo) List(_ context.Context, _ payroll.PayrollFilter) ([]payroll.Payroll, int, error) {
	return nil, 0, nil
}

func (f *fakePayrollRepo) ListByEmployee(_ context.Context, _ string, _ int) ([]payroll.Payroll, error) {
	return nil, nil
}

func (f *fakePayrollRepo) UpdateStatus(_ context.Context, _, _ string) error {
	return nil
}

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) Get(context.Context) (*payroll.Settings, error) {
	return nil, payroll.ErrSettingsNotFound
}

func (fakeSettingsRepo) Upsert(context.Context, *payroll.Settings) error { return nil }

type fakeAdvanceRepo struct{}

func (fakeAdvanceRepo) Create(context.Context, *payroll.Advance) error { return nil }

func (fakeAdvanceRepo) GetByID(context.Context, string) (*payroll.Advance, error) {
	return nil, payroll.ErrAdvanceNotFound
}

func (fakeAdvanceRepo) ListByEmployeeAndPeriod(context.Context, string, int, int) ([]payroll.Advance, error) {
	return nil, nil
}

func (fakeAdvanceRepo) ListByPeriod(context.Context, int, int) ([]payroll.Advance, error) {
	return nil, nil
}

func (fakeAdvanceRepo) Delete(context.Context, string) error { return nil }

type fakeSoftLoanRepo struct {
	loans []payroll.SoftLoan
}

func (f *fakeSoftLoanRepo) Create(context.Context, *payroll.SoftLoan) error { return nil }

func (f *fakeSoftLoanRepo) GetByID(context.Context, string) (*payroll.SoftLoan, error) {
	return nil, payroll.ErrSoftLoanNotFound
}

func (f *fakeSoftLoanRepo) ListActiveByEmployee(context.Context, string) ([]payroll.SoftLoan, error) {
	return f.loans, nil
}

func (f *fakeSoftLoanRepo) ListByEmployee(context.Context, string) ([]payroll.SoftLoan, error) {
	return f.loans, nil
}

func (f *fakeSoftLoanRepo) Update(context.Context, *payroll.SoftLoan) error { return nil }

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(context.Context, string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(context.Context, attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) List(context.Context, attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(context.Context, string, attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByPeriod(context.Context, string, int, int) ([]attendance.Attendance, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListEmployeeIDsWithoutRecord(context.Context, time.Time) ([]string, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.active {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error { return nil }

func generationService(payrollRepo *fakePayrollRepo, attendanceRepo *fakeAttendanceRepo) payroll.PayrollService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPayrollService(
		nil,
		payrollRepo,
		fakeSettingsRepo{},
		fakeAdvanceRepo{},
		&fakeSoftLoanRepo{},
		attendanceRepo,
		&fakeEmployeeRepo{active: []employee.Employee{testEmployee()}},
		nil,
		nil,
		logger,
	)
}

func TestGenerateForPeriodReplacesExistingDraft(t *testing.T) {
	stale := &payroll.Payroll{
		ID:          "pay-1",
		EmployeeID:  "emp-1",
		PeriodMonth: 7,
		PeriodYear:  2026,
		BaseSalary:  4_000_000,
		NetSalary:   4_000_000,
		Status:      payroll.StatusDraft,
	}
	payrollRepo := &fakePayrollRepo{
		existing: map[string]*payroll.Payroll{periodKey("emp-1", 7, 2026): stale},
	}
	attendanceRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		{Status: attendance.StatusLate, LateMinutes: 10},
	}}

	svc := generationService(payrollRepo, attendanceRepo)

	generated, err := svc.GenerateForPeriod(context.Background(), 7, 2026)
	require.NoError(t, err)
	require.Len(t, generated, 1)

	// The stale draft is rewritten in place, not duplicated.
	assert.Empty(t, payrollRepo.created)
	require.Len(t, payrollRepo.updated, 1)

	replaced := payrollRepo.updated[0]
	assert.Equal(t, "pay-1", replaced.ID)
	assert.Equal(t, payroll.StatusDraft, replaced.Status)
	assert.Equal(t, int64(5_000_000), replaced.BaseSalary, "draft is recomputed from current data")
	assert.NotEqual(t, stale.NetSalary, replaced.NetSalary)
}

func TestGenerateForPeriodLeavesFinalizedSlipAlone(t *testing.T) {
	payrollRepo := &fakePayrollRepo{
		existing: map[string]*payroll.Payroll{
			periodKey("emp-1", 7, 2026): {
				ID:          "pay-1",
				EmployeeID:  "emp-1",
				PeriodMonth: 7,
				PeriodYear:  2026,
				Status:      payroll.StatusFinal,
			},
		},
	}

	svc := generationService(payrollRepo, &fakeAttendanceRepo{})

	generated, err := svc.GenerateForPeriod(context.Background(), 7, 2026)
	require.NoError(t, err)

	assert.Empty(t, generated)
	assert.Empty(t, payrollRepo.created)
	assert.Empty(t, payrollRepo.updated)
}

func TestGenerateForPeriodCreatesWhenMissing(t *testing.T) {
	payrollRepo := &fakePayrollRepo{existing: map[string]*payroll.Payroll{}}

	svc := generationService(payrollRepo, &fakeAttendanceRepo{})

	generated, err := svc.GenerateForPeriod(context.Background(), 7, 2026)
	require.NoError(t, err)
	require.Len(t, generated, 1)

	require.Len(t, payrollRepo.created, 1)
	assert.Empty(t, payrollRepo.updated)
	assert.Equal(t, payroll.StatusDraft, payrollRepo.created[0].Status)
}

func TestWithholdInstallmentsAtFinalization(t *testing.T) {
	loans := []payroll.SoftLoan{
		{ID: "loan-1", MonthlyInstallment: 400_000, RemainingAmount: 1_000_000, StartMonth: 5, StartYear: 2026},
		{ID: "loan-2", MonthlyInstallment: 300_000, RemainingAmount: 200_000, StartMonth: 6, StartYear: 2026},
		{ID: "loan-3", MonthlyInstallment: 500_000, RemainingAmount: 500_000, StartMonth: 9, StartYear: 2026},
	}

	changed := withholdInstallments(loans, 7, 2026)

	require.Len(t, changed, 2)

	assert.Equal(t, "loan-1", changed[0].ID)
	assert.Equal(t, int64(600_000), changed[0].RemainingAmount)
	assert.False(t, changed[0].IsSettled)

	// The short balance caps the installment and settles the loan.
	assert.Equal(t, "loan-2", changed[1].ID)
	assert.Equal(t, int64(0), changed[1].RemainingAmount)
	assert.True(t, changed[1].IsSettled)

	// loan-3 has not started yet.
	assert.Equal(t, int64(500_000), loans[2].RemainingAmount)
	assert.False(t, loans[2].IsSettled)
}

func TestWithholdInstallmentsSkipsSettledLoans(t *testing.T) {
	loans := []payroll.SoftLoan{
		{ID: "loan-1", MonthlyInstallment: 400_000, RemainingAmount: 0, IsSettled: true, StartMonth: 1, StartYear: 2026},
	}

	changed := withholdInstallments(loans, 7, 2026)

	assert.Empty(t, changed)
}
