package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/karyaprima/hrops-backend-go/internal/domain/attendance"
	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/domain/notification"
	"github.com/karyaprima/hrops-backend-go/internal/domain/payroll"
	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
	"github.com/karyaprima/hrops-backend-go/internal/repository/postgresql"
	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	payroll.SettingsRepository
	payroll.AdvanceRepository
	payroll.SoftLoanRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	user.UserRepository
	notifications notification.Service
	logger        *slog.Logger
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	settingsRepo payroll.SettingsRepository,
	advanceRepo payroll.AdvanceRepository,
	softLoanRepo payroll.SoftLoanRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	notifications notification.Service,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                   db,
		PayrollRepository:    payrollRepo,
		SettingsRepository:   settingsRepo,
		AdvanceRepository:    advanceRepo,
		SoftLoanRepository:   softLoanRepo,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		UserRepository:       userRepo,
		notifications:        notifications,
		logger:               logger,
	}
}

func requireAdmin(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	if user.Role(roleStr) != user.RoleAdmin {
		return "", user.ErrAdminPrivilegeRequired
	}

	return userID, nil
}

// settingsOrDefault returns the stored settings, falling back to zero rates
// when an admin has never saved any.
func (p *PayrollServiceImpl) settingsOrDefault(ctx context.Context) (payroll.Settings, error) {
	stored, err := p.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.DefaultSettings(), nil
		}
		return payroll.Settings{}, err
	}
	return *stored, nil
}

// rupiah floors a decimal amount to whole rupiah.
func rupiah(d decimal.Decimal) int64 {
	return d.Floor().IntPart()
}

// buildSlip aggregates one employee's period into a pay slip. Loan balances
// are left untouched: drafts can be regenerated freely, and the installments
// they list are only applied to the balances when the slip is finalized.
func buildSlip(
	emp employee.Employee,
	records []attendance.Attendance,
	settings payroll.Settings,
	advances []payroll.Advance,
	loans []*payroll.SoftLoan,
	month, year int,
	now time.Time,
) payroll.Payroll {
	var lateMinutes, absentDays, overtimeMinutes int
	for _, rec := range records {
		lateMinutes += rec.LateMinutes
		if rec.Status == attendance.StatusAbsent {
			absentDays++
		}
		// Only approved overtime earns pay.
		if rec.OvertimeMinutes > 0 && rec.IsOvertimeApproved {
			if !rec.IsSundayWork || rec.IsSundayWorkApproved {
				overtimeMinutes += rec.OvertimeMinutes
			}
		}
	}

	var allowances []rules.Allowance
	if emp.PositionAllowance > 0 {
		allowances = append(allowances, rules.Allowance{Type: rules.AllowancePosition, Amount: emp.PositionAllowance})
	}
	if emp.MealAllowance > 0 {
		allowances = append(allowances, rules.Allowance{Type: rules.AllowanceMeal, Amount: emp.MealAllowance})
	}
	if emp.TransportAllowance > 0 {
		allowances = append(allowances, rules.Allowance{Type: rules.AllowanceTransport, Amount: emp.TransportAllowance})
	}

	overtimeAmount := rupiah(settings.OvertimePayPerMinute.Mul(decimal.NewFromInt(int64(overtimeMinutes))))

	var deductions []rules.Deduction
	if lateMinutes > 0 {
		deductions = append(deductions, rules.Deduction{
			Type:   rules.DeductionLate,
			Amount: rupiah(settings.LateDeductionPerMinute.Mul(decimal.NewFromInt(int64(lateMinutes)))),
		})
	}
	if absentDays > 0 {
		deductions = append(deductions, rules.Deduction{
			Type:   rules.DeductionAbsence,
			Amount: rupiah(settings.AbsenceDeductionPerDay.Mul(decimal.NewFromInt(int64(absentDays)))),
		})
	}
	if settings.BPJSHealthAmount > 0 {
		deductions = append(deductions, rules.Deduction{Type: rules.DeductionBPJSHealth, Amount: settings.BPJSHealthAmount})
	}
	if settings.BPJSEmploymentAmount > 0 {
		deductions = append(deductions, rules.Deduction{Type: rules.DeductionBPJSEmployment, Amount: settings.BPJSEmploymentAmount})
	}
	for _, adv := range advances {
		deductions = append(deductions, rules.Deduction{Type: rules.DeductionAdvance, Amount: adv.Amount})
	}
	for _, loan := range loans {
		due := loan.InstallmentDue()
		if due == 0 {
			continue
		}
		deductions = append(deductions, rules.Deduction{Type: rules.DeductionSoftLoan, Amount: due})
	}

	return payroll.Payroll{
		EmployeeID:     emp.ID,
		PeriodMonth:    month,
		PeriodYear:     year,
		BaseSalary:     emp.BaseSalary,
		Allowances:     allowances,
		OvertimeAmount: overtimeAmount,
		Deductions:     deductions,
		NetSalary:      rules.NetSalary(emp.BaseSalary, allowances, overtimeAmount, deductions),
		Status:         payroll.StatusDraft,
		GeneratedAt:    now,
	}
}

// Generate implements payroll.PayrollService.
func (p *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) ([]payroll.Payroll, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	return p.GenerateForPeriod(ctx, req.Month, req.Year)
}

// GenerateForPeriod builds pay slips for every active employee. An existing
// draft for the period is replaced with a freshly computed one; finalized
// slips are left untouched. It is the entry point shared by the admin
// endpoint and the monthly cron job, so it carries no claims requirement.
func (p *PayrollServiceImpl) GenerateForPeriod(ctx context.Context, month, year int) ([]payroll.Payroll, error) {
	if month < 1 || month > 12 {
		return nil, payroll.ErrInvalidPeriod
	}

	settings, err := p.settingsOrDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll settings: %w", err)
	}

	employees, err := p.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	now := time.Now()
	var generated []payroll.Payroll

	for _, emp := range employees {
		existing, err := p.PayrollRepository.GetByEmployeeAndPeriod(ctx, emp.ID, month, year)
		if err != nil {
			return generated, fmt.Errorf("failed to check existing payroll: %w", err)
		}
		if existing != nil && existing.Status != payroll.StatusDraft {
			continue
		}

		records, err := p.AttendanceRepository.ListByPeriod(ctx, emp.ID, month, year)
		if err != nil {
			return generated, fmt.Errorf("failed to load attendance for %s: %w", emp.EmployeeCode, err)
		}

		advances, err := p.AdvanceRepository.ListByEmployeeAndPeriod(ctx, emp.ID, month, year)
		if err != nil {
			return generated, fmt.Errorf("failed to load advances for %s: %w", emp.EmployeeCode, err)
		}

		activeLoans, err := p.SoftLoanRepository.ListActiveByEmployee(ctx, emp.ID)
		if err != nil {
			return generated, fmt.Errorf("failed to load soft loans for %s: %w", emp.EmployeeCode, err)
		}

		loans := make([]*payroll.SoftLoan, 0, len(activeLoans))
		for i := range activeLoans {
			loan := &activeLoans[i]
			// Installments start at the loan's first period.
			if loan.StartYear > year || (loan.StartYear == year && loan.StartMonth > month) {
				continue
			}
			loans = append(loans, loan)
		}

		slip := buildSlip(emp, records, settings, advances, loans, month, year, now)

		if existing != nil {
			slip.ID = existing.ID
			err = p.PayrollRepository.Update(ctx, &slip)
		} else {
			err = p.PayrollRepository.Create(ctx, &slip)
		}
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollAlreadyExists) {
				// Lost the race against a concurrent generation run.
				continue
			}
			return generated, fmt.Errorf("failed to persist payroll for %s: %w", emp.EmployeeCode, err)
		}

		generated = append(generated, slip)
		p.notifyGenerated(ctx, emp, &slip)
	}

	p.logger.Info("payroll generation finished",
		slog.Int("month", month),
		slog.Int("year", year),
		slog.Int("generated", len(generated)),
	)

	return generated, nil
}

func (p *PayrollServiceImpl) notifyGenerated(ctx context.Context, emp employee.Employee, slip *payroll.Payroll) {
	if p.notifications == nil {
		return
	}

	owner, err := p.UserRepository.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return
	}

	_ = p.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: owner.ID,
		Type:        notification.TypePayrollGenerated,
		Title:       "Pay slip generated",
		Message:     fmt.Sprintf("Your pay slip for %02d/%d is available", slip.PeriodMonth, slip.PeriodYear),
		Data: map[string]interface{}{
			"payroll_id": slip.ID,
			"month":      slip.PeriodMonth,
			"year":       slip.PeriodYear,
		},
	})
}

// Get implements payroll.PayrollService.
func (p *PayrollServiceImpl) Get(ctx context.Context, id string) (*payroll.Payroll, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	record, err := p.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roleStr, _ := claims["role"].(string)
	employeeID, _ := claims["employee_id"].(string)
	if user.Role(roleStr) != user.RoleAdmin && record.EmployeeID != employeeID {
		return nil, payroll.ErrPayrollNotFound
	}

	return record, nil
}

// List implements payroll.PayrollService.
func (p *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	return p.PayrollRepository.List(ctx, filter)
}

// GetMyPayroll implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetMyPayroll(ctx context.Context, employeeID string, limit int) ([]payroll.Payroll, error) {
	if limit < 1 || limit > 36 {
		limit = 12
	}
	return p.PayrollRepository.ListByEmployee(ctx, employeeID, limit)
}

// Finalize implements payroll.PayrollService. Finalizing is the point where
// the slip's soft-loan installments are taken out of the loan balances; the
// status flip and the balance mutations commit together.
func (p *PayrollServiceImpl) Finalize(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	record, err := p.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status != payroll.StatusDraft {
		return payroll.ErrPayrollAlreadyFinal
	}

	activeLoans, err := p.SoftLoanRepository.ListActiveByEmployee(ctx, record.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to load soft loans: %w", err)
	}

	changed := withholdInstallments(activeLoans, record.PeriodMonth, record.PeriodYear)

	return postgresql.WithTransaction(ctx, p.db, func(txCtx context.Context) error {
		for _, loan := range changed {
			if err := p.SoftLoanRepository.Update(txCtx, loan); err != nil {
				return err
			}
		}
		return p.PayrollRepository.UpdateStatus(txCtx, id, payroll.StatusFinal)
	})
}

// withholdInstallments takes the period's installment out of each loan that
// has started by the period, capping the last installment at the remaining
// balance and settling the loan when it reaches zero. It returns the loans
// whose balances changed.
func withholdInstallments(loans []payroll.SoftLoan, month, year int) []*payroll.SoftLoan {
	var changed []*payroll.SoftLoan
	for i := range loans {
		loan := &loans[i]
		if loan.StartYear > year || (loan.StartYear == year && loan.StartMonth > month) {
			continue
		}
		due := loan.InstallmentDue()
		if due == 0 {
			continue
		}
		loan.RemainingAmount -= due
		if loan.RemainingAmount <= 0 {
			loan.RemainingAmount = 0
			loan.IsSettled = true
		}
		changed = append(changed, loan)
	}
	return changed
}

// GetSettings implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetSettings(ctx context.Context) (*payroll.Settings, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	settings, err := p.settingsOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (*payroll.Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	settings := payroll.Settings{
		LateDeductionPerMinute: req.LateDeductionPerMinute,
		OvertimePayPerMinute:   req.OvertimePayPerMinute,
		AbsenceDeductionPerDay: req.AbsenceDeductionPerDay,
		BPJSHealthAmount:       req.BPJSHealthAmount,
		BPJSEmploymentAmount:   req.BPJSEmploymentAmount,
	}

	if err := p.SettingsRepository.Upsert(ctx, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// CreateAdvance implements payroll.PayrollService.
func (p *PayrollServiceImpl) CreateAdvance(ctx context.Context, req payroll.CreateAdvanceRequest) (*payroll.Advance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	emp, err := p.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if req.Amount > emp.BaseSalary {
		return nil, payroll.ErrAdvanceExceedsSalary
	}

	advance := payroll.Advance{
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
		Month:      req.Month,
		Year:       req.Year,
		Reason:     req.Reason,
	}
	if err := p.AdvanceRepository.Create(ctx, &advance); err != nil {
		return nil, err
	}

	if owner, err := p.UserRepository.GetByEmployeeID(ctx, emp.ID); err == nil && p.notifications != nil {
		_ = p.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: owner.ID,
			Type:        notification.TypeAdvanceRecorded,
			Title:       "Salary advance recorded",
			Message:     fmt.Sprintf("A salary advance of Rp%d will be withheld from your %02d/%d pay slip", advance.Amount, advance.Month, advance.Year),
			Data:        map[string]interface{}{"advance_id": advance.ID},
		})
	}

	return &advance, nil
}

// DeleteAdvance implements payroll.PayrollService.
func (p *PayrollServiceImpl) DeleteAdvance(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return p.AdvanceRepository.Delete(ctx, id)
}

// ListAdvances implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListAdvances(ctx context.Context, month, year int) ([]payroll.Advance, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return p.AdvanceRepository.ListByPeriod(ctx, month, year)
}

// CreateSoftLoan implements payroll.PayrollService.
func (p *PayrollServiceImpl) CreateSoftLoan(ctx context.Context, req payroll.CreateSoftLoanRequest) (*payroll.SoftLoan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if _, err := p.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	loan := payroll.SoftLoan{
		EmployeeID:         req.EmployeeID,
		TotalAmount:        req.TotalAmount,
		MonthlyInstallment: req.MonthlyInstallment,
		RemainingAmount:    req.TotalAmount,
		StartMonth:         req.StartMonth,
		StartYear:          req.StartYear,
	}
	if err := p.SoftLoanRepository.Create(ctx, &loan); err != nil {
		return nil, err
	}

	return &loan, nil
}

// ListSoftLoans implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListSoftLoans(ctx context.Context, employeeID string) ([]payroll.SoftLoan, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return p.SoftLoanRepository.ListByEmployee(ctx, employeeID)
}
