package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/karyaprima/hrops-backend-go/internal/domain/payroll"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
)

const payrollColumns = `
	p.id, p.employee_id, p.period_month, p.period_year,
	p.base_salary, p.allowances, p.overtime_amount, p.deductions, p.net_salary,
	p.status, p.generated_at, p.created_at, p.updated_at`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func scanPayroll(row pgx.Row, record *payroll.Payroll, withEmployee bool) error {
	var allowancesJSON, deductionsJSON []byte

	dest := []interface{}{
		&record.ID, &record.EmployeeID, &record.PeriodMonth, &record.PeriodYear,
		&record.BaseSalary, &allowancesJSON, &record.OvertimeAmount,
		&deductionsJSON, &record.NetSalary,
		&record.Status, &record.GeneratedAt, &record.CreatedAt, &record.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &record.EmployeeName, &record.EmployeeCode)
	}
	if err := row.Scan(dest...); err != nil {
		return err
	}

	if len(allowancesJSON) > 0 {
		if err := json.Unmarshal(allowancesJSON, &record.Allowances); err != nil {
			return fmt.Errorf("failed to decode allowances: %w", err)
		}
	}
	if len(deductionsJSON) > 0 {
		if err := json.Unmarshal(deductionsJSON, &record.Deductions); err != nil {
			return fmt.Errorf("failed to decode deductions: %w", err)
		}
	}

	return nil
}

// Create implements payroll.PayrollRepository.
func (p *payrollRepository) Create(ctx context.Context, record *payroll.Payroll) error {
	q := GetQuerier(ctx, p.db)

	allowancesJSON, err := json.Marshal(record.Allowances)
	if err != nil {
		return fmt.Errorf("failed to encode allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(record.Deductions)
	if err != nil {
		return fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		INSERT INTO payrolls (
			employee_id, period_month, period_year,
			base_salary, allowances, overtime_amount, deductions, net_salary,
			status, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.EmployeeID,
		record.PeriodMonth,
		record.PeriodYear,
		record.BaseSalary,
		allowancesJSON,
		record.OvertimeAmount,
		deductionsJSON,
		record.NetSalary,
		record.Status,
		record.GeneratedAt,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.ErrPayrollAlreadyExists
		}
		return fmt.Errorf("failed to create payroll: %w", err)
	}

	return nil
}

// Update implements payroll.PayrollRepository.
func (p *payrollRepository) Update(ctx context.Context, record *payroll.Payroll) error {
	q := GetQuerier(ctx, p.db)

	allowancesJSON, err := json.Marshal(record.Allowances)
	if err != nil {
		return fmt.Errorf("failed to encode allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(record.Deductions)
	if err != nil {
		return fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		UPDATE payrolls
		SET base_salary = $2, allowances = $3, overtime_amount = $4,
		    deductions = $5, net_salary = $6, status = $7,
		    generated_at = $8, updated_at = NOW()
		WHERE id = $1 AND status = 'DRAFT'
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.BaseSalary,
		allowancesJSON,
		record.OvertimeAmount,
		deductionsJSON,
		record.NetSalary,
		record.Status,
		record.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollAlreadyFinal
	}

	return nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `, e.full_name, e.employee_code
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var record payroll.Payroll
	if err := scanPayroll(q.QueryRow(ctx, query, id), &record, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrPayrollNotFound
		}
		return nil, fmt.Errorf("failed to get payroll: %w", err)
	}

	return &record, nil
}

// GetByEmployeeAndPeriod implements payroll.PayrollRepository.
func (p *payrollRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		WHERE p.employee_id = $1 AND p.period_month = $2 AND p.period_year = $3
	`

	var record payroll.Payroll
	if err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year), &record, false); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not generated yet
		}
		return nil, fmt.Errorf("failed to get payroll by period: %w", err)
	}

	return &record, nil
}

// List implements payroll.PayrollRepository.
func (p *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int, error) {
	q := GetQuerier(ctx, p.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.Month > 0 {
		addCondition("p.period_month = $%d", filter.Month)
	}
	if filter.Year > 0 {
		addCondition("p.period_year = $%d", filter.Year)
	}
	if filter.EmployeeID != "" {
		addCondition("p.employee_id = $%d", filter.EmployeeID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payrolls p %s", whereClause)
	var total int
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name, e.employee_code
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		%s
		ORDER BY p.period_year DESC, p.period_month DESC, e.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, payrollColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		var record payroll.Payroll
		if err := scanPayroll(rows, &record, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return records, total, nil
}

// ListByEmployee implements payroll.PayrollRepository.
func (p *payrollRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		WHERE p.employee_id = $1
		ORDER BY p.period_year DESC, p.period_month DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		var record payroll.Payroll
		if err := scanPayroll(rows, &record, false); err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return records, nil
}

// UpdateStatus implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateStatus(ctx context.Context, id, status string) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, `UPDATE payrolls SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

type payrollSettingsRepository struct {
	db *database.DB
}

func NewPayrollSettingsRepository(db *database.DB) payroll.SettingsRepository {
	return &payrollSettingsRepository{db: db}
}

// Get implements payroll.SettingsRepository.
func (p *payrollSettingsRepository) Get(ctx context.Context) (*payroll.Settings, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, late_deduction_per_minute, overtime_pay_per_minute,
			   absence_deduction_per_day, bpjs_health_amount, bpjs_employment_amount,
			   updated_at
		FROM payroll_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var settings payroll.Settings
	err := q.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.LateDeductionPerMinute,
		&settings.OvertimePayPerMinute,
		&settings.AbsenceDeductionPerDay,
		&settings.BPJSHealthAmount,
		&settings.BPJSEmploymentAmount,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return &settings, nil
}

// Upsert implements payroll.SettingsRepository.
func (p *payrollSettingsRepository) Upsert(ctx context.Context, settings *payroll.Settings) error {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_settings (
			id, late_deduction_per_minute, overtime_pay_per_minute,
			absence_deduction_per_day, bpjs_health_amount, bpjs_employment_amount
		) VALUES ('default', $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			late_deduction_per_minute = EXCLUDED.late_deduction_per_minute,
			overtime_pay_per_minute = EXCLUDED.overtime_pay_per_minute,
			absence_deduction_per_day = EXCLUDED.absence_deduction_per_day,
			bpjs_health_amount = EXCLUDED.bpjs_health_amount,
			bpjs_employment_amount = EXCLUDED.bpjs_employment_amount,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		settings.LateDeductionPerMinute,
		settings.OvertimePayPerMinute,
		settings.AbsenceDeductionPerDay,
		settings.BPJSHealthAmount,
		settings.BPJSEmploymentAmount,
	).Scan(&settings.ID, &settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return nil
}

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) payroll.AdvanceRepository {
	return &advanceRepository{db: db}
}

// Create implements payroll.AdvanceRepository.
func (a *advanceRepository) Create(ctx context.Context, advance *payroll.Advance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO salary_advances (employee_id, amount, month, year, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		advance.EmployeeID, advance.Amount, advance.Month, advance.Year, advance.Reason,
	).Scan(&advance.ID, &advance.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create advance: %w", err)
	}

	return nil
}

// GetByID implements payroll.AdvanceRepository.
func (a *advanceRepository) GetByID(ctx context.Context, id string) (*payroll.Advance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, amount, month, year, reason, created_at
		FROM salary_advances
		WHERE id = $1
	`

	var advance payroll.Advance
	err := q.QueryRow(ctx, query, id).Scan(
		&advance.ID, &advance.EmployeeID, &advance.Amount,
		&advance.Month, &advance.Year, &advance.Reason, &advance.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrAdvanceNotFound
		}
		return nil, fmt.Errorf("failed to get advance: %w", err)
	}

	return &advance, nil
}

func (a *advanceRepository) listAdvances(ctx context.Context, query string, args ...interface{}) ([]payroll.Advance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []payroll.Advance
	for rows.Next() {
		var advance payroll.Advance
		err := rows.Scan(
			&advance.ID, &advance.EmployeeID, &advance.Amount,
			&advance.Month, &advance.Year, &advance.Reason, &advance.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, advance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advances: %w", err)
	}

	return advances, nil
}

// ListByEmployeeAndPeriod implements payroll.AdvanceRepository.
func (a *advanceRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) ([]payroll.Advance, error) {
	query := `
		SELECT id, employee_id, amount, month, year, reason, created_at
		FROM salary_advances
		WHERE employee_id = $1 AND month = $2 AND year = $3
		ORDER BY created_at ASC
	`
	return a.listAdvances(ctx, query, employeeID, month, year)
}

// ListByPeriod implements payroll.AdvanceRepository.
func (a *advanceRepository) ListByPeriod(ctx context.Context, month, year int) ([]payroll.Advance, error) {
	query := `
		SELECT id, employee_id, amount, month, year, reason, created_at
		FROM salary_advances
		WHERE month = $1 AND year = $2
		ORDER BY created_at ASC
	`
	return a.listAdvances(ctx, query, month, year)
}

// Delete implements payroll.AdvanceRepository.
func (a *advanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_advances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdvanceNotFound
	}

	return nil
}

type softLoanRepository struct {
	db *database.DB
}

func NewSoftLoanRepository(db *database.DB) payroll.SoftLoanRepository {
	return &softLoanRepository{db: db}
}

const softLoanColumns = `
	id, employee_id, total_amount, monthly_installment, remaining_amount,
	start_month, start_year, is_settled, created_at, updated_at`

func scanSoftLoan(row pgx.Row, loan *payroll.SoftLoan) error {
	return row.Scan(
		&loan.ID, &loan.EmployeeID, &loan.TotalAmount, &loan.MonthlyInstallment,
		&loan.RemainingAmount, &loan.StartMonth, &loan.StartYear,
		&loan.IsSettled, &loan.CreatedAt, &loan.UpdatedAt,
	)
}

// Create implements payroll.SoftLoanRepository.
func (s *softLoanRepository) Create(ctx context.Context, loan *payroll.SoftLoan) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO soft_loans (
			employee_id, total_amount, monthly_installment, remaining_amount,
			start_month, start_year, is_settled
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loan.EmployeeID, loan.TotalAmount, loan.MonthlyInstallment,
		loan.RemainingAmount, loan.StartMonth, loan.StartYear, loan.IsSettled,
	).Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create soft loan: %w", err)
	}

	return nil
}

// GetByID implements payroll.SoftLoanRepository.
func (s *softLoanRepository) GetByID(ctx context.Context, id string) (*payroll.SoftLoan, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + softLoanColumns + ` FROM soft_loans WHERE id = $1`

	var loan payroll.SoftLoan
	if err := scanSoftLoan(q.QueryRow(ctx, query, id), &loan); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrSoftLoanNotFound
		}
		return nil, fmt.Errorf("failed to get soft loan: %w", err)
	}

	return &loan, nil
}

func (s *softLoanRepository) listLoans(ctx context.Context, query string, args ...interface{}) ([]payroll.SoftLoan, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list soft loans: %w", err)
	}
	defer rows.Close()

	var loans []payroll.SoftLoan
	for rows.Next() {
		var loan payroll.SoftLoan
		if err := scanSoftLoan(rows, &loan); err != nil {
			return nil, fmt.Errorf("failed to scan soft loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate soft loans: %w", err)
	}

	return loans, nil
}

// ListActiveByEmployee implements payroll.SoftLoanRepository.
func (s *softLoanRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]payroll.SoftLoan, error) {
	query := `
		SELECT ` + softLoanColumns + `
		FROM soft_loans
		WHERE employee_id = $1 AND is_settled = false AND remaining_amount > 0
		ORDER BY created_at ASC
	`
	return s.listLoans(ctx, query, employeeID)
}

// ListByEmployee implements payroll.SoftLoanRepository.
func (s *softLoanRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.SoftLoan, error) {
	query := `
		SELECT ` + softLoanColumns + `
		FROM soft_loans
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`
	return s.listLoans(ctx, query, employeeID)
}

// Update implements payroll.SoftLoanRepository.
func (s *softLoanRepository) Update(ctx context.Context, loan *payroll.SoftLoan) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE soft_loans SET
			remaining_amount = $2, is_settled = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, loan.ID, loan.RemainingAmount, loan.IsSettled)
	if err != nil {
		return fmt.Errorf("failed to update soft loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSoftLoanNotFound
	}

	return nil
}
