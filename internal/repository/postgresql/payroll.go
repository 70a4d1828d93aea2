package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.CycleRepository {
	return &payrollRepositoryImpl{db: db}
}

const cycleColumns = `
	pc.id, pc.college_id, pc.year, pc.month, pc.total_working_days, pc.status,
	pc.failures, pc.created_at, pc.updated_at, pc.locked_at`

func scanCycle(row pgx.Row, withCollege bool) (payroll.Cycle, error) {
	var c payroll.Cycle
	var failures []byte
	dest := []any{
		&c.ID, &c.CollegeID, &c.Year, &c.Month, &c.TotalWorkingDays, &c.Status,
		&failures, &c.CreatedAt, &c.UpdatedAt, &c.LockedAt,
	}
	if withCollege {
		dest = append(dest, &c.CollegeCode, &c.CollegeName)
	}
	if err := row.Scan(dest...); err != nil {
		return payroll.Cycle{}, err
	}
	if len(failures) > 0 {
		if err := json.Unmarshal(failures, &c.Failures); err != nil {
			return payroll.Cycle{}, fmt.Errorf("failed to decode failure manifest: %w", err)
		}
	}
	return c, nil
}

// CreateCycle implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) CreateCycle(ctx context.Context, cycle payroll.Cycle) (payroll.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_cycles (college_id, year, month, total_working_days, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, college_id, year, month, total_working_days, status, failures, created_at, updated_at, locked_at
	`

	created, err := scanCycle(q.QueryRow(ctx, query,
		cycle.CollegeID, cycle.Year, cycle.Month, cycle.TotalWorkingDays, cycle.Status), false)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Cycle{}, payroll.ErrDuplicateCycle
		}
		return payroll.Cycle{}, fmt.Errorf("failed to create payroll cycle: %w", err)
	}
	return created, nil
}

// GetCycleByID implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) GetCycleByID(ctx context.Context, id string) (payroll.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, c.college_code, c.name AS college_name
		FROM payroll_cycles pc
		JOIN colleges c ON pc.college_id = c.id
		WHERE pc.id = $1
	`, cycleColumns)

	cycle, err := scanCycle(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Cycle{}, payroll.ErrCycleNotFound
		}
		return payroll.Cycle{}, fmt.Errorf("failed to get payroll cycle: %w", err)
	}
	return cycle, nil
}

// GetCycleByPeriod implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) GetCycleByPeriod(ctx context.Context, collegeID string, year, month int) (payroll.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, c.college_code, c.name AS college_name
		FROM payroll_cycles pc
		JOIN colleges c ON pc.college_id = c.id
		WHERE pc.college_id = $1 AND pc.year = $2 AND pc.month = $3
	`, cycleColumns)

	cycle, err := scanCycle(q.QueryRow(ctx, query, collegeID, year, month), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Cycle{}, payroll.ErrCycleNotFound
		}
		return payroll.Cycle{}, fmt.Errorf("failed to get payroll cycle by period: %w", err)
	}
	return cycle, nil
}

// ListCycles implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) ListCycles(ctx context.Context, filter payroll.CycleFilter) ([]payroll.Cycle, int64, error) {
	q := GetQuerier(ctx, r.db)

	conds := []string{"1=1"}
	args := []any{}
	idx := 1

	if filter.CollegeID != "" {
		conds = append(conds, fmt.Sprintf("pc.college_id = $%d", idx))
		args = append(args, filter.CollegeID)
		idx++
	}
	if filter.Year != 0 {
		conds = append(conds, fmt.Sprintf("pc.year = $%d", idx))
		args = append(args, filter.Year)
		idx++
	}
	if filter.Month != 0 {
		conds = append(conds, fmt.Sprintf("pc.month = $%d", idx))
		args = append(args, filter.Month)
		idx++
	}
	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("pc.status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payroll_cycles pc WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll cycles: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s, c.college_code, c.name AS college_name
		FROM payroll_cycles pc
		JOIN colleges c ON pc.college_id = c.id
		WHERE %s
		ORDER BY pc.year DESC, pc.month DESC, c.college_code
		LIMIT $%d OFFSET $%d
	`, cycleColumns, where, idx, idx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cycles := make([]payroll.Cycle, 0)
	for rows.Next() {
		cycle, err := scanCycle(rows, true)
		if err != nil {
			return nil, 0, err
		}
		cycles = append(cycles, cycle)
	}
	return cycles, total, rows.Err()
}

// UpdateCycleStatus implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) UpdateCycleStatus(ctx context.Context, id string, to payroll.CycleStatus, allowedFrom ...payroll.CycleStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	from := make([]string, 0, len(allowedFrom))
	for _, s := range allowedFrom {
		from = append(from, string(s))
	}

	query := `
		UPDATE payroll_cycles
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
	`

	tag, err := q.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update payroll cycle status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetCycleWorkingDays implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) SetCycleWorkingDays(ctx context.Context, id string, workingDays int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE payroll_cycles SET total_working_days = $1, updated_at = NOW() WHERE id = $2`,
		workingDays, id)
	if err != nil {
		return fmt.Errorf("failed to set working days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}
	return nil
}

// SetCycleFailures implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) SetCycleFailures(ctx context.Context, id string, failures []payroll.CycleFailure) error {
	q := GetQuerier(ctx, r.db)

	encoded, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("failed to encode failure manifest: %w", err)
	}

	tag, err := q.Exec(ctx,
		`UPDATE payroll_cycles SET failures = $1, updated_at = NOW() WHERE id = $2`,
		encoded, id)
	if err != nil {
		return fmt.Errorf("failed to set failure manifest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}
	return nil
}

// LockCycle implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) LockCycle(ctx context.Context, id string) (payroll.Cycle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_cycles
		SET status = $1, locked_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING id, college_id, year, month, total_working_days, status, failures, created_at, updated_at, locked_at
	`

	cycle, err := scanCycle(q.QueryRow(ctx, query,
		payroll.CycleStatusLocked, id, payroll.CycleStatusCompleted), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Cycle{}, payroll.ErrCycleNotCompleted
		}
		return payroll.Cycle{}, fmt.Errorf("failed to lock payroll cycle: %w", err)
	}
	return cycle, nil
}

const entryColumns = `
	pe.id, pe.cycle_id, pe.employee_id, pe.days_present, pe.days_absent, pe.weekend_work_days,
	pe.paid_leaves_used, pe.comp_leaves_used, pe.unpaid_leaves, pe.loss_of_pay,
	pe.gross_earnings, pe.total_deductions, pe.net_pay, pe.created_at`

func scanEntry(row pgx.Row, withEmployee bool) (payroll.Entry, error) {
	var e payroll.Entry
	dest := []any{
		&e.ID, &e.CycleID, &e.EmployeeID, &e.DaysPresent, &e.DaysAbsent, &e.WeekendWorkDays,
		&e.PaidLeavesUsed, &e.CompLeavesUsed, &e.UnpaidLeaves, &e.LossOfPay,
		&e.GrossEarnings, &e.TotalDeductions, &e.NetPay, &e.CreatedAt,
	}
	if withEmployee {
		dest = append(dest, &e.EmployeeCode, &e.EmployeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return payroll.Entry{}, err
	}
	return e, nil
}

// GetEntry implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) GetEntry(ctx context.Context, cycleID, employeeID string) (payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM payroll_entries pe WHERE pe.cycle_id = $1 AND pe.employee_id = $2
	`, entryColumns)

	entry, err := scanEntry(q.QueryRow(ctx, query, cycleID, employeeID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Entry{}, payroll.ErrEntryNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	entry.Components, err = r.entryComponents(ctx, entry.ID)
	if err != nil {
		return payroll.Entry{}, err
	}
	return entry, nil
}

// GetEntryByID implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) GetEntryByID(ctx context.Context, id string) (payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.employee_code, e.first_name || ' ' || e.last_name AS employee_name
		FROM payroll_entries pe
		JOIN employees e ON pe.employee_id = e.id
		WHERE pe.id = $1
	`, entryColumns)

	entry, err := scanEntry(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Entry{}, payroll.ErrEntryNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	entry.Components, err = r.entryComponents(ctx, entry.ID)
	if err != nil {
		return payroll.Entry{}, err
	}
	return entry, nil
}

func (r *payrollRepositoryImpl) entryComponents(ctx context.Context, entryID string) ([]payroll.EntryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, entry_id, component_id, component_name, component_type, amount
		FROM payroll_entry_components
		WHERE entry_id = $1
		ORDER BY component_type, component_name
	`

	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := make([]payroll.EntryComponent, 0)
	for rows.Next() {
		var c payroll.EntryComponent
		if err := rows.Scan(&c.ID, &c.EntryID, &c.ComponentID, &c.ComponentName, &c.ComponentType, &c.Amount); err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// ListEntries implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) ListEntries(ctx context.Context, cycleID string) ([]payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.employee_code, e.first_name || ' ' || e.last_name AS employee_name
		FROM payroll_entries pe
		JOIN employees e ON pe.employee_id = e.id
		WHERE pe.cycle_id = $1
		ORDER BY e.employee_code
	`, entryColumns)

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]payroll.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows, true)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		components, err := r.entryComponents(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Components = components
	}
	return entries, nil
}

// ReplaceEntry implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) ReplaceEntry(ctx context.Context, entry payroll.Entry) (payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx,
		`DELETE FROM payroll_entries WHERE cycle_id = $1 AND employee_id = $2`,
		entry.CycleID, entry.EmployeeID); err != nil {
		return payroll.Entry{}, fmt.Errorf("failed to delete prior payroll entry: %w", err)
	}

	query := `
		INSERT INTO payroll_entries (
			cycle_id, employee_id, days_present, days_absent, weekend_work_days,
			paid_leaves_used, comp_leaves_used, unpaid_leaves, loss_of_pay,
			gross_earnings, total_deductions, net_pay
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	created := entry
	err := q.QueryRow(ctx, query,
		entry.CycleID, entry.EmployeeID, entry.DaysPresent, entry.DaysAbsent, entry.WeekendWorkDays,
		entry.PaidLeavesUsed, entry.CompLeavesUsed, entry.UnpaidLeaves, entry.LossOfPay,
		entry.GrossEarnings, entry.TotalDeductions, entry.NetPay,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return payroll.Entry{}, fmt.Errorf("failed to insert payroll entry: %w", err)
	}

	componentQuery := `
		INSERT INTO payroll_entry_components (entry_id, component_id, component_name, component_type, amount)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, c := range entry.Components {
		batch.Queue(componentQuery, created.ID, c.ComponentID, c.ComponentName, c.ComponentType, c.Amount)
	}
	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range entry.Components {
		if _, err := results.Exec(); err != nil {
			return payroll.Entry{}, fmt.Errorf("failed to insert entry components: %w", err)
		}
	}

	return created, nil
}

// CreatePayslip implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) CreatePayslip(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (entry_id, employee_id, cycle_id, file_path, generated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	created := slip
	err := q.QueryRow(ctx, query, slip.EntryID, slip.EmployeeID, slip.CycleID, slip.FilePath, slip.GeneratedAt).
		Scan(&created.ID)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}
	return created, nil
}

// GetPayslipByEntry implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) GetPayslipByEntry(ctx context.Context, entryID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, entry_id, employee_id, cycle_id, file_path, generated_at
		FROM payslips
		WHERE entry_id = $1
	`

	var slip payroll.Payslip
	err := q.QueryRow(ctx, query, entryID).
		Scan(&slip.ID, &slip.EntryID, &slip.EmployeeID, &slip.CycleID, &slip.FilePath, &slip.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return slip, nil
}

// DeletePayslip implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) DeletePayslip(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslips WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	return nil
}

// ListPayslips implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) ListPayslips(ctx context.Context, cycleID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.entry_id, p.employee_id, p.cycle_id, p.file_path, p.generated_at
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.cycle_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slips := make([]payroll.Payslip, 0)
	for rows.Next() {
		var slip payroll.Payslip
		if err := rows.Scan(&slip.ID, &slip.EntryID, &slip.EmployeeID, &slip.CycleID,
			&slip.FilePath, &slip.GeneratedAt); err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

// GetSummary implements payroll.CycleRepository.
func (r *payrollRepositoryImpl) GetSummary(ctx context.Context, collegeID string, year, month int) (payroll.Summary, error) {
	cycle, err := r.GetCycleByPeriod(ctx, collegeID, year, month)
	if err != nil {
		return payroll.Summary{}, err
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(gross_earnings), 0),
			   COALESCE(SUM(total_deductions), 0),
			   COALESCE(SUM(net_pay), 0)
		FROM payroll_entries
		WHERE cycle_id = $1
	`

	var summary payroll.Summary
	err = q.QueryRow(ctx, query, cycle.ID).
		Scan(&summary.TotalEmployees, &summary.TotalGross, &summary.TotalDeductions, &summary.TotalNetPay)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	summary.FailedEmployees = len(cycle.Failures)
	return summary, nil
}
