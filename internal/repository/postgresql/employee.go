package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.employee_code, e.first_name, e.last_name, e.email, e.phone,
	e.college_id, e.department_id, e.designation_id, e.date_of_joining, e.date_of_leaving,
	e.bank_name, e.bank_account_number, e.ifsc_code, e.pan_number,
	e.ctc, e.monthly_gross, e.is_active, e.created_at, e.updated_at`

func scanEmployee(row pgx.Row, withNames bool) (employee.Employee, error) {
	var e employee.Employee
	dest := []any{
		&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.CollegeID, &e.DepartmentID, &e.DesignationID, &e.DateOfJoining, &e.DateOfLeaving,
		&e.BankName, &e.BankAccount, &e.IFSCCode, &e.PANNumber,
		&e.CTC, &e.MonthlyGross, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &e.DepartmentName, &e.DesignationName)
	}
	if err := row.Scan(dest...); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

// Create implements employee.Repository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_code, first_name, last_name, email, phone,
			college_id, department_id, designation_id, date_of_joining,
			bank_name, bank_account_number, ifsc_code, pan_number,
			ctc, monthly_gross, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	created := e
	err := q.QueryRow(ctx, query,
		e.EmployeeCode, e.FirstName, e.LastName, e.Email, e.Phone,
		e.CollegeID, e.DepartmentID, e.DesignationID, e.DateOfJoining,
		e.BankName, e.BankAccount, e.IFSCCode, e.PANNumber,
		e.CTC, e.MonthlyGross, e.IsActive,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return employee.Employee{}, employee.ErrEmailExists
			}
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, d.name AS department_name, g.name AS designation_name
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		LEFT JOIN designations g ON e.designation_id = g.id
		WHERE e.id = $1
	`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetByCode implements employee.Repository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees e WHERE e.employee_code = $1`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query, code), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return e, nil
}

// List implements employee.Repository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conds := []string{"1=1"}
	args := []any{}
	idx := 1

	if filter.CollegeID != "" {
		conds = append(conds, fmt.Sprintf("e.college_id = $%d", idx))
		args = append(args, filter.CollegeID)
		idx++
	}
	if filter.DepartmentID != "" {
		conds = append(conds, fmt.Sprintf("e.department_id = $%d", idx))
		args = append(args, filter.DepartmentID)
		idx++
	}
	if filter.ActiveOnly {
		conds = append(conds, "e.is_active = TRUE")
	}
	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf(
			"(e.employee_code ILIKE $%d OR e.first_name ILIKE $%d OR e.last_name ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s, d.name AS department_name, g.name AS designation_name
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		LEFT JOIN designations g ON e.designation_id = g.id
		WHERE %s
		ORDER BY e.employee_code
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, idx, idx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows, true)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

// ListActiveByCollege implements employee.Repository.
func (r *employeeRepositoryImpl) ListActiveByCollege(ctx context.Context, collegeID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		WHERE e.college_id = $1 AND e.is_active = TRUE
		ORDER BY e.employee_code
	`, employeeColumns)

	rows, err := q.Query(ctx, query, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows, false)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.Repository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.FirstName != nil {
		add("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		add("last_name", *req.LastName)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.DepartmentID != nil {
		add("department_id", *req.DepartmentID)
	}
	if req.DesignationID != nil {
		add("designation_id", *req.DesignationID)
	}
	if req.DateOfLeaving != nil {
		leaving, err := validator.ParseDate(*req.DateOfLeaving)
		if err != nil {
			return fmt.Errorf("invalid date_of_leaving: %w", err)
		}
		add("date_of_leaving", leaving)
	}
	if req.BankName != nil {
		add("bank_name", *req.BankName)
	}
	if req.BankAccount != nil {
		add("bank_account_number", *req.BankAccount)
	}
	if req.IFSCCode != nil {
		add("ifsc_code", *req.IFSCCode)
	}
	if req.PANNumber != nil {
		add("pan_number", *req.PANNumber)
	}
	if req.CTC != nil {
		add("ctc", *req.CTC)
	}
	if req.MonthlyGross != nil {
		add("monthly_gross", *req.MonthlyGross)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}

	args = append(args, req.ID)
	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d RETURNING id", strings.Join(sets, ", "), idx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

// Deactivate implements employee.Repository.
func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
