package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepositoryImpl{db: db}
}

// CreatePolicy implements leave.Repository.
func (r *leaveRepositoryImpl) CreatePolicy(ctx context.Context, p leave.Policy) (leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_policies (college_id, name, paid_leaves_per_year, max_carry_forward, comp_leave_enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, college_id, name, paid_leaves_per_year, max_carry_forward, comp_leave_enabled, created_at
	`

	var created leave.Policy
	err := q.QueryRow(ctx, query, p.CollegeID, p.Name, p.PaidLeavesPerYear, p.MaxCarryForward, p.CompLeaveEnabled).
		Scan(&created.ID, &created.CollegeID, &created.Name, &created.PaidLeavesPerYear,
			&created.MaxCarryForward, &created.CompLeaveEnabled, &created.CreatedAt)
	if err != nil {
		return leave.Policy{}, fmt.Errorf("failed to create leave policy: %w", err)
	}
	return created, nil
}

// GetPolicyForCollege implements leave.Repository.
func (r *leaveRepositoryImpl) GetPolicyForCollege(ctx context.Context, collegeID string) (leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, college_id, name, paid_leaves_per_year, max_carry_forward, comp_leave_enabled, created_at
		FROM leave_policies
		WHERE college_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var p leave.Policy
	err := q.QueryRow(ctx, query, collegeID).
		Scan(&p.ID, &p.CollegeID, &p.Name, &p.PaidLeavesPerYear,
			&p.MaxCarryForward, &p.CompLeaveEnabled, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Policy{}, leave.ErrPolicyNotFound
		}
		return leave.Policy{}, fmt.Errorf("failed to get leave policy: %w", err)
	}
	return p, nil
}

// ListPolicies implements leave.Repository.
func (r *leaveRepositoryImpl) ListPolicies(ctx context.Context, collegeID string) ([]leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, college_id, name, paid_leaves_per_year, max_carry_forward, comp_leave_enabled, created_at
		FROM leave_policies
		WHERE college_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := make([]leave.Policy, 0)
	for rows.Next() {
		var p leave.Policy
		if err := rows.Scan(&p.ID, &p.CollegeID, &p.Name, &p.PaidLeavesPerYear,
			&p.MaxCarryForward, &p.CompLeaveEnabled, &p.CreatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// GetBalance implements leave.Repository.
func (r *leaveRepositoryImpl) GetBalance(ctx context.Context, employeeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, paid_leaves_total, paid_leaves_used,
			   comp_leaves_earned, comp_leaves_used, carry_forward_leaves, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, year).
		Scan(&b.ID, &b.EmployeeID, &b.Year, &b.PaidLeavesTotal, &b.PaidLeavesUsed,
			&b.CompLeavesEarned, &b.CompLeavesUsed, &b.CarryForwardLeaves, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// CreateBalance implements leave.Repository.
func (r *leaveRepositoryImpl) CreateBalance(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			employee_id, year, paid_leaves_total, paid_leaves_used,
			comp_leaves_earned, comp_leaves_used, carry_forward_leaves
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, year, paid_leaves_total, paid_leaves_used,
				  comp_leaves_earned, comp_leaves_used, carry_forward_leaves, created_at, updated_at
	`

	var created leave.Balance
	err := q.QueryRow(ctx, query,
		b.EmployeeID, b.Year, b.PaidLeavesTotal, b.PaidLeavesUsed,
		b.CompLeavesEarned, b.CompLeavesUsed, b.CarryForwardLeaves,
	).Scan(&created.ID, &created.EmployeeID, &created.Year, &created.PaidLeavesTotal, &created.PaidLeavesUsed,
		&created.CompLeavesEarned, &created.CompLeavesUsed, &created.CarryForwardLeaves,
		&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.Balance{}, leave.ErrBalanceExists
		}
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return created, nil
}

// ApplyUsageDelta implements leave.Repository.
func (r *leaveRepositoryImpl) ApplyUsageDelta(ctx context.Context, employeeID string, year int, delta leave.Usage) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET paid_leaves_used = paid_leaves_used + $1,
			comp_leaves_used = comp_leaves_used + $2,
			comp_leaves_earned = comp_leaves_earned + $3,
			updated_at = NOW()
		WHERE employee_id = $4 AND year = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, delta.PaidUsed, delta.CompUsed, delta.CompEarned, employeeID, year).
		Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to apply leave usage delta: %w", err)
	}
	return nil
}

// ListBalancesForYear implements leave.Repository.
func (r *leaveRepositoryImpl) ListBalancesForYear(ctx context.Context, collegeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.year, lb.paid_leaves_total, lb.paid_leaves_used,
			   lb.comp_leaves_earned, lb.comp_leaves_used, lb.carry_forward_leaves, lb.created_at, lb.updated_at
		FROM leave_balances lb
		JOIN employees e ON lb.employee_id = e.id
		WHERE e.college_id = $1 AND lb.year = $2
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, collegeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Year, &b.PaidLeavesTotal, &b.PaidLeavesUsed,
			&b.CompLeavesEarned, &b.CompLeavesUsed, &b.CarryForwardLeaves, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
