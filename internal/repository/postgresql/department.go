package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurora-group/payroll-backend-go/internal/domain/master/department"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.Repository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.Repository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (college_id, name)
		VALUES ($1, $2)
		RETURNING id, college_id, name, created_at
	`

	var created department.Department
	err := q.QueryRow(ctx, query, d.CollegeID, d.Name).
		Scan(&created.ID, &created.CollegeID, &created.Name, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return created, nil
}

// GetByID implements department.Repository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var d department.Department
	err := q.QueryRow(ctx, `SELECT id, college_id, name, created_at FROM departments WHERE id = $1`, id).
		Scan(&d.ID, &d.CollegeID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

// ListByCollege implements department.Repository.
func (r *departmentRepositoryImpl) ListByCollege(ctx context.Context, collegeID string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, college_id, name, created_at FROM departments WHERE college_id = $1 ORDER BY name`, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.CollegeID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// Delete implements department.Repository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
