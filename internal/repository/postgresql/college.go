package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aurora-group/payroll-backend-go/internal/domain/master/college"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type collegeRepositoryImpl struct {
	db *database.DB
}

func NewCollegeRepository(db *database.DB) college.Repository {
	return &collegeRepositoryImpl{db: db}
}

// Create implements college.Repository.
func (r *collegeRepositoryImpl) Create(ctx context.Context, c college.College) (college.College, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO colleges (serial_number, college_code, name, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, serial_number, college_code, name, address, created_at, updated_at
	`

	var created college.College
	err := q.QueryRow(ctx, query, c.SerialNumber, c.CollegeCode, c.Name, c.Address).
		Scan(&created.ID, &created.SerialNumber, &created.CollegeCode, &created.Name,
			&created.Address, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return college.College{}, college.ErrCollegeCodeExists
		}
		return college.College{}, fmt.Errorf("failed to create college: %w", err)
	}
	return created, nil
}

// GetByID implements college.Repository.
func (r *collegeRepositoryImpl) GetByID(ctx context.Context, id string) (college.College, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, serial_number, college_code, name, address, created_at, updated_at
		FROM colleges
		WHERE id = $1
	`

	var c college.College
	err := q.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.SerialNumber, &c.CollegeCode, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return college.College{}, college.ErrCollegeNotFound
		}
		return college.College{}, fmt.Errorf("failed to get college: %w", err)
	}
	return c, nil
}

// GetByCode implements college.Repository.
func (r *collegeRepositoryImpl) GetByCode(ctx context.Context, code string) (college.College, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, serial_number, college_code, name, address, created_at, updated_at
		FROM colleges
		WHERE college_code = $1
	`

	var c college.College
	err := q.QueryRow(ctx, query, code).
		Scan(&c.ID, &c.SerialNumber, &c.CollegeCode, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return college.College{}, college.ErrCollegeNotFound
		}
		return college.College{}, fmt.Errorf("failed to get college by code: %w", err)
	}
	return c, nil
}

// List implements college.Repository.
func (r *collegeRepositoryImpl) List(ctx context.Context) ([]college.College, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, serial_number, college_code, name, address, created_at, updated_at
		FROM colleges
		ORDER BY serial_number
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colleges := make([]college.College, 0)
	for rows.Next() {
		var c college.College
		if err := rows.Scan(&c.ID, &c.SerialNumber, &c.CollegeCode, &c.Name,
			&c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		colleges = append(colleges, c)
	}
	return colleges, rows.Err()
}

// Update implements college.Repository.
func (r *collegeRepositoryImpl) Update(ctx context.Context, req college.UpdateRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", idx))
		args = append(args, *req.Name)
		idx++
	}
	if req.Address != nil {
		sets = append(sets, fmt.Sprintf("address = $%d", idx))
		args = append(args, *req.Address)
		idx++
	}
	args = append(args, req.ID)
	query := fmt.Sprintf("UPDATE colleges SET %s WHERE id = $%d RETURNING id", strings.Join(sets, ", "), idx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return college.ErrCollegeNotFound
		}
		return fmt.Errorf("failed to update college: %w", err)
	}
	return nil
}

// Delete implements college.Repository.
func (r *collegeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete college: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return college.ErrCollegeNotFound
	}
	return nil
}
