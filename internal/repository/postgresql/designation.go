package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurora-group/payroll-backend-go/internal/domain/master/designation"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.Repository {
	return &designationRepositoryImpl{db: db}
}

// Create implements designation.Repository.
func (r *designationRepositoryImpl) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO designations (college_id, name)
		VALUES ($1, $2)
		RETURNING id, college_id, name, created_at
	`

	var created designation.Designation
	err := q.QueryRow(ctx, query, d.CollegeID, d.Name).
		Scan(&created.ID, &created.CollegeID, &created.Name, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return designation.Designation{}, designation.ErrDesignationNameExists
		}
		return designation.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}
	return created, nil
}

// GetByID implements designation.Repository.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	var d designation.Designation
	err := q.QueryRow(ctx, `SELECT id, college_id, name, created_at FROM designations WHERE id = $1`, id).
		Scan(&d.ID, &d.CollegeID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		return designation.Designation{}, fmt.Errorf("failed to get designation: %w", err)
	}
	return d, nil
}

// ListByCollege implements designation.Repository.
func (r *designationRepositoryImpl) ListByCollege(ctx context.Context, collegeID string) ([]designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, college_id, name, created_at FROM designations WHERE college_id = $1 ORDER BY name`, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	designations := make([]designation.Designation, 0)
	for rows.Next() {
		var d designation.Designation
		if err := rows.Scan(&d.ID, &d.CollegeID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		designations = append(designations, d)
	}
	return designations, rows.Err()
}

// Delete implements designation.Repository.
func (r *designationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}
