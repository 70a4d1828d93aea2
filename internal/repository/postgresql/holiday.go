package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.Repository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (college_id, date, name, is_optional)
		VALUES ($1, $2, $3, $4)
		RETURNING id, college_id, date, name, is_optional, created_at
	`

	var created holiday.Holiday
	err := q.QueryRow(ctx, query, h.CollegeID, h.Date, h.Name, h.IsOptional).
		Scan(&created.ID, &created.CollegeID, &created.Date, &created.Name,
			&created.IsOptional, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// GetByID implements holiday.Repository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	var h holiday.Holiday
	err := q.QueryRow(ctx,
		`SELECT id, college_id, date, name, is_optional, created_at FROM holidays WHERE id = $1`, id).
		Scan(&h.ID, &h.CollegeID, &h.Date, &h.Name, &h.IsOptional, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return h, nil
}

// ListForPeriod implements holiday.Repository.
func (r *holidayRepositoryImpl) ListForPeriod(ctx context.Context, collegeID string, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, college_id, date, name, is_optional, created_at
		FROM holidays
		WHERE college_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, collegeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.CollegeID, &h.Date, &h.Name, &h.IsOptional, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// ListForCollege implements holiday.Repository.
func (r *holidayRepositoryImpl) ListForCollege(ctx context.Context, collegeID string, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, college_id, date, name, is_optional, created_at
		FROM holidays
		WHERE college_id = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, collegeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.CollegeID, &h.Date, &h.Name, &h.IsOptional, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Delete implements holiday.Repository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
