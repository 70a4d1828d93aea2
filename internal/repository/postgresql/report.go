package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aurora-group/payroll-backend-go/internal/domain/report"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepositoryImpl{db: db}
}

// Create implements report.Repository.
func (r *reportRepositoryImpl) Create(ctx context.Context, rep report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reports (type, college_id, year, month, name, file_path, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	created := rep
	err := q.QueryRow(ctx, query, rep.Type, rep.CollegeID, rep.Year, rep.Month, rep.Name,
		rep.FilePath, rep.GeneratedAt).Scan(&created.ID)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to create report: %w", err)
	}
	return created, nil
}

// GetByID implements report.Repository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, id string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, college_id, year, month, name, file_path, generated_at
		FROM reports
		WHERE id = $1
	`

	var rep report.Report
	err := q.QueryRow(ctx, query, id).
		Scan(&rep.ID, &rep.Type, &rep.CollegeID, &rep.Year, &rep.Month, &rep.Name,
			&rep.FilePath, &rep.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("failed to get report: %w", err)
	}
	return rep, nil
}

// List implements report.Repository.
func (r *reportRepositoryImpl) List(ctx context.Context, collegeID string, year, month int) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	conds := []string{"1=1"}
	args := []any{}
	idx := 1

	if collegeID != "" {
		conds = append(conds, fmt.Sprintf("college_id = $%d", idx))
		args = append(args, collegeID)
		idx++
	}
	if year != 0 {
		conds = append(conds, fmt.Sprintf("year = $%d", idx))
		args = append(args, year)
		idx++
	}
	if month != 0 {
		conds = append(conds, fmt.Sprintf("month = $%d", idx))
		args = append(args, month)
		idx++
	}

	query := fmt.Sprintf(`
		SELECT id, type, college_id, year, month, name, file_path, generated_at
		FROM reports
		WHERE %s
		ORDER BY generated_at DESC
	`, strings.Join(conds, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]report.Report, 0)
	for rows.Next() {
		var rep report.Report
		if err := rows.Scan(&rep.ID, &rep.Type, &rep.CollegeID, &rep.Year, &rep.Month,
			&rep.Name, &rep.FilePath, &rep.GeneratedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
