package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.Repository {
	return &salaryRepositoryImpl{db: db}
}

// CreateComponent implements salary.Repository.
func (r *salaryRepositoryImpl) CreateComponent(ctx context.Context, c salary.Component) (salary.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_components (name, type, is_default, is_proratable, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, type, is_default, is_proratable, description, created_at
	`

	var created salary.Component
	err := q.QueryRow(ctx, query, c.Name, c.Type, c.IsDefault, c.IsProratable, c.Description).
		Scan(&created.ID, &created.Name, &created.Type, &created.IsDefault,
			&created.IsProratable, &created.Description, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return salary.Component{}, salary.ErrComponentNameExists
		}
		return salary.Component{}, fmt.Errorf("failed to create salary component: %w", err)
	}
	return created, nil
}

// GetComponentByID implements salary.Repository.
func (r *salaryRepositoryImpl) GetComponentByID(ctx context.Context, id string) (salary.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, is_default, is_proratable, description, created_at
		FROM salary_components
		WHERE id = $1
	`

	var c salary.Component
	err := q.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Type, &c.IsDefault, &c.IsProratable, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Component{}, salary.ErrComponentNotFound
		}
		return salary.Component{}, fmt.Errorf("failed to get salary component: %w", err)
	}
	return c, nil
}

// ListComponents implements salary.Repository.
func (r *salaryRepositoryImpl) ListComponents(ctx context.Context) ([]salary.Component, error) {
	return r.listComponents(ctx, false)
}

// ListDefaultComponents implements salary.Repository.
func (r *salaryRepositoryImpl) ListDefaultComponents(ctx context.Context) ([]salary.Component, error) {
	return r.listComponents(ctx, true)
}

func (r *salaryRepositoryImpl) listComponents(ctx context.Context, defaultsOnly bool) ([]salary.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, is_default, is_proratable, description, created_at
		FROM salary_components
	`
	if defaultsOnly {
		query += " WHERE is_default = TRUE"
	}
	query += " ORDER BY type, name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := make([]salary.Component, 0)
	for rows.Next() {
		var c salary.Component
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.IsDefault,
			&c.IsProratable, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// CreateStructure implements salary.Repository.
func (r *salaryRepositoryImpl) CreateStructure(ctx context.Context, s salary.Structure) (salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (employee_id, component_id, amount, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, component_id, amount, effective_from, effective_to, created_at
	`

	var created salary.Structure
	err := q.QueryRow(ctx, query, s.EmployeeID, s.ComponentID, s.Amount, s.EffectiveFrom, s.EffectiveTo).
		Scan(&created.ID, &created.EmployeeID, &created.ComponentID, &created.Amount,
			&created.EffectiveFrom, &created.EffectiveTo, &created.CreatedAt)
	if err != nil {
		return salary.Structure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}
	return created, nil
}

// GetStructuresForDate implements salary.Repository.
func (r *salaryRepositoryImpl) GetStructuresForDate(ctx context.Context, employeeID string, date time.Time) ([]salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ss.id, ss.employee_id, ss.component_id, ss.amount, ss.effective_from, ss.effective_to, ss.created_at,
			   sc.name AS component_name, sc.type AS component_type, sc.is_proratable AS component_proratable
		FROM salary_structures ss
		JOIN salary_components sc ON ss.component_id = sc.id
		WHERE ss.employee_id = $1
		  AND ss.effective_from <= $2
		  AND (ss.effective_to IS NULL OR ss.effective_to >= $2)
		ORDER BY sc.type, sc.name
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows, true)
}

// ListStructures implements salary.Repository.
func (r *salaryRepositoryImpl) ListStructures(ctx context.Context, employeeID string) ([]salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ss.id, ss.employee_id, ss.component_id, ss.amount, ss.effective_from, ss.effective_to, ss.created_at,
			   sc.name AS component_name, sc.type AS component_type, sc.is_proratable AS component_proratable
		FROM salary_structures ss
		JOIN salary_components sc ON ss.component_id = sc.id
		WHERE ss.employee_id = $1
		ORDER BY ss.effective_from DESC, sc.name
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows, true)
}

func scanStructures(rows pgx.Rows, withComponent bool) ([]salary.Structure, error) {
	structures := make([]salary.Structure, 0)
	for rows.Next() {
		var s salary.Structure
		dest := []any{&s.ID, &s.EmployeeID, &s.ComponentID, &s.Amount,
			&s.EffectiveFrom, &s.EffectiveTo, &s.CreatedAt}
		if withComponent {
			dest = append(dest, &s.ComponentName, &s.ComponentType, &s.ComponentProratable)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		structures = append(structures, s)
	}
	return structures, rows.Err()
}

// CloseStructure implements salary.Repository.
func (r *salaryRepositoryImpl) CloseStructure(ctx context.Context, id string, effectiveTo time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_structures
		SET effective_to = $1
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, effectiveTo, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.ErrStructureNotFound
		}
		return fmt.Errorf("failed to close salary structure: %w", err)
	}
	return nil
}
