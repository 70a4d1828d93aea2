package salary

import (
	"context"
	"fmt"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	salary.Repository
	employeeRepo employee.Repository
}

func NewService(salaryRepo salary.Repository, employeeRepo employee.Repository) salary.Service {
	return &ServiceImpl{
		Repository:   salaryRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateComponent implements salary.Service.
func (s *ServiceImpl) CreateComponent(ctx context.Context, req salary.CreateComponentRequest) (salary.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ComponentResponse{}, err
	}

	component, err := s.Repository.CreateComponent(ctx, salary.Component{
		Name:         req.Name,
		Type:         salary.ComponentType(req.Type),
		IsDefault:    req.IsDefault,
		IsProratable: req.IsProratable,
		Description:  req.Description,
	})
	if err != nil {
		return salary.ComponentResponse{}, fmt.Errorf("failed to create salary component: %w", err)
	}
	return salary.NewComponentResponse(component), nil
}

// ListComponents implements salary.Service.
func (s *ServiceImpl) ListComponents(ctx context.Context) ([]salary.ComponentResponse, error) {
	components, err := s.Repository.ListComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	responses := make([]salary.ComponentResponse, 0, len(components))
	for _, c := range components {
		responses = append(responses, salary.NewComponentResponse(c))
	}
	return responses, nil
}

// AssignStructure implements salary.Service.
func (s *ServiceImpl) AssignStructure(ctx context.Context, req salary.CreateStructureRequest) (salary.StructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.StructureResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return salary.StructureResponse{}, err
	}
	component, err := s.Repository.GetComponentByID(ctx, req.ComponentID)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	from, _ := validator.ParseDate(req.EffectiveFrom)
	var to *time.Time
	if req.EffectiveTo != nil {
		parsed, _ := validator.ParseDate(*req.EffectiveTo)
		to = &parsed
	}

	// A prior open-ended row for the same component ends the day before the
	// new one starts. Rows with explicit end dates that still overlap are a
	// caller mistake and rejected.
	existing, err := s.Repository.ListStructures(ctx, emp.ID)
	if err != nil {
		return salary.StructureResponse{}, fmt.Errorf("failed to list salary structures: %w", err)
	}
	for _, row := range existing {
		if row.ComponentID != component.ID {
			continue
		}
		if row.EffectiveTo == nil {
			if !row.EffectiveFrom.Before(from) {
				return salary.StructureResponse{}, &salary.StructureOverlapError{
					EmployeeID:    emp.ID,
					ComponentName: component.Name,
					Date:          from,
				}
			}
			if err := s.Repository.CloseStructure(ctx, row.ID, from.AddDate(0, 0, -1)); err != nil {
				return salary.StructureResponse{}, fmt.Errorf("failed to close salary structure: %w", err)
			}
			continue
		}
		if overlaps(row.EffectiveFrom, row.EffectiveTo, from, to) {
			return salary.StructureResponse{}, &salary.StructureOverlapError{
				EmployeeID:    emp.ID,
				ComponentName: component.Name,
				Date:          from,
			}
		}
	}

	created, err := s.Repository.CreateStructure(ctx, salary.Structure{
		EmployeeID:    emp.ID,
		ComponentID:   component.ID,
		Amount:        req.Amount,
		EffectiveFrom: from,
		EffectiveTo:   to,
	})
	if err != nil {
		return salary.StructureResponse{}, fmt.Errorf("failed to create salary structure: %w", err)
	}
	return salary.NewStructureResponse(created), nil
}

// overlaps reports whether [aFrom, aTo] and [bFrom, bTo] intersect; a nil end
// means open-ended.
func overlaps(aFrom time.Time, aTo *time.Time, bFrom time.Time, bTo *time.Time) bool {
	if aTo != nil && aTo.Before(bFrom) {
		return false
	}
	if bTo != nil && bTo.Before(aFrom) {
		return false
	}
	return true
}

// ListStructures implements salary.Service.
func (s *ServiceImpl) ListStructures(ctx context.Context, employeeID string) ([]salary.StructureResponse, error) {
	rows, err := s.Repository.ListStructures(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}
	responses := make([]salary.StructureResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, salary.NewStructureResponse(row))
	}
	return responses, nil
}

// ResolveForDate implements salary.Service.
func (s *ServiceImpl) ResolveForDate(ctx context.Context, employeeID string, date time.Time) ([]salary.ResolvedComponent, error) {
	rows, err := s.Repository.GetStructuresForDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary structures: %w", err)
	}
	defaults, err := s.Repository.ListDefaultComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list default components: %w", err)
	}
	return Resolve(employeeID, date, rows, defaults)
}
