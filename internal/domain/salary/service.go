package salary

import (
	"context"
	"time"
)

// Service defines business logic for the salary component catalog and
// per-employee effective-dated structures.
type Service interface {
	// CreateComponent adds a pay head to the catalog.
	CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)

	// ListComponents retrieves the full catalog.
	ListComponents(ctx context.Context) ([]ComponentResponse, error)

	// AssignStructure creates an effective-dated amount for an employee and
	// component. An open-ended prior row for the same component is closed the
	// day before the new row starts; an explicit overlap is rejected.
	AssignStructure(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)

	// ListStructures retrieves an employee's structure history.
	ListStructures(ctx context.Context, employeeID string) ([]StructureResponse, error)

	// ResolveForDate returns the component set active for an employee on a
	// date, enforcing mandatory-component coverage.
	ResolveForDate(ctx context.Context, employeeID string, date time.Time) ([]ResolvedComponent, error)
}
