package salary

import (
	"context"
	"time"
)

type Repository interface {
	// Components
	CreateComponent(ctx context.Context, c Component) (Component, error)
	GetComponentByID(ctx context.Context, id string) (Component, error)
	ListComponents(ctx context.Context) ([]Component, error)
	ListDefaultComponents(ctx context.Context) ([]Component, error)

	// Structures
	CreateStructure(ctx context.Context, s Structure) (Structure, error)
	// GetStructuresForDate returns every row (with component fields joined)
	// whose range touches the given date for one employee.
	GetStructuresForDate(ctx context.Context, employeeID string, date time.Time) ([]Structure, error)
	ListStructures(ctx context.Context, employeeID string) ([]Structure, error)
	CloseStructure(ctx context.Context, id string, effectiveTo time.Time) error
}
