package employee

import "context"

// Service defines business logic for employee management.
type Service interface {
	// Create registers an employee under a college, department and
	// designation.
	Create(ctx context.Context, req CreateRequest) (Response, error)

	// Get retrieves one employee by ID.
	Get(ctx context.Context, id string) (Response, error)

	// GetByCode retrieves one employee by employee code.
	GetByCode(ctx context.Context, code string) (Response, error)

	// List retrieves employees with filters and pagination.
	List(ctx context.Context, filter Filter) ([]Response, int64, error)

	// Update applies a partial update.
	Update(ctx context.Context, req UpdateRequest) (Response, error)

	// Deactivate marks an employee inactive; payroll batches skip them from
	// then on.
	Deactivate(ctx context.Context, id string) error
}
