package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
	ListActiveByCollege(ctx context.Context, collegeID string) ([]Employee, error)
	Update(ctx context.Context, req UpdateRequest) error
	Deactivate(ctx context.Context, id string) error
}
