package designation

import (
	"context"
	"time"
)

type Designation struct {
	ID        string
	CollegeID string
	Name      string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, d Designation) (Designation, error)
	GetByID(ctx context.Context, id string) (Designation, error)
	ListByCollege(ctx context.Context, collegeID string) ([]Designation, error)
	Delete(ctx context.Context, id string) error
}
