package department

import (
	"context"
	"time"
)

type Department struct {
	ID        string
	CollegeID string
	Name      string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	ListByCollege(ctx context.Context, collegeID string) ([]Department, error)
	Delete(ctx context.Context, id string) error
}
