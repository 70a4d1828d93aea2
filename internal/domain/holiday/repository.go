package holiday

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	ListForPeriod(ctx context.Context, collegeID string, from, to time.Time) ([]Holiday, error)
	ListForCollege(ctx context.Context, collegeID string, year int) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
