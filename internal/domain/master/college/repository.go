package college

import (
	"context"
	"time"
)

type College struct {
	ID           string
	SerialNumber int
	CollegeCode  string
	Name         string
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository interface {
	Create(ctx context.Context, c College) (College, error)
	GetByID(ctx context.Context, id string) (College, error)
	GetByCode(ctx context.Context, code string) (College, error)
	List(ctx context.Context) ([]College, error)
	Update(ctx context.Context, req UpdateRequest) error
	Delete(ctx context.Context, id string) error
}
