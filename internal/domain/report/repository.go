package report

import "context"

type Repository interface {
	Create(ctx context.Context, r Report) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	List(ctx context.Context, collegeID string, year, month int) ([]Report, error)
}
