package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Records
	GetRecordsForPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	GetRecordsForCollege(ctx context.Context, collegeID string, from, to time.Time) ([]Record, error)
	UpsertRecord(ctx context.Context, record Record) (Record, error)
	UpsertRecords(ctx context.Context, records []Record) (int, error)

	// Uploads
	CreateUpload(ctx context.Context, upload Upload) (Upload, error)
	GetUploadByID(ctx context.Context, id string) (Upload, error)
	ListUploads(ctx context.Context, collegeID string) ([]Upload, error)
	UpdateUploadStatus(ctx context.Context, id string, status UploadStatus, recordsCount int, errorMessage *string) error
}
