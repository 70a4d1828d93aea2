package attendance

import (
	"context"
	"io"
)

// Service defines business logic for attendance records and bulk uploads.
type Service interface {
	// Upload stores an attendance sheet and registers a PENDING upload, then
	// ingests it. Rows for months covered by a locked payroll cycle are
	// rejected before any record is written.
	Upload(ctx context.Context, req UploadRequest, file io.Reader) (UploadResponse, error)

	// GetUpload retrieves one upload with its ingestion outcome.
	GetUpload(ctx context.Context, id string) (UploadResponse, error)

	// ListUploads retrieves a college's uploads, newest first.
	ListUploads(ctx context.Context, collegeID string) ([]UploadResponse, error)

	// Summary reconciles every active employee of a college over a month.
	Summary(ctx context.Context, collegeID string, year, month int) ([]SummaryRow, error)
}
