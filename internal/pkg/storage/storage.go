package storage

import (
	"context"
	"io"
)

// FileStorage abstracts where generated artifacts live: uploaded attendance
// sheets, payslip PDFs and report workbooks.
type FileStorage interface {
	// Save writes the file under the given relative path and returns the
	// stored path.
	Save(ctx context.Context, file io.Reader, path string) (string, error)

	// Open retrieves a stored file for reading.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file is stored under the path.
	Exists(ctx context.Context, path string) (bool, error)
}
