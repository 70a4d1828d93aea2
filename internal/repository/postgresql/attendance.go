package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

// GetRecordsForPeriod implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetRecordsForPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, status, upload_id, created_at
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetRecordsForCollege implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetRecordsForCollege(ctx context.Context, collegeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ar.id, ar.employee_id, ar.date, ar.status, ar.upload_id, ar.created_at
		FROM attendance_records ar
		JOIN employees e ON ar.employee_id = e.id
		WHERE e.college_id = $1 AND ar.date BETWEEN $2 AND $3
		ORDER BY e.employee_code, ar.date
	`

	rows, err := q.Query(ctx, query, collegeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.UploadID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpsertRecord implements attendance.Repository.
func (r *attendanceRepositoryImpl) UpsertRecord(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, status, upload_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET status = EXCLUDED.status, upload_id = EXCLUDED.upload_id
		RETURNING id, employee_id, date, status, upload_id, created_at
	`

	var upserted attendance.Record
	err := q.QueryRow(ctx, query, record.EmployeeID, record.Date, record.Status, record.UploadID).
		Scan(&upserted.ID, &upserted.EmployeeID, &upserted.Date, &upserted.Status,
			&upserted.UploadID, &upserted.CreatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return upserted, nil
}

// UpsertRecords implements attendance.Repository.
func (r *attendanceRepositoryImpl) UpsertRecords(ctx context.Context, records []attendance.Record) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (employee_id, date, status, upload_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET status = EXCLUDED.status, upload_id = EXCLUDED.upload_id
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query, rec.EmployeeID, rec.Date, rec.Status, rec.UploadID)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("failed to upsert attendance records: %w", err)
		}
	}
	return len(records), nil
}

// CreateUpload implements attendance.Repository.
func (r *attendanceRepositoryImpl) CreateUpload(ctx context.Context, upload attendance.Upload) (attendance.Upload, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_uploads (college_id, year, month, file_path, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, college_id, year, month, file_path, status, records_count, error_message, created_at, updated_at
	`

	var created attendance.Upload
	err := q.QueryRow(ctx, query, upload.CollegeID, upload.Year, upload.Month, upload.FilePath, upload.Status).
		Scan(&created.ID, &created.CollegeID, &created.Year, &created.Month, &created.FilePath,
			&created.Status, &created.RecordsCount, &created.ErrorMessage, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return attendance.Upload{}, fmt.Errorf("failed to create attendance upload: %w", err)
	}
	return created, nil
}

// GetUploadByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetUploadByID(ctx context.Context, id string) (attendance.Upload, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, college_id, year, month, file_path, status, records_count, error_message, created_at, updated_at
		FROM attendance_uploads
		WHERE id = $1
	`

	var u attendance.Upload
	err := q.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.CollegeID, &u.Year, &u.Month, &u.FilePath, &u.Status,
			&u.RecordsCount, &u.ErrorMessage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Upload{}, attendance.ErrUploadNotFound
		}
		return attendance.Upload{}, fmt.Errorf("failed to get attendance upload: %w", err)
	}
	return u, nil
}

// ListUploads implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListUploads(ctx context.Context, collegeID string) ([]attendance.Upload, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, college_id, year, month, file_path, status, records_count, error_message, created_at, updated_at
		FROM attendance_uploads
		WHERE college_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uploads := make([]attendance.Upload, 0)
	for rows.Next() {
		var u attendance.Upload
		if err := rows.Scan(&u.ID, &u.CollegeID, &u.Year, &u.Month, &u.FilePath, &u.Status,
			&u.RecordsCount, &u.ErrorMessage, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// UpdateUploadStatus implements attendance.Repository.
func (r *attendanceRepositoryImpl) UpdateUploadStatus(ctx context.Context, id string, status attendance.UploadStatus, recordsCount int, errorMessage *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_uploads
		SET status = $1, records_count = $2, error_message = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, status, recordsCount, errorMessage, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrUploadNotFound
		}
		return fmt.Errorf("failed to update attendance upload: %w", err)
	}
	return nil
}
