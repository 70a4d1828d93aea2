package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/config"
	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/storage"
	"github.com/xuri/excelize/v2"
)

// statusCodes maps the short codes used in attendance sheets to record
// statuses. Full status names are accepted too.
var statusCodes = map[string]attendance.Status{
	"P":  attendance.StatusPresent,
	"A":  attendance.StatusAbsent,
	"HD": attendance.StatusHalfDay,
	"WW": attendance.StatusWeekendWork,
	"H":  attendance.StatusHoliday,
	"L":  attendance.StatusLeave,
}

type ServiceImpl struct {
	cfg config.PayrollConfig
	attendance.Repository
	employeeRepo employee.Repository
	holidayRepo  holiday.Repository
	cycleRepo    payroll.CycleRepository
	fileStorage  storage.FileStorage
}

func NewService(
	cfg config.PayrollConfig,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	holidayRepo holiday.Repository,
	cycleRepo payroll.CycleRepository,
	fileStorage storage.FileStorage,
) attendance.Service {
	return &ServiceImpl{
		cfg:          cfg,
		Repository:   attendanceRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		cycleRepo:    cycleRepo,
		fileStorage:  fileStorage,
	}
}

// Upload implements attendance.Service.
func (s *ServiceImpl) Upload(ctx context.Context, req attendance.UploadRequest, file io.Reader) (attendance.UploadResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.UploadResponse{}, err
	}

	cycle, err := s.cycleRepo.GetCycleByPeriod(ctx, req.CollegeID, req.Year, req.Month)
	if err != nil && !errors.Is(err, payroll.ErrCycleNotFound) {
		return attendance.UploadResponse{}, fmt.Errorf("failed to check payroll cycle: %w", err)
	}
	if err == nil && cycle.Status == payroll.CycleStatusLocked {
		return attendance.UploadResponse{}, attendance.ErrPeriodLocked
	}

	// The sheet is parsed from memory and archived as uploaded.
	content, err := io.ReadAll(file)
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}

	path := fmt.Sprintf("attendance/%s/%d/%02d/%s", req.CollegeID, req.Year, req.Month, req.FileName)
	storedPath, err := s.fileStorage.Save(ctx, bytes.NewReader(content), path)
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to store attendance sheet: %w", err)
	}

	upload, err := s.Repository.CreateUpload(ctx, attendance.Upload{
		CollegeID: req.CollegeID,
		Year:      req.Year,
		Month:     req.Month,
		FilePath:  storedPath,
		Status:    attendance.UploadStatusPending,
	})
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to create upload: %w", err)
	}

	if err := s.Repository.UpdateUploadStatus(ctx, upload.ID, attendance.UploadStatusProcessing, 0, nil); err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to mark upload processing: %w", err)
	}

	count, err := s.ingest(ctx, upload, bytes.NewReader(content))
	if err != nil {
		msg := err.Error()
		if updErr := s.Repository.UpdateUploadStatus(ctx, upload.ID, attendance.UploadStatusFailed, count, &msg); updErr != nil {
			slog.Error("failed to mark upload failed",
				slog.String("upload_id", upload.ID), slog.Any("error", updErr))
		}
		return attendance.UploadResponse{}, err
	}

	if err := s.Repository.UpdateUploadStatus(ctx, upload.ID, attendance.UploadStatusCompleted, count, nil); err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to mark upload completed: %w", err)
	}

	slog.Info("attendance sheet ingested",
		slog.String("upload_id", upload.ID),
		slog.String("college_id", req.CollegeID),
		slog.Int("records", count))

	upload, err = s.Repository.GetUploadByID(ctx, upload.ID)
	if err != nil {
		return attendance.UploadResponse{}, fmt.Errorf("failed to reload upload: %w", err)
	}
	return attendance.NewUploadResponse(upload), nil
}

// ingest parses an employee-by-day status grid and upserts the records. The
// header row carries "employee_code" followed by day-of-month numbers; cell
// values are status codes, blank cells mean no record.
func (s *ServiceImpl) ingest(ctx context.Context, upload attendance.Upload, sheet io.Reader) (int, error) {
	f, err := excelize.OpenReader(sheet)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", attendance.ErrMalformedSheet, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", attendance.ErrMalformedSheet, err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("%w: sheet has no data rows", attendance.ErrMalformedSheet)
	}

	period := attendance.NewPeriod(upload.Year, upload.Month)
	dayByColumn, err := parseHeader(rows[0], period.DaysInMonth())
	if err != nil {
		return 0, err
	}

	var records []attendance.Record
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		code := strings.TrimSpace(row[0])

		emp, err := s.employeeRepo.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return 0, fmt.Errorf("%w: %q (row %d)", attendance.ErrUnknownEmployeeCode, code, i+2)
			}
			return 0, fmt.Errorf("failed to look up employee %q: %w", code, err)
		}

		for col, day := range dayByColumn {
			if col >= len(row) {
				continue
			}
			cell := strings.ToUpper(strings.TrimSpace(row[col]))
			if cell == "" {
				continue
			}
			status, ok := statusCodes[cell]
			if !ok {
				status = attendance.Status(cell)
				if !status.IsValid() {
					return 0, fmt.Errorf("%w: unknown status %q (row %d)", attendance.ErrInvalidStatus, cell, i+2)
				}
			}
			records = append(records, attendance.Record{
				EmployeeID: emp.ID,
				Date:       time.Date(upload.Year, time.Month(upload.Month), day, 0, 0, 0, 0, time.UTC),
				Status:     status,
				UploadID:   &upload.ID,
			})
		}
	}

	return s.Repository.UpsertRecords(ctx, records)
}

// parseHeader maps column index to day-of-month. The first column is the
// employee code; each remaining column names one day.
func parseHeader(header []string, daysInMonth int) (map[int]int, error) {
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header row too short", attendance.ErrMalformedSheet)
	}

	dayByColumn := make(map[int]int, len(header)-1)
	seen := make(map[int]bool, len(header)-1)
	for col := 1; col < len(header); col++ {
		label := strings.TrimSpace(header[col])
		if label == "" {
			continue
		}
		day, err := strconv.Atoi(label)
		if err != nil || day < 1 || day > daysInMonth {
			return nil, fmt.Errorf("%w: header column %q is not a day of the month", attendance.ErrMalformedSheet, label)
		}
		if seen[day] {
			return nil, fmt.Errorf("%w: day %d", attendance.ErrDuplicateSheetColumn, day)
		}
		seen[day] = true
		dayByColumn[col] = day
	}
	return dayByColumn, nil
}

// GetUpload implements attendance.Service.
func (s *ServiceImpl) GetUpload(ctx context.Context, id string) (attendance.UploadResponse, error) {
	upload, err := s.Repository.GetUploadByID(ctx, id)
	if err != nil {
		return attendance.UploadResponse{}, err
	}
	return attendance.NewUploadResponse(upload), nil
}

// ListUploads implements attendance.Service.
func (s *ServiceImpl) ListUploads(ctx context.Context, collegeID string) ([]attendance.UploadResponse, error) {
	uploads, err := s.Repository.ListUploads(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	responses := make([]attendance.UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		responses = append(responses, attendance.NewUploadResponse(u))
	}
	return responses, nil
}

// Summary implements attendance.Service.
func (s *ServiceImpl) Summary(ctx context.Context, collegeID string, year, month int) ([]attendance.SummaryRow, error) {
	period := attendance.NewPeriod(year, month)

	employees, err := s.employeeRepo.ListActiveByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	holidays, err := s.holidayRepo.ListForPeriod(ctx, collegeID, period.Start(), period.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	rows := make([]attendance.SummaryRow, 0, len(employees))
	for _, emp := range employees {
		records, err := s.Repository.GetRecordsForPeriod(ctx, emp.ID, period.Start(), period.End())
		if err != nil {
			return nil, fmt.Errorf("failed to get records for employee %s: %w", emp.EmployeeCode, err)
		}
		counts := Reconcile(period, s.cfg.WeekendDays, holidays, records)
		rows = append(rows, attendance.SummaryRow{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.EmployeeCode,
			EmployeeName: emp.FullName(),
			Present:      counts.Present,
			Absent:       counts.Absent,
			HalfDay:      counts.HalfDay,
			WeekendWork:  counts.WeekendWork,
			Holiday:      counts.Holiday,
			Leave:        counts.Leave,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeCode < rows[j].EmployeeCode })
	return rows, nil
}
