package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/config"
	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      []string
		daysInMonth int
		wantErr     error
		wantCols    int
	}{
		{
			name:        "full month",
			header:      []string{"employee_code", "1", "2", "3", "4", "5"},
			daysInMonth: 31,
			wantCols:    5,
		},
		{
			name:        "blank columns skipped",
			header:      []string{"employee_code", "1", "", "3"},
			daysInMonth: 31,
			wantCols:    2,
		},
		{
			name:        "non numeric label",
			header:      []string{"employee_code", "1", "total"},
			daysInMonth: 31,
			wantErr:     attendance.ErrMalformedSheet,
		},
		{
			name:        "day beyond month",
			header:      []string{"employee_code", "30"},
			daysInMonth: 28,
			wantErr:     attendance.ErrMalformedSheet,
		},
		{
			name:        "zero day",
			header:      []string{"employee_code", "0"},
			daysInMonth: 31,
			wantErr:     attendance.ErrMalformedSheet,
		},
		{
			name:        "duplicate day",
			header:      []string{"employee_code", "1", "2", "1"},
			daysInMonth: 31,
			wantErr:     attendance.ErrDuplicateSheetColumn,
		},
		{
			name:        "only code column",
			header:      []string{"employee_code"},
			daysInMonth: 31,
			wantErr:     attendance.ErrMalformedSheet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseHeader(tt.header, tt.daysInMonth)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCols)
		})
	}
}

func TestParseHeaderColumnMapping(t *testing.T) {
	t.Parallel()

	got, err := parseHeader([]string{"employee_code", "5", "12", "28"}, 31)
	require.NoError(t, err)

	assert.Equal(t, 5, got[1])
	assert.Equal(t, 12, got[2])
	assert.Equal(t, 28, got[3])
}

func TestStatusCodes(t *testing.T) {
	t.Parallel()

	want := map[string]attendance.Status{
		"P":  attendance.StatusPresent,
		"A":  attendance.StatusAbsent,
		"HD": attendance.StatusHalfDay,
		"WW": attendance.StatusWeekendWork,
		"H":  attendance.StatusHoliday,
		"L":  attendance.StatusLeave,
	}
	for code, status := range want {
		assert.Equal(t, status, statusCodes[code], "code %q", code)
	}

	// Full names pass through Status validation instead.
	assert.True(t, attendance.Status("PRESENT").IsValid())
	assert.False(t, attendance.Status("SICK").IsValid())
}

// ==================== UPLOAD FAKES ====================

type fakeSheetRepo struct {
	attendance.Repository

	mu      sync.Mutex
	seq     int
	uploads map[string]attendance.Upload
	records []attendance.Record
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{uploads: make(map[string]attendance.Upload)}
}

func (r *fakeSheetRepo) CreateUpload(_ context.Context, upload attendance.Upload) (attendance.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	upload.ID = fmt.Sprintf("upload-%d", r.seq)
	upload.CreatedAt = time.Now().UTC()
	r.uploads[upload.ID] = upload
	return upload, nil
}

func (r *fakeSheetRepo) GetUploadByID(_ context.Context, id string) (attendance.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	upload, ok := r.uploads[id]
	if !ok {
		return attendance.Upload{}, attendance.ErrUploadNotFound
	}
	return upload, nil
}

func (r *fakeSheetRepo) UpdateUploadStatus(_ context.Context, id string, status attendance.UploadStatus, recordsCount int, errorMessage *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	upload, ok := r.uploads[id]
	if !ok {
		return attendance.ErrUploadNotFound
	}
	upload.Status = status
	upload.RecordsCount = recordsCount
	upload.ErrorMessage = errorMessage
	r.uploads[id] = upload
	return nil
}

func (r *fakeSheetRepo) UpsertRecords(_ context.Context, records []attendance.Record) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	return len(records), nil
}

type fakeCodeRepo struct {
	employee.Repository

	byCode map[string]employee.Employee
}

func (r *fakeCodeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	emp, ok := r.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakePeriodCycleRepo struct {
	payroll.CycleRepository

	cycle *payroll.Cycle
}

func (r *fakePeriodCycleRepo) GetCycleByPeriod(_ context.Context, collegeID string, year, month int) (payroll.Cycle, error) {
	if r.cycle != nil && r.cycle.CollegeID == collegeID && r.cycle.Year == year && r.cycle.Month == month {
		return *r.cycle, nil
	}
	return payroll.Cycle{}, payroll.ErrCycleNotFound
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(_ context.Context, file io.Reader, path string) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = content
	return path, nil
}

func (s *memStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *memStorage) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok, nil
}

// ==================== UPLOAD HARNESS ====================

type uploadHarness struct {
	service     attendance.Service
	sheetRepo   *fakeSheetRepo
	cycleRepo   *fakePeriodCycleRepo
	fileStorage *memStorage
}

func newUploadHarness(employees ...employee.Employee) *uploadHarness {
	byCode := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byCode[emp.EmployeeCode] = emp
	}

	sheetRepo := newFakeSheetRepo()
	cycleRepo := &fakePeriodCycleRepo{}
	fileStorage := newMemStorage()
	cfg := config.PayrollConfig{WeekendDays: []time.Weekday{time.Saturday, time.Sunday}}

	return &uploadHarness{
		service:     NewService(cfg, sheetRepo, &fakeCodeRepo{byCode: byCode}, nil, cycleRepo, fileStorage),
		sheetRepo:   sheetRepo,
		cycleRepo:   cycleRepo,
		fileStorage: fileStorage,
	}
}

// buildSheet renders an employee-by-day status grid as an xlsx workbook.
func buildSheet(t *testing.T, header []string, rows ...[]string) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var uploadReq = attendance.UploadRequest{
	CollegeID: "college-1",
	Year:      2025,
	Month:     1,
	FileName:  "january.xlsx",
}

// ==================== UPLOAD TESTS ====================

func TestUpload_IngestsSheet(t *testing.T) {
	t.Parallel()

	h := newUploadHarness(
		employee.Employee{ID: "emp-1", EmployeeCode: "EMP001"},
		employee.Employee{ID: "emp-2", EmployeeCode: "EMP002"},
	)

	sheet := buildSheet(t,
		[]string{"employee_code", "2", "3", "6"},
		[]string{"EMP001", "P", "HD", "PRESENT"},
		[]string{""},
		[]string{"EMP002", "L", "", "A"},
	)

	resp, err := h.service.Upload(context.Background(), uploadReq, sheet)
	require.NoError(t, err)

	assert.Equal(t, attendance.UploadStatusCompleted, resp.Status)
	assert.Equal(t, 5, resp.RecordsCount)
	assert.Nil(t, resp.ErrorMessage)

	require.Len(t, h.sheetRepo.records, 5)
	byKey := make(map[string]attendance.Record, len(h.sheetRepo.records))
	for _, rec := range h.sheetRepo.records {
		byKey[fmt.Sprintf("%s/%d", rec.EmployeeID, rec.Date.Day())] = rec
	}
	assert.Equal(t, attendance.StatusPresent, byKey["emp-1/2"].Status)
	assert.Equal(t, attendance.StatusHalfDay, byKey["emp-1/3"].Status)
	assert.Equal(t, attendance.StatusPresent, byKey["emp-1/6"].Status)
	assert.Equal(t, attendance.StatusLeave, byKey["emp-2/2"].Status)
	assert.Equal(t, attendance.StatusAbsent, byKey["emp-2/6"].Status)

	rec := byKey["emp-1/2"]
	assert.Equal(t, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), rec.Date)
	require.NotNil(t, rec.UploadID)
	assert.Equal(t, resp.ID, *rec.UploadID)

	stored, err := h.fileStorage.Exists(context.Background(), "attendance/college-1/2025/01/january.xlsx")
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestUpload_UnknownEmployeeCodeFailsUpload(t *testing.T) {
	t.Parallel()

	h := newUploadHarness(employee.Employee{ID: "emp-1", EmployeeCode: "EMP001"})

	sheet := buildSheet(t,
		[]string{"employee_code", "2"},
		[]string{"EMP001", "P"},
		[]string{"EMP999", "P"},
	)

	_, err := h.service.Upload(context.Background(), uploadReq, sheet)
	require.ErrorIs(t, err, attendance.ErrUnknownEmployeeCode)
	assert.Contains(t, err.Error(), "EMP999")
	assert.Contains(t, err.Error(), "row 3")

	upload, getErr := h.sheetRepo.GetUploadByID(context.Background(), "upload-1")
	require.NoError(t, getErr)
	assert.Equal(t, attendance.UploadStatusFailed, upload.Status)
	require.NotNil(t, upload.ErrorMessage)
	assert.Contains(t, *upload.ErrorMessage, "EMP999")
}

func TestUpload_InvalidStatusFailsUpload(t *testing.T) {
	t.Parallel()

	h := newUploadHarness(employee.Employee{ID: "emp-1", EmployeeCode: "EMP001"})

	sheet := buildSheet(t,
		[]string{"employee_code", "2", "3"},
		[]string{"EMP001", "P", "SICK"},
	)

	_, err := h.service.Upload(context.Background(), uploadReq, sheet)
	require.ErrorIs(t, err, attendance.ErrInvalidStatus)
	assert.Contains(t, err.Error(), "SICK")

	upload, getErr := h.sheetRepo.GetUploadByID(context.Background(), "upload-1")
	require.NoError(t, getErr)
	assert.Equal(t, attendance.UploadStatusFailed, upload.Status)
}

func TestUpload_MalformedHeaderFailsUpload(t *testing.T) {
	t.Parallel()

	h := newUploadHarness(employee.Employee{ID: "emp-1", EmployeeCode: "EMP001"})

	sheet := buildSheet(t,
		[]string{"employee_code", "1", "Total"},
		[]string{"EMP001", "P", "20"},
	)

	_, err := h.service.Upload(context.Background(), uploadReq, sheet)
	require.ErrorIs(t, err, attendance.ErrMalformedSheet)
}

func TestUpload_LockedPeriodRejected(t *testing.T) {
	t.Parallel()

	h := newUploadHarness(employee.Employee{ID: "emp-1", EmployeeCode: "EMP001"})
	h.cycleRepo.cycle = &payroll.Cycle{
		ID:        "cycle-1",
		CollegeID: "college-1",
		Year:      2025,
		Month:     1,
		Status:    payroll.CycleStatusLocked,
	}

	sheet := buildSheet(t,
		[]string{"employee_code", "2"},
		[]string{"EMP001", "P"},
	)

	_, err := h.service.Upload(context.Background(), uploadReq, sheet)
	require.ErrorIs(t, err, attendance.ErrPeriodLocked)

	// Rejected before anything is stored.
	assert.Empty(t, h.sheetRepo.uploads)
	assert.Empty(t, h.fileStorage.files)
}

func TestUpload_NonLockedCycleAllowed(t *testing.T) {
	t.Parallel()

	h := newUploadHarness(employee.Employee{ID: "emp-1", EmployeeCode: "EMP001"})
	h.cycleRepo.cycle = &payroll.Cycle{
		ID:        "cycle-1",
		CollegeID: "college-1",
		Year:      2025,
		Month:     1,
		Status:    payroll.CycleStatusCompleted,
	}

	sheet := buildSheet(t,
		[]string{"employee_code", "2"},
		[]string{"EMP001", "P"},
	)

	resp, err := h.service.Upload(context.Background(), uploadReq, sheet)
	require.NoError(t, err)
	assert.Equal(t, attendance.UploadStatusCompleted, resp.Status)
}

func TestUpload_SheetWithoutDataRows(t *testing.T) {
	t.Parallel()

	h := newUploadHarness()

	sheet := buildSheet(t, []string{"employee_code", "1"})

	_, err := h.service.Upload(context.Background(), uploadReq, sheet)
	require.ErrorIs(t, err, attendance.ErrMalformedSheet)
}
