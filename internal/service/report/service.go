package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/master/college"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/domain/report"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/storage"
	"github.com/xuri/excelize/v2"
)

// ReportService generates workbook reports over finalized payroll data.
type ReportService interface {
	// Generate builds the requested workbook, stores it and records it.
	Generate(ctx context.Context, req report.GenerateRequest) (report.Response, error)

	// Get retrieves one report record.
	Get(ctx context.Context, id string) (report.Response, error)

	// List retrieves report records with optional filters.
	List(ctx context.Context, collegeID string, year, month int) ([]report.Response, error)

	// OpenFile opens a generated workbook for streaming.
	OpenFile(ctx context.Context, id string) (io.ReadCloser, error)
}

type reportServiceImpl struct {
	reportRepo  report.Repository
	cycleRepo   payroll.CycleRepository
	collegeRepo college.Repository
	fileStorage storage.FileStorage
}

func NewReportService(
	reportRepo report.Repository,
	cycleRepo payroll.CycleRepository,
	collegeRepo college.Repository,
	fileStorage storage.FileStorage,
) ReportService {
	return &reportServiceImpl{
		reportRepo:  reportRepo,
		cycleRepo:   cycleRepo,
		collegeRepo: collegeRepo,
		fileStorage: fileStorage,
	}
}

// Generate implements ReportService.
func (s *reportServiceImpl) Generate(ctx context.Context, req report.GenerateRequest) (report.Response, error) {
	if err := req.Validate(); err != nil {
		return report.Response{}, err
	}

	var (
		content *bytes.Buffer
		name    string
		path    string
		err     error
	)

	switch report.Type(req.Type) {
	case report.TypeSalaryStatement:
		content, name, err = s.salaryStatement(ctx, *req.CollegeID, req.Year, req.Month)
		if err != nil {
			return report.Response{}, err
		}
		path = fmt.Sprintf("reports/%s/%d/%02d/%s.xlsx", *req.CollegeID, req.Year, req.Month, name)
	case report.TypeConsolidated:
		content, name, err = s.consolidated(ctx, req.Year, req.Month)
		if err != nil {
			return report.Response{}, err
		}
		path = fmt.Sprintf("reports/consolidated/%d/%02d/%s.xlsx", req.Year, req.Month, name)
	default:
		return report.Response{}, report.ErrInvalidType
	}

	storedPath, err := s.fileStorage.Save(ctx, content, path)
	if err != nil {
		return report.Response{}, fmt.Errorf("failed to store report: %w", err)
	}

	created, err := s.reportRepo.Create(ctx, report.Report{
		Type:        report.Type(req.Type),
		CollegeID:   req.CollegeID,
		Year:        req.Year,
		Month:       req.Month,
		Name:        name,
		FilePath:    storedPath,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		return report.Response{}, fmt.Errorf("failed to record report: %w", err)
	}

	slog.Info("report generated",
		slog.String("report_id", created.ID),
		slog.String("type", req.Type),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month))

	return report.NewResponse(created), nil
}

// salaryStatement renders one college's per-employee statement.
func (s *reportServiceImpl) salaryStatement(ctx context.Context, collegeID string, year, month int) (*bytes.Buffer, string, error) {
	col, err := s.collegeRepo.GetByID(ctx, collegeID)
	if err != nil {
		return nil, "", err
	}

	cycle, err := s.cycleRepo.GetCycleByPeriod(ctx, collegeID, year, month)
	if err != nil {
		if errors.Is(err, payroll.ErrCycleNotFound) {
			return nil, "", report.ErrNoPayrollData
		}
		return nil, "", fmt.Errorf("failed to get payroll cycle: %w", err)
	}
	entries, err := s.cycleRepo.ListEntries(ctx, cycle.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, "", report.ErrNoPayrollData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Salary Statement"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Salary Statement %s", col.Name, period.Format("January 2006")))
	f.MergeCell(sheetName, "A1", "J1")
	f.SetCellStyle(sheetName, "A1", "J1", headerStyle)
	f.SetRowHeight(sheetName, 1, 25)

	headers := []string{"Code", "Name", "Present", "Absent", "Paid Leave", "Unpaid", "Loss of Pay", "Gross", "Deductions", "Net Pay"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, e := range entries {
		row := i + 4
		values := []any{
			deref(e.EmployeeCode),
			deref(e.EmployeeName),
			e.DaysPresent.InexactFloat64(),
			e.DaysAbsent.InexactFloat64(),
			e.PaidLeavesUsed.InexactFloat64(),
			e.UnpaidLeaves.InexactFloat64(),
			e.LossOfPay.InexactFloat64(),
			e.GrossEarnings.InexactFloat64(),
			e.TotalDeductions.InexactFloat64(),
			e.NetPay.InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	name := fmt.Sprintf("salary-statement-%s-%d-%02d", col.CollegeCode, year, month)
	return &buf, name, nil
}

// consolidated renders one row of period totals per college.
func (s *reportServiceImpl) consolidated(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	colleges, err := s.collegeRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list colleges: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Consolidated"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Consolidated Payroll %s", period.Format("January 2006")))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	headers := []string{"College", "Employees", "Gross", "Deductions", "Net Pay", "Failures"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 4
	withData := 0
	for _, col := range colleges {
		summary, err := s.cycleRepo.GetSummary(ctx, col.ID, year, month)
		if err != nil {
			if errors.Is(err, payroll.ErrCycleNotFound) {
				continue
			}
			return nil, "", fmt.Errorf("failed to get summary for college %s: %w", col.CollegeCode, err)
		}

		values := []any{
			col.Name,
			summary.TotalEmployees,
			summary.TotalGross.InexactFloat64(),
			summary.TotalDeductions.InexactFloat64(),
			summary.TotalNetPay.InexactFloat64(),
			summary.FailedEmployees,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		row++
		withData++
	}
	if withData == 0 {
		return nil, "", report.ErrNoPayrollData
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	name := fmt.Sprintf("consolidated-%d-%02d", year, month)
	return &buf, name, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Get implements ReportService.
func (s *reportServiceImpl) Get(ctx context.Context, id string) (report.Response, error) {
	r, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return report.Response{}, err
	}
	return report.NewResponse(r), nil
}

// List implements ReportService.
func (s *reportServiceImpl) List(ctx context.Context, collegeID string, year, month int) ([]report.Response, error) {
	reports, err := s.reportRepo.List(ctx, collegeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	responses := make([]report.Response, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, report.NewResponse(r))
	}
	return responses, nil
}

// OpenFile implements ReportService.
func (s *reportServiceImpl) OpenFile(ctx context.Context, id string) (io.ReadCloser, error) {
	r, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.fileStorage.Open(ctx, r.FilePath)
}
