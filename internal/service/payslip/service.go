package payslip

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/college"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/storage"
	"github.com/jung-kurt/gofpdf"
)

// PayslipService generates per-entry PDF payslips and cycle-wide archives
// once a payroll cycle is finalized.
type PayslipService interface {
	// GenerateForCycle renders a payslip for every entry of a COMPLETED or
	// LOCKED cycle. Existing payslips are regenerated.
	GenerateForCycle(ctx context.Context, cycleID string) ([]payroll.PayslipResponse, error)

	// GetForEntry retrieves the payslip record of one entry.
	GetForEntry(ctx context.Context, entryID string) (payroll.PayslipResponse, error)

	// OpenFile opens a generated payslip PDF for streaming.
	OpenFile(ctx context.Context, entryID string) (io.ReadCloser, error)

	// ZipForCycle bundles all of a cycle's payslips into one zip archive and
	// opens it for streaming.
	ZipForCycle(ctx context.Context, cycleID string) (io.ReadCloser, error)
}

type payslipServiceImpl struct {
	cycleRepo    payroll.CycleRepository
	employeeRepo employee.Repository
	collegeRepo  college.Repository
	fileStorage  storage.FileStorage
}

func NewPayslipService(
	cycleRepo payroll.CycleRepository,
	employeeRepo employee.Repository,
	collegeRepo college.Repository,
	fileStorage storage.FileStorage,
) PayslipService {
	return &payslipServiceImpl{
		cycleRepo:    cycleRepo,
		employeeRepo: employeeRepo,
		collegeRepo:  collegeRepo,
		fileStorage:  fileStorage,
	}
}

// GenerateForCycle implements PayslipService.
func (s *payslipServiceImpl) GenerateForCycle(ctx context.Context, cycleID string) ([]payroll.PayslipResponse, error) {
	cycle, err := s.cycleRepo.GetCycleByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.Status != payroll.CycleStatusCompleted && cycle.Status != payroll.CycleStatusLocked {
		return nil, payroll.ErrCycleNotCompleted
	}

	col, err := s.collegeRepo.GetByID(ctx, cycle.CollegeID)
	if err != nil {
		return nil, err
	}

	entries, err := s.cycleRepo.ListEntries(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, payroll.ErrNoEntries
	}

	responses := make([]payroll.PayslipResponse, 0, len(entries))
	for _, entry := range entries {
		emp, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := renderPayslip(&buf, cycle, col, emp, entry); err != nil {
			return nil, fmt.Errorf("failed to render payslip for %s: %w", emp.EmployeeCode, err)
		}

		path := fmt.Sprintf("payslips/%s/%d/%02d/%s.pdf", col.CollegeCode, cycle.Year, cycle.Month, emp.EmployeeCode)
		storedPath, err := s.fileStorage.Save(ctx, &buf, path)
		if err != nil {
			return nil, fmt.Errorf("failed to store payslip: %w", err)
		}

		// Regeneration replaces the record along with the file.
		if prior, err := s.cycleRepo.GetPayslipByEntry(ctx, entry.ID); err == nil {
			if err := s.cycleRepo.DeletePayslip(ctx, prior.ID); err != nil {
				return nil, fmt.Errorf("failed to delete prior payslip: %w", err)
			}
		}

		slip, err := s.cycleRepo.CreatePayslip(ctx, payroll.Payslip{
			EntryID:     entry.ID,
			EmployeeID:  emp.ID,
			CycleID:     cycle.ID,
			FilePath:    storedPath,
			GeneratedAt: time.Now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create payslip record: %w", err)
		}
		responses = append(responses, payroll.NewPayslipResponse(slip))
	}

	slog.Info("payslips generated",
		slog.String("cycle_id", cycle.ID),
		slog.Int("count", len(responses)))

	return responses, nil
}

// renderPayslip writes one entry's payslip PDF.
func renderPayslip(w io.Writer, cycle payroll.Cycle, col college.College, emp employee.Employee, entry payroll.Entry) error {
	period := time.Date(cycle.Year, time.Month(cycle.Month), 1, 0, 0, 0, 0, time.UTC)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, col.Name)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip - %s", period.Format("January 2006")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", emp.FullName(), emp.EmployeeCode))
	pdf.Ln(6)
	if emp.PANNumber != nil {
		pdf.Cell(0, 7, fmt.Sprintf("PAN: %s", *emp.PANNumber))
		pdf.Ln(6)
	}
	if emp.BankAccount != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Bank A/C: %s", *emp.BankAccount))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.Cell(0, 7, fmt.Sprintf("Working days: %d    Present: %s    Absent: %s",
		cycle.TotalWorkingDays, entry.DaysPresent.String(), entry.DaysAbsent.String()))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Paid leave: %s    Comp leave: %s    Unpaid: %s",
		entry.PaidLeavesUsed.String(), entry.CompLeavesUsed.String(), entry.UnpaidLeaves.String()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Component", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, c := range entry.Components {
		pdf.CellFormat(120, 8, fmt.Sprintf("%s (%s)", c.ComponentName, c.ComponentType), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, c.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Gross Earnings: %s", entry.GrossEarnings.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total Deductions: %s", entry.TotalDeductions.StringFixed(2)))
	pdf.Ln(6)
	if entry.LossOfPay.Sign() > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Loss of Pay (withheld): %s", entry.LossOfPay.StringFixed(2)))
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 9, fmt.Sprintf("Net Pay: %s", entry.NetPay.StringFixed(2)))

	return pdf.Output(w)
}

// GetForEntry implements PayslipService.
func (s *payslipServiceImpl) GetForEntry(ctx context.Context, entryID string) (payroll.PayslipResponse, error) {
	slip, err := s.cycleRepo.GetPayslipByEntry(ctx, entryID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(slip), nil
}

// OpenFile implements PayslipService.
func (s *payslipServiceImpl) OpenFile(ctx context.Context, entryID string) (io.ReadCloser, error) {
	slip, err := s.cycleRepo.GetPayslipByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return s.fileStorage.Open(ctx, slip.FilePath)
}

// ZipForCycle implements PayslipService.
func (s *payslipServiceImpl) ZipForCycle(ctx context.Context, cycleID string) (io.ReadCloser, error) {
	cycle, err := s.cycleRepo.GetCycleByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	slips, err := s.cycleRepo.ListPayslips(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	if len(slips) == 0 {
		return nil, payroll.ErrNoEntries
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, slip := range slips {
		src, err := s.fileStorage.Open(ctx, slip.FilePath)
		if err != nil {
			zw.Close()
			return nil, err
		}

		emp, err := s.employeeRepo.GetByID(ctx, slip.EmployeeID)
		if err != nil {
			src.Close()
			zw.Close()
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, fmt.Errorf("payslip %s references missing employee %s", slip.ID, slip.EmployeeID)
			}
			return nil, err
		}

		dst, err := zw.Create(fmt.Sprintf("%s.pdf", emp.EmployeeCode))
		if err != nil {
			src.Close()
			zw.Close()
			return nil, fmt.Errorf("failed to add payslip to archive: %w", err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			zw.Close()
			return nil, fmt.Errorf("failed to write payslip to archive: %w", err)
		}
		src.Close()
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	path := fmt.Sprintf("payslips/archives/%s-%d-%02d.zip", cycle.CollegeID, cycle.Year, cycle.Month)
	if _, err := s.fileStorage.Save(ctx, bytes.NewReader(buf.Bytes()), path); err != nil {
		return nil, fmt.Errorf("failed to store payslip archive: %w", err)
	}
	return s.fileStorage.Open(ctx, path)
}
