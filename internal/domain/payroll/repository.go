package payroll

import "context"

// CycleRepository defines data access for payroll cycles and their entries.
type CycleRepository interface {
	// Cycles
	CreateCycle(ctx context.Context, cycle Cycle) (Cycle, error)
	GetCycleByID(ctx context.Context, id string) (Cycle, error)
	GetCycleByPeriod(ctx context.Context, collegeID string, year, month int) (Cycle, error)
	ListCycles(ctx context.Context, filter CycleFilter) ([]Cycle, int64, error)
	// UpdateCycleStatus performs a guarded transition: the update applies only
	// if the stored status is one of allowedFrom, and reports whether it did.
	UpdateCycleStatus(ctx context.Context, id string, to CycleStatus, allowedFrom ...CycleStatus) (bool, error)
	SetCycleWorkingDays(ctx context.Context, id string, workingDays int) error
	SetCycleFailures(ctx context.Context, id string, failures []CycleFailure) error
	LockCycle(ctx context.Context, id string) (Cycle, error)

	// Entries
	GetEntry(ctx context.Context, cycleID, employeeID string) (Entry, error)
	GetEntryByID(ctx context.Context, id string) (Entry, error)
	ListEntries(ctx context.Context, cycleID string) ([]Entry, error)
	// ReplaceEntry deletes any prior entry for (cycle, employee) and inserts
	// the new one with its component rows. Callers run it inside a
	// transaction together with the leave-balance update.
	ReplaceEntry(ctx context.Context, entry Entry) (Entry, error)

	// Payslips
	CreatePayslip(ctx context.Context, slip Payslip) (Payslip, error)
	GetPayslipByEntry(ctx context.Context, entryID string) (Payslip, error)
	DeletePayslip(ctx context.Context, id string) error
	ListPayslips(ctx context.Context, cycleID string) ([]Payslip, error)

	// Aggregations
	GetSummary(ctx context.Context, collegeID string, year, month int) (Summary, error)
}
