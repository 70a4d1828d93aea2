package payroll

import (
	"context"
)

// CycleService defines business logic for payroll cycles and entries.
type CycleService interface {
	// Calculate runs (or re-runs) the payroll batch for a college-month,
	// creating the cycle on first use. Per-employee failures land in the
	// cycle's failure manifest instead of aborting the batch.
	Calculate(ctx context.Context, req CalculateRequest) (CycleResponse, error)

	// Lock finalizes a COMPLETED cycle. Refused while the failure manifest
	// is non-empty unless the request acknowledges it.
	Lock(ctx context.Context, cycleID string, req LockRequest) (CycleResponse, error)

	// GetCycle retrieves one cycle with its failure manifest.
	GetCycle(ctx context.Context, id string) (CycleResponse, error)

	// ListCycles retrieves cycles with filters and pagination.
	ListCycles(ctx context.Context, filter CycleFilter) ([]CycleResponse, int64, error)

	// ListEntries retrieves all entries of a cycle.
	ListEntries(ctx context.Context, cycleID string) ([]EntryResponse, error)

	// GetEntry retrieves a single entry with its component breakdown.
	GetEntry(ctx context.Context, id string) (EntryResponse, error)

	// GetSummary aggregates totals for a college-month.
	GetSummary(ctx context.Context, collegeID string, year, month int) (Summary, error)
}
