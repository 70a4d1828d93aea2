package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleStatus enum
type CycleStatus string

const (
	CycleStatusDraft      CycleStatus = "DRAFT"
	CycleStatusProcessing CycleStatus = "PROCESSING"
	CycleStatusCompleted  CycleStatus = "COMPLETED"
	CycleStatusLocked     CycleStatus = "LOCKED"
)

// transitions is the full cycle state machine. LOCKED is terminal.
var transitions = map[CycleStatus][]CycleStatus{
	CycleStatusDraft:      {CycleStatusProcessing},
	CycleStatusProcessing: {CycleStatusCompleted, CycleStatusDraft},
	CycleStatusCompleted:  {CycleStatusProcessing, CycleStatusLocked},
	CycleStatusLocked:     {},
}

// CanTransition reports whether moving from s to next is a legal cycle
// transition.
func (s CycleStatus) CanTransition(next CycleStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s CycleStatus) IsValid() bool {
	switch s {
	case CycleStatusDraft, CycleStatusProcessing, CycleStatusCompleted, CycleStatusLocked:
		return true
	}
	return false
}

// Cycle - one payroll computation batch for a (college, year, month) tuple.
// Unique per tuple. TotalWorkingDays is snapshotted when processing begins and
// never changes afterwards.
type Cycle struct {
	ID               string
	CollegeID        string
	Year             int
	Month            int
	TotalWorkingDays int
	Status           CycleStatus
	Failures         []CycleFailure
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LockedAt         *time.Time

	// Joined fields
	CollegeCode *string
	CollegeName *string
}

// CycleFailure records a per-employee calculation failure. Failures do not
// abort the batch; they block locking until resolved or acknowledged.
type CycleFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Reason       string `json:"reason"`
}

// Entry - the computed payroll result for one employee in one cycle.
// Replaced atomically on recalculation while the cycle is DRAFT/PROCESSING,
// frozen at COMPLETED, immutable at LOCKED.
type Entry struct {
	ID              string
	CycleID         string
	EmployeeID      string
	DaysPresent     decimal.Decimal
	DaysAbsent      decimal.Decimal
	WeekendWorkDays decimal.Decimal
	PaidLeavesUsed  decimal.Decimal
	CompLeavesUsed  decimal.Decimal
	UnpaidLeaves    decimal.Decimal
	LossOfPay       decimal.Decimal
	GrossEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Components      []EntryComponent
	CreatedAt       time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
}

// EntryComponent - per-component breakdown of an entry.
type EntryComponent struct {
	ID            string
	EntryID       string
	ComponentID   string
	ComponentName string
	ComponentType string
	Amount        decimal.Decimal
}

// Payslip - generated artifact for one entry; created only once the owning
// cycle is COMPLETED or LOCKED.
type Payslip struct {
	ID          string
	EntryID     string
	EmployeeID  string
	CycleID     string
	FilePath    string
	GeneratedAt time.Time
}

// Summary - aggregate totals for a period.
type Summary struct {
	TotalEmployees  int             `json:"total_employees"`
	TotalGross      decimal.Decimal `json:"total_gross_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	FailedEmployees int             `json:"failed_employees"`
}
