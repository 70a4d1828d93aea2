package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy - a college's leave entitlement configuration. Allocations come from
// here; the calculation engine only ever consumes against them.
type Policy struct {
	ID                string
	CollegeID         string
	Name              string
	PaidLeavesPerYear int
	MaxCarryForward   int
	CompLeaveEnabled  bool
	CreatedAt         time.Time
}

// Balance - one employee's leave ledger for one calendar year. Unique per
// (employee, year). Used counts never exceed their entitlements; the engine
// increments used fields only and stages updates per payroll cycle so
// recalculation never double-consumes.
type Balance struct {
	ID                 string
	EmployeeID         string
	Year               int
	PaidLeavesTotal    decimal.Decimal
	PaidLeavesUsed     decimal.Decimal
	CompLeavesEarned   decimal.Decimal
	CompLeavesUsed     decimal.Decimal
	CarryForwardLeaves decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PaidAvailable is the remaining paid entitlement including carry-forward.
func (b Balance) PaidAvailable() decimal.Decimal {
	return b.PaidLeavesTotal.Add(b.CarryForwardLeaves).Sub(b.PaidLeavesUsed)
}

// CompAvailable is the remaining compensatory entitlement.
func (b Balance) CompAvailable() decimal.Decimal {
	return b.CompLeavesEarned.Sub(b.CompLeavesUsed)
}

// Overdrawn reports a ledger invariant violation: used exceeding entitlement.
// The waterfall clips, so this only happens through external writes.
func (b Balance) Overdrawn() bool {
	return b.PaidAvailable().IsNegative() || b.CompAvailable().IsNegative()
}

// Usage is the portion of a balance consumed by one payroll cycle run,
// plus comp leave credited for weekend work in the same run. Stored with the
// payroll entry so a re-run can reverse it before applying fresh numbers.
type Usage struct {
	PaidUsed   decimal.Decimal
	CompUsed   decimal.Decimal
	CompEarned decimal.Decimal
}
