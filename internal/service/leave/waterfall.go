package leave

import (
	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// Allocation is the settled split of a month's leave days.
type Allocation struct {
	Paid   decimal.Decimal
	Comp   decimal.Decimal
	Unpaid decimal.Decimal
}

// Total returns the sum of the three buckets, which always equals the
// requested leave days.
func (a Allocation) Total() decimal.Decimal {
	return a.Paid.Add(a.Comp).Add(a.Unpaid)
}

// Allocate settles leaveDays against the balance in waterfall order: paid
// entitlement (including carry-forward) first, then compensatory leave, then
// unpaid. Each stage is clipped at its availability, so the result never
// overdraws the ledger. Negative availability (an externally corrupted
// balance) contributes zero rather than inflating the unpaid remainder past
// the requested days.
func Allocate(leaveDays decimal.Decimal, balance leave.Balance, compEnabled bool) Allocation {
	remaining := leaveDays
	if remaining.Sign() <= 0 {
		return Allocation{}
	}

	var alloc Allocation

	paidAvail := balance.PaidAvailable()
	if paidAvail.Sign() > 0 {
		alloc.Paid = decimal.Min(remaining, paidAvail)
		remaining = remaining.Sub(alloc.Paid)
	}

	if compEnabled && remaining.Sign() > 0 {
		compAvail := balance.CompAvailable()
		if compAvail.Sign() > 0 {
			alloc.Comp = decimal.Min(remaining, compAvail)
			remaining = remaining.Sub(alloc.Comp)
		}
	}

	alloc.Unpaid = remaining
	return alloc
}

// CarryForward computes the paid-leave balance rolled into the next year,
// clipped at the policy's maximum. Comp leaves never roll over.
func CarryForward(balance leave.Balance, maxCarryForward int) decimal.Decimal {
	remaining := balance.PaidAvailable()
	if remaining.Sign() <= 0 {
		return decimal.Zero
	}
	return decimal.Min(remaining, decimal.NewFromInt(int64(maxCarryForward)))
}
