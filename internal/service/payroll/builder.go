package payroll

import (
	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	leavesvc "github.com/aurora-group/payroll-backend-go/internal/service/leave"
	"github.com/shopspring/decimal"
)

// BuildInput carries everything the entry computation needs. It is assembled
// by the batch orchestrator; the computation itself touches no storage.
type BuildInput struct {
	CycleID          string
	EmployeeID       string
	TotalWorkingDays int
	Counts           attendance.DayCounts
	Allocation       leavesvc.Allocation
	Components       []salary.ResolvedComponent
	// ProrateDeductions gates proration of deduction components marked
	// proratable. Earnings always prorate.
	ProrateDeductions bool
}

// BuildEntry computes one employee's payroll entry from reconciled
// attendance, a settled leave allocation, and the resolved component set.
//
// Earnings prorate by payable days over the cycle's working days, where
// payable days is working days minus unpaid leave equivalents. Loss of pay is
// reported as unpaid days times the daily rate of the full gross, where full
// gross is the sum of the resolved earning components at their unprorated
// amounts. It is not added to deductions: the earnings proration already
// withholds it, and deducting it again would double-count.
//
// Each component amount is rounded to two decimal places half away from
// zero, once, before summation, so the visible breakdown always adds up to
// the totals.
func BuildEntry(in BuildInput) payroll.Entry {
	workingDays := decimal.NewFromInt(int64(in.TotalWorkingDays))

	unpaid := in.Counts.AbsenceEquivalent().
		Sub(in.Allocation.Paid).
		Sub(in.Allocation.Comp)
	if unpaid.Sign() < 0 {
		unpaid = decimal.Zero
	}
	if unpaid.GreaterThan(workingDays) {
		unpaid = workingDays
	}

	payable := workingDays.Sub(unpaid)
	factor := decimal.Zero
	if workingDays.Sign() > 0 {
		factor = payable.Div(workingDays)
	}

	var gross, deductions, fullGross decimal.Decimal
	entryComponents := make([]payroll.EntryComponent, 0, len(in.Components))

	for _, c := range in.Components {
		amount := c.Amount
		switch c.Type {
		case salary.ComponentTypeEarning:
			fullGross = fullGross.Add(c.Amount)
			amount = c.Amount.Mul(factor).Round(2)
			gross = gross.Add(amount)
		case salary.ComponentTypeDeduction:
			if in.ProrateDeductions && c.IsProratable {
				amount = c.Amount.Mul(factor).Round(2)
			} else {
				amount = c.Amount.Round(2)
			}
			deductions = deductions.Add(amount)
		}
		entryComponents = append(entryComponents, payroll.EntryComponent{
			ComponentID:   c.ComponentID,
			ComponentName: c.Name,
			ComponentType: string(c.Type),
			Amount:        amount,
		})
	}

	lossOfPay := decimal.Zero
	if in.TotalWorkingDays > 0 {
		dailyRate := fullGross.Div(workingDays)
		lossOfPay = unpaid.Mul(dailyRate).Round(2)
	}

	return payroll.Entry{
		CycleID:         in.CycleID,
		EmployeeID:      in.EmployeeID,
		DaysPresent:     in.Counts.Present.Add(in.Counts.HalfDay.Mul(decimal.NewFromFloat(0.5))),
		DaysAbsent:      in.Counts.Absent,
		WeekendWorkDays: in.Counts.WeekendWork,
		PaidLeavesUsed:  in.Allocation.Paid,
		CompLeavesUsed:  in.Allocation.Comp,
		UnpaidLeaves:    unpaid,
		LossOfPay:       lossOfPay,
		GrossEarnings:   gross,
		TotalDeductions: deductions,
		NetPay:          gross.Sub(deductions).Round(2),
		Components:      entryComponents,
	}
}
