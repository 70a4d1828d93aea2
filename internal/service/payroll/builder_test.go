package payroll

import (
	"testing"

	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	leavesvc "github.com/aurora-group/payroll-backend-go/internal/service/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func component(id, name string, ctype salary.ComponentType, amount string, proratable bool) salary.ResolvedComponent {
	return salary.ResolvedComponent{
		ComponentID:  id,
		Name:         name,
		Type:         ctype,
		IsProratable: proratable,
		Amount:       dec(amount),
	}
}

func TestBuildEntry_FullAttendance(t *testing.T) {
	t.Parallel()

	entry := BuildEntry(BuildInput{
		TotalWorkingDays: 26,
		Counts:           attendance.DayCounts{Present: dec("26")},
		Components: []salary.ResolvedComponent{
			component("basic", "Basic", salary.ComponentTypeEarning, "20000", false),
			component("hra", "HRA", salary.ComponentTypeEarning, "6000", false),
			component("pf", "PF", salary.ComponentTypeDeduction, "1800", false),
		},
	})

	assert.True(t, entry.GrossEarnings.Equal(dec("26000")), "got %s", entry.GrossEarnings)
	assert.True(t, entry.TotalDeductions.Equal(dec("1800")), "got %s", entry.TotalDeductions)
	assert.True(t, entry.NetPay.Equal(dec("24200")), "got %s", entry.NetPay)
	assert.True(t, entry.UnpaidLeaves.IsZero())
	assert.True(t, entry.LossOfPay.IsZero())
	assert.True(t, entry.DaysPresent.Equal(dec("26")))
}

func TestBuildEntry_TwoUnpaidDays(t *testing.T) {
	t.Parallel()

	// 26 working days, 26000 full gross, 2 plain absences with no leave
	// cover: gross prorates by 24/26 and loss of pay reports 2 daily rates.
	entry := BuildEntry(BuildInput{
		TotalWorkingDays: 26,
		Counts: attendance.DayCounts{
			Present: dec("24"),
			Absent:  dec("2"),
		},
		Components: []salary.ResolvedComponent{
			component("basic", "Basic", salary.ComponentTypeEarning, "20000", false),
			component("hra", "HRA", salary.ComponentTypeEarning, "6000", false),
		},
	})

	assert.True(t, entry.UnpaidLeaves.Equal(dec("2")), "got %s", entry.UnpaidLeaves)
	// 20000*24/26 = 18461.54, 6000*24/26 = 5538.46
	assert.True(t, entry.GrossEarnings.Equal(dec("24000")), "got %s", entry.GrossEarnings)
	assert.True(t, entry.LossOfPay.Equal(dec("2000")), "got %s", entry.LossOfPay)
	// Loss of pay is informational, never re-deducted.
	assert.True(t, entry.TotalDeductions.IsZero())
	assert.True(t, entry.NetPay.Equal(dec("24000")), "got %s", entry.NetPay)
}

func TestBuildEntry_PaidLeaveProtectsPay(t *testing.T) {
	t.Parallel()

	entry := BuildEntry(BuildInput{
		TotalWorkingDays: 26,
		Counts: attendance.DayCounts{
			Present: dec("23"),
			Leave:   dec("3"),
		},
		Allocation: leavesvc.Allocation{Paid: dec("3")},
		Components: []salary.ResolvedComponent{
			component("basic", "Basic", salary.ComponentTypeEarning, "26000", false),
		},
	})

	assert.True(t, entry.UnpaidLeaves.IsZero(), "paid leave must not reduce pay, got %s", entry.UnpaidLeaves)
	assert.True(t, entry.GrossEarnings.Equal(dec("26000")), "got %s", entry.GrossEarnings)
	assert.True(t, entry.PaidLeavesUsed.Equal(dec("3")))
}

func TestBuildEntry_HalfDaysCountAsHalfAbsence(t *testing.T) {
	t.Parallel()

	entry := BuildEntry(BuildInput{
		TotalWorkingDays: 26,
		Counts: attendance.DayCounts{
			Present: dec("24"),
			HalfDay: dec("4"),
		},
		Components: []salary.ResolvedComponent{
			component("basic", "Basic", salary.ComponentTypeEarning, "26000", false),
		},
	})

	assert.True(t, entry.UnpaidLeaves.Equal(dec("2")), "got %s", entry.UnpaidLeaves)
	assert.True(t, entry.DaysPresent.Equal(dec("26")), "24 full + 4 half at 0.5, got %s", entry.DaysPresent)
	assert.True(t, entry.GrossEarnings.Equal(dec("24000")), "got %s", entry.GrossEarnings)
}

func TestBuildEntry_DeductionProration(t *testing.T) {
	t.Parallel()

	counts := attendance.DayCounts{Present: dec("13"), Absent: dec("13")}
	components := []salary.ResolvedComponent{
		component("basic", "Basic", salary.ComponentTypeEarning, "26000", false),
		component("pf", "PF", salary.ComponentTypeDeduction, "1800", true),
		component("pt", "PT", salary.ComponentTypeDeduction, "200", false),
	}

	fixed := BuildEntry(BuildInput{
		TotalWorkingDays:  26,
		Counts:            counts,
		Components:        components,
		ProrateDeductions: false,
	})
	assert.True(t, fixed.TotalDeductions.Equal(dec("2000")), "got %s", fixed.TotalDeductions)

	prorated := BuildEntry(BuildInput{
		TotalWorkingDays:  26,
		Counts:            counts,
		Components:        components,
		ProrateDeductions: true,
	})
	// PF halves with attendance, PT stays fixed.
	assert.True(t, prorated.TotalDeductions.Equal(dec("1100")), "got %s", prorated.TotalDeductions)
}

func TestBuildEntry_ComponentRoundingAddsUp(t *testing.T) {
	t.Parallel()

	// Amounts chosen so that per-component rounding and total rounding
	// diverge unless each component is rounded exactly once.
	entry := BuildEntry(BuildInput{
		TotalWorkingDays: 26,
		Counts:           attendance.DayCounts{Present: dec("25"), Absent: dec("1")},
		Components: []salary.ResolvedComponent{
			component("basic", "Basic", salary.ComponentTypeEarning, "20000", false),
			component("hra", "HRA", salary.ComponentTypeEarning, "6000", false),
		},
	})

	var sum decimal.Decimal
	for _, c := range entry.Components {
		sum = sum.Add(c.Amount)
	}
	assert.True(t, sum.Equal(entry.GrossEarnings),
		"component breakdown %s must equal gross %s", sum, entry.GrossEarnings)
}

func TestBuildEntry_ZeroWorkingDays(t *testing.T) {
	t.Parallel()

	entry := BuildEntry(BuildInput{
		TotalWorkingDays: 0,
		Counts:           attendance.DayCounts{},
		Components: []salary.ResolvedComponent{
			component("basic", "Basic", salary.ComponentTypeEarning, "26000", false),
		},
	})

	assert.True(t, entry.GrossEarnings.IsZero())
	assert.True(t, entry.LossOfPay.IsZero())
	assert.True(t, entry.NetPay.IsZero())
}

func TestBuildEntry_UnpaidClampedToWorkingDays(t *testing.T) {
	t.Parallel()

	entry := BuildEntry(BuildInput{
		TotalWorkingDays: 20,
		Counts:           attendance.DayCounts{Absent: dec("23")},
		Components: []salary.ResolvedComponent{
			component("basic", "Basic", salary.ComponentTypeEarning, "26000", false),
		},
	})

	assert.True(t, entry.UnpaidLeaves.Equal(dec("20")), "got %s", entry.UnpaidLeaves)
	assert.True(t, entry.GrossEarnings.IsZero())
}
