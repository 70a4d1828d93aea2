package salary

import (
	"testing"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func typePtr(t salary.ComponentType) *salary.ComponentType { return &t }

func datePtr(t time.Time) *time.Time { return &t }

func row(componentID, name string, ctype salary.ComponentType, amount string, from time.Time, to *time.Time) salary.Structure {
	return salary.Structure{
		ID:            "row-" + componentID,
		EmployeeID:    "emp-1",
		ComponentID:   componentID,
		Amount:        decimal.RequireFromString(amount),
		EffectiveFrom: from,
		EffectiveTo:   to,
		ComponentName: strPtr(name),
		ComponentType: typePtr(ctype),
	}
}

func TestResolve_PicksRowsActiveOnDate(t *testing.T) {
	t.Parallel()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jun30 := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	jul1 := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	rows := []salary.Structure{
		row("basic", "Basic", salary.ComponentTypeEarning, "20000", jan1, datePtr(jun30)),
		row("basic", "Basic", salary.ComponentTypeEarning, "22000", jul1, nil),
		row("hra", "HRA", salary.ComponentTypeEarning, "8000", jan1, nil),
	}

	resolved, err := Resolve("emp-1", time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), rows, nil)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	byID := make(map[string]salary.ResolvedComponent)
	for _, rc := range resolved {
		byID[rc.ComponentID] = rc
	}
	assert.True(t, byID["basic"].Amount.Equal(decimal.RequireFromString("22000")),
		"revision effective in july must win, got %s", byID["basic"].Amount)
	assert.True(t, byID["hra"].Amount.Equal(decimal.RequireFromString("8000")))
}

func TestResolve_GapOnMandatoryComponent(t *testing.T) {
	t.Parallel()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []salary.Structure{
		row("hra", "HRA", salary.ComponentTypeEarning, "8000", jan1, nil),
	}
	defaults := []salary.Component{
		{ID: "basic", Name: "Basic", Type: salary.ComponentTypeEarning, IsDefault: true},
	}

	_, err := Resolve("emp-1", jan1, rows, defaults)
	require.Error(t, err)
	assert.ErrorIs(t, err, salary.ErrStructureGap)

	var gap *salary.StructureGapError
	require.ErrorAs(t, err, &gap)
	assert.Equal(t, "Basic", gap.ComponentName)
	assert.Equal(t, "emp-1", gap.EmployeeID)
}

func TestResolve_OverlapRejected(t *testing.T) {
	t.Parallel()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mar1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := []salary.Structure{
		row("basic", "Basic", salary.ComponentTypeEarning, "20000", jan1, nil),
		row("basic", "Basic", salary.ComponentTypeEarning, "25000", mar1, nil),
	}

	_, err := Resolve("emp-1", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), rows, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, salary.ErrStructureOverlap)
}

func TestResolve_DeterministicOrdering(t *testing.T) {
	t.Parallel()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []salary.Structure{
		row("pf", "Provident Fund", salary.ComponentTypeDeduction, "1800", jan1, nil),
		row("hra", "HRA", salary.ComponentTypeEarning, "8000", jan1, nil),
		row("basic", "Basic", salary.ComponentTypeEarning, "20000", jan1, nil),
		row("pt", "Professional Tax", salary.ComponentTypeDeduction, "200", jan1, nil),
	}

	resolved, err := Resolve("emp-1", jan1, rows, nil)
	require.NoError(t, err)
	require.Len(t, resolved, 4)

	// Earnings first, alphabetical within type.
	assert.Equal(t, "Basic", resolved[0].Name)
	assert.Equal(t, "HRA", resolved[1].Name)
	assert.Equal(t, "Professional Tax", resolved[2].Name)
	assert.Equal(t, "Provident Fund", resolved[3].Name)
}

func TestStructureActiveOn(t *testing.T) {
	t.Parallel()
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	bounded := row("basic", "Basic", salary.ComponentTypeEarning, "20000", jan1, datePtr(jan31))

	assert.True(t, bounded.ActiveOn(jan1), "range start is inclusive")
	assert.True(t, bounded.ActiveOn(jan31), "range end is inclusive")
	assert.False(t, bounded.ActiveOn(jan1.AddDate(0, 0, -1)))
	assert.False(t, bounded.ActiveOn(jan31.AddDate(0, 0, 1)))
}
