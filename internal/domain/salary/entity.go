package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "EARNING"
	ComponentTypeDeduction ComponentType = "DEDUCTION"
)

func (t ComponentType) IsValid() bool {
	return t == ComponentTypeEarning || t == ComponentTypeDeduction
}

// Component - catalog entry for a pay head. IsDefault components are
// mandatory: every employee must have an active structure row for them on any
// pay date, otherwise the calculation surfaces a structure gap. IsProratable
// marks deductions that scale with payable attendance; earnings always
// prorate.
type Component struct {
	ID           string
	Name         string
	Type         ComponentType
	IsDefault    bool
	IsProratable bool
	Description  *string
	CreatedAt    time.Time
}

// Structure - one effective-dated amount for (employee, component). For a
// given employee and component, date ranges must never overlap; a nil
// EffectiveTo means open-ended. There is no separate "current" record type:
// the row active on a date is found by interval containment.
type Structure struct {
	ID            string
	EmployeeID    string
	ComponentID   string
	Amount        decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time

	// Joined fields
	ComponentName       *string
	ComponentType       *ComponentType
	ComponentProratable *bool
}

// ActiveOn reports whether the row's range contains the given date.
func (s Structure) ActiveOn(date time.Time) bool {
	if date.Before(s.EffectiveFrom) {
		return false
	}
	if s.EffectiveTo != nil && date.After(*s.EffectiveTo) {
		return false
	}
	return true
}

// ResolvedComponent is the flattened (component, amount) pair active on a
// resolution date, ready for the entry builder.
type ResolvedComponent struct {
	ComponentID  string
	Name         string
	Type         ComponentType
	IsProratable bool
	Amount       decimal.Decimal
}
