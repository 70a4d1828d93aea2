package salary

import (
	"sort"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
)

// Resolve flattens an employee's effective-dated structure rows into the
// component set active on date. Mandatory components (defaults) with no
// active row produce a StructureGapError; two rows active for the same
// component produce a StructureOverlapError. Both are data problems the
// caller reports per-employee rather than aborting a whole batch over.
func Resolve(
	employeeID string,
	date time.Time,
	rows []salary.Structure,
	defaults []salary.Component,
) ([]salary.ResolvedComponent, error) {
	active := make(map[string]salary.Structure, len(rows))
	for _, row := range rows {
		if !row.ActiveOn(date) {
			continue
		}
		if _, dup := active[row.ComponentID]; dup {
			return nil, &salary.StructureOverlapError{
				EmployeeID:    employeeID,
				ComponentName: componentName(row),
				Date:          date,
			}
		}
		active[row.ComponentID] = row
	}

	for _, def := range defaults {
		if _, ok := active[def.ID]; !ok {
			return nil, &salary.StructureGapError{
				EmployeeID:    employeeID,
				ComponentName: def.Name,
				Date:          date,
			}
		}
	}

	resolved := make([]salary.ResolvedComponent, 0, len(active))
	for _, row := range active {
		rc := salary.ResolvedComponent{
			ComponentID: row.ComponentID,
			Name:        componentName(row),
			Amount:      row.Amount,
		}
		if row.ComponentType != nil {
			rc.Type = *row.ComponentType
		}
		if row.ComponentProratable != nil {
			rc.IsProratable = *row.ComponentProratable
		}
		resolved = append(resolved, rc)
	}

	// Stable ordering so entry component rows and payslips come out in a
	// deterministic sequence.
	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].Type != resolved[j].Type {
			return resolved[i].Type == salary.ComponentTypeEarning
		}
		return resolved[i].Name < resolved[j].Name
	})

	return resolved, nil
}

func componentName(row salary.Structure) string {
	if row.ComponentName != nil {
		return *row.ComponentName
	}
	return row.ComponentID
}
