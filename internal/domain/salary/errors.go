package salary

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrComponentNotFound   = errors.New("salary component not found")
	ErrComponentNameExists = errors.New("salary component name already exists")
	ErrStructureNotFound   = errors.New("salary structure row not found")
	ErrStructureGap        = errors.New("no active salary structure row for a mandatory component")
	ErrStructureOverlap    = errors.New("overlapping salary structure rows for a component")
)

// StructureGapError names the mandatory component missing coverage on a date.
type StructureGapError struct {
	EmployeeID    string
	ComponentName string
	Date          time.Time
}

func (e *StructureGapError) Error() string {
	return fmt.Sprintf("component %q has no active structure row for employee %s on %s",
		e.ComponentName, e.EmployeeID, e.Date.Format("2006-01-02"))
}

func (e *StructureGapError) Unwrap() error { return ErrStructureGap }

// StructureOverlapError reports two rows active for the same component on the
// same date. This is a data-integrity violation, surfaced rather than
// auto-resolved.
type StructureOverlapError struct {
	EmployeeID    string
	ComponentName string
	Date          time.Time
}

func (e *StructureOverlapError) Error() string {
	return fmt.Sprintf("component %q has overlapping structure rows for employee %s on %s",
		e.ComponentName, e.EmployeeID, e.Date.Format("2006-01-02"))
}

func (e *StructureOverlapError) Unwrap() error { return ErrStructureOverlap }
