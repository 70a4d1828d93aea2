package report

import "time"

// Type enum
type Type string

const (
	TypeSalaryStatement Type = "SALARY_STATEMENT"
	TypeConsolidated    Type = "CONSOLIDATED"
)

func (t Type) IsValid() bool {
	return t == TypeSalaryStatement || t == TypeConsolidated
}

// Report - a generated workbook over completed/locked payroll data. Reports
// are pure readers of engine output; regenerating replaces the file, never
// the underlying entries.
type Report struct {
	ID          string
	Type        Type
	CollegeID   *string // nil for consolidated reports
	Year        int
	Month       int
	Name        string
	FilePath    string
	GeneratedAt time.Time
}
