package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum - the recorded category for one employee-day.
type Status string

const (
	StatusPresent     Status = "PRESENT"
	StatusAbsent      Status = "ABSENT"
	StatusHalfDay     Status = "HALF_DAY"
	StatusWeekendWork Status = "WEEKEND_WORK"
	StatusHoliday     Status = "HOLIDAY"
	StatusLeave       Status = "LEAVE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusWeekendWork, StatusHoliday, StatusLeave:
		return true
	}
	return false
}

// Record - one attendance fact, unique per (employee, date). The source of
// truth for day categorization; immutable once a cycle covering its month is
// locked.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	UploadID   *string
	CreatedAt  time.Time
}

// UploadStatus enum
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "PENDING"
	UploadStatusProcessing UploadStatus = "PROCESSING"
	UploadStatusCompleted  UploadStatus = "COMPLETED"
	UploadStatusFailed     UploadStatus = "FAILED"
)

// Upload tracks one bulk attendance sheet ingestion.
type Upload struct {
	ID           string
	CollegeID    string
	Year         int
	Month        int
	FilePath     string
	Status       UploadStatus
	RecordsCount int
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DayCounts is the reconciled category breakdown for one employee over one
// period. Every calendar day lands in exactly one bucket, so the bucket sum
// always equals the number of days in the period.
type DayCounts struct {
	Present     decimal.Decimal
	Absent      decimal.Decimal
	HalfDay     decimal.Decimal
	WeekendWork decimal.Decimal
	Holiday     decimal.Decimal
	Leave       decimal.Decimal
}

// Total returns the sum of all buckets.
func (d DayCounts) Total() decimal.Decimal {
	return d.Present.Add(d.Absent).Add(d.HalfDay).Add(d.WeekendWork).Add(d.Holiday).Add(d.Leave)
}

// PresentEquivalent folds half-days at 0.5 weight. Weekend work counts as
// presence; it is tracked separately only for comp-leave crediting.
func (d DayCounts) PresentEquivalent() decimal.Decimal {
	return d.Present.Add(d.WeekendWork).Add(d.HalfDay.Mul(half))
}

// AbsenceEquivalent is the pay-relevant absence total: full absences, the
// absent half of half-days, and leave days (paid or not, settled later by the
// leave waterfall).
func (d DayCounts) AbsenceEquivalent() decimal.Decimal {
	return d.Absent.Add(d.HalfDay.Mul(half)).Add(d.Leave)
}

var half = decimal.NewFromFloat(0.5)
