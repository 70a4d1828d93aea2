package holiday

import "time"

// Holiday - a non-working calendar day scoped to a college. Optional holidays
// do not reduce the month's working-day count; employees choose whether to
// observe them.
type Holiday struct {
	ID         string
	CollegeID  string
	Date       time.Time
	Name       string
	IsOptional bool
	CreatedAt  time.Time
}
