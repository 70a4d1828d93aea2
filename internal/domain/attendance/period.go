package attendance

import "time"

// Period identifies one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func NewPeriod(year, month int) Period {
	return Period{Year: year, Month: time.Month(month)}
}

// Start returns the first day of the month at midnight UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month at midnight UTC.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// DaysInMonth returns the number of calendar days in the period.
func (p Period) DaysInMonth() int {
	return p.End().Day()
}

// Days returns every calendar day of the month in order.
func (p Period) Days() []time.Time {
	days := make([]time.Time, 0, p.DaysInMonth())
	for d := p.Start(); d.Month() == p.Month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	return date.Year() == p.Year && date.Month() == p.Month
}

// DateKey normalizes a timestamp to a map key for per-day lookups.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
