package attendance

import (
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/shopspring/decimal"
)

// Reconcile classifies every calendar day of the period into exactly one
// category and returns the per-category counts. It is a pure function of its
// inputs, which keeps cycle recalculation idempotent.
//
// Classification rules, in precedence order:
//  1. A non-optional calendar holiday wins over any recorded status except
//     WEEKEND_WORK (working a holiday is still weekend work for crediting).
//  2. A recorded status is taken at face value. An optional holiday never
//     overrides a record.
//  3. No record: weekend days and holidays (optional included) classify as
//     holiday, anything else is ABSENT. Missing data is never treated as
//     presence, but observing an optional holiday is not an absence either.
func Reconcile(
	period attendance.Period,
	weekendDays []time.Weekday,
	holidays []holiday.Holiday,
	records []attendance.Record,
) attendance.DayCounts {
	holidayByDay := make(map[string]holiday.Holiday, len(holidays))
	for _, h := range holidays {
		holidayByDay[attendance.DateKey(h.Date)] = h
	}
	recordByDay := make(map[string]attendance.Status, len(records))
	for _, r := range records {
		recordByDay[attendance.DateKey(r.Date)] = r.Status
	}
	weekend := make(map[time.Weekday]bool, len(weekendDays))
	for _, d := range weekendDays {
		weekend[d] = true
	}

	var counts attendance.DayCounts
	one := decimal.NewFromInt(1)

	for _, day := range period.Days() {
		key := attendance.DateKey(day)
		h, isHoliday := holidayByDay[key]
		status, hasRecord := recordByDay[key]

		if isHoliday && !h.IsOptional && status != attendance.StatusWeekendWork {
			counts.Holiday = counts.Holiday.Add(one)
			continue
		}

		if !hasRecord {
			switch {
			case isHoliday:
				counts.Holiday = counts.Holiday.Add(one)
			case weekend[day.Weekday()]:
				counts.Holiday = counts.Holiday.Add(one)
			default:
				counts.Absent = counts.Absent.Add(one)
			}
			continue
		}

		switch status {
		case attendance.StatusPresent:
			counts.Present = counts.Present.Add(one)
		case attendance.StatusHalfDay:
			counts.HalfDay = counts.HalfDay.Add(one)
		case attendance.StatusWeekendWork:
			counts.WeekendWork = counts.WeekendWork.Add(one)
		case attendance.StatusHoliday:
			counts.Holiday = counts.Holiday.Add(one)
		case attendance.StatusLeave:
			counts.Leave = counts.Leave.Add(one)
		default:
			counts.Absent = counts.Absent.Add(one)
		}
	}

	return counts
}

// WorkingDays counts the month's working days: weekdays that are neither
// weekend days nor non-optional holidays. This is the denominator snapshotted
// onto the payroll cycle.
func WorkingDays(period attendance.Period, weekendDays []time.Weekday, holidays []holiday.Holiday) int {
	holidayByDay := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		if !h.IsOptional {
			holidayByDay[attendance.DateKey(h.Date)] = true
		}
	}
	weekend := make(map[time.Weekday]bool, len(weekendDays))
	for _, d := range weekendDays {
		weekend[d] = true
	}

	working := 0
	for _, day := range period.Days() {
		if weekend[day.Weekday()] {
			continue
		}
		if holidayByDay[attendance.DateKey(day)] {
			continue
		}
		working++
	}
	return working
}
