package attendance

import (
	"testing"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var weekends = []time.Weekday{time.Saturday, time.Sunday}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func record(date time.Time, status attendance.Status) attendance.Record {
	return attendance.Record{Date: date, Status: status}
}

func TestReconcile_EveryDayClassifiedExactlyOnce(t *testing.T) {
	t.Parallel()
	period := attendance.NewPeriod(2025, 1) // 31 days

	records := []attendance.Record{
		record(day(2025, 1, 1), attendance.StatusPresent),
		record(day(2025, 1, 2), attendance.StatusHalfDay),
		record(day(2025, 1, 3), attendance.StatusLeave),
		record(day(2025, 1, 4), attendance.StatusWeekendWork),
		record(day(2025, 1, 6), attendance.StatusAbsent),
	}

	counts := Reconcile(period, weekends, nil, records)

	assert.True(t, counts.Total().Equal(decimal.NewFromInt(31)),
		"bucket sum must equal calendar days, got %s", counts.Total())
	assert.True(t, counts.Present.Equal(decimal.NewFromInt(1)))
	assert.True(t, counts.HalfDay.Equal(decimal.NewFromInt(1)))
	assert.True(t, counts.Leave.Equal(decimal.NewFromInt(1)))
	assert.True(t, counts.WeekendWork.Equal(decimal.NewFromInt(1)))
}

func TestReconcile_MissingWeekdayIsAbsent(t *testing.T) {
	t.Parallel()
	period := attendance.NewPeriod(2025, 1)

	counts := Reconcile(period, weekends, nil, nil)

	// January 2025: 23 weekdays, 8 weekend days, no records at all.
	assert.True(t, counts.Absent.Equal(decimal.NewFromInt(23)), "got %s", counts.Absent)
	assert.True(t, counts.Holiday.Equal(decimal.NewFromInt(8)), "got %s", counts.Holiday)
	assert.True(t, counts.Present.IsZero())
}

func TestReconcile_NonOptionalHolidayOverridesRecord(t *testing.T) {
	t.Parallel()
	period := attendance.NewPeriod(2025, 1)
	holidays := []holiday.Holiday{
		{Date: day(2025, 1, 14), Name: "Makar Sankranti", IsOptional: false},
	}
	records := []attendance.Record{
		record(day(2025, 1, 14), attendance.StatusPresent),
	}

	counts := Reconcile(period, weekends, holidays, records)

	assert.True(t, counts.Present.IsZero(), "recorded presence on a holiday must not count")
	// 8 weekend days + the holiday
	assert.True(t, counts.Holiday.Equal(decimal.NewFromInt(9)), "got %s", counts.Holiday)
}

func TestReconcile_WeekendWorkBeatsHoliday(t *testing.T) {
	t.Parallel()
	period := attendance.NewPeriod(2025, 1)
	holidays := []holiday.Holiday{
		{Date: day(2025, 1, 26), Name: "Republic Day", IsOptional: false},
	}
	records := []attendance.Record{
		record(day(2025, 1, 26), attendance.StatusWeekendWork),
	}

	counts := Reconcile(period, weekends, holidays, records)

	assert.True(t, counts.WeekendWork.Equal(decimal.NewFromInt(1)))
	// remaining 7 weekend days only
	assert.True(t, counts.Holiday.Equal(decimal.NewFromInt(7)), "got %s", counts.Holiday)
}

func TestReconcile_OptionalHolidayNeverOverridesRecord(t *testing.T) {
	t.Parallel()
	period := attendance.NewPeriod(2025, 1)
	holidays := []holiday.Holiday{
		{Date: day(2025, 1, 13), Name: "Lohri", IsOptional: true},
	}
	records := []attendance.Record{
		record(day(2025, 1, 13), attendance.StatusPresent),
	}

	counts := Reconcile(period, weekends, holidays, records)

	assert.True(t, counts.Present.Equal(decimal.NewFromInt(1)),
		"recorded presence on an optional holiday stands")
}

func TestReconcile_OptionalHolidayWithoutRecordIsHolidayBucket(t *testing.T) {
	t.Parallel()
	period := attendance.NewPeriod(2025, 1)
	holidays := []holiday.Holiday{
		{Date: day(2025, 1, 13), Name: "Lohri", IsOptional: true},
	}

	counts := Reconcile(period, weekends, holidays, nil)

	// Observing the optional holiday is not an absence: Jan 13 joins the 8
	// weekend days, the other 22 weekdays stay absent.
	assert.True(t, counts.Holiday.Equal(decimal.NewFromInt(9)), "got %s", counts.Holiday)
	assert.True(t, counts.Absent.Equal(decimal.NewFromInt(22)), "got %s", counts.Absent)
}

func TestWorkingDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		period   attendance.Period
		holidays []holiday.Holiday
		want     int
	}{
		{
			name:   "january 2025 no holidays",
			period: attendance.NewPeriod(2025, 1),
			want:   23,
		},
		{
			name:   "weekday holiday reduces count",
			period: attendance.NewPeriod(2025, 1),
			holidays: []holiday.Holiday{
				{Date: day(2025, 1, 14), IsOptional: false},
			},
			want: 22,
		},
		{
			name:   "weekend holiday does not double count",
			period: attendance.NewPeriod(2025, 1),
			holidays: []holiday.Holiday{
				{Date: day(2025, 1, 26), IsOptional: false}, // Sunday
			},
			want: 23,
		},
		{
			name:   "optional holiday keeps the day working",
			period: attendance.NewPeriod(2025, 1),
			holidays: []holiday.Holiday{
				{Date: day(2025, 1, 13), IsOptional: true},
			},
			want: 23,
		},
		{
			name:   "february non leap",
			period: attendance.NewPeriod(2025, 2),
			want:   20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := WorkingDays(tt.period, weekends, tt.holidays)
			assert.Equal(t, tt.want, got)
		})
	}
}
