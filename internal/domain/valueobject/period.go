package valueobject

import "time"

// Period is a half-open time range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriodOf returns the calendar month containing t, in t's location.
func MonthPeriodOf(t time.Time) Period {
	return NewMonthPeriod(t.Year(), t.Month(), t.Location())
}

// NewMonthPeriod returns the calendar month for year and month.
// December rolls over into January of the next year.
func NewMonthPeriod(year int, month time.Month, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// TrailingDaysPeriod returns the periodDays whole days ending with the day of asOf.
func TrailingDaysPeriod(asOf time.Time, periodDays int) Period {
	end := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location()).AddDate(0, 0, 1)
	return Period{
		Start: end.AddDate(0, 0, -periodDays),
		End:   end,
	}
}

// Contains reports whether t falls within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}
