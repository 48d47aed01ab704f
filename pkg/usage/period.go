package usage

import (
	"errors"
	"time"
)

const periodLayout = "2006-01"

// Period is a calendar month key in the form "YYYY-MM" (UTC).
type Period string

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period(t.UTC().Format(periodLayout))
}

// ParsePeriod validates and returns a period key.
func ParsePeriod(s string) (Period, error) {
	if _, err := time.Parse(periodLayout, s); err != nil {
		return "", errors.Join(ErrInvalidPeriod, err)
	}
	return Period(s), nil
}

// Start returns the first instant of the period.
func (p Period) Start() time.Time {
	t, err := time.Parse(periodLayout, string(p))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// End returns the first instant of the following period.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Prev returns the period before p.
func (p Period) Prev() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

// Before reports whether p is earlier than other.
func (p Period) Before(other Period) bool {
	return p < other
}

func (p Period) String() string {
	return string(p)
}

// NextReset returns the first instant of the calendar month after t, in UTC.
func NextReset(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the period after p.
func (p Period) Next() Period {
	return PeriodOf(p.End())
}
