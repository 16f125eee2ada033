// Package period models a calendar month (YYYY-MM) and the calendar dates inside it.
package period

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("period must be in YYYY-MM format")

const (
	Layout     = "2006-01"
	DateLayout = "2006-01-02"
)

type Period struct {
	Year  int
	Month time.Month
}

func Parse(s string) (Period, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Of returns the period containing t, evaluated in t's location.
func Of(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Days returns the number of calendar days in the month (28–31).
func (p Period) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Start is midnight of the first day of the month in loc.
func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is midnight of the first day of the following month in loc (exclusive bound).
func (p Period) End(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, loc)
}

// Dates enumerates every calendar date of the month, in order.
func (p Period) Dates() []Date {
	n := p.Days()
	dates := make([]Date, 0, n)
	for d := 1; d <= n; d++ {
		dates = append(dates, Date{Year: p.Year, Month: p.Month, Day: d})
	}
	return dates
}

func (p Period) Contains(d Date) bool {
	return d.Year == p.Year && d.Month == p.Month
}

func (p Period) Next() Period {
	return Of(time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, time.UTC))
}

func (p Period) Previous() Period {
	return Of(time.Date(p.Year, p.Month-1, 1, 0, 0, 0, 0, time.UTC))
}

// Date is a calendar date without a time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf buckets t into its calendar date in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateFromTime takes the calendar fields of t as stored (no zone conversion); used for
// DATE columns which pgx scans as UTC midnight.
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateFromTime(t), nil
}

func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateFromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// DaysUntil returns the inclusive number of days from d to o (o >= d), e.g. same day = 1.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time(time.UTC).Sub(d.Time(time.UTC)).Hours()/24) + 1
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
