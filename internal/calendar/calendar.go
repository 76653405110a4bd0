// Package calendar implements the fixed in-game calendar: 35 days per month,
// 12 months per year, no leap mechanics.
package calendar

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

const (
	DaysPerMonth  = 35
	MonthsPerYear = 12
	DaysPerYear   = DaysPerMonth * MonthsPerYear
)

// Date is a normalized calendar position.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Start is the first day of a new campaign.
var Start = Date{Year: 1, Month: 1, Day: 1}

// New returns a date, validating ranges.
func New(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate checks that all fields are within range.
func (d Date) Validate() error {
	if d.Year < 1 {
		return gameerr.Validation("year must be >= 1, got %d", d.Year)
	}
	if d.Month < 1 || d.Month > MonthsPerYear {
		return gameerr.Validation("month must be in 1..%d, got %d", MonthsPerYear, d.Month)
	}
	if d.Day < 1 || d.Day > DaysPerMonth {
		return gameerr.Validation("day must be in 1..%d, got %d", DaysPerMonth, d.Day)
	}
	return nil
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as "Y-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Parse reads a "Y-MM-DD" date. Month and day must be exactly two digits.
func Parse(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[1]) != 2 || len(parts[2]) != 2 || parts[0] == "" {
		return Date{}, gameerr.Validation("invalid date %q, expected Y-MM-DD", s)
	}

	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || strings.HasPrefix(p, "+") {
			return Date{}, gameerr.Validation("invalid date %q, expected Y-MM-DD", s)
		}
		vals[i] = n
	}

	return New(vals[0], vals[1], vals[2])
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON encodes the date as its string form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "Y-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays moves d forward by n days. Negative n is handled by SubtractDays.
func AddDays(d Date, n int) Date {
	if n < 0 {
		return SubtractDays(d, -n)
	}

	d.Day += n
	for d.Day > DaysPerMonth {
		d.Day -= DaysPerMonth
		d.Month++
	}
	for d.Month > MonthsPerYear {
		d.Month -= MonthsPerYear
		d.Year++
	}
	return d
}

// SubtractDays moves d back by n days. The result never precedes 1-01-01.
func SubtractDays(d Date, n int) Date {
	if n < 0 {
		return AddDays(d, -n)
	}

	d.Day -= n
	for d.Day < 1 {
		d.Day += DaysPerMonth
		d.Month--
	}
	for d.Month < 1 {
		d.Month += MonthsPerYear
		d.Year--
	}
	if d.Year < 1 {
		return Start
	}
	return d
}

// Ordinal returns the absolute day number of d, with 1-01-01 as day 1.
func Ordinal(d Date) int {
	return (d.Year-1)*DaysPerYear + (d.Month-1)*DaysPerMonth + d.Day
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b Date) int {
	return Ordinal(b) - Ordinal(a)
}

// Compare orders dates lexicographically on (year, month, day).
func Compare(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

// Before reports whether a is strictly earlier than b.
func Before(a, b Date) bool {
	return Compare(a, b) < 0
}

// IsDay35 reports whether d falls on the last day of its month (payday).
func IsDay35(d Date) bool {
	return d.Day == DaysPerMonth
}

// NextDay35 returns the next payday strictly after d when d is already a
// payday, otherwise the payday of the current month.
func NextDay35(d Date) Date {
	if d.Day < DaysPerMonth {
		return Date{Year: d.Year, Month: d.Month, Day: DaysPerMonth}
	}
	next := Date{Year: d.Year, Month: d.Month + 1, Day: DaysPerMonth}
	if next.Month > MonthsPerYear {
		next.Month = 1
		next.Year++
	}
	return next
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
