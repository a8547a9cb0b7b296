package dates

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var osloLoc *time.Location

func init() {
	var err error
	osloLoc, err = time.LoadLocation("Europe/Oslo")
	if err != nil {
		panic(fmt.Sprintf("failed to load Oslo location: %v", err))
	}
}

// Location is the local zone all price data is normalized to.
func Location() *time.Location {
	return osloLoc
}

// Date is a civil calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime takes the calendar date of t in the Oslo zone.
func FromTime(t time.Time) Date {
	y, m, d := t.In(osloLoc).Date()
	return Date{Year: y, Month: m, Day: d}
}

func Today() Date {
	return FromTime(time.Now())
}

func Parse(str string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, str, osloLoc)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", str, err)
	}
	return FromTime(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Midnight is the start of the day in the Oslo zone.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, osloLoc)
}

func (d Date) AddDays(days int) Date {
	return FromTime(d.Midnight().AddDate(0, 0, days))
}

func (d Date) Compare(other Date) int {
	if d.Year != other.Year {
		return cmpInt(d.Year, other.Year)
	}
	if d.Month != other.Month {
		return cmpInt(int(d.Month), int(other.Month))
	}
	return cmpInt(d.Day, other.Day)
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
