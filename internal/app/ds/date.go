package ds

import (
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// NewDate builds a calendar day in UTC.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate accepts YYYY-MM-DD.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// ParseOptionalDate maps "" to nil.
func ParseOptionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

func FormatOptionalDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return FormatDate(*d)
}

// Day drops the clock part, keeping the calendar day of t in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
