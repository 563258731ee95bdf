package normalize

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// ISODateLayout is how dates are stored and how the API accepts day/week anchors.
	ISODateLayout = "2006-01-02"
	// MonthLayout is the `YYYY-MM` shape used by monthly queries.
	MonthLayout = "2006-01"
)

// Date is a calendar date without a time of day or a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes overflowing values, so NewDate(2025, 3, 32) is April 1st.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseISODate parses a strict `YYYY-MM-DD` string.
func ParseISODate(raw string) (Date, error) {
	t, err := time.Parse(ISODateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("ParseISODate: %w", err)
	}
	return DateOf(t), nil
}

// Midnight in UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

func (d Date) String() string {
	return d.Format(ISODateLayout)
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case time.Time:
		*d = DateOf(v)
		return nil
	default:
		return fmt.Errorf("(*Date).Scan: unsupported type %T", src)
	}
}

func (d *Date) scanString(s string) error {
	// some drivers hand back the column as a full timestamp
	if len(s) > len(ISODateLayout) {
		s = s[:len(ISODateLayout)]
	}
	parsed, err := ParseISODate(s)
	if err != nil {
		return fmt.Errorf("(*Date).Scan: %w", err)
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("(*Date).UnmarshalJSON: %w", err)
	}
	parsed, err := ParseISODate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month is a calendar year-month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a strict `YYYY-MM` string.
func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse(MonthLayout, raw)
	if err != nil {
		return Month{}, fmt.Errorf("ParseMonth: %w", err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func MonthOf(d Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// First day of the month.
func (m Month) First() Date {
	return NewDate(m.Year, m.Month, 1)
}

// Next month's first day, the exclusive upper bound of m.
func (m Month) End() Date {
	return NewDate(m.Year, m.Month+1, 1)
}

func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

func (m Month) String() string {
	return m.First().Format(MonthLayout)
}
