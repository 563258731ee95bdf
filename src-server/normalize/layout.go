package normalize

import (
	"strings"
	"time"
)

const (
	// "Monday, March 17, 2025"
	LongDateLayout = "Monday, January 2, 2006"
	// "03/17/2025"; parsing also takes "3/7/2025"
	SlashDateLayout = "01/02/2006"
	// ISO-8601 date or date-time
	ISOLayout = "2006-01-02[T15:04:05[Z07:00]]"

	slashDateParseLayout = "1/2/2006"
)

// ParseLongDate parses "Monday, March 17, 2025".
func ParseLongDate(raw string) (Date, error) {
	t, err := time.Parse(LongDateLayout, collapseSpaces(raw))
	if err != nil {
		return Date{}, &DateFormatError{Raw: raw, Layout: LongDateLayout}
	}
	return DateOf(t), nil
}

// ParseSlashDate parses "MM/DD/YYYY".
func ParseSlashDate(raw string) (Date, error) {
	t, err := time.Parse(slashDateParseLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, &DateFormatError{Raw: raw, Layout: SlashDateLayout}
	}
	return DateOf(t), nil
}

// ParseISOTimestamp parses an ISO-8601 date or date-time and returns it in
// loc. Date-times with an offset are converted; naive ones are read as loc.
// hasClock is false for a bare date.
func ParseISOTimestamp(raw string, loc *time.Location) (t time.Time, hasClock bool, err error) {
	s := strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(ISODateLayout, s, loc); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, &DateFormatError{Raw: raw, Layout: ISOLayout}
}

// ParseISODateIn is ParseISOTimestamp reduced to the calendar date in loc.
func ParseISODateIn(raw string, loc *time.Location) (Date, error) {
	t, _, err := ParseISOTimestamp(raw, loc)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
