package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	longMilitaryRegex = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2}):(\d{2})\s*$`)
	clockMarkerRegex  = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp])\.?\s*(?:[Mm]\.?)?(?:\s|$)`)
	hourMarkerRegex   = regexp.MustCompile(`^\s*(\d{1,2})\s*([AaPp])\.?\s*(?:[Mm]\.?)?(?:\s|$)`)
	timeRangeRegex    = regexp.MustCompile(`\s*(?:-|–|—|\bto\b)\s*`)
)

// FormatTime turns a scraped time string into the `H:MM AM` display form.
//
// Text without any digit ("TBA", "All Day") is a sentinel and comes back
// untouched. Accepted shapes are "17:15:00", "8:30 PM" and "11 am"; anything
// else carrying digits is a *TimeFormatError.
func FormatTime(raw string) (string, error) {
	if !strings.ContainsFunc(raw, unicode.IsDigit) {
		return raw, nil
	}

	switch strings.Count(raw, ":") {
	case 2:
		m := longMilitaryRegex.FindStringSubmatch(raw)
		if m == nil {
			return "", &TimeFormatError{Raw: raw, Reason: "expected bare 24-hour HH:MM:SS"}
		}
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return "", &TimeFormatError{Raw: raw, Reason: "out of range 24-hour time"}
		}
		marker := "AM"
		if hour >= 12 {
			marker = "PM"
		}
		hour %= 12
		if hour == 0 {
			hour = 12
		}
		return display(hour, minute, marker), nil

	case 1:
		m := clockMarkerRegex.FindStringSubmatch(raw)
		if m == nil {
			return "", &TimeFormatError{Raw: raw, Reason: "expected H:MM followed by AM or PM"}
		}
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return "", &TimeFormatError{Raw: raw, Reason: "out of range 12-hour time"}
		}
		return display(hour, minute, marker(m[3])), nil

	case 0:
		m := hourMarkerRegex.FindStringSubmatch(raw)
		if m == nil {
			return "", &TimeFormatError{Raw: raw, Reason: "expected H followed by AM or PM"}
		}
		hour, _ := strconv.Atoi(m[1])
		if hour < 1 || hour > 12 {
			return "", &TimeFormatError{Raw: raw, Reason: "out of range 12-hour time"}
		}
		return display(hour, 0, marker(m[2])), nil
	}

	return "", &TimeFormatError{Raw: raw, Reason: "too many colons"}
}

// FormatTimePtr applies FormatTime to an optional value; nil and blank stay absent.
func FormatTimePtr(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	formatted, err := FormatTime(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &formatted, nil
}

// SplitTimeRange splits "10:00 am - 11:30 am" into its two ends. A single
// time or a sentinel without digits ("All-Day") comes back as start with an
// empty end.
func SplitTimeRange(raw string) (start, end string) {
	raw = strings.TrimSpace(raw)
	if !strings.ContainsFunc(raw, unicode.IsDigit) {
		return raw, ""
	}
	parts := timeRangeRegex.Split(raw, 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		end = strings.TrimSpace(parts[1])
	}
	// "10 - 11:30 am" shares the trailing marker
	if end != "" && !strings.ContainsAny(start, "AaPp") {
		if m := trailingMarker(end); m != "" {
			start = start + " " + strings.ToUpper(sharedMarker(start, end, m))
		}
	}
	return start, end
}

// "11:30 - 1 pm" starts in the morning: a start that would land after the
// end with the end's marker takes the other one.
func sharedMarker(start, end, m string) string {
	other := "am"
	if m == "am" {
		other = "pm"
	}
	s, err := FormatTime(start + " " + m)
	if err != nil {
		return m
	}
	e, err := FormatTime(end)
	if err != nil {
		return m
	}
	if minutesOfDay(s) > minutesOfDay(e) {
		return other
	}
	return m
}

// minutes since midnight of a FormatTime result
func minutesOfDay(formatted string) int {
	var hour, minute int
	var marker string
	if _, err := fmt.Sscanf(formatted, "%d:%d %s", &hour, &minute, &marker); err != nil {
		return 0
	}
	hour %= 12
	if marker == "PM" {
		hour += 12
	}
	return hour*60 + minute
}

func trailingMarker(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasSuffix(s, "am"), strings.HasSuffix(s, "a.m."):
		return "am"
	case strings.HasSuffix(s, "pm"), strings.HasSuffix(s, "p.m."):
		return "pm"
	}
	return ""
}

func marker(letter string) string {
	if strings.EqualFold(letter, "p") {
		return "PM"
	}
	return "AM"
}

func display(hour, minute int, marker string) string {
	return fmt.Sprintf("%d:%02d %s", hour, minute, marker)
}
