package normalize

import (
	"fmt"
	"strings"
)

// DateFormatError means the raw date text does not match the one layout its
// source accepts.
type DateFormatError struct {
	Raw    string
	Layout string
	Source string
}

func (e *DateFormatError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid date")
	if e.Source != "" {
		sb.WriteString(" for ")
		sb.WriteString(e.Source)
	}
	sb.WriteString(fmt.Sprintf(" | raw: %q", e.Raw))
	if e.Layout != "" {
		sb.WriteString(fmt.Sprintf(" expected: %q", e.Layout))
	}
	return sb.String()
}

// TimeFormatError means the raw time text contains digits but fits none of
// the accepted shapes.
type TimeFormatError struct {
	Raw    string
	Reason string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time | raw: %q reason: %s", e.Raw, e.Reason)
}
