package normalize_test

import (
	"errors"
	"testing"

	"rebelcal/src-server/normalize"
)

func TestFormatTime(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want string
	}{
		{"17:15:00", "5:15 PM"},
		{"00:05:00", "12:05 AM"},
		{"12:00:00", "12:00 PM"},
		{"09:45:00", "9:45 AM"},
		{"8:30 PM", "8:30 PM"},
		{"08:30 am", "8:30 AM"},
		{"10:00 AM PDT", "10:00 AM"},
		{"7:05p.m.", "7:05 PM"},
		{"11 AM", "11:00 AM"},
		{"11am", "11:00 AM"},
		{"3 pm", "3:00 PM"},
		{"TBA", "TBA"},
		{"All Day", "All Day"},
		{"", ""},
	} {
		got, err := normalize.FormatTime(tc.raw)
		if err != nil {
			t.Errorf("FormatTime(%q) returned error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("FormatTime(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFormatTimeRejectsUnknownShapes(t *testing.T) {
	for _, raw := range []string{
		"17:15",
		"13:00 PM",
		"25:00:00",
		"8:75 AM",
		"noon on the 5th",
		"1:2:3:4",
		"0 am",
		"5:15:00 PM",
		"09:00:00 pm",
		"17:15:00 AM",
	} {
		_, err := normalize.FormatTime(raw)
		var tfe *normalize.TimeFormatError
		if !errors.As(err, &tfe) {
			t.Errorf("FormatTime(%q) error = %v, want *TimeFormatError", raw, err)
		}
	}
}

func TestFormatTimePtr(t *testing.T) {
	if got, err := normalize.FormatTimePtr(nil); got != nil || err != nil {
		t.Errorf("nil input should stay absent, got %v, %v", got, err)
	}
	blank := "   "
	if got, err := normalize.FormatTimePtr(&blank); got != nil || err != nil {
		t.Errorf("blank input should be absent, got %v, %v", got, err)
	}
	raw := " 7 pm "
	got, err := normalize.FormatTimePtr(&raw)
	if err != nil || got == nil || *got != "7:00 PM" {
		t.Errorf("FormatTimePtr(%q) = %v, %v", raw, got, err)
	}
}

func TestSplitTimeRange(t *testing.T) {
	for _, tc := range []struct {
		raw, start, end string
	}{
		{"10:00 am - 11:30 am", "10:00 am", "11:30 am"},
		{"10:00 AM – 2:00 PM", "10:00 AM", "2:00 PM"},
		{"10 - 11:30 am", "10 AM", "11:30 am"},
		{"6 pm to 8 pm", "6 pm", "8 pm"},
		{"All Day", "All Day", ""},
		{"7:00 PM", "7:00 PM", ""},
		{"All-Day", "All-Day", ""},
		{"11:30 - 1 pm", "11:30 AM", "1 pm"},
		{"9 - 11 am", "9 AM", "11 am"},
		{"11 - 2 am", "11 PM", "2 am"},
	} {
		start, end := normalize.SplitTimeRange(tc.raw)
		if start != tc.start || end != tc.end {
			t.Errorf("SplitTimeRange(%q) = (%q, %q), want (%q, %q)", tc.raw, start, end, tc.start, tc.end)
		}
	}
}
