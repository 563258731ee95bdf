package normalize_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rebelcal/src-server/normalize"
)

func TestDateArithmetic(t *testing.T) {
	d := normalize.NewDate(2025, time.March, 24)
	if got := d.AddDays(7).String(); got != "2025-03-31" {
		t.Errorf("AddDays(7) = %s", got)
	}
	if got := d.AddDays(8).String(); got != "2025-04-01" {
		t.Errorf("AddDays(8) = %s", got)
	}
	if got := normalize.NewDate(2024, time.December, 31).AddDays(1).String(); got != "2025-01-01" {
		t.Errorf("year rollover = %s", got)
	}
	if !d.Before(d.AddDays(1)) || d.After(d) {
		t.Error("Before/After disagree with calendar order")
	}
	if d.Weekday() != time.Monday {
		t.Errorf("2025-03-24 is a Monday, got %s", d.Weekday())
	}
}

func TestDateScanAndValue(t *testing.T) {
	var d normalize.Date
	for _, src := range []any{
		"2025-03-17",
		[]byte("2025-03-17"),
		"2025-03-17 00:00:00+00:00",
		time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC),
	} {
		if err := d.Scan(src); err != nil {
			t.Errorf("Scan(%v): %v", src, err)
			continue
		}
		if d != normalize.NewDate(2025, time.March, 17) {
			t.Errorf("Scan(%v) = %v", src, d)
		}
	}
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}

	v, err := normalize.NewDate(2025, time.July, 1).Value()
	if err != nil || v != "2025-07-01" {
		t.Errorf("Value() = %v, %v", v, err)
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		D normalize.Date `json:"d"`
	}{normalize.NewDate(2025, time.March, 5)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"d":"2025-03-05"}` {
		t.Errorf("marshal = %s", b)
	}

	var out struct {
		D normalize.Date `json:"d"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out.D.String() != "2025-03-05" {
		t.Errorf("unmarshal = %s", out.D)
	}
}

func TestParseMonth(t *testing.T) {
	m, err := normalize.ParseMonth("2025-03")
	if err != nil {
		t.Fatal(err)
	}
	if m.First().String() != "2025-03-01" || m.End().String() != "2025-04-01" {
		t.Errorf("bounds = %s..%s", m.First(), m.End())
	}
	if !m.Contains(normalize.NewDate(2025, time.March, 31)) || m.Contains(normalize.NewDate(2025, time.April, 1)) {
		t.Error("Contains is wrong at the month edge")
	}
	for _, raw := range []string{"2025-3", "2025/03", "March 2025", "2025-13", ""} {
		if _, err := normalize.ParseMonth(raw); err == nil {
			t.Errorf("ParseMonth(%q) should fail", raw)
		}
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	dates := []normalize.Date{
		normalize.NewDate(2025, time.March, 17),
		normalize.NewDate(2024, time.February, 29),
		normalize.NewDate(2026, time.December, 1),
	}
	for _, d := range dates {
		got, err := normalize.ParseLongDate(d.Format(normalize.LongDateLayout))
		if err != nil || got != d {
			t.Errorf("long round trip of %s = %v, %v", d, got, err)
		}
		got, err = normalize.ParseSlashDate(d.Format(normalize.SlashDateLayout))
		if err != nil || got != d {
			t.Errorf("slash round trip of %s = %v, %v", d, got, err)
		}
		got, err = normalize.ParseISODateIn(d.String(), normalize.Pacific)
		if err != nil || got != d {
			t.Errorf("iso round trip of %s = %v, %v", d, got, err)
		}
	}
}

func TestParseISOTimestampConvertsToPacific(t *testing.T) {
	// 02:30 UTC on the 18th is still the 17th in Las Vegas
	ts, hasClock, err := normalize.ParseISOTimestamp("2025-03-18T02:30:00Z", normalize.Pacific)
	if err != nil {
		t.Fatal(err)
	}
	if !hasClock {
		t.Error("date-time should report a clock")
	}
	if normalize.DateOf(ts).String() != "2025-03-17" || ts.Format("15:04") != "19:30" {
		t.Errorf("converted = %s", ts)
	}

	_, hasClock, err = normalize.ParseISOTimestamp("2025-03-18", normalize.Pacific)
	if err != nil || hasClock {
		t.Errorf("bare date: hasClock=%v err=%v", hasClock, err)
	}

	_, _, err = normalize.ParseISOTimestamp("03/18/2025", normalize.Pacific)
	var dfe *normalize.DateFormatError
	if !errors.As(err, &dfe) {
		t.Errorf("slash date through the ISO parser: %v", err)
	}
}

func TestParseSlashDateAcceptsSingleDigits(t *testing.T) {
	got, err := normalize.ParseSlashDate("3/7/2025")
	if err != nil || got.String() != "2025-03-07" {
		t.Errorf("ParseSlashDate = %v, %v", got, err)
	}
}
