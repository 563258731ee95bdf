package model_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"

	goaperrors "github.com/go-ap/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })
	if err := model.CreateSchema(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	return db
}

func ptr(s string) *string { return &s }

func TestCategoryParseDate(t *testing.T) {
	want := normalize.NewDate(2025, time.March, 17)
	for _, tc := range []struct {
		category model.Category
		raw      string
	}{
		{model.AcademicCalendar, "Monday, March 17, 2025"},
		{model.UNLVCalendar, "Monday,  March 17, 2025"},
		{model.InvolvementCenter, "2025-03-17"},
		{model.InvolvementCenter, "2025-03-17T10:00:00-07:00"},
		{model.RebelCoverage, "03/17/2025"},
	} {
		got, err := tc.category.Source().ParseDate(tc.raw)
		if err != nil {
			t.Errorf("%s: ParseDate(%q): %v", tc.category, tc.raw, err)
			continue
		}
		if got != want {
			t.Errorf("%s: ParseDate(%q) = %s", tc.category, tc.raw, got)
		}
	}
}

func TestCategoryParseDateNoFallback(t *testing.T) {
	for _, tc := range []struct {
		category model.Category
		raw      string
	}{
		{model.AcademicCalendar, "03/17/2025"},
		{model.AcademicCalendar, "2025-03-17"},
		{model.UNLVCalendar, "2025-03-17"},
		{model.InvolvementCenter, "Monday, March 17, 2025"},
		{model.InvolvementCenter, "03/17/2025"},
		{model.RebelCoverage, "2025-03-17"},
		{model.RebelCoverage, "Monday, March 17, 2025"},
	} {
		_, err := tc.category.Source().ParseDate(tc.raw)
		var dfe *normalize.DateFormatError
		if !errors.As(err, &dfe) {
			t.Errorf("%s: ParseDate(%q) error = %v, want *DateFormatError", tc.category, tc.raw, err)
			continue
		}
		if dfe.Source != string(tc.category) {
			t.Errorf("%s: error source = %q", tc.category, dfe.Source)
		}
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	d := normalize.NewDate(2026, time.February, 3)
	for _, tc := range []struct {
		category model.Category
		layout   string
	}{
		{model.AcademicCalendar, normalize.LongDateLayout},
		{model.UNLVCalendar, normalize.LongDateLayout},
		{model.InvolvementCenter, normalize.ISODateLayout},
		{model.RebelCoverage, normalize.SlashDateLayout},
	} {
		got, err := tc.category.Source().ParseDate(d.Format(tc.layout))
		if err != nil || got != d {
			t.Errorf("%s round trip = %v, %v", tc.category, got, err)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, s := range []string{"rebel_coverage", "rebelcoverage"} {
		c, err := model.ParseCategory(s)
		if err != nil || c != model.RebelCoverage {
			t.Errorf("ParseCategory(%q) = %v, %v", s, c, err)
		}
	}
	if _, err := model.ParseCategory("organizations"); err == nil {
		t.Error("organizations is not an event category")
	}
}

func TestEventValidate(t *testing.T) {
	day := normalize.NewDate(2025, time.March, 17)
	valid := func() *model.Event {
		return &model.Event{
			Category:  model.RebelCoverage,
			Name:      "Baseball vs. Nevada",
			StartDate: day,
			EndDate:   day,
			StartTime: ptr("6:00 PM"),
			Sport:     ptr("Baseball"),
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	for name, mutate := range map[string]func(e *model.Event){
		"unknown category": func(e *model.Event) { e.Category = "organizations" },
		"blank name":       func(e *model.Event) { e.Name = "  " },
		"no start date":    func(e *model.Event) { e.StartDate = normalize.Date{} },
		"inverted range":   func(e *model.Event) { e.EndDate = day.AddDays(-1) },
		"wrong class":      func(e *model.Event) { e.Organization = ptr("Chess Club") },
		"bad link":         func(e *model.Event) { e.Link = ptr("not a url") },
		"academic time": func(e *model.Event) {
			e.Category = model.AcademicCalendar
			e.Sport = nil
		},
	} {
		e := valid()
		mutate(e)
		err := e.Validate()
		if !goaperrors.IsBadRequest(err) {
			t.Errorf("%s: Validate() = %v, want bad request", name, err)
		}
	}
}

func TestDedupIndexRejectsDirectDoubleInsert(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	day := normalize.NewDate(2025, time.March, 17)

	insert := func(e model.Event) error {
		_, err := db.NewInsert().Model(&e).Exec(ctx)
		return err
	}

	academic := model.Event{Category: model.AcademicCalendar, Name: "Spring Break", StartDate: day, EndDate: day}
	if err := insert(academic); err != nil {
		t.Fatal(err)
	}
	if err := insert(academic); err == nil {
		t.Error("second identical insert passed the unique index")
	}

	// null start times collide too
	campus := model.Event{Category: model.UNLVCalendar, Name: "Spring Break", StartDate: day, EndDate: day}
	if err := insert(campus); err != nil {
		t.Fatalf("same key in another category should be allowed: %v", err)
	}
	if err := insert(campus); err == nil {
		t.Error("null start time did not collide")
	}

	campus.StartTime = ptr("10:00 AM")
	if err := insert(campus); err != nil {
		t.Errorf("a different start time is a different event: %v", err)
	}

	count, err := db.NewSelect().Model((*model.Event)(nil)).Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("stored %d rows, want 3", count)
	}
}

func TestEventDatesSurviveStorage(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	in := model.Event{
		Category:  model.InvolvementCenter,
		Name:      "Club Fair",
		StartDate: normalize.NewDate(2025, time.March, 25),
		EndDate:   normalize.NewDate(2025, time.March, 26),
		StartTime: ptr("10:00 AM"),
	}
	if _, err := db.NewInsert().Model(&in).Exec(ctx); err != nil {
		t.Fatal(err)
	}
	if in.ID == 0 {
		t.Fatal("id not assigned")
	}

	out := new(model.Event)
	if err := db.NewSelect().Model(out).Where("id = ?", in.ID).Scan(ctx); err != nil {
		t.Fatal(err)
	}
	if out.StartDate != in.StartDate || out.EndDate != in.EndDate {
		t.Errorf("dates = %s..%s", out.StartDate, out.EndDate)
	}
	if out.EndTime != nil || out.StartTime == nil || *out.StartTime != "10:00 AM" {
		t.Errorf("times = %v..%v", out.StartTime, out.EndTime)
	}
}
