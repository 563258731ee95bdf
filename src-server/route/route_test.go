package route_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"rebelcal/src-server/mapper"
	"rebelcal/src-server/route"
	"rebelcal/src-server/scheduler"
	"rebelcal/src-server/scraper"
	"rebelcal/src-server/utils"

	"github.com/uptrace/bun/driver/sqliteshim"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	rawDb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	rawDb.SetMaxOpenConns(1)
	t.Setenv("JOURNAL_PATH", filepath.Join(t.TempDir(), "journal.db"))
	t.Setenv("TIMEZONE", "")
	as, err := utils.NewAppState(utils.NewConfig(), nil, rawDb)
	if err != nil {
		t.Fatal(err)
	}
	if err := as.OpenJournal(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(as.GracefulShutdown)

	runner := scheduler.NewRunner(as, scheduler.Scrapers{
		Organizations: func(context.Context, *scraper.Session, string) ([]mapper.OrganizationRecord, error) {
			return []mapper.OrganizationRecord{{Name: "Chess Club"}, {Name: "Aero Society"}}, nil
		},
	})
	srv := httptest.NewServer(route.NewHandler(as, runner))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(raw)
}

func expect(t *testing.T, srv *httptest.Server, method, path, body string, status int) string {
	t.Helper()
	got, resp := do(t, srv, method, path, body)
	if got != status {
		t.Fatalf("%s %s = %d %s, want %d", method, path, got, resp, status)
	}
	return resp
}

func TestAcademicCalendarRoutes(t *testing.T) {
	srv := newServer(t)

	expect(t, srv, "GET", "/academiccalendar_list", "", http.StatusNotFound)

	resp := expect(t, srv, "PUT", "/academiccalendar_add", `{"name": "Spring Break", "startDate": "Monday, March 17, 2025"}`, http.StatusCreated)
	var created map[string]any
	if err := json.Unmarshal([]byte(resp), &created); err != nil {
		t.Fatal(err)
	}
	if created["startDate"] != "2025-03-17" || created["endDate"] != "2025-03-17" || created["id"] != float64(1) {
		t.Errorf("created = %v", created)
	}

	expect(t, srv, "PUT", "/academiccalendar_add", `{"name": "Spring Break", "startDate": "Monday, March 17, 2025"}`, http.StatusConflict)
	// ISO is not the academic layout
	expect(t, srv, "PUT", "/academiccalendar_add", `{"name": "Finals", "startDate": "2025-05-12"}`, http.StatusBadRequest)
	expect(t, srv, "PUT", "/academiccalendar_add", `{"name": `, http.StatusBadRequest)
	expect(t, srv, "PUT", "/academiccalendar_add", `{"name": "Commencement", "startDate": "Saturday, May 17, 2025"}`, http.StatusCreated)

	expect(t, srv, "GET", "/academiccalendar_id/1", "", http.StatusOK)
	expect(t, srv, "GET", "/academiccalendar_id/one", "", http.StatusBadRequest)
	expect(t, srv, "GET", "/academiccalendar_id/99", "", http.StatusNotFound)
	// ids are per category
	expect(t, srv, "GET", "/rebelcoverage_id/1", "", http.StatusNotFound)

	resp = expect(t, srv, "GET", "/academiccalendar_list", "", http.StatusOK)
	if !strings.Contains(resp, "Spring Break") || !strings.Contains(resp, "Commencement") {
		t.Errorf("list = %s", resp)
	}

	expect(t, srv, "GET", "/academiccalendar_monthly/2025-03", "", http.StatusOK)
	expect(t, srv, "GET", "/academiccalendar_monthly/2025-04", "", http.StatusNotFound)
	expect(t, srv, "GET", "/academiccalendar_monthly/March", "", http.StatusBadRequest)

	resp = expect(t, srv, "DELETE", "/academiccalendar_delete_past?before=2025-04-01", "", http.StatusOK)
	if !strings.Contains(resp, `"deleted":1`) {
		t.Errorf("delete past = %s", resp)
	}
	expect(t, srv, "DELETE", "/academiccalendar_delete_past?before=zzzz", "", http.StatusBadRequest)

	resp = expect(t, srv, "DELETE", "/academiccalendar_delete_all", "", http.StatusOK)
	if !strings.Contains(resp, `"deleted":1`) {
		t.Errorf("delete all = %s", resp)
	}
	resp = expect(t, srv, "DELETE", "/academiccalendar_delete_all", "", http.StatusOK)
	if !strings.Contains(resp, `"deleted":0`) {
		t.Errorf("second delete all = %s", resp)
	}
}

func TestRangeRoutes(t *testing.T) {
	srv := newServer(t)
	for _, body := range []string{
		`{"name": "vs. Nevada", "startDate": "03/24/2025", "startTime": "17:15:00", "sport": "Baseball"}`,
		`{"name": "vs. Utah", "startDate": "03/30/2025", "startTime": "11 am", "sport": "Softball"}`,
		`{"name": "at Fresno State", "startDate": "03/31/2025", "startTime": "TBA", "sport": "Baseball"}`,
	} {
		expect(t, srv, "PUT", "/rebelcoverage_add", body, http.StatusCreated)
	}
	expect(t, srv, "PUT", "/rebelcoverage_add", `{"name": "vs. Reno", "startDate": "04/01/2025", "startTime": "25:00:00"}`, http.StatusBadRequest)
	// classification of another category
	expect(t, srv, "PUT", "/rebelcoverage_add", `{"name": "vs. Reno", "startDate": "04/01/2025", "organization": "CSUN"}`, http.StatusBadRequest)

	var week []map[string]any
	if err := json.Unmarshal([]byte(expect(t, srv, "GET", "/rebelcoverage_weekly/2025-03-24", "", http.StatusOK)), &week); err != nil {
		t.Fatal(err)
	}
	if len(week) != 2 || week[0]["startTime"] != "5:15 PM" || week[1]["startTime"] != "11:00 AM" {
		t.Errorf("week = %v", week)
	}
	if week[0]["sport"] != "Baseball" {
		t.Errorf("sport = %v", week[0]["sport"])
	}

	expect(t, srv, "GET", "/rebelcoverage_daily/2025-03-31", "", http.StatusOK)
	expect(t, srv, "GET", "/rebelcoverage_daily/2025-03-25", "", http.StatusNotFound)
	expect(t, srv, "GET", "/rebelcoverage_daily/03-31-2025", "", http.StatusBadRequest)
	expect(t, srv, "GET", "/rebelcoverage_weekly/yesterday", "", http.StatusBadRequest)

	var byWeek map[string]map[string][]map[string]any
	if err := json.Unmarshal([]byte(expect(t, srv, "GET", "/calendar-events/by-week?start-date=2025-03-26", "", http.StatusOK)), &byWeek); err != nil {
		t.Fatal(err)
	}
	if len(byWeek["Mar 24 – 30, 2025"]["Rebel Coverage"]) != 2 {
		t.Errorf("by-week = %v", byWeek)
	}

	req, _ := http.NewRequest("GET", srv.URL+"/calendar-events/by-week", nil)
	req.Header.Set("start-date", "Monday, March 31, 2025")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("by-week header = %d", resp.StatusCode)
	}
	expect(t, srv, "GET", "/calendar-events/by-week?start-date=someday", "", http.StatusBadRequest)

	body := expect(t, srv, "GET", "/calendar-events/by-day?date=2025-03-30", "", http.StatusOK)
	if !strings.Contains(body, "vs. Utah") || strings.Contains(body, "vs. Nevada") {
		t.Errorf("by-day = %s", body)
	}

	var overview struct {
		Weekly map[string]any `json:"weekly"`
		Daily  map[string]any `json:"daily"`
	}
	if err := json.Unmarshal([]byte(expect(t, srv, "GET", "/calendar-events", "", http.StatusOK)), &overview); err != nil {
		t.Fatal(err)
	}
	if len(overview.Weekly) != 2 || len(overview.Daily) != 3 {
		t.Errorf("overview weekly %d daily %d", len(overview.Weekly), len(overview.Daily))
	}
}

func TestICSExport(t *testing.T) {
	srv := newServer(t)
	expect(t, srv, "PUT", "/unlvcalendar_add", `{"name": "Jazz Night", "startDate": "Tuesday, March 25, 2025", "startTime": "7:00 pm", "endTime": "9:00 pm", "location": "Beam Music Center"}`, http.StatusCreated)
	expect(t, srv, "PUT", "/unlvcalendar_add", `{"name": "Open House", "startDate": "Wednesday, March 26, 2025", "startTime": "All Day"}`, http.StatusCreated)

	body := expect(t, srv, "GET", "/unlvcalendar.ics", "", http.StatusOK)
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Jazz Night", "LOCATION:Beam Music Center", "DTSTART:20250326T020000Z", "DTSTART;VALUE=DATE:20250326", "DTEND;VALUE=DATE:20250327"} {
		if !strings.Contains(body, want) {
			t.Errorf("ics missing %q:\n%s", want, body)
		}
	}
}

func TestOrganizationAndScrapeRoutes(t *testing.T) {
	srv := newServer(t)

	expect(t, srv, "GET", "/organization_list", "", http.StatusNotFound)
	expect(t, srv, "PUT", "/organization_add", `{"name": "  Chess   Club "}`, http.StatusCreated)
	expect(t, srv, "PUT", "/organization_add", `{"name": "Chess Club"}`, http.StatusConflict)
	expect(t, srv, "PUT", "/organization_add", `{"name": ""}`, http.StatusBadRequest)
	expect(t, srv, "GET", "/organization_id/1", "", http.StatusOK)
	expect(t, srv, "GET", "/organization_id/2", "", http.StatusNotFound)

	var runs []map[string]any
	if err := json.Unmarshal([]byte(expect(t, srv, "POST", "/scrape/organizations", "", http.StatusOK)), &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0]["inserted"] != float64(1) || runs[0]["duplicates"] != float64(1) {
		t.Errorf("runs = %v", runs)
	}
	expect(t, srv, "POST", "/scrape/weather", "", http.StatusBadRequest)

	body := expect(t, srv, "GET", "/organization_list", "", http.StatusOK)
	if strings.Index(body, "Aero Society") > strings.Index(body, "Chess Club") {
		t.Errorf("list not sorted by name: %s", body)
	}

	if err := json.Unmarshal([]byte(expect(t, srv, "GET", "/scrape/runs?limit=5", "", http.StatusOK)), &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0]["source"] != "organizations" {
		t.Errorf("journal = %v", runs)
	}
	expect(t, srv, "GET", "/scrape/runs?limit=-1", "", http.StatusBadRequest)

	body = expect(t, srv, "DELETE", "/organization_delete_all", "", http.StatusOK)
	if !strings.Contains(body, `"deleted":2`) {
		t.Errorf("delete all = %s", body)
	}
}
