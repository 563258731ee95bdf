package route

import (
	"net/http"
	"strings"
	"time"

	"rebelcal/src-server/normalize"
	"rebelcal/src-server/utils"

	"github.com/go-ap/errors"
)

// Calendar serves the combined view across every category, grouped by
// Monday-start week and by day.
func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	today := func() normalize.Date {
		return normalize.DateOf(time.Now().In(as.Config.GetLocation()))
	}

	muxer.HandleFunc("GET /calendar-events", func(w http.ResponseWriter, r *http.Request) {
		overview, err := as.Events.Overview(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	})

	// start-date comes from the query or a header of the same name
	muxer.HandleFunc("GET /calendar-events/by-week", func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("start-date")
		if raw == "" {
			raw = r.Header.Get("start-date")
		}
		anchor := today()
		if raw = strings.TrimSpace(raw); raw != "" {
			var err error
			if anchor, err = parseWeekAnchor(raw); err != nil {
				writeError(w, r, err)
				return
			}
		}
		grouped, err := as.Events.ByWeek(r.Context(), anchor)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, grouped)
	})

	muxer.HandleFunc("GET /calendar-events/by-day", func(w http.ResponseWriter, r *http.Request) {
		day := today()
		if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
			var err error
			if day, err = normalize.ParseISODate(raw); err != nil {
				writeError(w, r, errors.BadRequestf("date %q is not YYYY-MM-DD", raw))
				return
			}
		}
		grouped, err := as.Events.ByDay(r.Context(), day)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, grouped)
	})
}

// YYYY-MM-DD or "Monday, March 24, 2025"
func parseWeekAnchor(raw string) (normalize.Date, error) {
	if d, err := normalize.ParseISODate(raw); err == nil {
		return d, nil
	}
	if d, err := normalize.ParseLongDate(raw); err == nil {
		return d, nil
	}
	return normalize.Date{}, errors.BadRequestf("start-date %q is neither YYYY-MM-DD nor %q", raw, normalize.LongDateLayout)
}
