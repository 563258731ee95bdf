package route

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"
	"rebelcal/src-server/utils"

	ical "github.com/arran4/golang-ical"
)

const icsClockLayout = "3:04 PM"

func icsHandler(as *utils.AppState, category model.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := as.Events.List(r.Context(), category)
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(ToICS(category, events, as.Config.GetLocation()))); err != nil {
			slog.Warn("can't write to response", "where", "route/ical.go", "err", err)
		}
	}
}

// ToICS renders events as a published calendar. Events whose times are a
// sentinel ("TBA", "All Day") or absent become all-day entries.
func ToICS(category model.Category, events []*model.Event, loc *time.Location) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//rebelcal//" + category.Source().Label() + "//EN")
	cal.SetXWRCalName(category.Source().Label())

	for _, e := range events {
		ev := cal.AddEvent(fmt.Sprintf("%s-%d@rebelcal", category, e.ID))
		ev.SetDtStampTime(e.CreatedAt)
		ev.SetSummary(e.Name)
		if e.Location != nil {
			ev.SetLocation(*e.Location)
		}
		if e.Link != nil {
			ev.SetURL(*e.Link)
		}
		if class := e.Classification(); class != nil {
			ev.SetDescription(*class)
		}

		start, startOK := clockOn(e.StartDate, e.StartTime, loc)
		end, endOK := clockOn(e.EndDate, e.EndTime, loc)
		if !startOK {
			ev.SetAllDayStartAt(e.StartDate.Time())
			// DTEND of an all-day entry is exclusive
			ev.SetAllDayEndAt(e.EndDate.AddDays(1).Time())
			continue
		}
		ev.SetStartAt(start)
		if endOK && !end.Before(start) {
			ev.SetEndAt(end)
		}
	}
	return cal.Serialize()
}

func clockOn(d normalize.Date, clock *string, loc *time.Location) (time.Time, bool) {
	if clock == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(icsClockLayout, strings.TrimSpace(*clock))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, loc), true
}
