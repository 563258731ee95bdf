package route

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rebelcal/src-server/model"
	"rebelcal/src-server/utils"

	"github.com/go-ap/errors"
)

// Events registers the per-category routes, prefixed with each category's
// slug: /academiccalendar_add, /rebelcoverage_list, ...
func Events(muxer *http.ServeMux, as *utils.AppState) {
	for _, category := range model.Categories {
		eventRoutes(muxer, as, category)
	}
}

func eventRoutes(muxer *http.ServeMux, as *utils.AppState, category model.Category) {
	slug := category.Source().Slug()

	listOr404 := func(w http.ResponseWriter, events []*model.Event, empty string) {
		if len(events) == 0 {
			writeMessage(w, http.StatusNotFound, empty)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}

	muxer.HandleFunc("PUT /"+slug+"_add", func(w http.ResponseWriter, r *http.Request) {
		var draft model.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, r, errors.BadRequestf("invalid body: %s", err))
			return
		}
		e, err := as.Events.Create(r.Context(), category, draft)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, e)
	})

	muxer.HandleFunc("GET /"+slug+"_id/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeError(w, r, errors.BadRequestf("id %q is not an integer", r.PathValue("id")))
			return
		}
		e, err := as.Events.Get(r.Context(), category, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	})

	muxer.HandleFunc("GET /"+slug+"_list", func(w http.ResponseWriter, r *http.Request) {
		events, err := as.Events.List(r.Context(), category)
		if err != nil {
			writeError(w, r, err)
			return
		}
		listOr404(w, events, "Table is empty")
	})

	muxer.HandleFunc("GET /"+slug+"_daily/{date}", func(w http.ResponseWriter, r *http.Request) {
		events, err := as.Events.Daily(r.Context(), category, r.PathValue("date"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		listOr404(w, events, "No events on "+r.PathValue("date"))
	})

	muxer.HandleFunc("GET /"+slug+"_weekly/{date}", func(w http.ResponseWriter, r *http.Request) {
		events, err := as.Events.Weekly(r.Context(), category, r.PathValue("date"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		listOr404(w, events, "No events in the week from "+r.PathValue("date"))
	})

	muxer.HandleFunc("GET /"+slug+"_monthly/{month}", func(w http.ResponseWriter, r *http.Request) {
		events, err := as.Events.Monthly(r.Context(), category, r.PathValue("month"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		listOr404(w, events, "No events in "+r.PathValue("month"))
	})

	muxer.HandleFunc("DELETE /"+slug+"_delete_all", func(w http.ResponseWriter, r *http.Request) {
		n, err := as.Events.DeleteAll(r.Context(), category)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
	})

	muxer.HandleFunc("DELETE /"+slug+"_delete_past", func(w http.ResponseWriter, r *http.Request) {
		before, err := as.ParseBefore(r.URL.Query().Get("before"), time.Now())
		if err != nil {
			writeError(w, r, err)
			return
		}
		n, err := as.Events.DeletePast(r.Context(), category, before)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": n, "before": before})
	})

	muxer.HandleFunc("GET /"+slug+".ics", icsHandler(as, category))
}
