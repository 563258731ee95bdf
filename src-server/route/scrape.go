package route

import (
	"net/http"
	"strconv"

	"rebelcal/src-server/scheduler"
	"rebelcal/src-server/utils"

	"github.com/go-ap/errors"
)

const defaultRunsLimit = 20

func Scrape(muxer *http.ServeMux, as *utils.AppState, runner *scheduler.Runner) {
	muxer.HandleFunc("GET /scrape/runs", func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRunsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, r, errors.BadRequestf("limit %q is not a non-negative integer", raw))
				return
			}
			limit = n
		}
		if as.Journal == nil {
			writeMessage(w, http.StatusNotFound, "Scrape journal is not open")
			return
		}
		runs, err := as.Journal.Recent(limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})

	// runs synchronously; the response carries the run summary
	muxer.HandleFunc("POST /scrape/{source}", func(w http.ResponseWriter, r *http.Request) {
		runs, err := runner.RunCycle(r.Context(), r.PathValue("source"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})
}
