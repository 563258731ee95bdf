package route

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"rebelcal/src-server/normalize"

	"github.com/go-ap/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("can't write to response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps store and parser errors to their HTTP status. Anything
// unclassified is a 500 and gets logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var dfe *normalize.DateFormatError
	var tfe *normalize.TimeFormatError
	switch {
	case stderrors.As(err, &dfe), stderrors.As(err, &tfe):
		status = http.StatusBadRequest
	case errors.IsBadRequest(err), errors.IsNotFound(err), errors.IsConflict(err):
		status = errors.HttpStatus(err)
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
