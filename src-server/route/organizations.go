package route

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"rebelcal/src-server/model"
	"rebelcal/src-server/utils"

	"github.com/go-ap/errors"
)

func Organizations(muxer *http.ServeMux, as *utils.AppState) {
	type AddReqBody struct {
		Name string `json:"name"`
	}

	muxer.HandleFunc("PUT /organization_add", func(w http.ResponseWriter, r *http.Request) {
		var body AddReqBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, errors.BadRequestf("invalid body: %s", err))
			return
		}
		org := &model.Organization{Name: utils.CleanupString(body.Name)}
		if err := as.Organizations.Insert(r.Context(), org); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, org)
	})

	muxer.HandleFunc("GET /organization_id/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
		if err != nil {
			writeError(w, r, errors.BadRequestf("id %q is not an integer", r.PathValue("id")))
			return
		}
		org, err := as.Organizations.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, org)
	})

	muxer.HandleFunc("GET /organization_list", func(w http.ResponseWriter, r *http.Request) {
		orgs, err := as.Organizations.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if len(orgs) == 0 {
			writeMessage(w, http.StatusNotFound, "Table is empty")
			return
		}
		writeJSON(w, http.StatusOK, orgs)
	})

	muxer.HandleFunc("DELETE /organization_delete_all", func(w http.ResponseWriter, r *http.Request) {
		n, err := as.Organizations.DeleteAll(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
	})
}
