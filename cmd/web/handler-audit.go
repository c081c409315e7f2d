package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/myrjola/trackside/internal/models"
)

func (app *application) listAudit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter models.AuditFilter
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			app.badRequest(w, r, "startDate must be RFC 3339")
			return
		}
		filter.StartDate = parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			app.badRequest(w, r, "endDate must be RFC 3339")
			return
		}
		filter.EndDate = parsed
	}
	if raw := query.Get("trainIds"); raw != "" {
		filter.TrainIDs = strings.Split(raw, ",")
	}
	app.writeData(w, r, http.StatusOK, app.journal.List(filter))
}

// appendAudit records one audit entry. The server owns id and timestamp;
// whatever the client sent for those fields is overwritten.
func (app *application) appendAudit(w http.ResponseWriter, r *http.Request) {
	var entry models.AuditLog
	if err := decodeBody(r, &entry); err != nil {
		app.badRequest(w, r, "invalid request body")
		return
	}
	if entry.Action == "" || entry.Actor == "" {
		app.badRequest(w, r, "action and actor are required")
		return
	}
	stored := app.journal.Append(entry)
	app.writeData(w, r, http.StatusCreated, map[string]string{"id": stored.ID})
}
