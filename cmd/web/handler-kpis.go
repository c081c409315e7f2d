package main

import "net/http"

func (app *application) kpiReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	includeHistory := query.Get("includeHistory") == "true"
	timeRange := query.Get("timeRange")
	if timeRange == "" {
		timeRange = "24h"
	}
	app.writeData(w, r, http.StatusOK, app.source.KPIReport(includeHistory, timeRange))
}
