package main

import "net/http"

func (app *application) listTrains(w http.ResponseWriter, r *http.Request) {
	app.writeData(w, r, http.StatusOK, app.source.Trains())
}
