package main

import (
	"net/http"
	"time"
)

type predictionPayload struct {
	TrainIDs  []string  `json:"trainIds"`
	Timestamp time.Time `json:"timestamp"`
}

func (app *application) predictDelays(w http.ResponseWriter, r *http.Request) {
	var payload predictionPayload
	if err := decodeBody(r, &payload); err != nil {
		app.badRequest(w, r, "invalid request body")
		return
	}
	app.writeData(w, r, http.StatusOK, app.source.Predictions(payload.TrainIDs))
}
