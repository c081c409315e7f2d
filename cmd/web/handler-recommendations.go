package main

import (
	"net/http"

	"github.com/myrjola/trackside/internal/models"
)

func (app *application) listRecommendations(w http.ResponseWriter, r *http.Request) {
	app.writeData(w, r, http.StatusOK, app.source.Recommendations())
}

type requestRecommendationsPayload struct {
	SystemState models.SystemState `json:"systemState"`
}

// requestRecommendations runs the mock optimizer over the posted system
// state and responds with the full list, new recommendation first.
func (app *application) requestRecommendations(w http.ResponseWriter, r *http.Request) {
	var payload requestRecommendationsPayload
	if err := decodeBody(r, &payload); err != nil {
		app.badRequest(w, r, "invalid request body")
		return
	}
	app.writeData(w, r, http.StatusOK, app.source.RequestRecommendations(payload.SystemState))
}
