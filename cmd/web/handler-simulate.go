package main

import (
	"net/http"

	"github.com/myrjola/trackside/internal/models"
)

func (app *application) simulate(w http.ResponseWriter, r *http.Request) {
	var scenario models.WhatIfScenario
	if err := decodeBody(r, &scenario); err != nil {
		app.badRequest(w, r, "invalid request body")
		return
	}
	if scenario.Name == "" {
		app.badRequest(w, r, "scenario name is required")
		return
	}
	app.writeData(w, r, http.StatusOK, app.source.Simulate(scenario))
}
