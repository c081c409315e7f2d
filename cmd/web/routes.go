package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	api := alice.New(jsonHeaders)

	mux.Handle("GET /api/trains", api.ThenFunc(app.listTrains))
	mux.Handle("GET /api/recommendations", api.ThenFunc(app.listRecommendations))
	mux.Handle("POST /api/recommendations", api.ThenFunc(app.requestRecommendations))
	mux.Handle("GET /api/kpis", api.ThenFunc(app.kpiReport))
	mux.Handle("POST /api/predictions", api.ThenFunc(app.predictDelays))
	mux.Handle("POST /api/simulate", api.ThenFunc(app.simulate))
	mux.Handle("GET /api/audit", api.ThenFunc(app.listAudit))
	mux.Handle("POST /api/audit", api.ThenFunc(app.appendAudit))
	mux.Handle("GET /api/chat", api.ThenFunc(app.chatHistory))
	mux.Handle("POST /api/chat", api.ThenFunc(app.sendChat))
	mux.Handle("GET /api/healthy", api.ThenFunc(app.healthy))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
