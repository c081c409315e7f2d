package main

import "net/http"

type chatPayload struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

func (app *application) sendChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := decodeBody(r, &payload); err != nil {
		app.badRequest(w, r, "invalid request body")
		return
	}
	if payload.SessionID == "" || payload.Message == "" {
		app.badRequest(w, r, "sessionId and message are required")
		return
	}
	app.writeData(w, r, http.StatusOK, app.desk.Reply(payload.SessionID, payload.Message))
}

func (app *application) chatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		app.badRequest(w, r, "sessionId is required")
		return
	}
	app.writeData(w, r, http.StatusOK, app.desk.History(sessionID))
}
