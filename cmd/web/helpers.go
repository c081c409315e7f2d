package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/trackside/internal/errors"
)

type successEnvelope struct {
	Data      any       `json:"data"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type failureEnvelope struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (app *application) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.WriteHeader(status)
	payload := successEnvelope{
		Data:      data,
		Success:   true,
		Timestamp: time.Now().UTC(),
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response",
			slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
	}
}

func (app *application) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.WriteHeader(status)
	payload := failureEnvelope{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode error response",
			slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", r.Method), slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
	app.writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Debug("bad request", "method", r.Method, "uri", r.URL.RequestURI(), "message", message)
	app.writeError(w, r, http.StatusBadRequest, "bad_request", message)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}
