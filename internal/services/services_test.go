package services_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/models"
	"github.com/myrjola/trackside/internal/services"
	"github.com/myrjola/trackside/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T, handler http.Handler) (*services.Services, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := api.NewClient(server.URL, testhelpers.NewLogger(io.Discard))
	return services.New(client, testhelpers.NewLogger(io.Discard)), server.Close
}

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"data":      data,
		"success":   true,
		"timestamp": time.Now().UTC(),
	})
	require.NoError(t, err)
}

func failingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false, "error": "backend down", "timestamp": time.Now().UTC(),
		})
	})
}

func TestTrainService_List(t *testing.T) {
	svcs, closeServer := newServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/trains", r.URL.Path)
		writeData(t, w, []models.Train{{ID: "train-1", Number: "1A05"}})
	}))
	defer closeServer()

	trains, err := svcs.Trains.List(context.Background())
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, "1A05", trains[0].Number)
}

func TestTrainService_List_failsSoft(t *testing.T) {
	svcs, closeServer := newServices(t, failingHandler())
	defer closeServer()

	trains, err := svcs.Trains.List(context.Background())
	require.Error(t, err)
	// The default value stays usable even when the call degrades.
	assert.NotNil(t, trains)
	assert.Empty(t, trains)
}

func TestKPIService_Report_queryParameters(t *testing.T) {
	svcs, closeServer := newServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/kpis", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeHistory"))
		assert.Equal(t, "24h", r.URL.Query().Get("timeRange"))
		writeData(t, w, models.KPIReport{
			KPIs:    []models.KPI{{Name: "Punctuality", Value: 91.5, Status: models.KPIStatusGood}},
			Summary: models.KPISummary{ActiveTrains: 12},
		})
	}))
	defer closeServer()

	report, err := svcs.KPIs.Report(context.Background(), true, "24h")
	require.NoError(t, err)
	require.Len(t, report.KPIs, 1)
	assert.Equal(t, "Punctuality", report.KPIs[0].Name)
	assert.Equal(t, 12, report.Summary.ActiveTrains)
}

func TestPredictionService_ForTrains_postsTrainIDs(t *testing.T) {
	svcs, closeServer := newServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body struct {
			TrainIDs []string `json:"trainIds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"train-1", "train-2"}, body.TrainIDs)
		writeData(t, w, []models.Prediction{{TrainID: "train-1", PredictedDelayMinutes: 4.2}})
	}))
	defer closeServer()

	predictions, err := svcs.Predictions.ForTrains(context.Background(), []string{"train-1", "train-2"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
}

func TestAuditService_Append_failsHard(t *testing.T) {
	svcs, closeServer := newServices(t, failingHandler())
	defer closeServer()

	_, err := svcs.Audit.Append(context.Background(), models.AuditLog{Action: "accept_recommendation"})
	require.Error(t, err)
}

func TestAuditService_Append_takesServerID(t *testing.T) {
	svcs, closeServer := newServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/audit", r.URL.Path)
		writeData(t, w, map[string]string{"id": "audit-42"})
	}))
	defer closeServer()

	entry, err := svcs.Audit.Append(context.Background(), models.AuditLog{
		Action: "reject_recommendation",
		Actor:  "dispatcher",
		Reason: "Safety concern",
	})
	require.NoError(t, err)
	assert.Equal(t, "audit-42", entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.Equal(t, "Safety concern", entry.Reason)
}

func TestChatService_Send_failsSoftWithEmptyReplies(t *testing.T) {
	svcs, closeServer := newServices(t, failingHandler())
	defer closeServer()

	replies, err := svcs.Chat.Send(context.Background(), "sess-1", "why is 1A05 late?")
	require.Error(t, err)
	assert.NotNil(t, replies)
	assert.Empty(t, replies)
}

func TestSimulationService_Run_zeroResultOnFailure(t *testing.T) {
	svcs, closeServer := newServices(t, failingHandler())
	defer closeServer()

	result, err := svcs.Simulations.Run(context.Background(), models.WhatIfScenario{Name: "hold 1A05"})
	require.Error(t, err)
	assert.Empty(t, result.ScenarioID)
}
