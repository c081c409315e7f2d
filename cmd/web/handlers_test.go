package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/models"
	"github.com/myrjola/trackside/internal/services"
	"github.com/myrjola/trackside/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_trains(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	status, env := srv.Get(t, "/api/trains")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	assert.False(t, env.Timestamp.IsZero())

	trains := unmarshalData[[]models.Train](t, env)
	require.NotEmpty(t, trains)
	for _, train := range trains {
		assert.NotEmpty(t, train.ID)
		assert.NotEmpty(t, train.Number)
		assert.NotEmpty(t, train.Origin)
		assert.NotEmpty(t, train.Destination)
	}
}

func TestAPI_kpis(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	status, env := srv.Get(t, "/api/kpis?includeHistory=true&timeRange=24h")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	report := unmarshalData[models.KPIReport](t, env)
	assert.NotEmpty(t, report.KPIs)
	assert.NotEmpty(t, report.History)
	assert.Positive(t, report.Summary.ActiveTrains)

	status, env = srv.Get(t, "/api/kpis")
	require.Equal(t, http.StatusOK, status)
	report = unmarshalData[models.KPIReport](t, env)
	assert.Empty(t, report.History, "history is opt-in")
}

func TestAPI_requestRecommendationsPrepends(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	_, env := srv.Get(t, "/api/recommendations")
	before := unmarshalData[[]models.Recommendation](t, env)

	status, env := srv.Post(t, "/api/recommendations", map[string]any{
		"systemState": models.SystemState{
			Trains: []models.Train{{ID: "train-7", Number: "7F70", Location: "Swindon", DelayMinutes: 25}},
		},
	})
	require.Equal(t, http.StatusOK, status)
	after := unmarshalData[[]models.Recommendation](t, env)

	require.Len(t, after, len(before)+1)
	assert.Equal(t, "train-7", after[0].TrainID)
	assert.Equal(t, models.RecommendationStatusPending, after[0].Status)
}

func TestAPI_predictions(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	status, env := srv.Post(t, "/api/predictions", map[string]any{
		"trainIds": []string{"train-1", "train-2"},
	})
	require.Equal(t, http.StatusOK, status)
	predictions := unmarshalData[[]models.Prediction](t, env)
	require.Len(t, predictions, 2)
	assert.Equal(t, "train-1", predictions[0].TrainID)
}

func TestAPI_simulate(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	status, env := srv.Post(t, "/api/simulate", models.WhatIfScenario{
		Name:    "hold 1A05 at Reading",
		Changes: []models.ScenarioChange{{TrainID: "train-1", Type: "hold", Value: "4m"}},
	})
	require.Equal(t, http.StatusOK, status)
	result := unmarshalData[models.SimulationResult](t, env)
	assert.NotEmpty(t, result.ScenarioID)
	assert.NotEmpty(t, result.Projected)
	assert.NotEmpty(t, result.TimeSeries)
}

func TestAPI_simulateRejectsUnnamedScenario(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	status, env := srv.Post(t, "/api/simulate", models.WhatIfScenario{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "bad_request", env.Code)
	assert.NotEmpty(t, env.Error)
	assert.False(t, env.Timestamp.IsZero())
}

// TestAPI_auditRoundTrip drives the real client stack against the server:
// an appended entry comes back at the head of an unfiltered list.
func TestAPI_auditRoundTrip(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)
	logger := testhelpers.NewLogger(os.Stderr)
	audit := services.NewAuditService(api.NewClient(srv.URL()+"/api", logger), logger)
	ctx := context.Background()

	posted, err := audit.Append(ctx, models.AuditLog{
		Action:  "accept_recommendation",
		Actor:   "dispatcher",
		TrainID: "train-1",
		Reason:  "Accepted as recommended",
		Outcome: models.AuditOutcomeSuccess,
	})
	require.NoError(t, err)
	require.NotEmpty(t, posted.ID)

	entries, err := audit.List(ctx, models.AuditFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	head := entries[0]
	assert.Equal(t, posted.ID, head.ID)
	assert.Equal(t, "accept_recommendation", head.Action)
	assert.Equal(t, "dispatcher", head.Actor)
	assert.Equal(t, "Accepted as recommended", head.Reason)
	assert.False(t, head.Timestamp.IsZero(), "server assigns the timestamp")
}

func TestAPI_auditFilterByTrain(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	for _, trainID := range []string{"train-1", "train-2", "train-1"} {
		status, _ := srv.Post(t, "/api/audit", models.AuditLog{
			Action:  "run_simulation",
			Actor:   "dispatcher",
			TrainID: trainID,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, env := srv.Get(t, "/api/audit?trainIds=train-1")
	require.Equal(t, http.StatusOK, status)
	entries := unmarshalData[[]models.AuditLog](t, env)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "train-1", entry.TrainID)
	}
}

func TestAPI_auditRejectsAnonymousEntry(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	status, env := srv.Post(t, "/api/audit", models.AuditLog{Action: "accept_recommendation"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
}

func TestAPI_chat(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)
	logger := testhelpers.NewLogger(os.Stderr)
	chat := services.NewChatService(api.NewClient(srv.URL()+"/api", logger), logger)
	ctx := context.Background()

	replies, err := chat.Send(ctx, "session-1", "where is 1A05?")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, models.ChatRoleAssistant, replies[0].Role)
	assert.Contains(t, replies[0].Content, "1A05")

	history, err := chat.History(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ChatRoleUser, history[0].Role)

	other, err := chat.History(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, other, "sessions never share history")
}

func TestAPI_chatRejectsEmptyMessage(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	status, env := srv.Post(t, "/api/chat", map[string]string{"sessionId": "session-1"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "bad_request", env.Code)
}

func TestAPI_unknownPathReturns404(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t, os.Stderr, testLookupEnv)

	resp, err := srv.client.Get(srv.URL() + "/api/nope")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
