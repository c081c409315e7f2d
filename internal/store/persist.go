package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

// PersistedState is the serialization boundary between the store and durable
// storage. The exclusion list is declarative: chat sessions (privacy) and
// audit logs (freshness) have no field here and therefore can never leak
// into a snapshot.
type PersistedState struct {
	Trains          []models.Train           `json:"trains"`
	Recommendations []models.Recommendation  `json:"recommendations"`
	Predictions     []models.Prediction      `json:"predictions"`
	KPIs            []models.KPI             `json:"kpis"`
	KPISummary      models.KPISummary        `json:"kpiSummary"`
	KPIHistory      []models.KPISample       `json:"kpiHistory,omitempty"`
	SelectedTrainID string                   `json:"selectedTrainId,omitempty"`
	TimeRange       string                   `json:"timeRange,omitempty"`
	LastUpdated     map[Collection]time.Time `json:"lastUpdated"`
}

// Snapshot projects the persisted subset out of a state.
func Snapshot(state State) PersistedState {
	return PersistedState{
		Trains:          state.Trains,
		Recommendations: state.Recommendations,
		Predictions:     state.Predictions,
		KPIs:            state.KPIs,
		KPISummary:      state.KPISummary,
		KPIHistory:      state.KPIHistory,
		SelectedTrainID: state.SelectedTrainID,
		TimeRange:       state.TimeRange,
		LastUpdated:     state.LastUpdated,
	}
}

// FromSnapshot rebuilds a state from a persisted snapshot. Excluded
// collections start empty.
func FromSnapshot(persisted PersistedState) State {
	state := State{
		Trains:          persisted.Trains,
		Recommendations: persisted.Recommendations,
		Predictions:     persisted.Predictions,
		KPIs:            persisted.KPIs,
		KPISummary:      persisted.KPISummary,
		KPIHistory:      persisted.KPIHistory,
		AuditLogs:       []models.AuditLog{},
		ChatSessions:    map[string]models.ChatSession{},
		SelectedTrainID: persisted.SelectedTrainID,
		TimeRange:       persisted.TimeRange,
		LastUpdated:     persisted.LastUpdated,
	}
	if state.Trains == nil {
		state.Trains = []models.Train{}
	}
	if state.Recommendations == nil {
		state.Recommendations = []models.Recommendation{}
	}
	if state.Predictions == nil {
		state.Predictions = []models.Prediction{}
	}
	if state.KPIs == nil {
		state.KPIs = []models.KPI{}
	}
	if state.LastUpdated == nil {
		state.LastUpdated = map[Collection]time.Time{}
	}
	if state.TimeRange == "" {
		state.TimeRange = "24h"
	}
	return state
}

// persist saves the persisted subset after a committing action. Failures are
// logged and never fail the action; the snapshot is a convenience, not a
// source of truth. The write survives caller cancellation so a completed
// commit always reaches disk.
func (s *Store) persist(ctx context.Context) {
	if s.deps.Persister == nil {
		return
	}
	s.mu.Lock()
	snapshot := Snapshot(s.state.clone())
	s.mu.Unlock()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "marshal snapshot", errors.SlogError(err))
		return
	}
	if err = s.deps.Persister.Save(context.WithoutCancel(ctx), payload); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "save snapshot", errors.SlogError(err))
	}
}

// Hydrate loads the persisted snapshot into the store. Call once on startup
// before issuing actions. A missing snapshot leaves the store empty.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.deps.Persister == nil {
		return nil
	}
	payload, ok, err := s.deps.Persister.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load snapshot")
	}
	if !ok {
		return nil
	}
	var persisted PersistedState
	if err = json.Unmarshal(payload, &persisted); err != nil {
		return errors.Wrap(err, "unmarshal snapshot")
	}

	state := FromSnapshot(persisted)
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.publish(CollectionTrains, CollectionRecommendations, CollectionPredictions, CollectionKPIs)
	return nil
}
