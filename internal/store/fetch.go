package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

// Fixed user-facing messages for fetch failures. The view renders Err
// verbatim, so these stay free of technical detail.
const (
	msgTrainsFailed          = "Failed to load train positions"
	msgRecommendationsFailed = "Failed to load recommendations"
	msgPredictionsFailed     = "Failed to load delay predictions"
	msgKPIsFailed            = "Failed to load KPI data"
	msgAuditFailed           = "Failed to load audit log"
)

// beginFetch marks a fetch in flight and issues a new generation for the
// collection. Only the latest generation's settlement commits; stale
// responses are discarded instead of racing last-settled-wins.
func (s *Store) beginFetch(c Collection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[c]++
	s.state.Loading = true
	s.state.Err = ""
	return s.gens[c]
}

// settleFetch applies the outcome of a fetch if its generation is still
// current. Returns whether the settlement was applied.
func (s *Store) settleFetch(c Collection, gen uint64, failureMsg string, callErr error, commit func(st *State)) bool {
	s.mu.Lock()
	if gen != s.gens[c] {
		s.mu.Unlock()
		s.logger.Debug("discarding stale fetch settlement", "collection", string(c), "generation", gen)
		return false
	}
	s.state.Loading = false
	if callErr != nil {
		s.state.Err = failureMsg
	} else {
		commit(&s.state)
		s.state.LastUpdated[c] = time.Now().UTC()
	}
	s.mu.Unlock()
	s.publish(c)
	return true
}

// FetchTrains replaces the train collection.
func (s *Store) FetchTrains(ctx context.Context) error {
	gen := s.beginFetch(CollectionTrains)
	trains, err := s.deps.Trains.List(ctx)
	applied := s.settleFetch(CollectionTrains, gen, msgTrainsFailed, err, func(st *State) {
		st.Trains = trains
	})
	if err != nil {
		return errors.Wrap(err, "fetch trains")
	}
	if applied {
		s.persist(ctx)
	}
	return nil
}

// FetchRecommendations replaces the recommendation collection.
func (s *Store) FetchRecommendations(ctx context.Context) error {
	gen := s.beginFetch(CollectionRecommendations)
	recommendations, err := s.deps.Recommendations.List(ctx)
	applied := s.settleFetch(CollectionRecommendations, gen, msgRecommendationsFailed, err, func(st *State) {
		st.Recommendations = recommendations
	})
	if err != nil {
		return errors.Wrap(err, "fetch recommendations")
	}
	if applied {
		s.persist(ctx)
	}
	return nil
}

// RequestRecommendations posts the current system state to the optimizer and
// replaces the recommendation collection with the refreshed list.
func (s *Store) RequestRecommendations(ctx context.Context) error {
	s.mu.Lock()
	systemState := models.SystemState{
		Trains: s.state.Trains,
		KPIs:   s.state.KPIs,
	}
	s.mu.Unlock()

	gen := s.beginFetch(CollectionRecommendations)
	recommendations, err := s.deps.Recommendations.Request(ctx, systemState)
	applied := s.settleFetch(CollectionRecommendations, gen, msgRecommendationsFailed, err, func(st *State) {
		st.Recommendations = recommendations
	})
	if err != nil {
		return errors.Wrap(err, "request recommendations")
	}
	if applied {
		s.persist(ctx)
	}
	return nil
}

// FetchPredictions replaces the prediction collection with forecasts for the
// currently known trains.
func (s *Store) FetchPredictions(ctx context.Context) error {
	s.mu.Lock()
	trainIDs := make([]string, len(s.state.Trains))
	for i, train := range s.state.Trains {
		trainIDs[i] = train.ID
	}
	s.mu.Unlock()

	gen := s.beginFetch(CollectionPredictions)
	predictions, err := s.deps.Predictions.ForTrains(ctx, trainIDs)
	applied := s.settleFetch(CollectionPredictions, gen, msgPredictionsFailed, err, func(st *State) {
		st.Predictions = predictions
	})
	if err != nil {
		return errors.Wrap(err, "fetch predictions")
	}
	if applied {
		s.persist(ctx)
	}
	return nil
}

// FetchKPIs replaces the KPI collection, summary, and optional history using
// the store's current time-range filter.
func (s *Store) FetchKPIs(ctx context.Context, includeHistory bool) error {
	s.mu.Lock()
	timeRange := s.state.TimeRange
	s.mu.Unlock()

	gen := s.beginFetch(CollectionKPIs)
	report, err := s.deps.KPIs.Report(ctx, includeHistory, timeRange)
	applied := s.settleFetch(CollectionKPIs, gen, msgKPIsFailed, err, func(st *State) {
		st.KPIs = report.KPIs
		st.KPISummary = report.Summary
		st.KPIHistory = report.History
	})
	if err != nil {
		return errors.Wrap(err, "fetch kpis")
	}
	if applied {
		s.persist(ctx)
	}
	return nil
}

// FetchAuditLogs replaces the audit log collection. Audit logs are not part
// of the persisted subset, so no snapshot write happens here.
func (s *Store) FetchAuditLogs(ctx context.Context, filter models.AuditFilter) error {
	gen := s.beginFetch(CollectionAuditLogs)
	entries, err := s.deps.Audit.List(ctx, filter)
	s.settleFetch(CollectionAuditLogs, gen, msgAuditFailed, err, func(st *State) {
		st.AuditLogs = entries
	})
	if err != nil {
		return errors.Wrap(err, "fetch audit logs", slog.Int("trainIdFilters", len(filter.TrainIDs)))
	}
	return nil
}
