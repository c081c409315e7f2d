// Package store implements the application state container for the Trackside
// dashboard. The store owns every entity collection; views read State() and
// mutate only through actions. Network calls run outside the lock and every
// commit is a single critical section, so readers never observe a
// half-applied update.
package store

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/myrjola/trackside/internal/broker"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

// ErrNotFound is returned when an action references a recommendation or
// alternative id absent from current state. It fires before any network call.
var ErrNotFound = errors.NewSentinel("not found")

// ErrAlreadyDecided is returned when a decision action targets a
// recommendation that already left the pending state. Transitions are
// one-way.
var ErrAlreadyDecided = errors.NewSentinel("recommendation already decided")

// Collection names the store's entity collections. Used for update stamps,
// fetch generations, and change notifications.
type Collection string

const (
	CollectionTrains          Collection = "trains"
	CollectionRecommendations Collection = "recommendations"
	CollectionPredictions     Collection = "predictions"
	CollectionKPIs            Collection = "kpis"
	CollectionAuditLogs       Collection = "auditLogs"
	CollectionChatSessions    Collection = "chatSessions"
)

// State is the complete dashboard state. Collections are replaced wholesale
// by fetch actions; Err holds the most recent user-facing failure message and
// is cleared when the next action starts.
type State struct {
	Trains          []models.Train
	Recommendations []models.Recommendation
	Predictions     []models.Prediction
	KPIs            []models.KPI
	KPISummary      models.KPISummary
	KPIHistory      []models.KPISample
	AuditLogs       []models.AuditLog
	ChatSessions    map[string]models.ChatSession
	SelectedTrainID string
	TimeRange       string
	Loading         bool
	Err             string
	LastUpdated     map[Collection]time.Time
}

func (st State) clone() State {
	clone := st
	clone.Trains = slices.Clone(st.Trains)
	clone.Recommendations = slices.Clone(st.Recommendations)
	clone.Predictions = slices.Clone(st.Predictions)
	clone.KPIs = slices.Clone(st.KPIs)
	clone.KPIHistory = slices.Clone(st.KPIHistory)
	clone.AuditLogs = slices.Clone(st.AuditLogs)
	clone.ChatSessions = make(map[string]models.ChatSession, len(st.ChatSessions))
	for id, session := range st.ChatSessions {
		session.Messages = slices.Clone(session.Messages)
		clone.ChatSessions[id] = session
	}
	clone.LastUpdated = maps.Clone(st.LastUpdated)
	return clone
}

// TrainLister fetches the current fleet.
type TrainLister interface {
	List(ctx context.Context) ([]models.Train, error)
}

// RecommendationFetcher lists recommendations and requests fresh ones from
// the optimizer.
type RecommendationFetcher interface {
	List(ctx context.Context) ([]models.Recommendation, error)
	Request(ctx context.Context, state models.SystemState) ([]models.Recommendation, error)
}

// PredictionFetcher fetches delay forecasts for train ids.
type PredictionFetcher interface {
	ForTrains(ctx context.Context, trainIDs []string) ([]models.Prediction, error)
}

// KPIFetcher fetches the KPI report.
type KPIFetcher interface {
	Report(ctx context.Context, includeHistory bool, timeRange string) (models.KPIReport, error)
}

// SimulationRunner evaluates a what-if scenario.
type SimulationRunner interface {
	Run(ctx context.Context, scenario models.WhatIfScenario) (models.SimulationResult, error)
}

// AuditJournal appends and lists audit entries. Append failures gate
// decision actions.
type AuditJournal interface {
	Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error)
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

// ChatSender posts a user message and returns the assistant's replies.
type ChatSender interface {
	Send(ctx context.Context, sessionID, message string) ([]models.ChatMessage, error)
}

// Persister stores the serialized persisted-state subset across restarts.
type Persister interface {
	Save(ctx context.Context, payload []byte) error
	Load(ctx context.Context) ([]byte, bool, error)
}

// Dependencies wires the domain adapters and supporting infrastructure into
// the store. Persister may be nil for a purely in-memory store.
type Dependencies struct {
	Trains          TrainLister
	Recommendations RecommendationFetcher
	Predictions     PredictionFetcher
	KPIs            KPIFetcher
	Simulations     SimulationRunner
	Audit           AuditJournal
	Chat            ChatSender
	Persister       Persister
	Logger          *slog.Logger
	// Actor is recorded on every audit entry the store writes.
	Actor string
}

// Store is an explicit state container passed by reference to whatever owns
// the UI tree. There is no package-level singleton.
type Store struct {
	mu      sync.Mutex
	state   State
	gens    map[Collection]uint64
	deps    Dependencies
	logger  *slog.Logger
	changes *broker.Fanout[Collection]
}

// New creates a store with empty collections.
func New(deps Dependencies) *Store {
	if deps.Actor == "" {
		deps.Actor = "dispatcher"
	}
	return &Store{
		state: State{
			Trains:          []models.Train{},
			Recommendations: []models.Recommendation{},
			Predictions:     []models.Prediction{},
			KPIs:            []models.KPI{},
			AuditLogs:       []models.AuditLog{},
			ChatSessions:    map[string]models.ChatSession{},
			TimeRange:       "24h",
			LastUpdated:     map[Collection]time.Time{},
		},
		gens:    map[Collection]uint64{},
		deps:    deps,
		logger:  deps.Logger.With("source", "Store"),
		changes: broker.NewFanout[Collection](),
	}
}

// State returns a defensive copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Watch subscribes to change notifications. Each received value names the
// collection that changed; subscribers re-read State() on wake-up. The
// returned cancel function releases the subscription.
func (s *Store) Watch() (<-chan Collection, func()) {
	return s.changes.Subscribe()
}

// SelectTrain records the operator's train selection.
func (s *Store) SelectTrain(ctx context.Context, id string) {
	s.mu.Lock()
	s.state.SelectedTrainID = id
	s.mu.Unlock()
	s.persist(ctx)
}

// SetTimeRange records the KPI time-range filter, e.g. "24h" or "7d".
func (s *Store) SetTimeRange(ctx context.Context, timeRange string) {
	s.mu.Lock()
	s.state.TimeRange = timeRange
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *Store) publish(collections ...Collection) {
	for _, c := range collections {
		s.changes.Publish(c)
	}
}
