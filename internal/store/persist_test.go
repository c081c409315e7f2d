package store_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/myrjola/trackside/internal/models"
	"github.com/myrjola/trackside/internal/store"
	"github.com/myrjola/trackside/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryPersister keeps the latest snapshot in memory.
type memoryPersister struct {
	mu      sync.Mutex
	payload []byte
}

func (p *memoryPersister) Save(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payload = append([]byte{}, payload...)
	return nil
}

func (p *memoryPersister) Load(_ context.Context) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.payload == nil {
		return nil, false, nil
	}
	return append([]byte{}, p.payload...), true, nil
}

func newPersistingStore(t *testing.T, persister *memoryPersister) (*store.Store, *testDeps) {
	t.Helper()
	_, deps := newTestStore(t)
	s := store.New(store.Dependencies{
		Trains:          deps.trains,
		Recommendations: deps.recommendations,
		Predictions:     deps.predictions,
		KPIs:            deps.kpis,
		Simulations:     deps.simulations,
		Audit:           deps.audit,
		Chat:            deps.chat,
		Persister:       persister,
		Logger:          testhelpers.NewLogger(io.Discard),
	})
	return s, deps
}

func TestStore_snapshotExcludesChatAndAudit(t *testing.T) {
	persister := &memoryPersister{}
	s, deps := newPersistingStore(t, persister)
	deps.trains.payload = []models.Train{{ID: "train-1", Number: "1A05"}}
	seedRecommendation(t, s, deps, pendingRecommendation())

	require.NoError(t, s.FetchTrains(context.Background()))
	require.NoError(t, s.AcceptRecommendation(context.Background(), "rec-001"))
	sessionID := s.CreateChatSession()
	s.SendChatMessage(context.Background(), sessionID, "hello")

	require.NotNil(t, persister.payload, "committing actions write a snapshot")
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(persister.payload, &raw))
	assert.Contains(t, raw, "trains")
	assert.Contains(t, raw, "recommendations")
	assert.NotContains(t, raw, "chatSessions")
	assert.NotContains(t, raw, "auditLogs")
}

func TestStore_hydrateRestoresPersistedSubset(t *testing.T) {
	persister := &memoryPersister{}
	s, deps := newPersistingStore(t, persister)
	deps.trains.payload = []models.Train{{ID: "train-1", Number: "1A05", Status: models.TrainStatusDelayed}}
	seedRecommendation(t, s, deps, pendingRecommendation())
	require.NoError(t, s.FetchTrains(context.Background()))
	require.NoError(t, s.AcceptRecommendation(context.Background(), "rec-001"))
	s.SelectTrain(context.Background(), "train-1")

	restarted, _ := newPersistingStore(t, persister)
	require.NoError(t, restarted.Hydrate(context.Background()))

	state := restarted.State()
	require.Len(t, state.Trains, 1)
	assert.Equal(t, "1A05", state.Trains[0].Number)
	require.Len(t, state.Recommendations, 1)
	assert.Equal(t, models.RecommendationStatusAccepted, state.Recommendations[0].Status)
	assert.Equal(t, "train-1", state.SelectedTrainID)
	assert.Empty(t, state.AuditLogs, "audit history is re-fetched, never restored")
	assert.Empty(t, state.ChatSessions, "chat sessions never survive a restart")
}

func TestStore_hydrateWithoutSnapshotLeavesDefaults(t *testing.T) {
	s, _ := newPersistingStore(t, &memoryPersister{})
	require.NoError(t, s.Hydrate(context.Background()))

	state := s.State()
	assert.Empty(t, state.Trains)
	assert.Equal(t, "24h", state.TimeRange)
}

func TestStore_fromSnapshotDefaultsNilCollections(t *testing.T) {
	state := store.FromSnapshot(store.PersistedState{})
	assert.NotNil(t, state.Trains)
	assert.NotNil(t, state.Recommendations)
	assert.NotNil(t, state.Predictions)
	assert.NotNil(t, state.KPIs)
	assert.NotNil(t, state.ChatSessions)
	assert.Equal(t, "24h", state.TimeRange)
}
