package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/trackside/internal/models"
)

const assistantUnavailableMessage = "Sorry, the assistant is unavailable right now. Please try again."

// CreateChatSession inserts a fresh empty session and returns its id
// synchronously. Chat sessions are never persisted across restarts.
func (s *Store) CreateChatSession() string {
	id := uuid.NewString()
	now := time.Now().UTC()

	s.mu.Lock()
	s.state.ChatSessions[id] = models.ChatSession{
		ID:           id,
		Messages:     []models.ChatMessage{},
		CreatedAt:    now,
		LastActiveAt: now,
	}
	s.mu.Unlock()
	s.publish(CollectionChatSessions)
	return id
}

// SendChatMessage appends the user's message to the session and asks the
// assistant for replies. The append is two-phase: phase 1 commits the user
// message locally before any network round trip; phase 2 commits the
// assistant replies once the adapter settles. Both phases are idempotent by
// message id. A missing session is created and kept, matching
// CreateChatSession's contract. Adapter failure degrades to a single
// synthetic assistant message and never touches the store-wide error.
func (s *Store) SendChatMessage(ctx context.Context, sessionID, text string) []models.ChatMessage {
	now := time.Now().UTC()
	userMessage := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.ChatRoleUser,
		Content:   text,
		Timestamp: now,
	}

	// Phase 1: local commit.
	s.mu.Lock()
	session, ok := s.state.ChatSessions[sessionID]
	if !ok {
		session = models.ChatSession{
			ID:        sessionID,
			Messages:  []models.ChatMessage{},
			CreatedAt: now,
		}
	}
	session = appendMessages(session, now, userMessage)
	s.state.ChatSessions[sessionID] = session
	s.mu.Unlock()
	s.publish(CollectionChatSessions)

	replies, err := s.deps.Chat.Send(ctx, sessionID, text)
	if err != nil || len(replies) == 0 {
		replies = []models.ChatMessage{{
			ID:        uuid.NewString(),
			Role:      models.ChatRoleAssistant,
			Content:   assistantUnavailableMessage,
			Timestamp: time.Now().UTC(),
		}}
	}

	// Phase 2: remote-confirmed commit, scoped strictly to sessionID.
	s.mu.Lock()
	session = s.state.ChatSessions[sessionID]
	session = appendMessages(session, time.Now().UTC(), replies...)
	s.state.ChatSessions[sessionID] = session
	s.mu.Unlock()
	s.publish(CollectionChatSessions)

	return replies
}

// appendMessages appends messages not yet present in the session, preserving
// insertion order, and bumps the last-active timestamp.
func appendMessages(session models.ChatSession, now time.Time, messages ...models.ChatMessage) models.ChatSession {
	existing := make(map[string]struct{}, len(session.Messages))
	for _, message := range session.Messages {
		existing[message.ID] = struct{}{}
	}
	combined := slices.Clone(session.Messages)
	for _, message := range messages {
		if _, ok := existing[message.ID]; ok {
			continue
		}
		if message.ID == "" {
			message.ID = uuid.NewString()
		}
		combined = append(combined, message)
	}
	session.Messages = combined
	session.LastActiveAt = now
	return session
}
