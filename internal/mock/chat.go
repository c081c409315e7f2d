package mock

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/trackside/internal/models"
)

// Desk answers operator chat messages. Conversations are keyed by session id
// and never mixed; replies come from keyword intent detection over the
// source's current fleet.
type Desk struct {
	mu       sync.Mutex
	source   *Source
	sessions map[string][]models.ChatMessage
}

func NewDesk(source *Source) *Desk {
	return &Desk{
		source:   source,
		sessions: map[string][]models.ChatMessage{},
	}
}

// Reply records the user's message under the session and returns the
// assistant's answer. An unknown session id starts a new conversation.
func (d *Desk) Reply(sessionID, message string) []models.ChatMessage {
	now := time.Now().UTC()
	intent, confidence, content := d.answer(message)
	user := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.ChatRoleUser,
		Content:   message,
		Timestamp: now,
	}
	reply := models.ChatMessage{
		ID:         uuid.NewString(),
		Role:       models.ChatRoleAssistant,
		Content:    content,
		Timestamp:  now,
		Intent:     intent,
		Confidence: confidence,
	}

	d.mu.Lock()
	d.sessions[sessionID] = append(d.sessions[sessionID], user, reply)
	d.mu.Unlock()
	return []models.ChatMessage{reply}
}

// History returns the full conversation for a session, oldest first.
func (d *Desk) History(sessionID string) []models.ChatMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.ChatMessage{}, d.sessions[sessionID]...)
}

func (d *Desk) answer(message string) (intent string, confidence float64, content string) {
	lowered := strings.ToLower(message)
	trains := d.source.Trains()

	if train, ok := mentionedTrain(lowered, trains); ok {
		return "train_status", 0.9, fmt.Sprintf(
			"%s (%s to %s) is currently at %s, %s with a delay of %d minutes.",
			train.Number, train.Origin, train.Destination, train.Location, train.Status, train.DelayMinutes)
	}

	switch {
	case strings.Contains(lowered, "delay"):
		worst := trains[0]
		for _, train := range trains[1:] {
			if train.DelayMinutes > worst.DelayMinutes {
				worst = train
			}
		}
		return "delay_overview", 0.8, fmt.Sprintf(
			"The worst delay right now is %s at %d minutes, currently at %s.",
			worst.Number, worst.DelayMinutes, worst.Location)
	case strings.Contains(lowered, "recommend"):
		recs := d.source.Recommendations()
		pending := 0
		for _, rec := range recs {
			if rec.Status == models.RecommendationStatusPending {
				pending++
			}
		}
		return "recommendations", 0.75, fmt.Sprintf(
			"There are %d recommendations open, %d of them pending a decision.", len(recs), pending)
	case strings.Contains(lowered, "kpi") || strings.Contains(lowered, "punctual"):
		report := d.source.KPIReport(false, "")
		return "kpi_summary", 0.75, fmt.Sprintf(
			"Punctuality is at %.1f%% across %d active trains, average delay %.1f minutes.",
			report.Summary.OnTimePercent, report.Summary.ActiveTrains, report.Summary.AvgDelayMinutes)
	case strings.Contains(lowered, "hello"):
		return "greeting", 0.6, "Hello. Ask me about train status, delays, KPIs, or open recommendations."
	default:
		return "unknown", 0.3, "I can help with train status, delays, KPIs, and recommendations. Could you rephrase?"
	}
}

func mentionedTrain(lowered string, trains []models.Train) (models.Train, bool) {
	for _, train := range trains {
		if strings.Contains(lowered, strings.ToLower(train.Number)) {
			return train, true
		}
	}
	return models.Train{}, false
}
