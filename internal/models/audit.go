package models

import "time"

type AuditOutcome string

const (
	AuditOutcomeSuccess AuditOutcome = "success"
	AuditOutcomeFailure AuditOutcome = "failure"
	AuditOutcomePartial AuditOutcome = "partial"
)

// AuditLog is an immutable record of a decision or system action. The server
// assigns ID and Timestamp on append; neither changes afterwards. New entries
// are prepended to collections, never edited or removed.
type AuditLog struct {
	ID               string       `json:"id"`
	Timestamp        time.Time    `json:"timestamp"`
	Action           string       `json:"action"`
	Actor            string       `json:"actor"`
	TrainID          string       `json:"trainId,omitempty"`
	RecommendationID string       `json:"recommendationId,omitempty"`
	Reason           string       `json:"reason,omitempty"`
	Details          string       `json:"details,omitempty"`
	Outcome          AuditOutcome `json:"outcome"`
}

// AuditFilter narrows GET /audit queries. Zero values mean no filtering.
type AuditFilter struct {
	StartDate time.Time
	EndDate   time.Time
	TrainIDs  []string
}
