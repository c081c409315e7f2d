package models

import "time"

type RecommendationStatus string

const (
	RecommendationStatusPending  RecommendationStatus = "pending"
	RecommendationStatusAccepted RecommendationStatus = "accepted"
	RecommendationStatusRejected RecommendationStatus = "rejected"
	RecommendationStatusExpired  RecommendationStatus = "expired"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// KPIImpact maps a KPI name to the expected delta from taking an action.
type KPIImpact map[string]float64

// Alternative is a pre-computed substitute action attached to a
// recommendation. It is immutable once attached; selecting one during an
// override replaces the parent recommendation's action text.
type Alternative struct {
	ID     string    `json:"id"`
	Action string    `json:"action"`
	Impact KPIImpact `json:"impact"`
}

// Recommendation is a proposed operational action. Its lifecycle is one-way:
// pending moves to accepted, rejected, or expired and never back.
type Recommendation struct {
	ID           string               `json:"id"`
	TrainID      string               `json:"trainId,omitempty"`
	Action       string               `json:"action"`
	Rationale    string               `json:"rationale"`
	Confidence   float64              `json:"confidence"`
	Impact       KPIImpact            `json:"impact"`
	Alternatives []Alternative        `json:"alternatives"`
	Status       RecommendationStatus `json:"status"`
	Priority     Priority             `json:"priority"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// AlternativeByID returns the alternative with the given id.
func (r Recommendation) AlternativeByID(id string) (Alternative, bool) {
	for _, alt := range r.Alternatives {
		if alt.ID == id {
			return alt, true
		}
	}
	return Alternative{}, false
}
