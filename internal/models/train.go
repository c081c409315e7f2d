package models

import "time"

type TrainStatus string

const (
	TrainStatusOnTime     TrainStatus = "on-time"
	TrainStatusDelayed    TrainStatus = "delayed"
	TrainStatusStopped    TrainStatus = "stopped"
	TrainStatusAtPlatform TrainStatus = "at-platform"
)

// Train is a single service as seen by the operations dashboard. Trains are
// replaced wholesale on every fetch; there is no partial-field merge.
type Train struct {
	ID                 string      `json:"id"`
	Number             string      `json:"number"`
	Origin             string      `json:"origin"`
	Destination        string      `json:"destination"`
	ScheduledDeparture time.Time   `json:"scheduledDeparture"`
	ScheduledArrival   time.Time   `json:"scheduledArrival"`
	ActualDeparture    *time.Time  `json:"actualDeparture,omitempty"`
	EstimatedArrival   *time.Time  `json:"estimatedArrival,omitempty"`
	DelayMinutes       int         `json:"delayMinutes"`
	Status             TrainStatus `json:"status"`
	Location           string      `json:"location"`
	Capacity           int         `json:"capacity"`
	PassengerCount     int         `json:"passengerCount"`
}
