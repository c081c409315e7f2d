package models

import "time"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type KPIStatus string

const (
	KPIStatusGood     KPIStatus = "good"
	KPIStatusWarning  KPIStatus = "warning"
	KPIStatusCritical KPIStatus = "critical"
)

// KPI is a named metric. The name acts as the natural key within a
// collection; collections are replaced wholesale on fetch.
type KPI struct {
	Name          string    `json:"name"`
	Value         float64   `json:"value"`
	Unit          string    `json:"unit,omitempty"`
	Target        *float64  `json:"target,omitempty"`
	Trend         Trend     `json:"trend"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Status        KPIStatus `json:"status"`
}

// KPISummary aggregates the headline numbers shown at the top of the dashboard.
type KPISummary struct {
	OnTimePercent   float64 `json:"onTimePercent"`
	AvgDelayMinutes float64 `json:"avgDelayMinutes"`
	ActiveTrains    int     `json:"activeTrains"`
	CriticalCount   int     `json:"criticalCount"`
}

// KPISample is one point of KPI history.
type KPISample struct {
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// KPIReport is the response shape of GET /kpis.
type KPIReport struct {
	KPIs    []KPI       `json:"kpis"`
	Summary KPISummary  `json:"summary"`
	History []KPISample `json:"history,omitempty"`
}
