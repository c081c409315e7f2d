package models

// ScenarioChange is one hypothetical intervention in a what-if scenario.
type ScenarioChange struct {
	TrainID string `json:"trainId"`
	Type    string `json:"type"` // hold, reroute, cancel, priority
	Value   string `json:"value,omitempty"`
}

// WhatIfScenario is the payload of POST /simulate.
type WhatIfScenario struct {
	Name    string           `json:"name"`
	Changes []ScenarioChange `json:"changes"`
}

// SimulationResult is produced once per simulation invocation. It is returned
// to the caller and logged via one audit entry but never stored as a named
// collection.
type SimulationResult struct {
	ScenarioID      string             `json:"scenarioId"`
	Projected       map[string]float64 `json:"projected"`
	Baseline        map[string]float64 `json:"baseline,omitempty"`
	TimeSeries      []KPISample        `json:"timeSeries,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// SystemState is the snapshot posted to the optimizer when requesting fresh
// recommendations.
type SystemState struct {
	Trains []Train `json:"trains"`
	KPIs   []KPI   `json:"kpis,omitempty"`
}
