// Package mock generates the synthetic operations data served by the mock
// API. The source holds a fixed fleet whose delays, locations, and passenger
// counts drift a little on every read so the dashboard looks alive without a
// real feed behind it.
package mock

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/trackside/internal/models"
)

type service struct {
	train models.Train
	route []string
	stop  int
}

// Source produces jittered fleet data, KPI reports derived from the fleet,
// recommendations, predictions, and simulation results. Safe for concurrent
// use.
type Source struct {
	mu              sync.Mutex
	rand            *rand.Rand
	fleet           []service
	recommendations []models.Recommendation
}

// NewSource seeds a source with the standard fleet. The same seed yields the
// same drift sequence, which keeps tests deterministic.
func NewSource(seed uint64) *Source {
	s := &Source{
		rand: rand.New(rand.NewPCG(seed, seed)),
	}
	s.fleet = baseFleet(time.Now().UTC())
	s.recommendations = baseRecommendations(time.Now().UTC())
	return s
}

func baseFleet(now time.Time) []service {
	departure := func(offset time.Duration) time.Time { return now.Add(offset).Truncate(time.Minute) }
	build := func(id, number, origin, destination string, depart time.Duration, journey time.Duration, delay int, capacity, passengers int, route ...string) service {
		dep := departure(depart)
		arr := dep.Add(journey)
		status := models.TrainStatusOnTime
		if delay > 0 {
			status = models.TrainStatusDelayed
		}
		return service{
			train: models.Train{
				ID:                 id,
				Number:             number,
				Origin:             origin,
				Destination:        destination,
				ScheduledDeparture: dep,
				ScheduledArrival:   arr,
				DelayMinutes:       delay,
				Status:             status,
				Location:           route[0],
				Capacity:           capacity,
				PassengerCount:     passengers,
			},
			route: route,
		}
	}
	return []service{
		build("train-1", "1A05", "London Paddington", "Bristol Temple Meads", -40*time.Minute, 100*time.Minute, 7, 500, 412,
			"Reading", "Didcot Parkway", "Swindon", "Chippenham", "Bath Spa", "Bristol Temple Meads"),
		build("train-2", "1C12", "London Paddington", "Cardiff Central", -25*time.Minute, 125*time.Minute, 0, 480, 301,
			"Slough", "Reading", "Swindon", "Bristol Parkway", "Newport", "Cardiff Central"),
		build("train-3", "2C17", "Reading", "Gatwick Airport", -10*time.Minute, 80*time.Minute, 3, 240, 188,
			"Wokingham", "Guildford", "Dorking", "Reigate", "Gatwick Airport"),
		build("train-4", "1G44", "Oxford", "London Paddington", -55*time.Minute, 60*time.Minute, 12, 380, 355,
			"Radley", "Didcot Parkway", "Reading", "Slough", "London Paddington"),
		build("train-5", "1B33", "Swansea", "London Paddington", -90*time.Minute, 170*time.Minute, 0, 480, 264,
			"Neath", "Port Talbot Parkway", "Cardiff Central", "Newport", "Bristol Parkway", "Swindon", "Reading", "London Paddington"),
		build("train-6", "2L58", "Bristol Temple Meads", "Severn Beach", -5*time.Minute, 40*time.Minute, 0, 150, 74,
			"Lawrence Hill", "Stapleton Road", "Clifton Down", "Avonmouth", "Severn Beach"),
	}
}

func baseRecommendations(now time.Time) []models.Recommendation {
	return []models.Recommendation{
		{
			ID:         "rec-001",
			TrainID:    "train-1",
			Action:     "Hold 1A05 at Reading for 4 minutes",
			Rationale:  "Protects the connection from the delayed 1G44 and avoids a missed-connection cascade at Didcot Parkway.",
			Confidence: 0.87,
			Impact:     models.KPIImpact{"Punctuality": -0.4, "Passenger Satisfaction": 1.2},
			Alternatives: []models.Alternative{
				{ID: "alt-001", Action: "Reroute via Oxford", Impact: models.KPIImpact{"Punctuality": -1.1}},
				{ID: "alt-002", Action: "Depart on time and advise passengers of the next service", Impact: models.KPIImpact{"Passenger Satisfaction": -2.0}},
			},
			Status:    models.RecommendationStatusPending,
			Priority:  models.PriorityHigh,
			CreatedAt: now.Add(-12 * time.Minute),
		},
		{
			ID:         "rec-002",
			TrainID:    "train-4",
			Action:     "Give 1G44 priority at the Didcot East junction",
			Rationale:  "1G44 is carrying a 12 minute delay into the busiest section; a priority path recovers 4 of them.",
			Confidence: 0.74,
			Impact:     models.KPIImpact{"Punctuality": 0.8, "Average Delay": -0.6},
			Alternatives: []models.Alternative{
				{ID: "alt-003", Action: "Hold freight path 6M02 for 3 minutes", Impact: models.KPIImpact{"Network Throughput": -0.3}},
			},
			Status:    models.RecommendationStatusPending,
			Priority:  models.PriorityMedium,
			CreatedAt: now.Add(-7 * time.Minute),
		},
	}
}

// Trains returns the fleet with fresh drift applied: delays wander by a
// minute or two, passenger counts churn, and trains advance along their
// routes.
func (s *Source) Trains() []models.Train {
	s.mu.Lock()
	defer s.mu.Unlock()

	trains := make([]models.Train, len(s.fleet))
	for i := range s.fleet {
		svc := &s.fleet[i]
		svc.train.DelayMinutes = max(0, svc.train.DelayMinutes+s.rand.IntN(5)-2)
		svc.train.PassengerCount = clamp(svc.train.PassengerCount+s.rand.IntN(41)-20, 0, svc.train.Capacity)
		if s.rand.IntN(4) == 0 && svc.stop < len(svc.route)-1 {
			svc.stop++
		}
		svc.train.Location = svc.route[svc.stop]

		switch {
		case svc.stop == len(svc.route)-1:
			svc.train.Status = models.TrainStatusAtPlatform
		case svc.train.DelayMinutes >= 10:
			svc.train.Status = models.TrainStatusDelayed
		case svc.train.DelayMinutes > 0:
			svc.train.Status = models.TrainStatusDelayed
		default:
			svc.train.Status = models.TrainStatusOnTime
		}
		if svc.train.DelayMinutes > 0 {
			estimated := svc.train.ScheduledArrival.Add(time.Duration(svc.train.DelayMinutes) * time.Minute)
			svc.train.EstimatedArrival = &estimated
		} else {
			svc.train.EstimatedArrival = nil
		}
		trains[i] = svc.train
	}
	return trains
}

// Recommendations returns the current recommendation list, newest first.
func (s *Source) Recommendations() []models.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Recommendation{}, s.recommendations...)
}

// RequestRecommendations generates one fresh recommendation from the posted
// system state, prepends it, and returns the updated list.
func (s *Source) RequestRecommendations(state models.SystemState) []models.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.mostDelayedLocked(state.Trains)
	rec := models.Recommendation{
		ID:         fmt.Sprintf("rec-%s", uuid.NewString()[:8]),
		TrainID:    target.ID,
		Action:     fmt.Sprintf("Hold %s at %s for %d minutes", target.Number, target.Location, 2+s.rand.IntN(4)),
		Rationale:  fmt.Sprintf("%s is the largest contributor to the current delay profile (%d minutes).", target.Number, target.DelayMinutes),
		Confidence: 0.6 + s.rand.Float64()*0.35,
		Impact:     models.KPIImpact{"Punctuality": round1(s.rand.Float64()*2 - 0.5), "Average Delay": round1(-s.rand.Float64() * 1.5)},
		Alternatives: []models.Alternative{
			{
				ID:     fmt.Sprintf("alt-%s", uuid.NewString()[:8]),
				Action: fmt.Sprintf("Swap platforms for %s at %s", target.Number, target.Location),
				Impact: models.KPIImpact{"Punctuality": round1(s.rand.Float64() - 0.5)},
			},
		},
		Status:    models.RecommendationStatusPending,
		Priority:  models.PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}
	s.recommendations = append([]models.Recommendation{rec}, s.recommendations...)
	return append([]models.Recommendation{}, s.recommendations...)
}

func (s *Source) mostDelayedLocked(posted []models.Train) models.Train {
	candidates := posted
	if len(candidates) == 0 {
		candidates = make([]models.Train, len(s.fleet))
		for i, svc := range s.fleet {
			candidates[i] = svc.train
		}
	}
	target := candidates[0]
	for _, train := range candidates[1:] {
		if train.DelayMinutes > target.DelayMinutes {
			target = train
		}
	}
	return target
}

// Predictions forecasts delays for the given train ids. Unknown ids get a
// forecast too; the model does not care whether the train exists.
func (s *Source) Predictions(trainIDs []string) []models.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	current := map[string]int{}
	for _, svc := range s.fleet {
		current[svc.train.ID] = svc.train.DelayMinutes
	}
	predictions := make([]models.Prediction, len(trainIDs))
	for i, id := range trainIDs {
		predictions[i] = models.Prediction{
			TrainID:               id,
			PredictedDelayMinutes: round1(float64(current[id]) + s.rand.Float64()*4 - 1),
			Confidence:            round1(0.55 + s.rand.Float64()*0.4),
			HorizonMinutes:        30,
			GeneratedAt:           now,
		}
	}
	return predictions
}

// KPIReport derives the KPI set from the current fleet so the numbers stay
// coherent with what GET /trains returns.
func (s *Source) KPIReport(includeHistory bool, timeRange string) models.KPIReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	var onTime, totalDelay, critical int
	for _, svc := range s.fleet {
		if svc.train.DelayMinutes == 0 {
			onTime++
		}
		if svc.train.DelayMinutes >= 10 {
			critical++
		}
		totalDelay += svc.train.DelayMinutes
	}
	active := len(s.fleet)
	onTimePercent := round1(100 * float64(onTime) / float64(active))
	avgDelay := round1(float64(totalDelay) / float64(active))

	punctualityTarget := 95.0
	delayTarget := 3.0
	report := models.KPIReport{
		KPIs: []models.KPI{
			{
				Name:   "Punctuality",
				Value:  onTimePercent,
				Unit:   "%",
				Target: &punctualityTarget,
				Trend:  trendFor(s.rand),
				Change: round1(s.rand.Float64()*2 - 1),
				Status: kpiStatus(onTimePercent, 90, 80),
			},
			{
				Name:   "Average Delay",
				Value:  avgDelay,
				Unit:   "min",
				Target: &delayTarget,
				Trend:  trendFor(s.rand),
				Change: round1(s.rand.Float64() - 0.5),
				Status: kpiStatus(10-avgDelay, 7, 4),
			},
			{
				Name:   "Network Throughput",
				Value:  round1(82 + s.rand.Float64()*10),
				Unit:   "%",
				Trend:  trendFor(s.rand),
				Change: round1(s.rand.Float64()*3 - 1.5),
				Status: models.KPIStatusGood,
			},
		},
		Summary: models.KPISummary{
			OnTimePercent:   onTimePercent,
			AvgDelayMinutes: avgDelay,
			ActiveTrains:    active,
			CriticalCount:   critical,
		},
	}
	for i := range report.KPIs {
		kpi := &report.KPIs[i]
		if kpi.Value != 0 {
			kpi.ChangePercent = round1(100 * kpi.Change / kpi.Value)
		}
	}
	if includeHistory {
		report.History = s.historyLocked(timeRange, onTimePercent, avgDelay)
	}
	return report
}

func (s *Source) historyLocked(timeRange string, onTimePercent, avgDelay float64) []models.KPISample {
	step := time.Hour
	points := 24
	if timeRange == "7d" {
		step = 6 * time.Hour
		points = 28
	}
	now := time.Now().UTC().Truncate(step)
	samples := make([]models.KPISample, points)
	for i := range points {
		samples[i] = models.KPISample{
			Timestamp: now.Add(-time.Duration(points-1-i) * step),
			Values: map[string]float64{
				"Punctuality":   clampFloat(onTimePercent+s.rand.Float64()*8-4, 0, 100),
				"Average Delay": max(0, round1(avgDelay+s.rand.Float64()*3-1.5)),
			},
		}
	}
	return samples
}

// Simulate evaluates a what-if scenario against the current KPI baseline.
// Each change nudges the projection: holds and priorities help punctuality a
// little, cancellations help delay at the cost of throughput.
func (s *Source) Simulate(scenario models.WhatIfScenario) models.SimulationResult {
	report := s.KPIReport(false, "")

	s.mu.Lock()
	defer s.mu.Unlock()

	baseline := map[string]float64{}
	for _, kpi := range report.KPIs {
		baseline[kpi.Name] = kpi.Value
	}
	projected := map[string]float64{}
	for name, value := range baseline {
		projected[name] = value
	}
	var advice []string
	for _, change := range scenario.Changes {
		switch change.Type {
		case "hold":
			projected["Punctuality"] = round1(projected["Punctuality"] + 0.4 + s.rand.Float64()*0.6)
			projected["Average Delay"] = max(0, round1(projected["Average Delay"]-0.3))
		case "reroute":
			projected["Average Delay"] = max(0, round1(projected["Average Delay"]-0.5-s.rand.Float64()*0.5))
			projected["Network Throughput"] = round1(projected["Network Throughput"] - 0.8)
		case "cancel":
			projected["Average Delay"] = max(0, round1(projected["Average Delay"]-1.0))
			projected["Network Throughput"] = round1(projected["Network Throughput"] - 2.5)
			advice = append(advice, fmt.Sprintf("Arrange replacement capacity for %s before cancelling", change.TrainID))
		case "priority":
			projected["Punctuality"] = round1(projected["Punctuality"] + 0.7)
		}
	}
	if projected["Punctuality"] > baseline["Punctuality"] {
		advice = append(advice, "Projected punctuality improves; apply during the next control period")
	}

	now := time.Now().UTC().Truncate(time.Minute)
	series := make([]models.KPISample, 6)
	for i := range series {
		progress := float64(i) / float64(len(series)-1)
		values := map[string]float64{}
		for name := range baseline {
			values[name] = round1(baseline[name] + (projected[name]-baseline[name])*progress)
		}
		series[i] = models.KPISample{Timestamp: now.Add(time.Duration(i*10) * time.Minute), Values: values}
	}

	return models.SimulationResult{
		ScenarioID:      fmt.Sprintf("scen-%s", uuid.NewString()[:8]),
		Projected:       projected,
		Baseline:        baseline,
		TimeSeries:      series,
		Recommendations: advice,
	}
}

func clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}

func clampFloat(v, lo, hi float64) float64 {
	return min(hi, max(lo, round1(v)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func trendFor(r *rand.Rand) models.Trend {
	switch r.IntN(3) {
	case 0:
		return models.TrendUp
	case 1:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

func kpiStatus(value, good, warning float64) models.KPIStatus {
	switch {
	case value >= good:
		return models.KPIStatusGood
	case value >= warning:
		return models.KPIStatusWarning
	default:
		return models.KPIStatusCritical
	}
}
