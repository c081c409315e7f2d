package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

const msgSimulationFailed = "Simulation failed"

// RunSimulation evaluates a what-if scenario and returns the result to the
// caller unconditionally. Exactly one audit entry describes the invocation;
// its append is best-effort — an audit hiccup must not discard a computed
// result, so the failure is logged instead of propagated.
func (s *Store) RunSimulation(ctx context.Context, scenario models.WhatIfScenario) (models.SimulationResult, error) {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	result, simErr := s.deps.Simulations.Run(ctx, scenario)

	outcome := models.AuditOutcomeSuccess
	details := fmt.Sprintf("Scenario %q with %d changes, result %s", scenario.Name, len(scenario.Changes), result.ScenarioID)
	if simErr != nil {
		outcome = models.AuditOutcomeFailure
		details = fmt.Sprintf("Scenario %q with %d changes did not complete", scenario.Name, len(scenario.Changes))
	}
	entry := models.AuditLog{
		Action:  "run_simulation",
		Actor:   s.deps.Actor,
		Details: details,
		Outcome: outcome,
	}
	stored, auditErr := s.deps.Audit.Append(ctx, entry)
	if auditErr != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "audit append failed after simulation", errors.SlogError(auditErr))
	}

	s.mu.Lock()
	s.state.Loading = false
	if simErr != nil {
		s.state.Err = msgSimulationFailed
	}
	if auditErr == nil {
		s.state.AuditLogs = append([]models.AuditLog{stored}, s.state.AuditLogs...)
	}
	s.mu.Unlock()
	s.publish(CollectionAuditLogs)

	if simErr != nil {
		return result, errors.Wrap(simErr, "run simulation")
	}
	return result, nil
}
