package services

import (
	"context"
	"log/slog"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

type SimulationService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewSimulationService(client *api.Client, logger *slog.Logger) *SimulationService {
	return &SimulationService{
		api:    client,
		logger: logger.With("source", "SimulationService"),
	}
}

// Run evaluates a what-if scenario. On transport failure it returns a zero
// sentinel result and the wrapped error.
func (s *SimulationService) Run(ctx context.Context, scenario models.WhatIfScenario) (models.SimulationResult, error) {
	var result models.SimulationResult
	if err := s.api.Post(ctx, "/simulate", scenario, &result); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "simulation degraded", errors.SlogError(err))
		return models.SimulationResult{}, errors.Wrap(err, "run scenario")
	}
	return result, nil
}
