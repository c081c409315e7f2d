package services

import (
	"context"
	"log/slog"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

type TrainService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewTrainService(client *api.Client, logger *slog.Logger) *TrainService {
	return &TrainService{
		api:    client,
		logger: logger.With("source", "TrainService"),
	}
}

// List fetches the current fleet. On transport failure it returns an empty
// slice and the wrapped error.
func (s *TrainService) List(ctx context.Context) ([]models.Train, error) {
	var trains []models.Train
	if err := s.api.Get(ctx, "/trains", &trains); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "train list degraded", errors.SlogError(err))
		return []models.Train{}, errors.Wrap(err, "list trains")
	}
	return trains, nil
}
