package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

type PredictionService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewPredictionService(client *api.Client, logger *slog.Logger) *PredictionService {
	return &PredictionService{
		api:    client,
		logger: logger.With("source", "PredictionService"),
	}
}

type predictionRequest struct {
	TrainIDs  []string  `json:"trainIds"`
	Timestamp time.Time `json:"timestamp"`
}

// ForTrains fetches delay forecasts for the given train ids.
func (s *PredictionService) ForTrains(ctx context.Context, trainIDs []string) ([]models.Prediction, error) {
	var predictions []models.Prediction
	payload := predictionRequest{TrainIDs: trainIDs, Timestamp: time.Now().UTC()}
	if err := s.api.Post(ctx, "/predictions", payload, &predictions); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "prediction fetch degraded", errors.SlogError(err))
		return []models.Prediction{}, errors.Wrap(err, "fetch predictions")
	}
	return predictions, nil
}
