package services

import (
	"context"
	"log/slog"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

type RecommendationService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewRecommendationService(client *api.Client, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		api:    client,
		logger: logger.With("source", "RecommendationService"),
	}
}

// List fetches the current recommendations.
func (s *RecommendationService) List(ctx context.Context) ([]models.Recommendation, error) {
	var recommendations []models.Recommendation
	if err := s.api.Get(ctx, "/recommendations", &recommendations); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "recommendation list degraded", errors.SlogError(err))
		return []models.Recommendation{}, errors.Wrap(err, "list recommendations")
	}
	return recommendations, nil
}

type requestRecommendationsPayload struct {
	SystemState models.SystemState `json:"systemState"`
}

// Request posts the current system state to the optimizer and returns the
// refreshed recommendation list with the new recommendation prepended.
func (s *RecommendationService) Request(ctx context.Context, state models.SystemState) ([]models.Recommendation, error) {
	var recommendations []models.Recommendation
	payload := requestRecommendationsPayload{SystemState: state}
	if err := s.api.Post(ctx, "/recommendations", payload, &recommendations); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "recommendation request degraded", errors.SlogError(err))
		return []models.Recommendation{}, errors.Wrap(err, "request recommendations")
	}
	return recommendations, nil
}
