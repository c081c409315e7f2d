// Package services holds the stateless domain adapters between the
// application store and the operations API. Each adapter wraps the transport
// client with a typed contract for one backend capability and owns no state.
//
// Failure contract: read and compute operations fail soft — they log the
// transport failure and return a usable empty default alongside the wrapped
// error, so a backend hiccup degrades data instead of crashing the caller.
// AuditService.Append is the exception: the store's audit guarantee requires
// knowing whether the write succeeded, so it returns no default on failure.
package services

import (
	"log/slog"

	"github.com/myrjola/trackside/internal/api"
)

// Services bundles one adapter per backend capability over a shared client.
type Services struct {
	Trains          *TrainService
	Recommendations *RecommendationService
	Predictions     *PredictionService
	KPIs            *KPIService
	Simulations     *SimulationService
	Audit           *AuditService
	Chat            *ChatService
}

// New wires every domain adapter to the given transport client.
func New(client *api.Client, logger *slog.Logger) *Services {
	return &Services{
		Trains:          NewTrainService(client, logger),
		Recommendations: NewRecommendationService(client, logger),
		Predictions:     NewPredictionService(client, logger),
		KPIs:            NewKPIService(client, logger),
		Simulations:     NewSimulationService(client, logger),
		Audit:           NewAuditService(client, logger),
		Chat:            NewChatService(client, logger),
	}
}
