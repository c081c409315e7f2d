package services

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

type KPIService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewKPIService(client *api.Client, logger *slog.Logger) *KPIService {
	return &KPIService{
		api:    client,
		logger: logger.With("source", "KPIService"),
	}
}

// Report fetches the KPI collection with its summary, optionally including
// history for the given time range.
func (s *KPIService) Report(ctx context.Context, includeHistory bool, timeRange string) (models.KPIReport, error) {
	query := url.Values{}
	if includeHistory {
		query.Set("includeHistory", "true")
	}
	if timeRange != "" {
		query.Set("timeRange", timeRange)
	}
	path := "/kpis"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var report models.KPIReport
	if err := s.api.Get(ctx, path, &report); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "kpi report degraded", errors.SlogError(err))
		return models.KPIReport{KPIs: []models.KPI{}}, errors.Wrap(err, "fetch kpi report")
	}
	return report, nil
}
