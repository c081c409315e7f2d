package services

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

type AuditService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewAuditService(client *api.Client, logger *slog.Logger) *AuditService {
	return &AuditService{
		api:    client,
		logger: logger.With("source", "AuditService"),
	}
}

type auditReceipt struct {
	ID string `json:"id"`
}

// Append writes one audit entry. Unlike the other adapters this fails hard:
// the caller's audit guarantee depends on knowing whether the write landed.
// The server assigns the authoritative id and timestamp; the returned entry
// carries the assigned id and the client-observed UTC time.
func (s *AuditService) Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error) {
	var receipt auditReceipt
	if err := s.api.Post(ctx, "/audit", entry, &receipt); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "audit append failed", errors.SlogError(err))
		return models.AuditLog{}, errors.Wrap(err, "append audit entry",
			slog.String("action", entry.Action))
	}
	entry.ID = receipt.ID
	entry.Timestamp = time.Now().UTC()
	return entry, nil
}

// List fetches audit entries, newest first.
func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	query := url.Values{}
	if !filter.StartDate.IsZero() {
		query.Set("startDate", filter.StartDate.Format(time.RFC3339))
	}
	if !filter.EndDate.IsZero() {
		query.Set("endDate", filter.EndDate.Format(time.RFC3339))
	}
	if len(filter.TrainIDs) > 0 {
		query.Set("trainIds", strings.Join(filter.TrainIDs, ","))
	}
	path := "/audit"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var entries []models.AuditLog
	if err := s.api.Get(ctx, path, &entries); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "audit list degraded", errors.SlogError(err))
		return []models.AuditLog{}, errors.Wrap(err, "list audit entries")
	}
	return entries, nil
}
