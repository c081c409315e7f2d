package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

const msgDecisionFailed = "Failed to record decision"

// AcceptRecommendation accepts a pending recommendation as proposed. The
// audit write is a precondition gate: if it fails the recommendation stays
// untouched and the store error is set. On success the status flip and the
// audit prepend land in one commit, so an observer can never see an accepted
// recommendation without its audit entry.
func (s *Store) AcceptRecommendation(ctx context.Context, id string) error {
	rec, err := s.beginDecision(id)
	if err != nil {
		return err
	}

	entry := models.AuditLog{
		Action:           "accept_recommendation",
		Actor:            s.deps.Actor,
		TrainID:          rec.TrainID,
		RecommendationID: rec.ID,
		Reason:           "Accepted as recommended",
		Details:          fmt.Sprintf("Accepted action %q", rec.Action),
		Outcome:          models.AuditOutcomeSuccess,
	}
	stored, err := s.deps.Audit.Append(ctx, entry)
	if err != nil {
		s.failDecision()
		return errors.Wrap(err, "accept recommendation", slog.String("recommendationId", id))
	}

	s.commitDecision(id, stored, func(target *models.Recommendation) {
		target.Status = models.RecommendationStatusAccepted
	})
	s.persist(ctx)
	return nil
}

// OverrideRecommendation accepts a recommendation with one of its
// pre-computed alternatives, replacing the proposed action text. The audit
// entry records both the original and the selected action.
func (s *Store) OverrideRecommendation(ctx context.Context, id, alternativeID string) error {
	rec, err := s.beginDecision(id)
	if err != nil {
		return err
	}
	alternative, ok := rec.AlternativeByID(alternativeID)
	if !ok {
		s.mu.Lock()
		s.state.Loading = false
		s.mu.Unlock()
		return errors.Wrap(ErrNotFound, "alternative not in recommendation",
			slog.String("recommendationId", id), slog.String("alternativeId", alternativeID))
	}

	entry := models.AuditLog{
		Action:           "override_recommendation",
		Actor:            s.deps.Actor,
		TrainID:          rec.TrainID,
		RecommendationID: rec.ID,
		Reason:           fmt.Sprintf("Overridden with alternative %s", alternative.ID),
		Details:          fmt.Sprintf("Original action %q replaced with %q", rec.Action, alternative.Action),
		Outcome:          models.AuditOutcomeSuccess,
	}
	stored, err := s.deps.Audit.Append(ctx, entry)
	if err != nil {
		s.failDecision()
		return errors.Wrap(err, "override recommendation", slog.String("recommendationId", id))
	}

	s.commitDecision(id, stored, func(target *models.Recommendation) {
		target.Status = models.RecommendationStatusAccepted
		target.Action = alternative.Action
	})
	s.persist(ctx)
	return nil
}

// RejectRecommendation rejects a pending recommendation with the operator's
// reason.
func (s *Store) RejectRecommendation(ctx context.Context, id, reason string) error {
	rec, err := s.beginDecision(id)
	if err != nil {
		return err
	}

	entry := models.AuditLog{
		Action:           "reject_recommendation",
		Actor:            s.deps.Actor,
		TrainID:          rec.TrainID,
		RecommendationID: rec.ID,
		Reason:           reason,
		Details:          fmt.Sprintf("Rejected action %q", rec.Action),
		Outcome:          models.AuditOutcomeSuccess,
	}
	stored, err := s.deps.Audit.Append(ctx, entry)
	if err != nil {
		s.failDecision()
		return errors.Wrap(err, "reject recommendation", slog.String("recommendationId", id))
	}

	s.commitDecision(id, stored, func(target *models.Recommendation) {
		target.Status = models.RecommendationStatusRejected
	})
	s.persist(ctx)
	return nil
}

// beginDecision validates the target synchronously before any network call
// and marks the decision in flight.
func (s *Store) beginDecision(id string) (models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.state.Recommendations, func(r models.Recommendation) bool {
		return r.ID == id
	})
	if index < 0 {
		return models.Recommendation{}, errors.Wrap(ErrNotFound, "recommendation not in store",
			slog.String("recommendationId", id))
	}
	rec := s.state.Recommendations[index]
	if rec.Status != models.RecommendationStatusPending {
		return models.Recommendation{}, errors.Wrap(ErrAlreadyDecided, "one-way transition",
			slog.String("recommendationId", id), slog.String("status", string(rec.Status)))
	}

	s.state.Loading = true
	s.state.Err = ""
	return rec, nil
}

func (s *Store) failDecision() {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Err = msgDecisionFailed
	s.mu.Unlock()
	s.publish(CollectionRecommendations)
}

// commitDecision applies the status change and the audit prepend in a single
// critical section. If a concurrent fetch replaced the collection and the
// target vanished, the audit entry still lands; the decision was recorded.
func (s *Store) commitDecision(id string, entry models.AuditLog, mutate func(target *models.Recommendation)) {
	s.mu.Lock()
	recommendations := slices.Clone(s.state.Recommendations)
	index := slices.IndexFunc(recommendations, func(r models.Recommendation) bool {
		return r.ID == id
	})
	if index >= 0 {
		mutate(&recommendations[index])
		s.state.Recommendations = recommendations
	} else {
		s.logger.Warn("decided recommendation no longer in store", "recommendationId", id)
	}
	s.state.AuditLogs = append([]models.AuditLog{entry}, s.state.AuditLogs...)
	s.state.Loading = false
	s.mu.Unlock()
	s.publish(CollectionRecommendations, CollectionAuditLogs)
}
