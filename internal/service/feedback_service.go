package service

import (
	"context"
	"time"

	"lattice/internal/models"
	"lattice/internal/observability"
	"lattice/internal/repository"
	"lattice/internal/trust"

	"gorm.io/gorm"
)

// FeedbackStrengthStep is the amount edge strength moves per feedback
// submission, up for positive and down for negative.
const FeedbackStrengthStep = 0.1

// FeedbackService ingests post-interaction feedback and feeds it back into
// the signal store and edge strength (the reinforcement loop).
type FeedbackService struct {
	db           *gorm.DB
	edgeRepo     repository.EdgeRepository
	signalRepo   repository.SignalRepository
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(
	db *gorm.DB,
	edgeRepo repository.EdgeRepository,
	signalRepo repository.SignalRepository,
	feedbackRepo repository.FeedbackRepository,
) *FeedbackService {
	return &FeedbackService{
		db:           db,
		edgeRepo:     edgeRepo,
		signalRepo:   signalRepo,
		feedbackRepo: feedbackRepo,
	}
}

// SubmitFeedback records the feedback event and applies its effect. Positive
// feedback appends a collaboration signal and nudges strength up; negative
// only nudges strength down (absence of evidence, not negative evidence);
// neutral is recorded for audit and mutates nothing. The edge row is locked
// for the duration so concurrent submissions on the same edge serialize
// instead of losing updates.
func (s *FeedbackService) SubmitFeedback(
	ctx context.Context,
	edgeID, fromProfileID uint,
	interactionType models.InteractionType,
	rating models.FeedbackRating,
	note string,
) (*models.InteractionFeedback, error) {
	if !models.ValidInteractionType(interactionType) {
		return nil, models.NewValidationError("Unknown interaction type")
	}
	if !models.ValidFeedbackRating(rating) {
		return nil, models.NewValidationError("Unknown feedback rating")
	}

	edge, err := s.edgeRepo.GetByID(ctx, edgeID)
	if err != nil {
		return nil, err
	}
	if !edge.Involves(fromProfileID) {
		return nil, models.NewUnauthorizedError("You can only leave feedback on your own connections")
	}

	now := time.Now()
	feedback := &models.InteractionFeedback{
		EdgeID:          edgeID,
		FromProfileID:   fromProfileID,
		InteractionType: interactionType,
		Rating:          rating,
		Note:            note,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		edges := s.edgeRepo.WithTx(tx)
		signals := s.signalRepo.WithTx(tx)
		feedbacks := s.feedbackRepo.WithTx(tx)

		if err := feedbacks.Create(ctx, feedback); err != nil {
			return err
		}
		if rating == models.RatingNeutral {
			return nil
		}

		locked, err := edges.GetByIDForUpdate(ctx, edgeID)
		if err != nil {
			return err
		}

		switch rating {
		case models.RatingPositive:
			signal := &models.TrustSignal{
				EdgeID:     edgeID,
				SignalType: models.SignalCollaboration,
				Weight:     models.FeedbackSignalWeight,
				Evidence:   "positive feedback",
			}
			if err := signals.Append(ctx, signal); err != nil {
				return err
			}
			observability.SignalsAppendedTotal.WithLabelValues(string(models.SignalCollaboration)).Inc()

			strength := clampUnit(locked.Strength + FeedbackStrengthStep)
			if err := edges.UpdateStrength(ctx, edgeID, strength); err != nil {
				return err
			}

			current, err := signals.ListCurrentByEdge(ctx, edgeID, now)
			if err != nil {
				return err
			}
			recomputed := trust.RecomputeEdgeTrustAt(now, current, locked.Trust)
			observability.TrustRecomputationsTotal.Inc()
			if err := edges.UpdateTrust(ctx, edgeID, recomputed); err != nil {
				return err
			}
		case models.RatingNegative:
			strength := clampUnit(locked.Strength - FeedbackStrengthStep)
			if err := edges.UpdateStrength(ctx, edgeID, strength); err != nil {
				return err
			}
		}

		return edges.TouchInteraction(ctx, edgeID, now)
	})
	if err != nil {
		return nil, err
	}

	return feedback, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
