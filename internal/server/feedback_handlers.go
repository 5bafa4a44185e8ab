package server

import (
	"lattice/internal/models"
	"lattice/internal/notifications"
	"lattice/internal/observability"

	"github.com/gofiber/fiber/v2"
)

type submitFeedbackBody struct {
	InteractionType models.InteractionType `json:"interaction_type"`
	Rating          models.FeedbackRating  `json:"rating"`
	Note            string                 `json:"note"`
}

// SubmitFeedback handles POST /api/network/edges/:edgeId/feedback
func (s *Server) SubmitFeedback(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	edgeID, err := s.parseID(c, "edgeId")
	if err != nil {
		return nil
	}

	var body submitFeedbackBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	feedback, submitErr := s.feedbackService.SubmitFeedback(
		ctx, edgeID, profileID, body.InteractionType, body.Rating, body.Note)
	if submitErr != nil {
		return respondServiceError(c, submitErr)
	}

	observability.FeedbackTotal.WithLabelValues(string(body.Rating)).Inc()

	if edge, getErr := s.edgeRepo.GetByID(ctx, edgeID); getErr == nil {
		other := edge.OtherProfileID(profileID)
		s.publishProfileEvent(other, profileID,
			notifications.EventFeedbackReceived, feedback.ID, "interaction_feedback")
		s.invalidateProfileViews(ctx, profileID, other)
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// GetEdgeFeedback handles GET /api/network/edges/:edgeId/feedback
func (s *Server) GetEdgeFeedback(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	edgeID, err := s.parseID(c, "edgeId")
	if err != nil {
		return nil
	}

	edge, getErr := s.edgeRepo.GetByID(ctx, edgeID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}
	if !edge.Involves(profileID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only view feedback on your own connections"))
	}

	feedback, listErr := s.feedbackRepo.ListByEdge(ctx, edgeID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(feedback)
}
