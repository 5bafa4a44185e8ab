package server

import (
	"lattice/internal/models"
	"lattice/internal/notifications"
	"lattice/internal/observability"

	"github.com/gofiber/fiber/v2"
)

type sendRequestBody struct {
	Message             string `json:"message"`
	IntroducerProfileID *uint  `json:"introducer_profile_id"`
}

// SendConnectionRequest handles POST /api/network/requests/:profileId
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	targetProfileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	var body sendRequestBody
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, sendErr := s.connectionService.SendRequest(ctx, profileID, targetProfileID, body.Message, body.IntroducerProfileID)
	if sendErr != nil {
		return respondServiceError(c, sendErr)
	}

	observability.RequestTransitionsTotal.WithLabelValues("sent").Inc()

	// Notify the addressee so their UI picks up the new request.
	s.publishProfileEvent(request.ToProfileID, profileID,
		notifications.EventRequestReceived, request.ID, "connection_request")

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetPendingRequests handles GET /api/network/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)

	requests, err := s.connectionService.GetPendingRequests(ctx, profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// GetSentRequests handles GET /api/network/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)

	requests, err := s.connectionService.GetSentRequests(ctx, profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// AcceptConnectionRequest handles POST /api/network/requests/:requestId/accept
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	edge, acceptErr := s.connectionService.AcceptRequest(ctx, profileID, requestID)
	if acceptErr != nil {
		return respondServiceError(c, acceptErr)
	}

	observability.RequestTransitionsTotal.WithLabelValues("accepted").Inc()

	requester := edge.OtherProfileID(profileID)
	s.publishProfileEvent(requester, profileID,
		notifications.EventRequestAccepted, requestID, "connection_request")
	s.invalidateProfileViews(ctx, profileID, requester)

	return c.JSON(edge)
}

// DeclineConnectionRequest handles POST /api/network/requests/:requestId/decline
func (s *Server) DeclineConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	// Load first so the counterpart is known for the event after the decline.
	request, getErr := s.requestRepo.GetByID(ctx, requestID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}

	if declineErr := s.connectionService.DeclineRequest(ctx, profileID, requestID); declineErr != nil {
		return respondServiceError(c, declineErr)
	}

	observability.RequestTransitionsTotal.WithLabelValues("declined").Inc()

	counterpart := request.FromProfileID
	if counterpart == profileID {
		counterpart = request.ToProfileID
	}
	s.publishProfileEvent(counterpart, profileID,
		notifications.EventRequestDeclined, requestID, "connection_request")

	return c.SendStatus(fiber.StatusNoContent)
}
