package server

import (
	"lattice/internal/cache"
	"lattice/internal/models"
	"lattice/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// GetConnections handles GET /api/network/connections
func (s *Server) GetConnections(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)

	key := cache.ConnectionsKey(profileID)
	var cached []models.ConnectionWithProfile
	if cache.GetJSON(ctx, key, &cached) {
		return c.JSON(cached)
	}

	connections, err := s.connectionService.GetConnections(ctx, profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	cache.SetJSON(ctx, key, connections, cache.ConnectionsTTL)

	return c.JSON(connections)
}

// RemoveConnection handles DELETE /api/network/connections/:profileId
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	otherProfileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	edge, removeErr := s.connectionService.RemoveConnection(ctx, profileID, otherProfileID)
	if removeErr != nil {
		return respondServiceError(c, removeErr)
	}

	s.publishProfileEvent(otherProfileID, profileID,
		notifications.EventConnectionRemoved, edge.ID, "network_edge")
	s.invalidateProfileViews(ctx, profileID, otherProfileID)

	return c.SendStatus(fiber.StatusOK)
}

// BlockProfile handles POST /api/network/connections/:profileId/block
func (s *Server) BlockProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	otherProfileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	edge, blockErr := s.connectionService.BlockProfile(ctx, profileID, otherProfileID)
	if blockErr != nil {
		return respondServiceError(c, blockErr)
	}

	// Blocks are not broadcast; the blocked profile is never told.
	s.invalidateProfileViews(ctx, profileID, otherProfileID)

	return c.JSON(edge)
}
