package server

import (
	"lattice/internal/cache"
	"lattice/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNetworkHealth handles GET /api/network/health
func (s *Server) GetNetworkHealth(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)

	key := cache.HealthKey(profileID)
	var cached models.NetworkHealthScore
	if cache.GetJSON(ctx, key, &cached) {
		return c.JSON(cached)
	}

	health, err := s.healthService.GetNetworkHealth(ctx, profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	cache.SetJSON(ctx, key, health, cache.HealthTTL)

	return c.JSON(health)
}
