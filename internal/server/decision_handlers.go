package server

import (
	"lattice/internal/cache"
	"lattice/internal/graph"
	"lattice/internal/models"
	"lattice/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// GetDecision handles GET /api/network/decision/:profileId?intent=
func (s *Server) GetDecision(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)
	targetProfileID, err := s.parseID(c, "profileId")
	if err != nil {
		return nil
	}

	intent := models.Intent(c.Query("intent", string(models.IntentGeneral)))

	decision, decideErr := s.decisionService.Decide(ctx, profileID, intent, targetProfileID)
	if decideErr != nil {
		return respondServiceError(c, decideErr)
	}

	observability.DecisionsTotal.WithLabelValues(string(decision.Recommendation), string(intent)).Inc()

	return c.JSON(decision)
}

// GetSuggestions handles GET /api/network/suggestions?limit=
func (s *Server) GetSuggestions(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID := c.Locals("profileID").(uint)

	limit := c.QueryInt("limit", graph.DefaultSuggestionLimit)
	if limit <= 0 {
		limit = graph.DefaultSuggestionLimit
	}
	if limit > 50 {
		limit = 50
	}

	// Only the default page is cached; custom limits are rare and cheap to miss.
	key := cache.SuggestionsKey(profileID)
	if limit == graph.DefaultSuggestionLimit {
		var cached []models.ConnectionSuggestion
		if cache.GetJSON(ctx, key, &cached) {
			return c.JSON(cached)
		}
	}

	suggestions, err := s.decisionService.Suggest(ctx, profileID, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.SuggestionListSize.Observe(float64(len(suggestions)))

	if limit == graph.DefaultSuggestionLimit {
		cache.SetJSON(ctx, key, suggestions, cache.SuggestionsTTL)
	}

	return c.JSON(suggestions)
}
