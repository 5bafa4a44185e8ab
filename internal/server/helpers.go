// Package server contains HTTP handlers for the network engine's API endpoints.
package server

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode"

	"lattice/internal/cache"
	"lattice/internal/models"
	"lattice/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "edgeId" ->
// "Invalid edge ID", "requestId" -> "Invalid request ID").
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "profileId" -> "profile ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// respondServiceError maps a service-layer error onto its HTTP status and
// writes the standard error body.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.ErrorStatus(err), err)
}

// publishProfileEvent emits an engine event for the given profile. Delivery
// is best-effort: a nil notifier or a publish failure never fails the request.
func (s *Server) publishProfileEvent(profileID, actorID uint, eventType string, referenceID uint, referenceType string) {
	if s.notifier == nil {
		return
	}
	event := notifications.Event{
		Type:          eventType,
		ProfileID:     profileID,
		ActorID:       actorID,
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
	}
	if err := s.notifier.PublishProfileEvent(context.Background(), event); err != nil {
		log.Printf("failed to publish %s event to profile %d: %v", eventType, profileID, err)
	}
}

// invalidateProfileViews drops every cached read model for the given profiles.
// Mutating handlers call this for both sides of an edge so the next read
// rebuilds from the store.
func (s *Server) invalidateProfileViews(ctx context.Context, profileIDs ...uint) {
	for _, id := range profileIDs {
		cache.InvalidateProfileViews(ctx, id)
	}
}
