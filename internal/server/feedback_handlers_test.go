package server

import (
	"net/http"
	"testing"

	"lattice/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerFeedbackRoutes(app *fiber.App, s *Server) {
	app.Get("/edges/:edgeId/feedback", s.GetEdgeFeedback)
	app.Post("/edges/:edgeId/feedback", s.SubmitFeedback)
}

func TestSubmitFeedback(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	profiles := seedHandlerProfiles(t, db, "Ada", "Bo", "Cy")
	edge := seedActiveEdge(t, db, profiles[0].ID, profiles[1].ID, 0.5)

	caller := profiles[0].ID
	app := testApp(&caller)
	registerFeedbackRoutes(app, s)

	t.Run("positive feedback reinforces the edge", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/edges/1/feedback", map[string]string{
			"interaction_type": "collaboration",
			"rating":           "positive",
			"note":             "Shipped the migration together",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var feedback models.InteractionFeedback
		decodeBody(t, resp, &feedback)
		assert.Equal(t, models.RatingPositive, feedback.Rating)

		var updated models.NetworkEdge
		require.NoError(t, db.First(&updated, edge.ID).Error)
		assert.InDelta(t, 0.6, updated.Strength, 1e-9)
		assert.NotNil(t, updated.LastInteractionAt)
	})

	t.Run("invalid rating", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/edges/1/feedback", map[string]string{
			"interaction_type": "collaboration",
			"rating":           "meh",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown edge", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/edges/99/feedback", map[string]string{
			"interaction_type": "collaboration",
			"rating":           "positive",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("outsider rejected", func(t *testing.T) {
		caller = profiles[2].ID
		resp := doJSON(t, app, http.MethodPost, "/edges/1/feedback", map[string]string{
			"interaction_type": "collaboration",
			"rating":           "positive",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetEdgeFeedback(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	profiles := seedHandlerProfiles(t, db, "Ada", "Bo", "Cy")
	edge := seedActiveEdge(t, db, profiles[0].ID, profiles[1].ID, 0.5)

	require.NoError(t, db.Create(&models.InteractionFeedback{
		EdgeID:          edge.ID,
		FromProfileID:   profiles[0].ID,
		InteractionType: models.InteractionCollaboration,
		Rating:          models.RatingPositive,
	}).Error)

	caller := profiles[1].ID
	app := testApp(&caller)
	registerFeedbackRoutes(app, s)

	resp := doJSON(t, app, http.MethodGet, "/edges/1/feedback", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var feedback []models.InteractionFeedback
	decodeBody(t, resp, &feedback)
	assert.Len(t, feedback, 1)

	t.Run("outsider rejected", func(t *testing.T) {
		caller = profiles[2].ID
		resp := doJSON(t, app, http.MethodGet, "/edges/1/feedback", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
