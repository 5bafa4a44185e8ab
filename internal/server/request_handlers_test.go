package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lattice/internal/database"
	"lattice/internal/models"
	"lattice/internal/repository"
	"lattice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.EngineModels()...))

	return db
}

// newTestServer wires a Server against the given DB without Redis or
// Prometheus so tests exercise handlers and services against real storage.
func newTestServer(db *gorm.DB) *Server {
	profileRepo := repository.NewProfileRepository(db)
	edgeRepo := repository.NewEdgeRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	signalRepo := repository.NewSignalRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	adj := repository.NewGraphAdjacency(edgeRepo, requestRepo)

	return &Server{
		db:                db,
		profileRepo:       profileRepo,
		edgeRepo:          edgeRepo,
		requestRepo:       requestRepo,
		signalRepo:        signalRepo,
		feedbackRepo:      feedbackRepo,
		connectionService: service.NewConnectionService(db, edgeRepo, requestRepo, signalRepo, profileRepo),
		decisionService:   service.NewDecisionService(adj, edgeRepo, signalRepo, profileRepo),
		healthService:     service.NewHealthService(edgeRepo, profileRepo),
		feedbackService:   service.NewFeedbackService(db, edgeRepo, signalRepo, feedbackRepo),
	}
}

// testApp builds a Fiber app where every request runs as the given profile.
// The caller ID is swapped through the pointer so one app can act as
// different profiles across subtests.
func testApp(callerID *uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("profileID", *callerID)
		return c.Next()
	})
	return app
}

func seedHandlerProfiles(t *testing.T, db *gorm.DB, names ...string) []models.Profile {
	t.Helper()

	profiles := make([]models.Profile, len(names))
	for i, name := range names {
		profiles[i] = models.Profile{DisplayName: name}
		require.NoError(t, db.Create(&profiles[i]).Error)
	}
	return profiles
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func registerRequestRoutes(app *fiber.App, s *Server) {
	app.Get("/requests", s.GetPendingRequests)
	app.Get("/requests/sent", s.GetSentRequests)
	app.Post("/requests/:requestId/accept", s.AcceptConnectionRequest)
	app.Post("/requests/:requestId/decline", s.DeclineConnectionRequest)
	app.Post("/requests/:profileId", s.SendConnectionRequest)
}

func TestConnectionRequestLifecycle(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	profiles := seedHandlerProfiles(t, db, "Ada", "Bo")

	caller := profiles[0].ID
	app := testApp(&caller)
	registerRequestRoutes(app, s)

	resp := doJSON(t, app, http.MethodPost, "/requests/2", map[string]string{"message": "Worked together at Acme"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var request models.ConnectionRequest
	decodeBody(t, resp, &request)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, profiles[0].ID, request.FromProfileID)

	t.Run("duplicate send conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/requests/2", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("sender sees it under sent", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/requests/sent", nil)
		var sent []models.ConnectionRequest
		decodeBody(t, resp, &sent)
		assert.Len(t, sent, 1)
	})

	t.Run("addressee sees it pending and accepts", func(t *testing.T) {
		caller = profiles[1].ID

		resp := doJSON(t, app, http.MethodGet, "/requests", nil)
		var pending []models.ConnectionRequest
		decodeBody(t, resp, &pending)
		assert.Len(t, pending, 1)

		resp = doJSON(t, app, http.MethodPost, "/requests/1/accept", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var edge models.NetworkEdge
		decodeBody(t, resp, &edge)
		assert.Equal(t, models.EdgeStatusActive, edge.Status)

		var edgeCount int64
		require.NoError(t, db.Model(&models.NetworkEdge{}).Count(&edgeCount).Error)
		assert.Equal(t, int64(1), edgeCount)
	})

	t.Run("accept replay conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/requests/1/accept", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestSendConnectionRequestValidation(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	profiles := seedHandlerProfiles(t, db, "Ada")

	caller := profiles[0].ID
	app := testApp(&caller)
	registerRequestRoutes(app, s)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"invalid profile id", "/requests/abc", http.StatusBadRequest},
		{"self target", "/requests/1", http.StatusBadRequest},
		{"unknown target", "/requests/99", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, tt.path, nil)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDeclineConnectionRequest(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(db)
	profiles := seedHandlerProfiles(t, db, "Ada", "Bo", "Cy")

	caller := profiles[0].ID
	app := testApp(&caller)
	registerRequestRoutes(app, s)

	resp := doJSON(t, app, http.MethodPost, "/requests/2", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("third party cannot decline", func(t *testing.T) {
		caller = profiles[2].ID
		resp := doJSON(t, app, http.MethodPost, "/requests/1/decline", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("addressee declines", func(t *testing.T) {
		caller = profiles[1].ID
		resp := doJSON(t, app, http.MethodPost, "/requests/1/decline", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		var request models.ConnectionRequest
		require.NoError(t, db.First(&request, 1).Error)
		assert.Equal(t, models.RequestStatusDeclined, request.Status)
	})

	t.Run("accept after decline conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/requests/1/accept", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
