package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"lattice/internal/graph"
	"lattice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedProfiles(names map[uint]string) *profileRepoStub {
	repo := noopProfileRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Profile, error) {
		name, ok := names[id]
		if !ok {
			return nil, models.NewNotFoundError("Profile", id)
		}
		return &models.Profile{ID: id, DisplayName: name}, nil
	}
	repo.getByIDsFn = func(_ context.Context, ids []uint) (map[uint]models.Profile, error) {
		out := make(map[uint]models.Profile)
		for _, id := range ids {
			if name, ok := names[id]; ok {
				out[id] = models.Profile{ID: id, DisplayName: name}
			}
		}
		return out, nil
	}
	return repo
}

func TestDecisionNoTarget(t *testing.T) {
	svc := NewDecisionService(graph.NewMemoryAdjacency(), noopEdgeRepo(), noopSignalRepo(), noopProfileRepo())

	decision, err := svc.Decide(context.Background(), 1, models.IntentGeneral, 0)
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationHold, decision.Recommendation)
	assert.Equal(t, 0, decision.Confidence)
	assert.NotEmpty(t, decision.Reasons)
}

func TestDecisionInvalidIntent(t *testing.T) {
	svc := NewDecisionService(graph.NewMemoryAdjacency(), noopEdgeRepo(), noopSignalRepo(), noopProfileRepo())
	_, err := svc.Decide(context.Background(), 1, models.Intent("networking"), 2)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestDecisionAlreadyConnected(t *testing.T) {
	edges := noopEdgeRepo()
	edges.getEdgeBetweenFn = func(context.Context, uint, uint) (*models.NetworkEdge, error) {
		return &models.NetworkEdge{ID: 1, FromProfileID: 1, ToProfileID: 2, Status: models.EdgeStatusActive}, nil
	}
	svc := NewDecisionService(graph.NewMemoryAdjacency(), edges, noopSignalRepo(), noopProfileRepo())

	decision, err := svc.Decide(context.Background(), 1, models.IntentConnect, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationDo, decision.Recommendation)
	assert.Equal(t, 100, decision.Confidence)
	assert.NotEmpty(t, decision.Reasons)
}

// A (=1) and C (=3) are unconnected; B (=2) knows both. The decision must
// suggest the path through B and mention B by name.
func TestDecisionIntroductionPathScenario(t *testing.T) {
	adj := graph.NewMemoryAdjacency().
		AddEdge(1, 2, 0.8).
		AddEdge(2, 3, 0.6)

	profiles := namedProfiles(map[uint]string{1: "Ana", 2: "Bo", 3: "Cyd"})
	svc := NewDecisionService(adj, noopEdgeRepo(), noopSignalRepo(), profiles)

	decision, err := svc.Decide(context.Background(), 1, models.IntentIntroduction, 3)
	require.NoError(t, err)

	assert.Equal(t, models.RecommendationConsider, decision.Recommendation)
	require.NotNil(t, decision.SuggestedPath)
	assert.EqualValues(t, 2, decision.SuggestedPath.ViaProfileID)
	assert.InDelta(t, 0.7, decision.SuggestedPath.TrustScore, 1e-9)
	assert.Equal(t, "Bo", decision.SuggestedPath.ViaProfile.DisplayName)

	found := false
	for _, reason := range decision.Reasons {
		if strings.Contains(reason, "Bo") {
			found = true
		}
	}
	assert.True(t, found, "reasons %v should mention the via profile", decision.Reasons)
}

func TestDecisionHoldWithoutSignalsOrPaths(t *testing.T) {
	svc := NewDecisionService(graph.NewMemoryAdjacency(), noopEdgeRepo(), noopSignalRepo(), noopProfileRepo())

	decision, err := svc.Decide(context.Background(), 1, models.IntentGeneral, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationHold, decision.Recommendation)
	assert.Equal(t, 0, decision.Confidence)
	assert.NotEmpty(t, decision.Reasons, "hold is not presented as a bare score")
	require.NotNil(t, decision.TrustBreakdown)
	assert.Zero(t, decision.TrustBreakdown.Collaboration)
}

func TestDecisionScoresSpeculativeSignals(t *testing.T) {
	edges := noopEdgeRepo()
	edges.getEdgeBetweenFn = func(context.Context, uint, uint) (*models.NetworkEdge, error) {
		return &models.NetworkEdge{ID: 4, FromProfileID: 1, ToProfileID: 2, Status: models.EdgeStatusPending}, nil
	}
	repo := noopSignalRepo()
	repo.listCurrentByEdgeFn = func(context.Context, uint, time.Time) ([]models.TrustSignal, error) {
		return []models.TrustSignal{
			{EdgeID: 4, SignalType: models.SignalCollaboration, Weight: 1.0},
			{EdgeID: 4, SignalType: models.SignalEndorsement, Weight: 1.0},
			{EdgeID: 4, SignalType: models.SignalMutualOverlap, Weight: 1.0},
		}, nil
	}
	svc := NewDecisionService(graph.NewMemoryAdjacency(), edges, repo, noopProfileRepo())

	decision, err := svc.Decide(context.Background(), 1, models.IntentCollaboration, 2)
	require.NoError(t, err)

	// 0.35 + 0.20 + 0.20 = 0.75 >= the do threshold.
	assert.Equal(t, models.RecommendationDo, decision.Recommendation)
	assert.Equal(t, 75, decision.Confidence)
	assert.Contains(t, decision.Reasons, "You share mutual connections")
	assert.Contains(t, decision.Reasons, "You have collaboration history")
}

func TestSuggestHydratesAndBadges(t *testing.T) {
	// 1 knows 2 and 3; both know 4. 5 is pending with 1 via 2.
	adj := graph.NewMemoryAdjacency().
		AddEdge(1, 2, 0.9).
		AddEdge(1, 3, 0.7).
		AddEdge(2, 4, 0.7).
		AddEdge(3, 4, 0.5).
		AddEdge(2, 5, 0.9).
		AddPending(1, 5)

	profiles := namedProfiles(map[uint]string{1: "Ana", 2: "Bo", 3: "Cyd", 4: "Dee", 5: "Eli"})
	svc := NewDecisionService(adj, noopEdgeRepo(), noopSignalRepo(), profiles)

	suggestions, err := svc.Suggest(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1, "pending candidates are excluded")

	s := suggestions[0]
	assert.EqualValues(t, 4, s.Profile.ID)
	assert.Equal(t, "Dee", s.Profile.DisplayName)
	assert.Equal(t, 2, s.MutualCount)
	// Path averages: (0.9+0.7)/2 = 0.8 via 2, (0.7+0.5)/2 = 0.6 via 3.
	assert.InDelta(t, 0.7, s.AvgTrust, 1e-9)
	assert.Equal(t, models.BadgeHighTrust, s.Badge)
	require.NotNil(t, s.BestPath)
	assert.EqualValues(t, 2, s.BestPath.ViaProfileID)
	assert.Equal(t, "Bo", s.BestPath.ViaProfile.DisplayName)
	assert.NotEmpty(t, s.Reasons)
}

func TestSuggestEmptyNetwork(t *testing.T) {
	svc := NewDecisionService(graph.NewMemoryAdjacency(), noopEdgeRepo(), noopSignalRepo(), noopProfileRepo())
	suggestions, err := svc.Suggest(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
