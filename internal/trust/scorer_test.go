package trust

import (
	"testing"
	"time"

	"lattice/internal/models"

	"github.com/stretchr/testify/assert"
)

func signal(t models.SignalType, weight float64) models.TrustSignal {
	return models.TrustSignal{SignalType: t, Weight: weight}
}

func TestComponentWeightsSumToOne(t *testing.T) {
	sum := WeightCollaboration + WeightMutuals + WeightEndorsement +
		WeightInteractionQuality + WeightFreshness
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestScoreEmptySignals(t *testing.T) {
	breakdown, total := Score(nil)
	assert.Equal(t, models.TrustBreakdown{}, breakdown)
	assert.Zero(t, total)
}

func TestScoreSingleComponent(t *testing.T) {
	_, total := Score([]models.TrustSignal{signal(models.SignalCollaboration, 0.8)})
	assert.InDelta(t, 0.8*WeightCollaboration, total, 1e-9)
}

func TestScoreAveragesWithinComponent(t *testing.T) {
	breakdown, _ := Score([]models.TrustSignal{
		signal(models.SignalCollaboration, 0.4),
		signal(models.SignalCollaboration, 0.8),
	})
	assert.InDelta(t, 0.6, breakdown.Collaboration, 1e-9)
}

func TestScoreIgnoresExpiredSignals(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	live := signal(models.SignalEndorsement, 0.9)
	dead := signal(models.SignalEndorsement, 0.1)
	dead.ExpiresAt = &past

	breakdown, _ := ScoreAt(now, []models.TrustSignal{live, dead})
	assert.InDelta(t, 0.9, breakdown.Endorsement, 1e-9)
}

func TestScoreIntroHistoryCountsAsEndorsement(t *testing.T) {
	breakdown, _ := Score([]models.TrustSignal{signal(models.SignalIntroHistory, 0.6)})
	assert.InDelta(t, 0.6, breakdown.Endorsement, 1e-9)
	assert.Zero(t, breakdown.Collaboration)
}

func TestScoreDeterministic(t *testing.T) {
	signals := []models.TrustSignal{
		signal(models.SignalCollaboration, 0.7),
		signal(models.SignalMutualOverlap, 0.5),
		signal(models.SignalFreshness, 0.3),
	}
	b1, t1 := Score(signals)
	b2, t2 := Score(signals)
	assert.Equal(t, b1, b2)
	assert.Equal(t, t1, t2)
}

// Two edges with identical signal sets must score identically regardless of
// how many connections either endpoint has: connection count is not an input
// to the formula.
func TestScoreIgnoresPopularity(t *testing.T) {
	signals := []models.TrustSignal{
		signal(models.SignalCollaboration, 0.9),
		signal(models.SignalEndorsement, 0.6),
	}
	sparse := make([]models.TrustSignal, len(signals))
	copy(sparse, signals)
	sparse[0].EdgeID = 1
	sparse[1].EdgeID = 1
	popular := make([]models.TrustSignal, len(signals))
	copy(popular, signals)
	popular[0].EdgeID = 9999
	popular[1].EdgeID = 9999

	_, sparseTotal := Score(sparse)
	_, popularTotal := Score(popular)
	assert.Equal(t, sparseTotal, popularTotal)
}

func TestScoreTotalClamped(t *testing.T) {
	signals := []models.TrustSignal{
		signal(models.SignalCollaboration, 1),
		signal(models.SignalMutualOverlap, 1),
		signal(models.SignalEndorsement, 1),
		signal(models.SignalInteractionQuality, 1),
		signal(models.SignalFreshness, 1),
	}
	_, total := Score(signals)
	assert.LessOrEqual(t, total, 1.0)
	assert.GreaterOrEqual(t, total, 0.0)
}

func TestRecomputeEdgeTrustAmplifies(t *testing.T) {
	got := RecomputeEdgeTrust([]models.TrustSignal{
		signal(models.SignalCollaboration, 0.5),
	}, 0.2)
	assert.InDelta(t, 0.6, got, 1e-9)
}

func TestRecomputeEdgeTrustCapped(t *testing.T) {
	got := RecomputeEdgeTrust([]models.TrustSignal{
		signal(models.SignalEndorsement, 0.95),
	}, 0.2)
	assert.Equal(t, 1.0, got)
}

func TestRecomputeEdgeTrustPreservesPriorWithoutSignals(t *testing.T) {
	assert.Equal(t, 0.42, RecomputeEdgeTrust(nil, 0.42))
}

func TestRecomputeEdgeTrustSkipsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	dead := signal(models.SignalCollaboration, 1.0)
	dead.ExpiresAt = &past

	got := RecomputeEdgeTrustAt(now, []models.TrustSignal{dead}, 0.3)
	assert.Equal(t, 0.3, got)
}
