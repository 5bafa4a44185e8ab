// Package trust computes trust scores from the signals attached to an edge.
// All weighting policy lives here as named constants so it can be audited and
// tested independently of graph traversal and storage.
package trust

import (
	"math"
	"time"

	"lattice/internal/models"
)

// Global component weights for the decision-time trust formula. Raw
// connection count carries zero weight: popularity never substitutes for
// demonstrated trust.
const (
	WeightCollaboration      = 0.35
	WeightMutuals            = 0.20
	WeightEndorsement        = 0.20
	WeightInteractionQuality = 0.15
	WeightFreshness          = 0.10
)

// EdgeTrustAmplification is the factor applied to the mean signal weight when
// recomputing an edge's stored trust value.
const EdgeTrustAmplification = 1.2

// Score combines the current non-expired signal set into a five-component
// breakdown and a weighted total in [0,1]. It is a pure function of the
// signals: recomputing without new signals yields the same value.
func Score(signals []models.TrustSignal) (models.TrustBreakdown, float64) {
	return ScoreAt(time.Now(), signals)
}

// ScoreAt is Score evaluated at an explicit instant, for deterministic expiry
// handling in tests.
func ScoreAt(now time.Time, signals []models.TrustSignal) (models.TrustBreakdown, float64) {
	var sums, counts [5]float64
	for i := range signals {
		s := &signals[i]
		if s.Expired(now) {
			continue
		}
		c := componentFor(s.SignalType)
		sums[c] += s.Weight
		counts[c]++
	}

	mean := func(c component) float64 {
		if counts[c] == 0 {
			return 0
		}
		return clamp01(sums[c] / counts[c])
	}

	breakdown := models.TrustBreakdown{
		Collaboration:      mean(componentCollaboration),
		Mutuals:            mean(componentMutuals),
		Endorsement:        mean(componentEndorsement),
		InteractionQuality: mean(componentInteractionQuality),
		Freshness:          mean(componentFreshness),
	}

	total := breakdown.Collaboration*WeightCollaboration +
		breakdown.Mutuals*WeightMutuals +
		breakdown.Endorsement*WeightEndorsement +
		breakdown.InteractionQuality*WeightInteractionQuality +
		breakdown.Freshness*WeightFreshness

	return breakdown, clamp01(total)
}

// RecomputeEdgeTrust derives the stored trust value for an edge from its
// current non-expired signals: mean signal weight amplified by
// EdgeTrustAmplification, capped at 1.0. With zero signals the prior trust is
// preserved; a young edge never resets to zero merely because no evidence has
// accumulated yet.
//
// This storage-side formula is deliberately distinct from the five-component
// decision formula in Score.
func RecomputeEdgeTrust(signals []models.TrustSignal, prior float64) float64 {
	return RecomputeEdgeTrustAt(time.Now(), signals, prior)
}

// RecomputeEdgeTrustAt is RecomputeEdgeTrust evaluated at an explicit instant.
func RecomputeEdgeTrustAt(now time.Time, signals []models.TrustSignal, prior float64) float64 {
	var sum float64
	var n int
	for i := range signals {
		if signals[i].Expired(now) {
			continue
		}
		sum += signals[i].Weight
		n++
	}
	if n == 0 {
		return prior
	}
	return math.Min(sum/float64(n)*EdgeTrustAmplification, 1.0)
}

type component int

const (
	componentCollaboration component = iota
	componentMutuals
	componentEndorsement
	componentInteractionQuality
	componentFreshness
)

// componentFor maps each signal type to exactly one breakdown component.
// Introductions count as endorsements: being introduced is a vouching act,
// not collaboration history.
func componentFor(t models.SignalType) component {
	switch t {
	case models.SignalCollaboration:
		return componentCollaboration
	case models.SignalMutualOverlap:
		return componentMutuals
	case models.SignalEndorsement, models.SignalIntroHistory:
		return componentEndorsement
	case models.SignalInteractionQuality:
		return componentInteractionQuality
	case models.SignalFreshness:
		return componentFreshness
	default:
		return componentInteractionQuality
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
