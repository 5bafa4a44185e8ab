package graph

import (
	"context"
	"sort"

	"lattice/internal/models"
)

// Badge thresholds, evaluated in order: the first matching rule wins.
const (
	BadgeHighTrustMin   = 0.7
	BadgeMutualHeavyMin = 3
	BadgeGoodFitMin     = 0.5
)

// DefaultSuggestionLimit caps suggestion lists when callers pass no limit.
const DefaultSuggestionLimit = 10

// Candidate is a ranked friend-of-friend expansion result. The caller
// hydrates profile data; the ranker works on ids and trust only.
type Candidate struct {
	ProfileID     uint
	MutualCount   int
	AvgTrust      float64
	BestVia       uint
	BestPathScore float64
}

// Badge returns the explainability label for the candidate, or empty when no
// rule matches.
func (c Candidate) Badge() models.SuggestionBadge {
	switch {
	case c.AvgTrust >= BadgeHighTrustMin:
		return models.BadgeHighTrust
	case c.MutualCount >= BadgeMutualHeavyMin:
		return models.BadgeMutualHeavy
	case c.AvgTrust >= BadgeGoodFitMin:
		return models.BadgeGoodFit
	default:
		return ""
	}
}

// SuggestCandidates expands the caller's network two hops out: candidates are
// profiles reachable via exactly one active edge from one of the caller's
// active neighbors, excluding the caller, anyone already connected to or
// pending with the caller, and anyone in a blocked edge with the caller.
// Candidates are scored by the mean, across shared neighbors, of the two-hop
// path trust average, then sorted by trust descending, mutual count
// descending, profile id ascending, and truncated to limit.
func SuggestCandidates(ctx context.Context, adj Adjacency, profileID uint, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	vias, err := adj.ActiveNeighbors(ctx, profileID)
	if err != nil {
		return nil, err
	}

	neighborSet := make(map[uint]struct{}, len(vias))
	for _, v := range vias {
		neighborSet[v] = struct{}{}
	}

	type accum struct {
		count         int
		trustSum      float64
		bestVia       uint
		bestPathScore float64
	}
	byCandidate := make(map[uint]*accum)

	for _, via := range vias {
		firstHop, ok, err := activeEdgeTrust(ctx, adj, profileID, via)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		fofs, err := adj.ActiveNeighbors(ctx, via)
		if err != nil {
			return nil, err
		}
		for _, cand := range fofs {
			if cand == profileID {
				continue
			}
			if _, connected := neighborSet[cand]; connected {
				continue
			}
			secondHop, ok, err := activeEdgeTrust(ctx, adj, via, cand)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			pathScore := (firstHop + secondHop) / 2
			a, seen := byCandidate[cand]
			if !seen {
				a = &accum{}
				byCandidate[cand] = a
			}
			a.count++
			a.trustSum += pathScore
			if pathScore > a.bestPathScore || (pathScore == a.bestPathScore && (a.count == 1 || via < a.bestVia)) {
				a.bestVia = via
				a.bestPathScore = pathScore
			}
		}
	}

	candidates := make([]Candidate, 0, len(byCandidate))
	for id, a := range byCandidate {
		pending, err := adj.HasPendingRequest(ctx, profileID, id)
		if err != nil {
			return nil, err
		}
		if pending {
			continue
		}
		edge, err := adj.EdgeBetween(ctx, profileID, id)
		if err != nil {
			return nil, err
		}
		// A removed connection may resurface as a suggestion; a block never
		// does, in either direction.
		if edge != nil && edge.Status == models.EdgeStatusBlocked {
			continue
		}
		candidates = append(candidates, Candidate{
			ProfileID:     id,
			MutualCount:   a.count,
			AvgTrust:      a.trustSum / float64(a.count),
			BestVia:       a.bestVia,
			BestPathScore: a.bestPathScore,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].AvgTrust != candidates[j].AvgTrust {
			return candidates[i].AvgTrust > candidates[j].AvgTrust
		}
		if candidates[i].MutualCount != candidates[j].MutualCount {
			return candidates[i].MutualCount > candidates[j].MutualCount
		}
		return candidates[i].ProfileID < candidates[j].ProfileID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
