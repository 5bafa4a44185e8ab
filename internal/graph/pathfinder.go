package graph

import (
	"context"
	"sort"

	"lattice/internal/models"
)

// DefaultPathLimit is the number of introduction paths returned when the
// caller does not specify one.
const DefaultPathLimit = 3

// PathReason is the static explanation attached to every introduction path.
const PathReason = "Connected to both of you and could make a warm introduction"

// FindIntroductionPaths locates two-hop chains from -> via -> to where both
// constituent edges are active. Vias are ranked by the average trust of the
// two edges, descending; ties break on ascending via profile id so results
// are reproducible. At most k paths are returned. Deeper paths are considered
// too weak to recommend and are never searched.
func FindIntroductionPaths(ctx context.Context, adj Adjacency, from, to uint, k int) ([]models.IntroductionPath, error) {
	if k <= 0 {
		k = DefaultPathLimit
	}

	vias, err := adj.ActiveNeighbors(ctx, from)
	if err != nil {
		return nil, err
	}

	paths := make([]models.IntroductionPath, 0, len(vias))
	for _, via := range vias {
		if via == from || via == to {
			continue
		}
		firstHop, ok, err := activeEdgeTrust(ctx, adj, from, via)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		secondHop, ok, err := activeEdgeTrust(ctx, adj, via, to)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		paths = append(paths, models.IntroductionPath{
			ViaProfileID: via,
			TrustScore:   (firstHop + secondHop) / 2,
			Reason:       PathReason,
		})
	}

	sort.Slice(paths, func(i, j int) bool {
		if paths[i].TrustScore != paths[j].TrustScore {
			return paths[i].TrustScore > paths[j].TrustScore
		}
		return paths[i].ViaProfileID < paths[j].ViaProfileID
	})

	if len(paths) > k {
		paths = paths[:k]
	}
	return paths, nil
}
