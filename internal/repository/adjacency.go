package repository

import (
	"context"

	"lattice/internal/models"
)

// GraphAdjacency exposes the edge and request stores as a graph adjacency
// view for the path finder and suggestion ranker.
type GraphAdjacency struct {
	edges    EdgeRepository
	requests RequestRepository
}

// NewGraphAdjacency creates an adjacency view backed by the given repositories
func NewGraphAdjacency(edges EdgeRepository, requests RequestRepository) *GraphAdjacency {
	return &GraphAdjacency{edges: edges, requests: requests}
}

func (g *GraphAdjacency) ActiveNeighbors(ctx context.Context, profileID uint) ([]uint, error) {
	return g.edges.ActiveNeighborIDs(ctx, profileID)
}

func (g *GraphAdjacency) EdgeBetween(ctx context.Context, profileID1, profileID2 uint) (*models.NetworkEdge, error) {
	return g.edges.GetEdgeBetween(ctx, profileID1, profileID2)
}

func (g *GraphAdjacency) HasPendingRequest(ctx context.Context, profileID1, profileID2 uint) (bool, error) {
	return g.requests.HasPendingBetween(ctx, profileID1, profileID2)
}
