// Package graph implements trust-weighted traversal over the network edge
// store: two-hop introduction paths and friend-of-friend suggestion ranking.
// Both algorithms are written purely in terms of the Adjacency interface so
// they stay decoupled from whatever storage engine backs the graph.
package graph

import (
	"context"

	"lattice/internal/models"
)

// Adjacency is the minimal adjacency-query contract the traversal algorithms
// require from the edge store.
type Adjacency interface {
	// ActiveNeighbors returns the profile ids connected to profileID by an
	// active edge.
	ActiveNeighbors(ctx context.Context, profileID uint) ([]uint, error)
	// EdgeBetween returns the edge between two profiles in either direction,
	// or nil when none exists.
	EdgeBetween(ctx context.Context, a, b uint) (*models.NetworkEdge, error)
	// HasPendingRequest reports whether a pending connection request exists
	// between two profiles in either direction.
	HasPendingRequest(ctx context.Context, a, b uint) (bool, error)
}

// activeEdgeTrust returns the trust of the active edge between a and b, or
// ok=false when no active edge exists.
func activeEdgeTrust(ctx context.Context, adj Adjacency, a, b uint) (float64, bool, error) {
	edge, err := adj.EdgeBetween(ctx, a, b)
	if err != nil {
		return 0, false, err
	}
	if edge == nil || edge.Status != models.EdgeStatusActive {
		return 0, false, nil
	}
	return edge.Trust, true, nil
}
