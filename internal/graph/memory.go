package graph

import (
	"context"
	"sync"

	"lattice/internal/models"
)

// MemoryAdjacency is a simple in-memory implementation of the Adjacency
// interface used for unit testing traversal logic without a running database.
type MemoryAdjacency struct {
	mu      sync.Mutex
	edges   map[[2]uint]*models.NetworkEdge
	pending map[[2]uint]bool
}

// NewMemoryAdjacency instantiates an empty in-memory graph.
func NewMemoryAdjacency() *MemoryAdjacency {
	return &MemoryAdjacency{
		edges:   make(map[[2]uint]*models.NetworkEdge),
		pending: make(map[[2]uint]bool),
	}
}

func pairKey(a, b uint) [2]uint {
	if a > b {
		a, b = b, a
	}
	return [2]uint{a, b}
}

// AddEdge inserts an active edge with the given trust between two profiles.
func (m *MemoryAdjacency) AddEdge(a, b uint, trust float64) *MemoryAdjacency {
	return m.AddEdgeWithStatus(a, b, trust, models.EdgeStatusActive)
}

// AddEdgeWithStatus inserts an edge with an explicit status.
func (m *MemoryAdjacency) AddEdgeWithStatus(a, b uint, trust float64, status models.EdgeStatus) *MemoryAdjacency {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges[pairKey(a, b)] = &models.NetworkEdge{
		FromProfileID: a,
		ToProfileID:   b,
		Trust:         trust,
		Status:        status,
	}
	return m
}

// AddPending marks a pending connection request between two profiles.
func (m *MemoryAdjacency) AddPending(a, b uint) *MemoryAdjacency {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[pairKey(a, b)] = true
	return m
}

// ActiveNeighbors implements Adjacency.
func (m *MemoryAdjacency) ActiveNeighbors(_ context.Context, profileID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uint
	for _, e := range m.edges {
		if e.Status != models.EdgeStatusActive || !e.Involves(profileID) {
			continue
		}
		out = append(out, e.OtherProfileID(profileID))
	}
	return out, nil
}

// EdgeBetween implements Adjacency.
func (m *MemoryAdjacency) EdgeBetween(_ context.Context, a, b uint) (*models.NetworkEdge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.edges[pairKey(a, b)]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

// HasPendingRequest implements Adjacency.
func (m *MemoryAdjacency) HasPendingRequest(_ context.Context, a, b uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending[pairKey(a, b)], nil
}
