package repository

import (
	"context"
	"errors"
	"time"

	"lattice/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EdgeRepository defines the interface for network edge data operations.
// Mutating methods that participate in a trust recompute must be called on a
// repository bound to a transaction (see WithTx) so per-edge updates stay
// serialized.
type EdgeRepository interface {
	Create(ctx context.Context, edge *models.NetworkEdge) error
	GetByID(ctx context.Context, id uint) (*models.NetworkEdge, error)
	// GetByIDForUpdate loads the edge with a row lock, serializing concurrent
	// signal-append/trust-recompute cycles on the same edge.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.NetworkEdge, error)
	GetEdgeBetween(ctx context.Context, profileID1, profileID2 uint) (*models.NetworkEdge, error)
	GetActiveEdges(ctx context.Context, profileID uint) ([]models.NetworkEdge, error)
	ListByProfile(ctx context.Context, profileID uint) ([]models.NetworkEdge, error)
	ActiveNeighborIDs(ctx context.Context, profileID uint) ([]uint, error)
	UpdateStatus(ctx context.Context, edgeID uint, status models.EdgeStatus) error
	UpdateTrust(ctx context.Context, edgeID uint, trust float64) error
	UpdateStrength(ctx context.Context, edgeID uint, strength float64) error
	TouchInteraction(ctx context.Context, edgeID uint, at time.Time) error
	WithTx(tx *gorm.DB) EdgeRepository
}

// edgeRepository implements EdgeRepository
type edgeRepository struct {
	db *gorm.DB
}

// NewEdgeRepository creates a new edge repository
func NewEdgeRepository(db *gorm.DB) EdgeRepository {
	return &edgeRepository{db: db}
}

func (r *edgeRepository) WithTx(tx *gorm.DB) EdgeRepository {
	return &edgeRepository{db: tx}
}

func (r *edgeRepository) Create(ctx context.Context, edge *models.NetworkEdge) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A connection between these profiles already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *edgeRepository) GetByID(ctx context.Context, id uint) (*models.NetworkEdge, error) {
	var edge models.NetworkEdge
	if err := r.db.WithContext(ctx).Preload("FromProfile").Preload("ToProfile").First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Edge", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *edgeRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.NetworkEdge, error) {
	q := r.db.WithContext(ctx)
	// sqlite serializes writers on its own and rejects FOR UPDATE.
	if r.db.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var edge models.NetworkEdge
	if err := q.First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Edge", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *edgeRepository) GetEdgeBetween(ctx context.Context, profileID1, profileID2 uint) (*models.NetworkEdge, error) {
	var edge models.NetworkEdge

	// Find the edge where the profiles participate in either order
	if err := r.db.WithContext(ctx).
		Where("(from_profile_id = ? AND to_profile_id = ?) OR (from_profile_id = ? AND to_profile_id = ?)",
			profileID1, profileID2, profileID2, profileID1).
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No edge exists
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *edgeRepository) GetActiveEdges(ctx context.Context, profileID uint) ([]models.NetworkEdge, error) {
	var edges []models.NetworkEdge

	if err := r.db.WithContext(ctx).
		Where("status = ? AND (from_profile_id = ? OR to_profile_id = ?)",
			models.EdgeStatusActive, profileID, profileID).
		Preload("FromProfile").
		Preload("ToProfile").
		Order("trust DESC").
		Order("COALESCE(last_interaction_at, updated_at) DESC").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return edges, nil
}

func (r *edgeRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.NetworkEdge, error) {
	var edges []models.NetworkEdge
	if err := r.db.WithContext(ctx).
		Where("from_profile_id = ? OR to_profile_id = ?", profileID, profileID).
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

func (r *edgeRepository) ActiveNeighborIDs(ctx context.Context, profileID uint) ([]uint, error) {
	edges, err := r.GetActiveEdgesLean(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].OtherProfileID(profileID))
	}
	return ids, nil
}

// GetActiveEdgesLean loads active edges without profile preloads, for traversal.
func (r *edgeRepository) GetActiveEdgesLean(ctx context.Context, profileID uint) ([]models.NetworkEdge, error) {
	var edges []models.NetworkEdge
	if err := r.db.WithContext(ctx).
		Where("status = ? AND (from_profile_id = ? OR to_profile_id = ?)",
			models.EdgeStatusActive, profileID, profileID).
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

func (r *edgeRepository) UpdateStatus(ctx context.Context, edgeID uint, status models.EdgeStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.NetworkEdge{}).
		Where("id = ?", edgeID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *edgeRepository) UpdateTrust(ctx context.Context, edgeID uint, trust float64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.NetworkEdge{}).
		Where("id = ?", edgeID).
		Update("trust", trust).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *edgeRepository) UpdateStrength(ctx context.Context, edgeID uint, strength float64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.NetworkEdge{}).
		Where("id = ?", edgeID).
		Update("strength", strength).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *edgeRepository) TouchInteraction(ctx context.Context, edgeID uint, at time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&models.NetworkEdge{}).
		Where("id = ?", edgeID).
		Update("last_interaction_at", at).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
