package repository

import (
	"context"
	"time"

	"lattice/internal/models"

	"gorm.io/gorm"
)

// SignalRepository defines the interface for trust signal data operations.
// Signals are append-only: there is deliberately no update or delete method.
type SignalRepository interface {
	Append(ctx context.Context, signal *models.TrustSignal) error
	// ListCurrentByEdge returns the non-expired signals attached to an edge.
	ListCurrentByEdge(ctx context.Context, edgeID uint, now time.Time) ([]models.TrustSignal, error)
	ListByEdge(ctx context.Context, edgeID uint) ([]models.TrustSignal, error)
	WithTx(tx *gorm.DB) SignalRepository
}

// signalRepository implements SignalRepository
type signalRepository struct {
	db *gorm.DB
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(db *gorm.DB) SignalRepository {
	return &signalRepository{db: db}
}

func (r *signalRepository) WithTx(tx *gorm.DB) SignalRepository {
	return &signalRepository{db: tx}
}

func (r *signalRepository) Append(ctx context.Context, signal *models.TrustSignal) error {
	if err := r.db.WithContext(ctx).Create(signal).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *signalRepository) ListCurrentByEdge(ctx context.Context, edgeID uint, now time.Time) ([]models.TrustSignal, error) {
	var signals []models.TrustSignal
	if err := r.db.WithContext(ctx).
		Where("edge_id = ? AND (expires_at IS NULL OR expires_at > ?)", edgeID, now).
		Order("created_at ASC").
		Find(&signals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return signals, nil
}

func (r *signalRepository) ListByEdge(ctx context.Context, edgeID uint) ([]models.TrustSignal, error) {
	var signals []models.TrustSignal
	if err := r.db.WithContext(ctx).
		Where("edge_id = ?", edgeID).
		Order("created_at ASC").
		Find(&signals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return signals, nil
}
