package repository

import (
	"context"

	"lattice/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for interaction feedback data operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.InteractionFeedback) error
	ListByEdge(ctx context.Context, edgeID uint) ([]models.InteractionFeedback, error)
	WithTx(tx *gorm.DB) FeedbackRepository
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new interaction feedback repository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) WithTx(tx *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: tx}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.InteractionFeedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *feedbackRepository) ListByEdge(ctx context.Context, edgeID uint) ([]models.InteractionFeedback, error) {
	var feedback []models.InteractionFeedback
	if err := r.db.WithContext(ctx).
		Where("edge_id = ?", edgeID).
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feedback, nil
}
