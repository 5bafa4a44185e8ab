package repository

import (
	"context"
	"errors"
	"time"

	"lattice/internal/models"

	"gorm.io/gorm"
)

// RequestRepository defines the interface for connection request data operations.
type RequestRepository interface {
	Create(ctx context.Context, request *models.ConnectionRequest) error
	GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error)
	// GetPendingBetweenOrdered returns the pending request for the exact
	// (from, to) direction, or nil when none exists.
	GetPendingBetweenOrdered(ctx context.Context, fromProfileID, toProfileID uint) (*models.ConnectionRequest, error)
	HasPendingBetween(ctx context.Context, profileID1, profileID2 uint) (bool, error)
	GetPendingFor(ctx context.Context, profileID uint, now time.Time) ([]models.ConnectionRequest, error)
	GetSentBy(ctx context.Context, profileID uint, now time.Time) ([]models.ConnectionRequest, error)
	// MarkResponded transitions a pending request to a terminal status. It
	// returns false when the request was not pending anymore, making the
	// single-transition invariant race-safe.
	MarkResponded(ctx context.Context, requestID uint, status models.RequestStatus, at time.Time) (bool, error)
	WithTx(tx *gorm.DB) RequestRepository
}

// requestRepository implements RequestRepository
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new connection request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) WithTx(tx *gorm.DB) RequestRepository {
	return &requestRepository{db: tx}
}

func (r *requestRepository) Create(ctx context.Context, request *models.ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A pending request between these profiles already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.WithContext(ctx).Preload("FromProfile").Preload("ToProfile").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *requestRepository) GetPendingBetweenOrdered(ctx context.Context, fromProfileID, toProfileID uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("from_profile_id = ? AND to_profile_id = ? AND status = ?",
			fromProfileID, toProfileID, models.RequestStatusPending).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *requestRepository) HasPendingBetween(ctx context.Context, profileID1, profileID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("status = ? AND ((from_profile_id = ? AND to_profile_id = ?) OR (from_profile_id = ? AND to_profile_id = ?))",
			models.RequestStatusPending, profileID1, profileID2, profileID2, profileID1).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *requestRepository) GetPendingFor(ctx context.Context, profileID uint, now time.Time) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest

	// Pending requests addressed to the profile; passively expired rows are filtered out.
	if err := r.db.WithContext(ctx).
		Where("to_profile_id = ? AND status = ? AND expires_at > ?",
			profileID, models.RequestStatusPending, now).
		Preload("FromProfile").
		Preload("ToProfile").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *requestRepository) GetSentBy(ctx context.Context, profileID uint, now time.Time) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest

	if err := r.db.WithContext(ctx).
		Where("from_profile_id = ? AND status = ? AND expires_at > ?",
			profileID, models.RequestStatusPending, now).
		Preload("FromProfile").
		Preload("ToProfile").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *requestRepository) MarkResponded(ctx context.Context, requestID uint, status models.RequestStatus, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": at,
		})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}
