package service

import (
	"context"
	"time"

	"lattice/internal/models"
	"lattice/internal/repository"

	"gorm.io/gorm"
)

type edgeRepoStub struct {
	createFn            func(context.Context, *models.NetworkEdge) error
	getByIDFn           func(context.Context, uint) (*models.NetworkEdge, error)
	getByIDForUpdateFn  func(context.Context, uint) (*models.NetworkEdge, error)
	getEdgeBetweenFn    func(context.Context, uint, uint) (*models.NetworkEdge, error)
	getActiveEdgesFn    func(context.Context, uint) ([]models.NetworkEdge, error)
	listByProfileFn     func(context.Context, uint) ([]models.NetworkEdge, error)
	activeNeighborIDsFn func(context.Context, uint) ([]uint, error)
	updateStatusFn      func(context.Context, uint, models.EdgeStatus) error
	updateTrustFn       func(context.Context, uint, float64) error
	updateStrengthFn    func(context.Context, uint, float64) error
	touchInteractionFn  func(context.Context, uint, time.Time) error
}

func (s *edgeRepoStub) Create(ctx context.Context, edge *models.NetworkEdge) error {
	return s.createFn(ctx, edge)
}
func (s *edgeRepoStub) GetByID(ctx context.Context, id uint) (*models.NetworkEdge, error) {
	return s.getByIDFn(ctx, id)
}
func (s *edgeRepoStub) GetByIDForUpdate(ctx context.Context, id uint) (*models.NetworkEdge, error) {
	return s.getByIDForUpdateFn(ctx, id)
}
func (s *edgeRepoStub) GetEdgeBetween(ctx context.Context, a, b uint) (*models.NetworkEdge, error) {
	return s.getEdgeBetweenFn(ctx, a, b)
}
func (s *edgeRepoStub) GetActiveEdges(ctx context.Context, profileID uint) ([]models.NetworkEdge, error) {
	return s.getActiveEdgesFn(ctx, profileID)
}
func (s *edgeRepoStub) ListByProfile(ctx context.Context, profileID uint) ([]models.NetworkEdge, error) {
	return s.listByProfileFn(ctx, profileID)
}
func (s *edgeRepoStub) ActiveNeighborIDs(ctx context.Context, profileID uint) ([]uint, error) {
	return s.activeNeighborIDsFn(ctx, profileID)
}
func (s *edgeRepoStub) UpdateStatus(ctx context.Context, edgeID uint, status models.EdgeStatus) error {
	return s.updateStatusFn(ctx, edgeID, status)
}
func (s *edgeRepoStub) UpdateTrust(ctx context.Context, edgeID uint, trust float64) error {
	return s.updateTrustFn(ctx, edgeID, trust)
}
func (s *edgeRepoStub) UpdateStrength(ctx context.Context, edgeID uint, strength float64) error {
	return s.updateStrengthFn(ctx, edgeID, strength)
}
func (s *edgeRepoStub) TouchInteraction(ctx context.Context, edgeID uint, at time.Time) error {
	return s.touchInteractionFn(ctx, edgeID, at)
}
func (s *edgeRepoStub) WithTx(tx *gorm.DB) repository.EdgeRepository { return s }

func noopEdgeRepo() *edgeRepoStub {
	return &edgeRepoStub{
		createFn:            func(context.Context, *models.NetworkEdge) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.NetworkEdge, error) { return &models.NetworkEdge{}, nil },
		getByIDForUpdateFn:  func(context.Context, uint) (*models.NetworkEdge, error) { return &models.NetworkEdge{}, nil },
		getEdgeBetweenFn:    func(context.Context, uint, uint) (*models.NetworkEdge, error) { return nil, nil },
		getActiveEdgesFn:    func(context.Context, uint) ([]models.NetworkEdge, error) { return nil, nil },
		listByProfileFn:     func(context.Context, uint) ([]models.NetworkEdge, error) { return nil, nil },
		activeNeighborIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		updateStatusFn:      func(context.Context, uint, models.EdgeStatus) error { return nil },
		updateTrustFn:       func(context.Context, uint, float64) error { return nil },
		updateStrengthFn:    func(context.Context, uint, float64) error { return nil },
		touchInteractionFn:  func(context.Context, uint, time.Time) error { return nil },
	}
}

type requestRepoStub struct {
	createFn                  func(context.Context, *models.ConnectionRequest) error
	getByIDFn                 func(context.Context, uint) (*models.ConnectionRequest, error)
	getPendingBetweenOrderedFn func(context.Context, uint, uint) (*models.ConnectionRequest, error)
	hasPendingBetweenFn       func(context.Context, uint, uint) (bool, error)
	getPendingForFn           func(context.Context, uint, time.Time) ([]models.ConnectionRequest, error)
	getSentByFn               func(context.Context, uint, time.Time) ([]models.ConnectionRequest, error)
	markRespondedFn           func(context.Context, uint, models.RequestStatus, time.Time) (bool, error)
}

func (s *requestRepoStub) Create(ctx context.Context, request *models.ConnectionRequest) error {
	return s.createFn(ctx, request)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) GetPendingBetweenOrdered(ctx context.Context, from, to uint) (*models.ConnectionRequest, error) {
	return s.getPendingBetweenOrderedFn(ctx, from, to)
}
func (s *requestRepoStub) HasPendingBetween(ctx context.Context, a, b uint) (bool, error) {
	return s.hasPendingBetweenFn(ctx, a, b)
}
func (s *requestRepoStub) GetPendingFor(ctx context.Context, profileID uint, now time.Time) ([]models.ConnectionRequest, error) {
	return s.getPendingForFn(ctx, profileID, now)
}
func (s *requestRepoStub) GetSentBy(ctx context.Context, profileID uint, now time.Time) ([]models.ConnectionRequest, error) {
	return s.getSentByFn(ctx, profileID, now)
}
func (s *requestRepoStub) MarkResponded(ctx context.Context, requestID uint, status models.RequestStatus, at time.Time) (bool, error) {
	return s.markRespondedFn(ctx, requestID, status, at)
}
func (s *requestRepoStub) WithTx(tx *gorm.DB) repository.RequestRepository { return s }

func noopRequestRepo() *requestRepoStub {
	return &requestRepoStub{
		createFn:  func(context.Context, *models.ConnectionRequest) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.ConnectionRequest, error) { return &models.ConnectionRequest{}, nil },
		getPendingBetweenOrderedFn: func(context.Context, uint, uint) (*models.ConnectionRequest, error) {
			return nil, nil
		},
		hasPendingBetweenFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		getPendingForFn: func(context.Context, uint, time.Time) ([]models.ConnectionRequest, error) {
			return nil, nil
		},
		getSentByFn: func(context.Context, uint, time.Time) ([]models.ConnectionRequest, error) {
			return nil, nil
		},
		markRespondedFn: func(context.Context, uint, models.RequestStatus, time.Time) (bool, error) {
			return true, nil
		},
	}
}

type signalRepoStub struct {
	appendFn            func(context.Context, *models.TrustSignal) error
	listCurrentByEdgeFn func(context.Context, uint, time.Time) ([]models.TrustSignal, error)
	listByEdgeFn        func(context.Context, uint) ([]models.TrustSignal, error)
}

func (s *signalRepoStub) Append(ctx context.Context, signal *models.TrustSignal) error {
	return s.appendFn(ctx, signal)
}
func (s *signalRepoStub) ListCurrentByEdge(ctx context.Context, edgeID uint, now time.Time) ([]models.TrustSignal, error) {
	return s.listCurrentByEdgeFn(ctx, edgeID, now)
}
func (s *signalRepoStub) ListByEdge(ctx context.Context, edgeID uint) ([]models.TrustSignal, error) {
	return s.listByEdgeFn(ctx, edgeID)
}
func (s *signalRepoStub) WithTx(tx *gorm.DB) repository.SignalRepository { return s }

func noopSignalRepo() *signalRepoStub {
	return &signalRepoStub{
		appendFn:            func(context.Context, *models.TrustSignal) error { return nil },
		listCurrentByEdgeFn: func(context.Context, uint, time.Time) ([]models.TrustSignal, error) { return nil, nil },
		listByEdgeFn:        func(context.Context, uint) ([]models.TrustSignal, error) { return nil, nil },
	}
}

type profileRepoStub struct {
	getByIDFn  func(context.Context, uint) (*models.Profile, error)
	getByIDsFn func(context.Context, []uint) (map[uint]models.Profile, error)
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByIDs(ctx context.Context, ids []uint) (map[uint]models.Profile, error) {
	return s.getByIDsFn(ctx, ids)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, DisplayName: "Profile"}, nil
		},
		getByIDsFn: func(_ context.Context, ids []uint) (map[uint]models.Profile, error) {
			out := make(map[uint]models.Profile, len(ids))
			for _, id := range ids {
				out[id] = models.Profile{ID: id, DisplayName: "Profile"}
			}
			return out, nil
		},
	}
}

type feedbackRepoStub struct {
	createFn     func(context.Context, *models.InteractionFeedback) error
	listByEdgeFn func(context.Context, uint) ([]models.InteractionFeedback, error)
}

func (s *feedbackRepoStub) Create(ctx context.Context, feedback *models.InteractionFeedback) error {
	return s.createFn(ctx, feedback)
}
func (s *feedbackRepoStub) ListByEdge(ctx context.Context, edgeID uint) ([]models.InteractionFeedback, error) {
	return s.listByEdgeFn(ctx, edgeID)
}
func (s *feedbackRepoStub) WithTx(tx *gorm.DB) repository.FeedbackRepository { return s }
