package service

import (
	"context"
	"strconv"
	"time"

	"lattice/internal/models"
	"lattice/internal/observability"
	"lattice/internal/repository"
	"lattice/internal/trust"

	"gorm.io/gorm"
)

// ConnectionService provides connection-request and edge lifecycle business logic.
type ConnectionService struct {
	db          *gorm.DB
	edgeRepo    repository.EdgeRepository
	requestRepo repository.RequestRepository
	signalRepo  repository.SignalRepository
	profileRepo repository.ProfileRepository
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(
	db *gorm.DB,
	edgeRepo repository.EdgeRepository,
	requestRepo repository.RequestRepository,
	signalRepo repository.SignalRepository,
	profileRepo repository.ProfileRepository,
) *ConnectionService {
	return &ConnectionService{
		db:          db,
		edgeRepo:    edgeRepo,
		requestRepo: requestRepo,
		signalRepo:  signalRepo,
		profileRepo: profileRepo,
	}
}

// GetConnections returns the profile's active connections with the profile on
// the far side of each edge and the count of shared active neighbors, ordered
// by trust then recency.
func (s *ConnectionService) GetConnections(ctx context.Context, profileID uint) ([]models.ConnectionWithProfile, error) {
	edges, err := s.edgeRepo.GetActiveEdges(ctx, profileID)
	if err != nil {
		return nil, err
	}

	ownNeighbors, err := s.edgeRepo.ActiveNeighborIDs(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ownSet := make(map[uint]struct{}, len(ownNeighbors))
	for _, id := range ownNeighbors {
		ownSet[id] = struct{}{}
	}

	connections := make([]models.ConnectionWithProfile, 0, len(edges))
	for i := range edges {
		otherID := edges[i].OtherProfileID(profileID)

		theirNeighbors, err := s.edgeRepo.ActiveNeighborIDs(ctx, otherID)
		if err != nil {
			return nil, err
		}
		mutualCount := 0
		for _, id := range theirNeighbors {
			if id == profileID {
				continue
			}
			if _, ok := ownSet[id]; ok {
				mutualCount++
			}
		}

		other := edges[i].OtherProfile(profileID)
		connections = append(connections, models.ConnectionWithProfile{
			Edge:        edges[i],
			Profile:     other.Summary(),
			MutualCount: mutualCount,
		})
	}

	return connections, nil
}

// SendRequest creates a pending connection request from one profile to another.
// An optional introducer turns the request into an introduction.
func (s *ConnectionService) SendRequest(
	ctx context.Context, fromProfileID, toProfileID uint, message string, introducerProfileID *uint,
) (*models.ConnectionRequest, error) {
	if fromProfileID == toProfileID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	if _, err := s.profileRepo.GetByID(ctx, toProfileID); err != nil {
		return nil, err
	}
	if introducerProfileID != nil {
		if *introducerProfileID == fromProfileID || *introducerProfileID == toProfileID {
			return nil, models.NewValidationError("Introducer must be a third profile")
		}
		if _, err := s.profileRepo.GetByID(ctx, *introducerProfileID); err != nil {
			return nil, err
		}
	}

	edge, err := s.edgeRepo.GetEdgeBetween(ctx, fromProfileID, toProfileID)
	if err != nil {
		return nil, err
	}
	if edge != nil {
		switch edge.Status {
		case models.EdgeStatusActive:
			return nil, models.NewValidationError("You are already connected")
		case models.EdgeStatusBlocked:
			return nil, models.NewValidationError("A connection between these profiles is not possible")
		}
	}

	existing, err := s.requestRepo.GetPendingBetweenOrdered(ctx, fromProfileID, toProfileID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("A pending request to this profile already exists")
	}

	requestType := models.RequestTypeDirect
	if introducerProfileID != nil {
		requestType = models.RequestTypeIntroduction
	}

	request := &models.ConnectionRequest{
		RequestType:         requestType,
		FromProfileID:       fromProfileID,
		ToProfileID:         toProfileID,
		IntroducerProfileID: introducerProfileID,
		Message:             message,
		Status:              models.RequestStatusPending,
		ExpiresAt:           time.Now().Add(models.RequestTTL),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return s.requestRepo.GetByID(ctx, request.ID)
}

// GetPendingRequests returns pending, unexpired requests addressed to the profile.
func (s *ConnectionService) GetPendingRequests(ctx context.Context, profileID uint) ([]models.ConnectionRequest, error) {
	return s.requestRepo.GetPendingFor(ctx, profileID, time.Now())
}

// GetSentRequests returns pending, unexpired requests the profile has sent.
func (s *ConnectionService) GetSentRequests(ctx context.Context, profileID uint) ([]models.ConnectionRequest, error) {
	return s.requestRepo.GetSentBy(ctx, profileID, time.Now())
}

// AcceptRequest accepts a pending request addressed to the profile. The
// request transition and the edge upsert happen in one transaction; replays
// against an already-resolved request report InvalidState without touching
// the edge.
func (s *ConnectionService) AcceptRequest(ctx context.Context, profileID, requestID uint) (*models.NetworkEdge, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToProfileID != profileID {
		return nil, models.NewUnauthorizedError("You can only accept requests sent to you")
	}
	if request.Status != models.RequestStatusPending {
		return nil, models.NewInvalidStateError("Request not found or already processed")
	}

	now := time.Now()
	if request.Expired(now) {
		// Lazily settle the expiry; the guarded update tolerates races.
		_, _ = s.requestRepo.MarkResponded(ctx, requestID, models.RequestStatusExpired, now)
		return nil, models.NewInvalidStateError("Request has expired")
	}

	var edgeID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)
		edges := s.edgeRepo.WithTx(tx)
		signals := s.signalRepo.WithTx(tx)

		transitioned, err := requests.MarkResponded(ctx, requestID, models.RequestStatusAccepted, now)
		if err != nil {
			return err
		}
		if !transitioned {
			return models.NewInvalidStateError("Request not found or already processed")
		}

		edge, err := edges.GetEdgeBetween(ctx, request.FromProfileID, request.ToProfileID)
		if err != nil {
			return err
		}
		if edge != nil {
			if edge.Status == models.EdgeStatusActive {
				return models.NewConflictError("A connection between these profiles already exists")
			}
			if err := edges.UpdateStatus(ctx, edge.ID, models.EdgeStatusActive); err != nil {
				return err
			}
		} else {
			edgeType := models.EdgeTypeDirect
			if request.RequestType == models.RequestTypeIntroduction {
				edgeType = models.EdgeTypeIntroduced
			}
			edge = &models.NetworkEdge{
				FromProfileID:       request.FromProfileID,
				ToProfileID:         request.ToProfileID,
				EdgeType:            edgeType,
				Context:             models.EdgeContextGeneral,
				Strength:            models.DefaultEdgeStrength,
				Trust:               models.DefaultEdgeTrust,
				Status:              models.EdgeStatusActive,
				IntroducedBy:        request.IntroducerProfileID,
				IntroductionMessage: request.Message,
			}
			if err := edges.Create(ctx, edge); err != nil {
				return err
			}
		}

		if request.RequestType == models.RequestTypeIntroduction {
			signal := &models.TrustSignal{
				EdgeID:        edge.ID,
				SignalType:    models.SignalIntroHistory,
				Weight:        models.IntroHistorySignalWeight,
				Evidence:      "Connected through an introduction",
				ReferenceID:   strconv.FormatUint(uint64(request.ID), 10),
				ReferenceType: "connection_request",
			}
			if err := signals.Append(ctx, signal); err != nil {
				return err
			}
			observability.SignalsAppendedTotal.WithLabelValues(string(models.SignalIntroHistory)).Inc()
			if err := recomputeTrustLocked(ctx, edges, signals, edge.ID, now); err != nil {
				return err
			}
		}

		edgeID = edge.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.edgeRepo.GetByID(ctx, edgeID)
}

// DeclineRequest declines a pending request. The addressee declines, the
// sender cancels; both resolve the request the same way.
func (s *ConnectionService) DeclineRequest(ctx context.Context, profileID, requestID uint) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ToProfileID != profileID && request.FromProfileID != profileID {
		return models.NewUnauthorizedError("You can only decline or cancel your own requests")
	}
	if request.Status != models.RequestStatusPending {
		return models.NewInvalidStateError("Request not found or already processed")
	}

	now := time.Now()
	if request.Expired(now) {
		// Lazily settle the expiry; the guarded update tolerates races.
		_, _ = s.requestRepo.MarkResponded(ctx, requestID, models.RequestStatusExpired, now)
		return models.NewInvalidStateError("Request has expired")
	}

	transitioned, err := s.requestRepo.MarkResponded(ctx, requestID, models.RequestStatusDeclined, now)
	if err != nil {
		return err
	}
	if !transitioned {
		return models.NewInvalidStateError("Request not found or already processed")
	}
	return nil
}

// RemoveConnection soft-removes the active edge between two profiles. The
// edge row and its signal history survive for trust computation.
func (s *ConnectionService) RemoveConnection(ctx context.Context, profileID, otherProfileID uint) (*models.NetworkEdge, error) {
	edge, err := s.edgeRepo.GetEdgeBetween(ctx, profileID, otherProfileID)
	if err != nil {
		return nil, err
	}
	if edge == nil || edge.Status != models.EdgeStatusActive {
		return nil, models.NewNotFoundError("Connection", otherProfileID)
	}

	if err := s.edgeRepo.UpdateStatus(ctx, edge.ID, models.EdgeStatusRemoved); err != nil {
		return nil, err
	}
	edge.Status = models.EdgeStatusRemoved
	return edge, nil
}

// BlockProfile blocks the other profile. An existing edge flips to blocked;
// when no edge exists one is created in the blocked state so future requests
// are refused.
func (s *ConnectionService) BlockProfile(ctx context.Context, profileID, otherProfileID uint) (*models.NetworkEdge, error) {
	if profileID == otherProfileID {
		return nil, models.NewValidationError("Cannot block yourself")
	}
	if _, err := s.profileRepo.GetByID(ctx, otherProfileID); err != nil {
		return nil, err
	}

	edge, err := s.edgeRepo.GetEdgeBetween(ctx, profileID, otherProfileID)
	if err != nil {
		return nil, err
	}
	if edge != nil {
		if edge.Status == models.EdgeStatusBlocked {
			return nil, models.NewInvalidStateError("Profile is already blocked")
		}
		if err := s.edgeRepo.UpdateStatus(ctx, edge.ID, models.EdgeStatusBlocked); err != nil {
			return nil, err
		}
		edge.Status = models.EdgeStatusBlocked
		return edge, nil
	}

	edge = &models.NetworkEdge{
		FromProfileID: profileID,
		ToProfileID:   otherProfileID,
		EdgeType:      models.EdgeTypeDirect,
		Context:       models.EdgeContextGeneral,
		Strength:      0,
		Trust:         0,
		Status:        models.EdgeStatusBlocked,
	}
	if err := s.edgeRepo.Create(ctx, edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// recomputeTrustLocked rereads the edge under a row lock, rescores it from
// its current non-expired signals and persists the result. Callers must run
// it inside a transaction.
func recomputeTrustLocked(
	ctx context.Context,
	edges repository.EdgeRepository,
	signals repository.SignalRepository,
	edgeID uint,
	now time.Time,
) error {
	edge, err := edges.GetByIDForUpdate(ctx, edgeID)
	if err != nil {
		return err
	}
	current, err := signals.ListCurrentByEdge(ctx, edgeID, now)
	if err != nil {
		return err
	}
	recomputed := trust.RecomputeEdgeTrustAt(now, current, edge.Trust)
	observability.TrustRecomputationsTotal.Inc()
	return edges.UpdateTrust(ctx, edgeID, recomputed)
}
