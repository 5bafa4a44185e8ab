package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"lattice/internal/graph"
	"lattice/internal/models"
	"lattice/internal/repository"
	"lattice/internal/trust"
)

// Recommendation thresholds on the weighted trust total.
const (
	DecisionDoMin       = 0.70
	DecisionConsiderMin = 0.40
)

// MutualsReasonMin is the mutuals component above which a mutual-connections
// reason is attached to a decision.
const MutualsReasonMin = 0.1

// DecisionService evaluates whether acting on a relationship is advisable and
// ranks new-connection suggestions. Decisions are computed per call; nothing
// is persisted.
type DecisionService struct {
	adj         graph.Adjacency
	edgeRepo    repository.EdgeRepository
	signalRepo  repository.SignalRepository
	profileRepo repository.ProfileRepository
}

// NewDecisionService returns a new DecisionService.
func NewDecisionService(
	adj graph.Adjacency,
	edgeRepo repository.EdgeRepository,
	signalRepo repository.SignalRepository,
	profileRepo repository.ProfileRepository,
) *DecisionService {
	return &DecisionService{
		adj:         adj,
		edgeRepo:    edgeRepo,
		signalRepo:  signalRepo,
		profileRepo: profileRepo,
	}
}

// Decide evaluates the relationship between two profiles for the given intent
// and returns an actionable recommendation with human-readable reasons.
func (s *DecisionService) Decide(ctx context.Context, fromProfileID uint, intent models.Intent, targetProfileID uint) (*models.Decision, error) {
	if targetProfileID == 0 {
		return &models.Decision{
			Recommendation: models.RecommendationHold,
			Confidence:     0,
			Reasons:        []string{"No target specified"},
		}, nil
	}
	if fromProfileID == targetProfileID {
		return nil, models.NewValidationError("Cannot evaluate a decision about yourself")
	}
	if !models.ValidIntent(intent) {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown intent %q", intent))
	}
	if _, err := s.profileRepo.GetByID(ctx, targetProfileID); err != nil {
		return nil, err
	}

	edge, err := s.edgeRepo.GetEdgeBetween(ctx, fromProfileID, targetProfileID)
	if err != nil {
		return nil, err
	}
	if edge != nil && edge.Status == models.EdgeStatusActive {
		return &models.Decision{
			Recommendation: models.RecommendationDo,
			Confidence:     100,
			Reasons:        []string{"You are already connected"},
		}, nil
	}

	// Score any signals recorded against a not-yet-active edge; usually empty.
	var signals []models.TrustSignal
	if edge != nil {
		signals, err = s.signalRepo.ListCurrentByEdge(ctx, edge.ID, time.Now())
		if err != nil {
			return nil, err
		}
	}
	breakdown, total := trust.Score(signals)

	paths, err := graph.FindIntroductionPaths(ctx, s.adj, fromProfileID, targetProfileID, graph.DefaultPathLimit)
	if err != nil {
		return nil, err
	}

	decision := &models.Decision{
		Confidence:     int(math.Round(total * 100)),
		TrustBreakdown: &breakdown,
	}

	switch {
	case total >= DecisionDoMin:
		decision.Recommendation = models.RecommendationDo
	case total >= DecisionConsiderMin || len(paths) > 0:
		decision.Recommendation = models.RecommendationConsider
	default:
		decision.Recommendation = models.RecommendationHold
	}

	if breakdown.Mutuals > MutualsReasonMin {
		decision.Reasons = append(decision.Reasons, "You share mutual connections")
	}
	if breakdown.Collaboration > 0 {
		decision.Reasons = append(decision.Reasons, "You have collaboration history")
	}
	if len(paths) > 0 {
		best := paths[0]
		via, err := s.profileRepo.GetByID(ctx, best.ViaProfileID)
		if err == nil {
			best.ViaProfile = via.Summary()
			decision.Reasons = append(decision.Reasons,
				fmt.Sprintf("%s could introduce you", via.DisplayName))
		} else {
			decision.Reasons = append(decision.Reasons, "A mutual connection could introduce you")
		}
		decision.SuggestedPath = &best
	}
	if len(decision.Reasons) == 0 {
		decision.Reasons = []string{"No trust signals or introduction paths found yet"}
	}

	return decision, nil
}

// Suggest returns ranked friend-of-friend connection suggestions for the
// profile, hydrated with profile summaries, badges and reasons.
func (s *DecisionService) Suggest(ctx context.Context, profileID uint, limit int) ([]models.ConnectionSuggestion, error) {
	candidates, err := graph.SuggestCandidates(ctx, s.adj, profileID, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []models.ConnectionSuggestion{}, nil
	}

	ids := make([]uint, 0, 2*len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ProfileID, c.BestVia)
	}
	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.ConnectionSuggestion, 0, len(candidates))
	for _, c := range candidates {
		profile, ok := profiles[c.ProfileID]
		if !ok {
			continue // dangling reference, skip rather than fail the page
		}

		suggestion := models.ConnectionSuggestion{
			Profile:     profile.Summary(),
			MutualCount: c.MutualCount,
			AvgTrust:    c.AvgTrust,
			Badge:       c.Badge(),
		}

		if c.MutualCount == 1 {
			suggestion.Reasons = append(suggestion.Reasons, "You share 1 mutual connection")
		} else {
			suggestion.Reasons = append(suggestion.Reasons,
				fmt.Sprintf("You share %d mutual connections", c.MutualCount))
		}
		if via, ok := profiles[c.BestVia]; ok {
			suggestion.Reasons = append(suggestion.Reasons,
				fmt.Sprintf("%s could introduce you", via.DisplayName))
			suggestion.BestPath = &models.IntroductionPath{
				ViaProfileID: c.BestVia,
				ViaProfile:   via.Summary(),
				TrustScore:   c.BestPathScore,
				Reason:       graph.PathReason,
			}
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}
