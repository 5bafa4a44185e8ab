package service

import (
	"context"
	"strings"

	"lattice/internal/models"
	"lattice/internal/repository"
)

// Health rule thresholds. Product-tunable, not invariants.
const (
	HealthGrowBelow        = 5
	HealthDeepenBelowTrust = 0.4
	HealthDiversifyBelow   = 0.4
	// DiversityTargetDomains is the distinct-domain count treated as a fully
	// diverse network.
	DiversityTargetDomains = 5
)

// HealthService aggregates a profile's edges into summary statistics and
// improvement suggestions.
type HealthService struct {
	edgeRepo    repository.EdgeRepository
	profileRepo repository.ProfileRepository
}

// NewHealthService returns a new HealthService.
func NewHealthService(edgeRepo repository.EdgeRepository, profileRepo repository.ProfileRepository) *HealthService {
	return &HealthService{edgeRepo: edgeRepo, profileRepo: profileRepo}
}

// GetNetworkHealth computes the profile's network health score.
func (s *HealthService) GetNetworkHealth(ctx context.Context, profileID uint) (*models.NetworkHealthScore, error) {
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, err
	}

	all, err := s.edgeRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	active, err := s.edgeRepo.GetActiveEdges(ctx, profileID)
	if err != nil {
		return nil, err
	}

	score := &models.NetworkHealthScore{
		TotalConnections:  len(all),
		ActiveConnections: len(active),
		Suggestions:       []string{},
	}

	domains := make(map[string]struct{})
	if len(active) > 0 {
		var trustSum, strengthSum float64
		for i := range active {
			trustSum += active[i].Trust
			strengthSum += active[i].Strength
			other := active[i].OtherProfile(profileID)
			for _, d := range other.DomainTagList() {
				domains[strings.ToLower(d)] = struct{}{}
			}
		}
		score.AverageTrust = trustSum / float64(len(active))
		score.StrengthScore = strengthSum / float64(len(active))
		score.DiversityScore = float64(len(domains)) / DiversityTargetDomains
		if score.DiversityScore > 1 {
			score.DiversityScore = 1
		}
	}

	if score.ActiveConnections < HealthGrowBelow {
		score.Suggestions = append(score.Suggestions,
			"Grow your network: connect with more people you have worked with")
	}
	if score.ActiveConnections > 0 && score.AverageTrust < HealthDeepenBelowTrust {
		score.Suggestions = append(score.Suggestions,
			"Deepen existing relationships: collaborate or ask for endorsements")
	}
	if score.ActiveConnections > 0 && score.DiversityScore < HealthDiversifyBelow {
		score.Suggestions = append(score.Suggestions,
			"Diversify your network: connect with people in other domains")
	}

	return score, nil
}
