package models

// Intent describes why a caller is asking for a network decision.
type Intent string

const (
	IntentGeneral       Intent = "general"
	IntentConnect       Intent = "connect"
	IntentIntroduction  Intent = "introduction"
	IntentCollaboration Intent = "collaboration"
	IntentJob           Intent = "job"
)

// ValidIntent reports whether i is a known intent.
func ValidIntent(i Intent) bool {
	switch i {
	case IntentGeneral, IntentConnect, IntentIntroduction, IntentCollaboration, IntentJob:
		return true
	}
	return false
}

// Recommendation is the actionable outcome of a network decision.
type Recommendation string

const (
	RecommendationDo       Recommendation = "do"
	RecommendationConsider Recommendation = "consider"
	RecommendationHold     Recommendation = "hold"
)

// TrustBreakdown is the five-component decomposition of a trust score.
// It is computed on demand for decisions and never persisted.
type TrustBreakdown struct {
	Collaboration      float64 `json:"collaboration"`
	Mutuals            float64 `json:"mutuals"`
	Endorsement        float64 `json:"endorsement"`
	InteractionQuality float64 `json:"interaction_quality"`
	Freshness          float64 `json:"freshness"`
}

// IntroductionPath is a two-hop chain (from -> via -> to) through which a
// warm introduction could be requested.
type IntroductionPath struct {
	ViaProfileID uint           `json:"via_profile_id"`
	ViaProfile   ProfileSummary `json:"via_profile"`
	TrustScore   float64        `json:"trust_score"`
	Reason       string         `json:"reason"`
}

// Decision is the Decision Engine's recommendation for acting on a
// relationship. Recommendations are never bare scores: Reasons is always
// non-empty when the decision is non-trivial.
type Decision struct {
	Recommendation Recommendation    `json:"recommendation"`
	Confidence     int               `json:"confidence"`
	Reasons        []string          `json:"reasons"`
	SuggestedPath  *IntroductionPath `json:"suggested_path,omitempty"`
	TrustBreakdown *TrustBreakdown   `json:"trust_breakdown,omitempty"`
}

// SuggestionBadge is a categorical explainability label on a suggestion.
type SuggestionBadge string

const (
	BadgeHighTrust   SuggestionBadge = "high_trust"
	BadgeMutualHeavy SuggestionBadge = "mutual_heavy"
	BadgeGoodFit     SuggestionBadge = "good_fit"
)

// ConnectionSuggestion is a ranked friend-of-friend candidate.
type ConnectionSuggestion struct {
	Profile     ProfileSummary    `json:"profile"`
	MutualCount int               `json:"mutual_count"`
	AvgTrust    float64           `json:"avg_trust"`
	Badge       SuggestionBadge   `json:"badge,omitempty"`
	Reasons     []string          `json:"reasons"`
	BestPath    *IntroductionPath `json:"best_path,omitempty"`
}

// NetworkHealthScore summarizes the state of a profile's network.
type NetworkHealthScore struct {
	TotalConnections  int      `json:"total_connections"`
	ActiveConnections int      `json:"active_connections"`
	AverageTrust      float64  `json:"average_trust"`
	DiversityScore    float64  `json:"diversity_score"`
	StrengthScore     float64  `json:"strength_score"`
	Suggestions       []string `json:"suggestions"`
}

// ConnectionWithProfile pairs an active edge with the far-side profile
// summary and the number of connections shared with the caller.
type ConnectionWithProfile struct {
	Edge        NetworkEdge    `json:"edge"`
	Profile     ProfileSummary `json:"profile"`
	MutualCount int            `json:"mutual_count"`
}
