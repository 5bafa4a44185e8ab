package models

import "time"

// SignalType categorizes a piece of trust evidence.
type SignalType string

const (
	// SignalCollaboration records a shared project, job, or joint work.
	SignalCollaboration SignalType = "collaboration"
	// SignalMutualOverlap records shared first-degree connections.
	SignalMutualOverlap SignalType = "mutual_overlap"
	// SignalEndorsement records an explicit vouch by one side for the other.
	SignalEndorsement SignalType = "endorsement"
	// SignalInteractionQuality records the observed quality of interactions.
	SignalInteractionQuality SignalType = "interaction_quality"
	// SignalFreshness records recent activity on the relationship.
	SignalFreshness SignalType = "freshness"
	// SignalIntroHistory records that the relationship formed via a warm introduction.
	SignalIntroHistory SignalType = "intro_history"
)

// IntroHistorySignalWeight is appended when an introduction request is
// accepted. A warm introduction is strong initial evidence.
const IntroHistorySignalWeight = 0.6

// FeedbackSignalWeight is appended when positive interaction feedback is
// submitted against an edge.
const FeedbackSignalWeight = 0.2

// TrustSignal is an atomic, possibly time-limited piece of evidence attached
// to exactly one edge. Signals are append-only: they are never updated in
// place and never deleted except by expiry. An edge's trust is always a
// deterministic function of its current non-expired signal set.
type TrustSignal struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	EdgeID        uint       `gorm:"not null;index:idx_trust_signals_edge" json:"edge_id"`
	SignalType    SignalType `gorm:"type:varchar(30);not null" json:"signal_type"`
	Weight        float64    `gorm:"not null" json:"weight"`
	Evidence      string     `json:"evidence"`
	ReferenceID   string     `json:"reference_id,omitempty"`
	ReferenceType string     `json:"reference_type,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`

	Edge NetworkEdge `gorm:"foreignKey:EdgeID" json:"-"`
}

// TableName specifies the table name for GORM
func (TrustSignal) TableName() string {
	return "trust_signals"
}

// Expired reports whether the signal has decayed out of relevance at the
// given instant.
func (s *TrustSignal) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
