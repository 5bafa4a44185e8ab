package models

import (
	"time"

	"gorm.io/gorm"
)

// EdgeType records the provenance of how a relationship formed.
type EdgeType string

const (
	// EdgeTypeDirect indicates a relationship formed by a direct request.
	EdgeTypeDirect EdgeType = "direct"
	// EdgeTypeIntroduced indicates a relationship formed through an introduction.
	EdgeTypeIntroduced EdgeType = "introduced"
	// EdgeTypeColleague indicates a relationship imported from a shared workplace.
	EdgeTypeColleague EdgeType = "colleague"
	// EdgeTypeEventPeer indicates a relationship formed at a shared event.
	EdgeTypeEventPeer EdgeType = "event_peer"
)

// EdgeContext describes the domain a relationship belongs to.
type EdgeContext string

const (
	EdgeContextGeneral  EdgeContext = "general"
	EdgeContextBusiness EdgeContext = "business"
	EdgeContextEvent    EdgeContext = "event"
	EdgeContextJob      EdgeContext = "job"
)

// EdgeStatus represents the lifecycle status of a network edge.
type EdgeStatus string

const (
	// EdgeStatusPending is reserved for edges provisioned ahead of acceptance.
	EdgeStatusPending EdgeStatus = "pending"
	// EdgeStatusActive indicates a live connection.
	EdgeStatusActive EdgeStatus = "active"
	// EdgeStatusBlocked indicates one side blocked the other.
	EdgeStatusBlocked EdgeStatus = "blocked"
	// EdgeStatusRemoved indicates the connection was removed by a user.
	EdgeStatusRemoved EdgeStatus = "removed"
)

// Default trust and strength for a freshly created edge. A new connection
// starts from a neutral prior; trust only moves once signals accumulate.
const (
	DefaultEdgeTrust    = 0.5
	DefaultEdgeStrength = 0.5
)

// NetworkEdge is the core relationship record between two profiles. Edges are
// undirected for query purposes (either profile can be "from") but retain the
// original direction for provenance. At most one edge exists per unordered
// profile pair, enforced by the unique index over the normalized (low, high)
// pair columns; status transitions are soft and the row is never hard-deleted
// while signal history exists.
type NetworkEdge struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	FromProfileID uint `gorm:"not null;index:idx_network_edges_from" json:"from_profile_id"`
	ToProfileID   uint `gorm:"not null;index:idx_network_edges_to" json:"to_profile_id"`
	// PairLowID and PairHighID hold the participant pair sorted ascending so
	// the unique index rejects a duplicate edge regardless of direction.
	PairLowID           uint        `gorm:"not null;uniqueIndex:idx_network_edges_pair" json:"-"`
	PairHighID          uint        `gorm:"not null;uniqueIndex:idx_network_edges_pair" json:"-"`
	EdgeType            EdgeType    `gorm:"type:varchar(20);not null;default:'direct'" json:"edge_type"`
	Context             EdgeContext `gorm:"type:varchar(20);not null;default:'general'" json:"context"`
	Strength            float64     `gorm:"not null;default:0.5" json:"strength"`
	Trust               float64     `gorm:"not null;default:0.5" json:"trust"`
	Status              EdgeStatus  `gorm:"type:varchar(20);not null;default:'active';index:idx_network_edges_status" json:"status"`
	IntroducedBy        *uint       `json:"introduced_by,omitempty"`
	IntroductionMessage string      `json:"introduction_message,omitempty"`
	LastInteractionAt   *time.Time  `json:"last_interaction_at,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`

	// Relationships
	FromProfile Profile `gorm:"foreignKey:FromProfileID" json:"from_profile,omitempty"`
	ToProfile   Profile `gorm:"foreignKey:ToProfileID" json:"to_profile,omitempty"`
}

// TableName specifies the table name for GORM
func (NetworkEdge) TableName() string {
	return "network_edges"
}

// BeforeCreate normalizes the participant pair into the sorted columns backing
// the uniqueness constraint. The provenance direction in FromProfileID and
// ToProfileID is untouched.
func (e *NetworkEdge) BeforeCreate(*gorm.DB) error {
	e.PairLowID, e.PairHighID = e.FromProfileID, e.ToProfileID
	if e.PairLowID > e.PairHighID {
		e.PairLowID, e.PairHighID = e.PairHighID, e.PairLowID
	}
	return nil
}

// Involves reports whether the given profile participates in the edge.
func (e *NetworkEdge) Involves(profileID uint) bool {
	return e.FromProfileID == profileID || e.ToProfileID == profileID
}

// OtherProfileID returns the participant on the far side of the edge from the
// given profile. Callers must ensure the profile participates in the edge.
func (e *NetworkEdge) OtherProfileID(profileID uint) uint {
	if e.FromProfileID == profileID {
		return e.ToProfileID
	}
	return e.FromProfileID
}

// OtherProfile returns the preloaded profile on the far side of the edge.
func (e *NetworkEdge) OtherProfile(profileID uint) Profile {
	if e.FromProfileID == profileID {
		return e.ToProfile
	}
	return e.FromProfile
}
