package models

import "time"

// RequestType distinguishes direct connection requests from introductions.
type RequestType string

const (
	RequestTypeDirect       RequestType = "direct"
	RequestTypeIntroduction RequestType = "introduction"
)

// RequestStatus represents the lifecycle status of a connection request.
type RequestStatus string

const (
	// RequestStatusPending indicates the request awaits a response.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusAccepted indicates the request was accepted and produced an edge.
	RequestStatusAccepted RequestStatus = "accepted"
	// RequestStatusDeclined indicates the addressee declined the request.
	RequestStatusDeclined RequestStatus = "declined"
	// RequestStatusExpired indicates the request passed its TTL unanswered.
	RequestStatusExpired RequestStatus = "expired"
)

// RequestTTL is the fixed window a request stays answerable after sending.
const RequestTTL = 14 * 24 * time.Hour

// ConnectionRequest is a transient negotiation object, not yet a
// relationship. At most one pending request exists per ordered (from, to)
// pair, enforced by a partial unique index scoped to the pending status;
// terminal statuses are immutable. Acceptance is the only path that creates a
// NetworkEdge.
type ConnectionRequest struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	RequestType         RequestType   `gorm:"type:varchar(20);not null;default:'direct'" json:"request_type"`
	FromProfileID       uint          `gorm:"not null;index:idx_connection_requests_from;index:idx_connection_requests_pending_pair,unique,where:status = 'pending'" json:"from_profile_id"`
	ToProfileID         uint          `gorm:"not null;index:idx_connection_requests_to;index:idx_connection_requests_pending_pair,unique,where:status = 'pending'" json:"to_profile_id"`
	IntroducerProfileID *uint         `json:"introducer_profile_id,omitempty"`
	Message             string        `json:"message,omitempty"`
	Status              RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_connection_requests_status" json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	RespondedAt         *time.Time    `json:"responded_at,omitempty"`
	ExpiresAt           time.Time     `gorm:"not null" json:"expires_at"`

	// Relationships
	FromProfile Profile `gorm:"foreignKey:FromProfileID" json:"from_profile,omitempty"`
	ToProfile   Profile `gorm:"foreignKey:ToProfileID" json:"to_profile,omitempty"`
}

// TableName specifies the table name for GORM
func (ConnectionRequest) TableName() string {
	return "connection_requests"
}

// Expired reports whether the request passed its TTL at the given instant.
func (r *ConnectionRequest) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
