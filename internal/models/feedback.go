package models

import "time"

// InteractionType categorizes the interaction a feedback entry rates.
type InteractionType string

const (
	InteractionConnection    InteractionType = "connection"
	InteractionIntroduction  InteractionType = "introduction"
	InteractionCollaboration InteractionType = "collaboration"
	InteractionMessage       InteractionType = "message"
)

// ValidInteractionType reports whether t is a known interaction type.
func ValidInteractionType(t InteractionType) bool {
	switch t {
	case InteractionConnection, InteractionIntroduction, InteractionCollaboration, InteractionMessage:
		return true
	}
	return false
}

// FeedbackRating is the rating attached to an interaction.
type FeedbackRating string

const (
	RatingPositive FeedbackRating = "positive"
	RatingNeutral  FeedbackRating = "neutral"
	RatingNegative FeedbackRating = "negative"
)

// ValidFeedbackRating reports whether r is a known rating.
func ValidFeedbackRating(r FeedbackRating) bool {
	switch r {
	case RatingPositive, RatingNeutral, RatingNegative:
		return true
	}
	return false
}

// InteractionFeedback is an append-only rating attached after an interaction
// tied to an edge. Positive feedback emits a collaboration signal and nudges
// edge strength up; negative feedback only nudges strength down.
type InteractionFeedback struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	EdgeID          uint            `gorm:"not null;index:idx_interaction_feedback_edge" json:"edge_id"`
	FromProfileID   uint            `gorm:"not null" json:"from_profile_id"`
	InteractionType InteractionType `gorm:"type:varchar(20);not null" json:"interaction_type"`
	Rating          FeedbackRating  `gorm:"type:varchar(10);not null" json:"rating"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`

	Edge NetworkEdge `gorm:"foreignKey:EdgeID" json:"-"`
}

// TableName specifies the table name for GORM
func (InteractionFeedback) TableName() string {
	return "interaction_feedback"
}
