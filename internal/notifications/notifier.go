// Package notifications publishes engine events for interested collaborators.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event types published on profile channels.
const (
	EventRequestReceived   = "request_received"
	EventRequestAccepted   = "request_accepted"
	EventRequestDeclined   = "request_declined"
	EventConnectionRemoved = "connection_removed"
	EventFeedbackReceived  = "feedback_received"
)

// Event is the envelope for every published engine event. Collaborating
// subsystems (notification fan-out, activity feeds) subscribe and render it;
// delivery is their concern, not the engine's.
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ProfileID     uint      `json:"profile_id"`
	ActorID       uint      `json:"actor_id,omitempty"`
	ReferenceID   uint      `json:"reference_id,omitempty"`
	ReferenceType string    `json:"reference_type,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier provides helpers to publish engine events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishProfileEvent sends an engine event to a profile's channel. With no
// Redis client configured this is a no-op; event delivery is best-effort.
func (n *Notifier) PublishProfileEvent(ctx context.Context, event Event) error {
	if n.rdb == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, ProfileChannel(event.ProfileID), string(payload)).Err()
}

// StartProfileSubscriber subscribes to pattern `network:profile:*` and calls
// onEvent for each incoming event.
func (n *Notifier) StartProfileSubscriber(
	ctx context.Context, onEvent func(channel string, event Event),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "network:profile:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in ProfileSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					var event Event
					if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
						log.Printf("ProfileSubscriber: dropping malformed event: %v", err)
						return
					}
					onEvent(msg.Channel, event)
				}()
			}
		}
	}()

	return nil
}

// ProfileChannel derives the Redis channel name for a profile.
func ProfileChannel(profileID uint) string {
	return "network:profile:" + strconv.FormatUint(uint64(profileID), 10)
}
