package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishWithoutRedis(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	err := n.PublishProfileEvent(context.Background(), Event{Type: EventRequestReceived, ProfileID: 1})
	assert.NoError(t, err)
}

func TestProfileChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		profileID uint
		expected  string
	}{
		{1, "network:profile:1"},
		{100, "network:profile:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ProfileChannel(tt.profileID))
	}
}

func TestNotifier_RoundTripAndCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	events := make(chan Event, 2)
	require.NoError(t, n.StartProfileSubscriber(ctx, func(_ string, event Event) {
		atomic.AddInt32(&received, 1)
		events <- event
	}))

	require.NoError(t, n.PublishProfileEvent(context.Background(), Event{
		Type:      EventRequestAccepted,
		ProfileID: 4,
		ActorID:   9,
	}))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	got := <-events
	assert.Equal(t, EventRequestAccepted, got.Type)
	assert.EqualValues(t, 4, got.ProfileID)
	assert.EqualValues(t, 9, got.ActorID)
	assert.NotEmpty(t, got.ID, "events are assigned ids on publish")
	assert.False(t, got.OccurredAt.IsZero())

	cancel()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.PublishProfileEvent(context.Background(), Event{
		Type:      EventRequestDeclined,
		ProfileID: 4,
	}))
	assert.Never(t, func() bool {
		select {
		case event := <-events:
			return event.Type == EventRequestDeclined
		default:
			return false
		}
	}, 200*time.Millisecond, 10*time.Millisecond)
}
