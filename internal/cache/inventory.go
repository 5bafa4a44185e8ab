package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lattice/internal/observability"
)

const (
	SuggestionsKeyPrefix = "network:suggestions:%d"
	HealthKeyPrefix      = "network:health:%d"
	ConnectionsKeyPrefix = "network:connections:%d"
)

// Read-side TTLs. Suggestion and health pages tolerate slightly stale data;
// connection lists are invalidated explicitly on lifecycle changes as well.
const (
	SuggestionsTTL = 5 * time.Minute
	HealthTTL      = 5 * time.Minute
	ConnectionsTTL = 2 * time.Minute
)

func SuggestionsKey(profileID uint) string {
	return fmt.Sprintf(SuggestionsKeyPrefix, profileID)
}

func HealthKey(profileID uint) string {
	return fmt.Sprintf(HealthKeyPrefix, profileID)
}

func ConnectionsKey(profileID uint) string {
	return fmt.Sprintf(ConnectionsKeyPrefix, profileID)
}

// GetJSON loads a cached value into dest. Returns false on miss or when the
// cache is unavailable.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		observability.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return false
	}
	if json.Unmarshal(raw, dest) != nil {
		observability.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return false
	}
	observability.CacheRequestsTotal.WithLabelValues("hit").Inc()
	return true
}

// SetJSON stores a value under key with the given TTL. Failures are silent;
// the cache is an optimization, never a source of truth.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfileViews drops every cached read model for a profile. Called
// when an edge or request involving the profile changes.
func InvalidateProfileViews(ctx context.Context, profileID uint) {
	Invalidate(ctx, SuggestionsKey(profileID))
	Invalidate(ctx, HealthKey(profileID))
	Invalidate(ctx, ConnectionsKey(profileID))
}
