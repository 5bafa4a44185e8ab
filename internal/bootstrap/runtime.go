// Package bootstrap wires the runtime dependencies shared by every command.
package bootstrap

import (
	"fmt"
	"strings"

	"lattice/internal/cache"
	"lattice/internal/config"
	"lattice/internal/database"
	"lattice/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo loads the embedded demo topology after connecting. It only
	// applies outside production.
	SeedDemo bool
}

// InitRuntime connects to DB and Redis and optionally seeds the demo network.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo && !isProduction(cfg) {
		if err := seed.DemoNetwork(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo network: %w", err)
		}
	}

	return db, r, nil
}

func isProduction(cfg *config.Config) bool {
	return strings.EqualFold(cfg.Env, "production") || strings.EqualFold(cfg.Env, "prod")
}
