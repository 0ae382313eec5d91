package shared

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"residency_hub/internal/adapters/memcache"
	redisad "residency_hub/internal/adapters/redis"
	"residency_hub/internal/domain"
	"residency_hub/internal/storage/sqlstore"
)

// OpenStore connects to the configured database and applies the schema.
func OpenStore(ctx context.Context, c Config) (*sql.DB, *sqlstore.Repo, error) {
	d, err := sqlstore.DialectFor(c.StoreDriver)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	db, err := sqlstore.Open(ctx, d, c.StoreDSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("driver", d.Name).Msg("database connection ok")
	return db, sqlstore.New(db, d), nil
}

// OpenCache returns the configured result cache.
func OpenCache(ctx context.Context, c Config) (domain.Cache, error) {
	switch c.CacheDriver {
	case "redis":
		rc := redisad.New(c.RedisAddr, c.RedisPass, c.RedisDB, c.CacheTTL)
		if err := rc.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis ping %s: %w", c.RedisAddr, err)
		}
		log.Info().Str("addr", c.RedisAddr).Msg("redis cache ok")
		return rc, nil
	default:
		return memcache.New(c.CacheTTL, time.Now), nil
	}
}
