package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petalhealth/content-service/internal/cache"
	"github.com/petalhealth/content-service/internal/config"
	"github.com/petalhealth/content-service/internal/events"
	"github.com/petalhealth/content-service/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// SetupRedis connects to Redis and returns the snapshot cache and event
// publisher. Both are nil-safe: if Redis is disabled or unavailable the
// service degrades to bundled data plus in-memory refreshes.
func SetupRedis(cfg *config.Config, log logger.Logger) (*cache.Snapshots, *events.Publisher) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not available, snapshot cache and events disabled",
			logger.String("redis_address", cfg.Redis.Address),
			logger.Error(err),
		)
		_ = client.Close()
		return nil, nil
	}

	log.Info("Redis connected",
		logger.String("redis_address", cfg.Redis.Address),
	)
	return cache.NewSnapshots(client, log), events.NewPublisher(client, log)
}
