package cache

import (
	"context"
	"fmt"
	"time"

	"meetning-api/core/config"
	"meetning-api/core/constants"
	"meetning-api/core/logger"
	"meetning-api/core/utils"

	"github.com/redis/go-redis/v9"
)

const lockPollInterval = 50 * time.Millisecond

// releaseScript deletes the lock key only if it still holds our token, so
// a lock that expired and was re-acquired by someone else is never released
// by the original holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLocker implements Locker on top of SET NX PX. It serializes across
// all API instances sharing the Redis.
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(cfg config.RedisConfig) (Locker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis locker initialized", "addr", cfg.Addr, "db", cfg.DB)

	return &redisLocker{
		client: client,
		ttl:    constants.RefreshLockTTL,
	}, nil
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := utils.GenerateID()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			logger.Error("RedisLocker:Release:Error", "key", key, "error", err)
		}
	}
	return release, nil
}
