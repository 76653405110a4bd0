package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockerConfig configures a RedisLocker
type RedisLockerConfig struct {
	Address  string
	Password string
	DB       int
	// TTL bounds how long a crashed holder can block a game
	TTL time.Duration
	// RetryInterval is the wait between acquisition attempts
	RetryInterval time.Duration
}

// RedisLocker implements Locker with SET NX PX, so several engine
// processes can share one database
type RedisLocker struct {
	BaseProvider
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewRedisLocker connects to Redis
func NewRedisLocker(ctx context.Context, cfg RedisLockerConfig) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	retry := cfg.RetryInterval
	if retry <= 0 {
		retry = 25 * time.Millisecond
	}

	return &RedisLocker{
		BaseProvider: BaseProvider{serviceType: "redis"},
		client:       client,
		ttl:          ttl,
		retry:        retry,
	}, nil
}

func lockKey(key string) string {
	return "spacegom:lock:" + key
}

// Lock blocks until the key is acquired or ctx is done
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	k := lockKey(key)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s: %w", key, ctx.Err())
		case <-time.After(l.retry):
		}
	}

	var released atomic.Bool
	return func(ctx context.Context) error {
		if !released.CompareAndSwap(false, true) {
			return nil
		}
		n, err := releaseScript.Run(ctx, l.client, []string{k}, token).Int()
		if err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		if n == 0 {
			slog.Warn("lock expired before release", "key", key, "ttl", l.ttl)
		}
		return nil
	}, nil
}

// HealthCheck verifies Redis connectivity
func (l *RedisLocker) HealthCheck(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Stats reports connection pool usage
func (l *RedisLocker) Stats(context.Context) (map[string]any, error) {
	ps := l.client.PoolStats()
	return map[string]any{
		"total_conns": ps.TotalConns,
		"idle_conns":  ps.IdleConns,
		"lock_ttl":    l.ttl.String(),
	}, nil
}

// Close closes the Redis connection
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
