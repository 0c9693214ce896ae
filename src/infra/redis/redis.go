package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client            redis.UniversalClient
	defaultTTLSeconds time.Duration
}

// NewRedisClient accepts a comma separated address list. A single address gives a
// plain client, several addresses give a cluster client.
func NewRedisClient(addrs string, poolSize int, defaultTTLSeconds time.Duration) *RedisClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),

		PoolSize:     poolSize,
		MinIdleConns: 2,

		MaxRedirects: 3,

		// Timeouts curtos: o cache nunca pode segurar a requisição
		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:            client,
		defaultTTLSeconds: defaultTTLSeconds,
	}
}

// GetGeneration reads the counter bumped by BumpGeneration. A missing counter is generation 0.
func (rc *RedisClient) GetGeneration(ctx context.Context, generationKey string) (int64, error) {
	generation, err := rc.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}

	return generation, err
}

// BumpGeneration must run after the source of truth changed and before the stale keys are dropped.
func (rc *RedisClient) BumpGeneration(ctx context.Context, generationKey string) error {
	return rc.client.Incr(ctx, generationKey).Err()
}

// SetKeyIfGeneration stores value only while generationKey still holds generation.
// It reports false, without error, when a bump happened in between.
// In cluster mode key and generationKey must share a hash tag.
func (rc *RedisClient) SetKeyIfGeneration(ctx context.Context, generationKey string, generation int64, key string, value string) (bool, error) {
	stored := false

	err := rc.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != generation {
			return nil
		}

		fields := map[string]interface{}{
			"data":      value,
			"cached_at": time.Now().Unix(),
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.Expire(ctx, key, rc.defaultTTLSeconds)
			return nil
		})
		if err != nil {
			return err
		}

		stored = true
		return nil
	}, generationKey)

	// A bump landed between WATCH and EXEC
	if err == redis.TxFailedErr {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return stored, nil
}

func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, key, "data")

	// Cache miss
	if result.Err() == redis.Nil {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

// InvalidateKeys deletes keys one by one; in cluster mode keys may live on different slots.
func (rc *RedisClient) InvalidateKeys(ctx context.Context, keys []string) error {
	var errors []string

	for _, key := range keys {
		if err := rc.client.Del(ctx, key).Err(); err != nil {
			errors = append(errors, fmt.Sprintf("key %s: %v", key, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalidation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
