package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/messmate/mess-client/internal/config"
	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

// RedisStore keeps the token pair in Redis, namespaced per device. Used
// for shared-terminal deployments where several kiosks serve the same
// installation and the credential must survive any single box.
type RedisStore struct {
	client *redis.Client
	key    string
	cb     *gobreaker.CircuitBreaker
}

var _ ports.TokenStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, deviceID string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "mess:tokens:" + deviceID,
		cb:     config.NewCircuitBreaker("Redis-TokenStore"),
	}
}

func (r *RedisStore) Load(ctx context.Context) (domain.TokenPair, error) {
	var pair domain.TokenPair

	result, err := r.cb.Execute(func() (any, error) {
		return r.client.Get(ctx, r.key).Result()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return pair, ports.ErrNoTokens
		}
		return pair, fmt.Errorf("redis load tokens: %w", err)
	}

	if err := json.Unmarshal([]byte(result.(string)), &pair); err != nil {
		return pair, fmt.Errorf("decode stored tokens: %w", err)
	}
	return pair, nil
}

func (r *RedisStore) Save(ctx context.Context, pair domain.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	_, err = r.cb.Execute(func() (any, error) {
		return nil, r.client.Set(ctx, r.key, data, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("redis save tokens: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	_, err := r.cb.Execute(func() (any, error) {
		return nil, r.client.Del(ctx, r.key).Err()
	})
	if err != nil {
		return fmt.Errorf("redis clear tokens: %w", err)
	}
	return nil
}
