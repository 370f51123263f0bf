package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/messmate/mess-client/internal/config"
	"github.com/messmate/mess-client/internal/core/ports"
)

// SelectTokenStore picks the token store for the current configuration:
// Redis when an address is set, the encrypted file store otherwise. Every
// binary goes through here so that a kiosk CLI and gateway pointed at the
// same config share one credential. The returned client is nil for the
// file store.
func SelectTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, *redis.Client, error) {
	if cfg.RedisAddress == "" {
		return NewFileStore(cfg.TokenFile), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisStore(client, cfg.DeviceID), client, nil
}
