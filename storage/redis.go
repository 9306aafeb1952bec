package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ Store = (*RedisStore)(nil)

type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func (r *RedisStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get item", zap.String("key", key), zap.Error(err))
		return "", false, err
	}

	return value, true, nil
}

func (r *RedisStore) SetItem(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		r.logger.Error("Failed to set item", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (r *RedisStore) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to remove item", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}
