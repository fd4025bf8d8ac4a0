package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"campus-portal-api/internal/model"
)

const redisGenerationKey = "notifications:gen"

// Redis keeps lists in Redis under a generation prefix. Flush bumps the
// generation so stale entries are never read again and expire on their TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, redisGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *Redis) key(ctx context.Context, key string) (string, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("notifications:%d:%s", gen, key), nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]model.Notification, bool, error) {
	k, err := r.key(ctx, key)
	if err != nil {
		return nil, false, err
	}
	raw, err := r.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var list []model.Notification
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false, fmt.Errorf("decode cached list: %w", err)
	}
	return list, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, list []model.Notification) error {
	k, err := r.key(ctx, key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, k, data, r.ttl).Err()
}

func (r *Redis) Flush(ctx context.Context) error {
	return r.client.Incr(ctx, redisGenerationKey).Err()
}
