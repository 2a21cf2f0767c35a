package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"gym-frontend/internal/backend"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so that logins survive restarts
// and are shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using the K8s service env vars
// (REDIS_SERVICE_HOST, REDIS_SERVICE_PORT, REDIS_PASSWORD) and fails
// fast if Redis is unreachable so the caller can fall back to memory.
func NewRedisStore() (*RedisStore, error) {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, owner *backend.Owner) error {
	data, err := json.Marshal(owner)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	// No expiry: sessions are valid until logout.
	return r.client.Set(ctx, keyPrefix+id, data, 0).Err()
}

func (r *RedisStore) Load(ctx context.Context, id string) (*backend.Owner, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var owner backend.Owner
	if err := json.Unmarshal(data, &owner); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &owner, nil
}

func (r *RedisStore) Clear(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}

// IsHealthy reports whether the Redis connection is working.
func (r *RedisStore) IsHealthy() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err() == nil
}
