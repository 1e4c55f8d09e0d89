package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/go-redis/redis/v8"
)

// RedisCartRepository stores carts as JSON under "<namespace>:<cartID>".
// Every save refreshes the key's TTL, so idle carts expire on their own.
type RedisCartRepository struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisClient connects to the Redis URL and checks the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisCartRepository creates a Redis-backed cart store
func NewRedisCartRepository(client *redis.Client, namespace string, ttl time.Duration) *RedisCartRepository {
	if namespace == "" {
		namespace = "mulghai:cart"
	}
	return &RedisCartRepository{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (r *RedisCartRepository) key(id string) string {
	return r.namespace + ":" + id
}

// Get loads a cart
func (r *RedisCartRepository) Get(ctx context.Context, id string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

// Save writes a cart and resets its expiry
func (r *RedisCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := r.client.Set(ctx, r.key(cart.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes a cart
func (r *RedisCartRepository) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if n == 0 {
		return ErrCartNotFound
	}
	return nil
}
