package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each cart as one JSON value under its key. No TTL:
// a cart lives until it is cleared.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// RedisNotifier broadcasts cart changes over pub/sub, one channel per
// cart, so views served by other replicas see them too.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func notifyChannel(cartID string) string { return "cart.changed:" + cartID }

func (n *RedisNotifier) Publish(ctx context.Context, cartID string) error {
	if err := n.client.Publish(ctx, notifyChannel(cartID), "").Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context, cartID string) (<-chan struct{}, func()) {
	sub := n.client.Subscribe(ctx, notifyChannel(cartID))
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		for range sub.Channel() {
			select {
			case out <- struct{}{}:
			default:
				// Subscriber is behind; one pending signal is enough,
				// it re-reads the whole cart anyway.
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}
