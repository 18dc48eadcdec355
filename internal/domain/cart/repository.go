// internal/domain/cart/repository.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// Repository persists carts by user id
type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
}

// RedisRepository keeps each cart as a JSON document in Redis
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository creates a cart repository; a zero ttl keeps carts forever
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{
		client: client,
		ttl:    ttl,
	}
}

// FindByUserID loads the cart of userID
func (r *RedisRepository) FindByUserID(ctx context.Context, userID string) (*Cart, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get cart from Redis: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &cart, nil
}

// Save writes the whole cart document and refreshes its expiry
func (r *RedisRepository) Save(ctx context.Context, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart to Redis: %w", err)
	}

	return nil
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}
