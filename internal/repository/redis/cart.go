package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

const keyPrefix = "cart:"

// CartRepository stores each user's cart as one JSON-encoded line sequence.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

// Get retrieves the stored line sequence for a user. A record that fails to
// decode is deleted and treated as absent, so a corrupt cart can never wedge
// a session.
func (r *CartRepository) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	key := keyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", userID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		_ = r.client.Del(ctx, key).Err()
		return nil, apperrors.NotFound("cart", userID)
	}

	return lines, nil
}

// Save overwrites the stored line sequence with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, userID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+userID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes the stored record for a user.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}
