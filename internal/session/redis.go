package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/sophie/internal/domain"
)

const keyPrefix = "sophie:session:"

// RedisSnapshots implements Snapshotter over Redis, one JSON blob per user.
type RedisSnapshots struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshots creates a Redis-backed snapshot store. A zero ttl means
// snapshots do not expire.
func NewRedisSnapshots(client *redis.Client, ttl time.Duration) *RedisSnapshots {
	return &RedisSnapshots{
		client: client,
		ttl:    ttl,
	}
}

// Save stores the snapshot under the user's key.
func (r *RedisSnapshots) Save(ctx context.Context, snap domain.SessionSnapshot) error {
	if snap.UserID == "" {
		return errors.New("snapshot missing user id")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+snap.UserID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Load fetches the snapshot for a user, or ErrNoSnapshot.
func (r *RedisSnapshots) Load(ctx context.Context, userID string) (domain.SessionSnapshot, error) {
	payload, err := r.client.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SessionSnapshot{}, ErrNoSnapshot
		}
		return domain.SessionSnapshot{}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snap, nil
}

// Delete removes the snapshot for a user.
func (r *RedisSnapshots) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
