package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is used when no TTL is configured
const DefaultCacheTTL = 5 * time.Minute

var errStaleVersion = errors.New("favourites changed since version was read")

// RedisFavouriteCache keeps each user's favourites list as a JSON array next
// to a version counter that every write increments
type RedisFavouriteCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisFavouriteCache creates a cache backed by client
func NewRedisFavouriteCache(client *redis.Client, ttl time.Duration) *RedisFavouriteCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisFavouriteCache{
		redis: client,
		ttl:   ttl,
	}
}

func favouritesKey(userID string) string {
	return fmt.Sprintf("favourites:user:%s", userID)
}

// The version key has no TTL; an expired counter could restart at a value a
// slow reader still holds.
func versionKey(userID string) string {
	return fmt.Sprintf("favourites:user:%s:version", userID)
}

// Get returns the cached list and whether it was present
func (c *RedisFavouriteCache) Get(ctx context.Context, userID string) ([]model.Favourite, bool, error) {
	data, err := c.redis.Get(ctx, favouritesKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get favourites from Redis: %w", err)
	}

	favs := make([]model.Favourite, 0)
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal favourites: %w", err)
	}
	return favs, true, nil
}

// Version returns the user's write counter, 0 before the first write
func (c *RedisFavouriteCache) Version(ctx context.Context, userID string) (int64, error) {
	return readVersion(ctx, c.redis, userID)
}

func readVersion(ctx context.Context, cmd redis.Cmdable, userID string) (int64, error) {
	v, err := cmd.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get favourites version from Redis: %w", err)
	}
	return v, nil
}

// Set stores favs for userID if no write happened since version was read.
// A stale list is dropped silently.
func (c *RedisFavouriteCache) Set(ctx context.Context, userID string, version int64, favs []model.Favourite) error {
	data, err := json.Marshal(favs)
	if err != nil {
		return fmt.Errorf("failed to marshal favourites: %w", err)
	}

	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, favouritesKey(userID), data, c.ttl)
			return nil
		})
		return err
	}, versionKey(userID))

	if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to save favourites to Redis: %w", err)
	}
	return nil
}

// Invalidate bumps the user's version and drops the cached list
func (c *RedisFavouriteCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(userID))
		pipe.Del(ctx, favouritesKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate favourites in Redis: %w", err)
	}
	return nil
}
