package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

var ErrCacheMiss = errors.New("cache miss")

const profileKeyPrefix = "bruno:me:"

// ProfileCache keeps recent GET /api/me responses to spare the backend
// when the bot and the mini-app ask for the same user in a short time.
type ProfileCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewProfileCache creates a cache with the given entry lifetime.
func NewProfileCache(client *goredis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func profileKey(userID int64) string {
	return profileKeyPrefix + strconv.FormatInt(userID, 10)
}

// Get returns the cached response or ErrCacheMiss.
func (c *ProfileCache) Get(ctx context.Context, userID int64) (*entities.MeResponse, error) {
	raw, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get cached profile: %w", err)
	}

	var me entities.MeResponse
	if err := json.Unmarshal(raw, &me); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}

	return &me, nil
}

// Set stores the response.
func (c *ProfileCache) Set(ctx context.Context, userID int64, me *entities.MeResponse) error {
	raw, err := json.Marshal(me)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if err := c.client.Set(ctx, profileKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache profile: %w", err)
	}

	return nil
}

// Invalidate drops the cached response, e.g. after stats were updated.
func (c *ProfileCache) Invalidate(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate profile: %w", err)
	}
	return nil
}
