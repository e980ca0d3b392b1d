package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/api/metrics"
	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

const defaultProfileTTL = 5 * time.Minute

// kv is the subset of redis.Cmdable the profile cache needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ProfileCache decorates a ports.ProfileRepository with a read-through Redis
// cache. Only found profiles are cached; writes evict the user's key.
// Key format: profile:<user_id>
type ProfileCache struct {
	next   ports.ProfileRepository
	client kv
	ttl    time.Duration
	log    zerolog.Logger
}

func NewProfileCache(next ports.ProfileRepository, client kv, ttl time.Duration, log zerolog.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *ProfileCache) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	key := profileKey(userID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p domain.Profile
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
			return &p, nil
		}
		c.log.Warn().Str("user_id", userID).Msg("discarding corrupt cached profile")
		metrics.ProfileCacheTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
	default:
		c.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		metrics.ProfileCacheTotal.WithLabelValues("error").Inc()
	}

	p, err := c.next.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
		}
	}
	return p, nil
}

func (c *ProfileCache) Upsert(ctx context.Context, p *domain.Profile) error {
	if err := c.next.Upsert(ctx, p); err != nil {
		return err
	}
	c.evict(ctx, p.UserID)
	return nil
}

func (c *ProfileCache) SetRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error) {
	p, err := c.next.SetRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	c.evict(ctx, userID)
	return p, nil
}

func (c *ProfileCache) evict(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache eviction failed")
	}
}

func profileKey(userID string) string {
	return "profile:" + userID
}
