// Package cache keeps a redis copy of redeemed-team records. Redemption is
// terminal per team, so cached entries never need invalidation; only the
// redeemed state is ever cached, never eligibility.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/redemption-service/internal/domain"
	"github.com/spec-kit/redemption-service/internal/persistence"
)

const keyPrefix = "redemption:"

type cachedRedemption struct {
	TeamName    string    `json:"team_name"`
	StaffPassID string    `json:"staff_pass_id"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

// RedemptionCache is a best-effort read-through cache; all failures degrade
// to a ledger read. A nil cache is valid and always misses.
type RedemptionCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedemptionCache builds a cache over the shared redis client.
func NewRedemptionCache(r *persistence.Redis, logger *zap.Logger) *RedemptionCache {
	if r == nil || r.Client == nil {
		return nil
	}
	return &RedemptionCache{client: r.Client, logger: logger}
}

// Get returns the cached redemption for the team, or nil on miss or error.
func (c *RedemptionCache) Get(ctx context.Context, teamName string) *domain.Redemption {
	if c == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, keyPrefix+teamName).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redemption cache read failed", zap.String("team", teamName), zap.Error(err))
		}
		return nil
	}

	var cached cachedRedemption
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("redemption cache entry corrupt", zap.String("team", teamName), zap.Error(err))
		return nil
	}
	return &domain.Redemption{
		TeamName:    cached.TeamName,
		StaffPassID: cached.StaffPassID,
		RedeemedAt:  cached.RedeemedAt,
	}
}

// Set stores the redemption without expiry; the state is terminal.
func (c *RedemptionCache) Set(ctx context.Context, redemption *domain.Redemption) {
	if c == nil || redemption == nil {
		return
	}

	raw, err := json.Marshal(cachedRedemption{
		TeamName:    redemption.TeamName,
		StaffPassID: redemption.StaffPassID,
		RedeemedAt:  redemption.RedeemedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+redemption.TeamName, raw, 0).Err(); err != nil {
		c.logger.Warn("redemption cache write failed", zap.String("team", redemption.TeamName), zap.Error(err))
	}
}
